// Package truncate splits text into a visible prefix and a hidden remainder,
// the data behind a "show more" / "show less" toggle.
//
// # Thresholds
//
// Three limits can be combined:
//
//   - LineBreaks: number of visible lines
//   - Chars: number of visible characters, counted in UTF-16 code units
//   - Words: number of visible words, split on a single ASCII space
//
// A zero or negative limit disables that mode.
//
// # Usage
//
//	r := truncate.Truncate("Test element Test element", truncate.Thresholds{Chars: 6})
//	// r.Visible == "Test e"
//	// r.Hidden  == "lement Test element"
//
// Truncate is a pure function. It never fails and is safe to call from
// multiple goroutines.
package truncate
