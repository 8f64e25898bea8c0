package truncate

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	lineSeparator = "\n"
	wordSeparator = " "

	// seam prefixes hidden text produced by the line-break and word passes.
	seam = " "
)

// Thresholds configures where text is cut.
// A zero or negative value disables the corresponding mode.
type Thresholds struct {
	Chars      int `json:"chars,omitempty" yaml:"chars,omitempty"`
	Words      int `json:"words,omitempty" yaml:"words,omitempty"`
	LineBreaks int `json:"lineBreaks,omitempty" yaml:"line-breaks,omitempty"`
}

// Normalize returns a copy with negative values clamped to zero.
func (t Thresholds) Normalize() Thresholds {
	return Thresholds{
		Chars:      max(t.Chars, 0),
		Words:      max(t.Words, 0),
		LineBreaks: max(t.LineBreaks, 0),
	}
}

// IsZero reports whether every mode is disabled.
func (t Thresholds) IsZero() bool {
	return t.Normalize() == Thresholds{}
}

// String returns a compact representation used in log output.
func (t Thresholds) String() string {
	return fmt.Sprintf("chars=%d words=%d line-breaks=%d", t.Chars, t.Words, t.LineBreaks)
}

// Result holds the two halves of a truncated text.
type Result struct {
	Visible string `json:"visibleText" yaml:"visible"`
	Hidden  string `json:"hiddenText" yaml:"hidden"`
}

// Truncated reports whether any text was moved to the hidden part.
func (r Result) Truncated() bool {
	return r.Hidden != ""
}

// Truncate splits text into a visible part and a hidden remainder.
//
// The line-break threshold is always applied first. The character or word
// threshold is then applied to what is still visible, with characters taking
// precedence whenever they are enabled. Hidden text produced by the second
// pass is placed before hidden text produced by the first.
func Truncate(text string, th Thresholds) Result {
	th = th.Normalize()

	r := truncateLineBreaks(text, th.LineBreaks)
	if !applies(r.Visible, th) {
		return r
	}
	if th.Chars > 0 {
		return truncateChars(r, th.Chars)
	}
	return truncateWords(r, th.Words)
}

func truncateLineBreaks(text string, limit int) Result {
	lines := strings.Split(text, lineSeparator)
	if limit == 0 || len(lines) <= limit {
		return Result{Visible: text}
	}
	return Result{
		Visible: strings.Join(lines[:limit], lineSeparator),
		Hidden:  seam + strings.Join(lines[limit:], lineSeparator),
	}
}

func applies(text string, th Thresholds) bool {
	if th.Chars > 0 && Length(text) > th.Chars {
		return true
	}
	return th.Words > 0 && WordCount(text) > th.Words
}

func truncateChars(r Result, limit int) Result {
	head, tail := splitUTF16(r.Visible, limit)
	return Result{
		Visible: head,
		Hidden:  tail + r.Hidden,
	}
}

func truncateWords(r Result, limit int) Result {
	words := strings.Split(r.Visible, wordSeparator)
	return Result{
		Visible: strings.Join(words[:limit], wordSeparator),
		Hidden:  seam + strings.Join(words[limit:], wordSeparator) + r.Hidden,
	}
}

// Length returns the number of UTF-16 code units needed to encode s.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// WordCount returns the number of tokens s splits into on a single space.
// Consecutive spaces produce empty tokens, and those are counted too.
func WordCount(s string) int {
	return strings.Count(s, wordSeparator) + 1
}

// splitUTF16 cuts s after n UTF-16 code units. A cut that lands inside a
// surrogate pair leaves a replacement character on both sides.
func splitUTF16(s string, n int) (head, tail string) {
	units := 0
	for i, r := range s {
		if units == n {
			return s[:i], s[i:]
		}
		w := utf16.RuneLen(r)
		if units+w > n {
			size := utf8.RuneLen(r)
			return s[:i] + string(utf8.RuneError), string(utf8.RuneError) + s[i+size:]
		}
		units += w
	}
	return s, ""
}
