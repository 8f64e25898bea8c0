package output

import "strings"

// Abbreviate shortens s to maxLen runes for a table cell or tree leaf,
// appending "..." when cut. Line breaks are shown as \n so a cell stays on
// one row.
func Abbreviate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", "\\n")
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
