package helpers

import (
	"strings"
)

// TruncateString truncates a string to the specified number of runes and adds an ellipsis if needed
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// SingleLine collapses all whitespace, newlines included, to single spaces
// and strips surrounding quotes
func SingleLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, "\"'`")
}
