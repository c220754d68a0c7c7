package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var reWhitespace = regexp.MustCompile(`\s+`)

// CleanText collapses all runs of whitespace (including newlines) into single
// spaces and trims the ends. Extraction prompts embed page text inline, so
// raw line breaks and tabs are flattened out first.
func CleanText(text string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
}

// TruncateText shortens text to at most limit runes, preserving the prefix
// and appending "..." when anything was cut off. Cutting on rune boundaries
// keeps multi-byte characters intact.
func TruncateText(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "..."
}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
