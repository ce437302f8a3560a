package strings

import (
	"strings"
)

// DefaultSummaryMaxLen is the maximum length of a value summary shown in a menu entry.
// Array and checkbox summaries are clipped to this length.
const DefaultSummaryMaxLen = 60

// TruncationMarker is appended to clipped strings.
const TruncationMarker = "..."

// MinClipLen is the minimum maxLen value for Clip.
// Values smaller than this would not leave room for meaningful content plus the marker.
const MinClipLen = 4

// Clip shortens s to at most maxLen runes, replacing the tail with TruncationMarker
// when it had to cut. Strings that already fit are returned unchanged.
//
// The function operates on runes so multi-byte characters are never split.
// maxLen values below MinClipLen are raised to MinClipLen.
func Clip(s string, maxLen int) string {
	if maxLen < MinClipLen {
		maxLen = MinClipLen
	}

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-len(TruncationMarker)]) + TruncationMarker
	}
	return s
}

// SingleLine collapses every run of whitespace (including newlines) into a single space
// and trims the ends, so the result can be used as one line of a menu.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// JoinClipped joins parts with ", " and clips the result to maxLen.
func JoinClipped(parts []string, maxLen int) string {
	return Clip(strings.Join(parts, ", "), maxLen)
}

// IndefiniteArticle returns "an" for names starting with a, e, i or o and "a" otherwise.
func IndefiniteArticle(name string) string {
	if name == "" {
		return "a"
	}
	switch strings.ToLower(name[:1]) {
	case "a", "e", "i", "o":
		return "an"
	}
	return "a"
}
