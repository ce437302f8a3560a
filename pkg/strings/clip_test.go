package strings

import (
	"testing"
)

func TestClip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "hello",
			maxLen:   10,
			expected: "hello",
		},
		{
			name:     "exact length unchanged",
			input:    "hello",
			maxLen:   5,
			expected: "hello",
		},
		{
			name:     "long string clipped",
			input:    "hello world this is a long string",
			maxLen:   15,
			expected: "hello world ...",
		},
		{
			name:     "whitespace is preserved",
			input:    "a\tb",
			maxLen:   10,
			expected: "a\tb",
		},
		{
			name:     "unicode clipping safe",
			input:    "日本語テスト文字列",
			maxLen:   6,
			expected: "日本語...",
		},
		{
			name:     "maxLen below minimum is clamped",
			input:    "abcdefgh",
			maxLen:   1,
			expected: "a...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clip(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("Clip(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestJoinClipped(t *testing.T) {
	long := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		long = append(long, "value")
	}

	if got := JoinClipped([]string{"a", "b"}, DefaultSummaryMaxLen); got != "a, b" {
		t.Errorf("JoinClipped short = %q", got)
	}

	got := JoinClipped(long, DefaultSummaryMaxLen)
	if len([]rune(got)) != DefaultSummaryMaxLen {
		t.Errorf("expected clipped length %d, got %d (%q)", DefaultSummaryMaxLen, len([]rune(got)), got)
	}
	if got[len(got)-3:] != TruncationMarker {
		t.Errorf("expected truncation marker at end of %q", got)
	}
}

func TestSingleLine(t *testing.T) {
	if got := SingleLine("  hello\r\n\tworld  "); got != "hello world" {
		t.Errorf("SingleLine() = %q", got)
	}
}

func TestIndefiniteArticle(t *testing.T) {
	tests := map[string]string{
		"channel":      "a",
		"item":         "an",
		"Organization": "an",
		"hub":          "a",
		"":             "a",
	}
	for name, want := range tests {
		if got := IndefiniteArticle(name); got != want {
			t.Errorf("IndefiniteArticle(%q) = %q, want %q", name, got, want)
		}
	}
}
