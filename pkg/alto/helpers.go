package alto

import (
	"strings"
)

// Text combines the string contents of a line into one text run.
// Empty strings are dropped; the rest are joined with single spaces.
func (l TextLine) Text() string {
	var parts []string
	for _, s := range l.Strings {
		if content := strings.TrimSpace(s.Content); content != "" {
			parts = append(parts, content)
		}
	}
	return strings.Join(parts, " ")
}

// Text combines all string contents of a region into one text run,
// in case text spans multiple strings or lines.
func (b TextBlock) Text() string {
	var parts []string
	for _, line := range b.Lines {
		if text := line.Text(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// HasDigits reports whether any rune in s is a decimal digit.
// Used to validate extracted page numbers.
func HasDigits(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
