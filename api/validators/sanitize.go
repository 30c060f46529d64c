package validators

import (
	"strings"
	"unicode"
)

// SanitizeString trims whitespace, strips control characters, and caps the
// length of free-text input such as admin search terms.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(input))
	if maxLen > 0 && len(trimmed) > maxLen {
		trimmed = trimmed[:maxLen]
	}
	return trimmed
}
