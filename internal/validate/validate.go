package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTagLen bounds a team filter; Notion caps select option names at 100.
const MaxTagLen = 100

// Tag validates an optional team filter. Empty input is valid and means no
// filter. Anything a multi-select option can hold is accepted, e.g.
// "U12 (Girls)" or "U12/Boys"; control characters and invalid UTF-8 are not.
func Tag(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if !utf8.ValidString(s) || utf8.RuneCountInString(s) > MaxTagLen {
		return s, false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return s, false
		}
	}
	return s, true
}
