package wizard

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const accentedLetters = "áéíóúÁÉÍÓÚñÑ"

// NameRuneAllowed reports whether r may appear in a name: ASCII letters, the
// Spanish accented vowels and ñ, and whitespace.
func NameRuneAllowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case unicode.IsSpace(r):
		return true
	default:
		return strings.ContainsRune(accentedLetters, r)
	}
}

// KeyAllowed is the keystroke filter for the name input. key is a key name as
// reported by the rendering layer: single characters are checked against the
// allow-list, named keys such as "Backspace" or "ArrowLeft" pass through.
func KeyAllowed(key string) bool {
	if key == "" {
		return false
	}
	if utf8.RuneCountInString(key) != 1 {
		return true
	}
	r, _ := utf8.DecodeRuneInString(key)
	return NameRuneAllowed(r)
}

// SanitizeName drops every rune outside the name allow-list.
func SanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		if NameRuneAllowed(r) {
			return r
		}
		return -1
	}, s)
}
