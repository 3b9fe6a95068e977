package surface

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Detokenize joins tokens with single spaces, attaching trailing
// punctuation and right brackets to the previous token and the token
// after a left bracket to the bracket.
func Detokenize(tokens []string) string {
	var b strings.Builder
	sep := ""

	for _, token := range tokens {
		if IsUnpairedPunct(token) || IsRightBracket(token) {
			b.WriteString(token)
			continue
		}

		b.WriteString(sep)
		b.WriteString(token)
		sep = " "
		if IsLeftBracket(token) {
			sep = ""
		}
	}

	return b.String()
}

// Capitalize uppercases the first rune of s and leaves the rest as is
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
