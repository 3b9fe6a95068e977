// Package surface rebuilds the printable form of a mention: it repairs
// paired punctuation cut by span boundaries, joins tokens back into text
// and capitalizes the result.
package surface

// pairedLeftToRight maps opening brackets to their closers
var pairedLeftToRight = map[string]string{
	"(": ")",
	"[": "]",
	"«": "»",
	"{": "}",
}

// pairedRightToLeft maps closing brackets to their openers
var pairedRightToLeft = map[string]string{
	")": "(",
	"]": "[",
	"»": "«",
	"}": "{",
}

// symmetricQuotes open and close with the same glyph
var symmetricQuotes = map[string]bool{
	`"`: true,
}

// unpairedPunct never takes a space before it
var unpairedPunct = map[string]bool{
	".": true, ",": true, ":": true, ";": true,
	"!": true, "?": true, "%": true, "^": true,
}

// IsLeftBracket reports whether the token opens a bracket pair
func IsLeftBracket(token string) bool {
	_, ok := pairedLeftToRight[token]
	return ok
}

// IsRightBracket reports whether the token closes a bracket pair
func IsRightBracket(token string) bool {
	_, ok := pairedRightToLeft[token]
	return ok
}

// IsSymmetricQuote reports whether the token is a symmetric quote mark
func IsSymmetricQuote(token string) bool {
	return symmetricQuotes[token]
}

// IsUnpairedPunct reports whether the token is trailing punctuation
func IsUnpairedPunct(token string) bool {
	return unpairedPunct[token]
}

// counterpart returns the partner glyph of a bracket or quote
func counterpart(token string) string {
	if r, ok := pairedLeftToRight[token]; ok {
		return r
	}
	if l, ok := pairedRightToLeft[token]; ok {
		return l
	}
	return token
}
