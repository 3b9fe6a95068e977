// Package tokenize splits raw text into word and punctuation tokens.
package tokenize

import (
	"regexp"
	"strings"
)

// wordPunct matches runs of word characters or runs of other non-space
// characters
var wordPunct = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+|[^\p{L}\p{M}\p{N}_\s]+`)

// splittable punctuation is emitted one character per token
const splittable = `():;,."»«[]{}%^`

// Tokenize splits text into words and punctuation. A punctuation run made
// only of brackets, quotes and sentence marks is split into single
// characters so that every bracket is its own token; other runs ("--",
// "...!?" mixed with "-") stay whole.
func Tokenize(text string) []string {
	var tokens []string
	for _, tok := range wordPunct.FindAllString(text, -1) {
		if isSplittable(tok) {
			for _, r := range tok {
				tokens = append(tokens, string(r))
			}
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isSplittable(tok string) bool {
	for _, r := range tok {
		if !strings.ContainsRune(splittable, r) {
			return false
		}
	}
	return true
}
