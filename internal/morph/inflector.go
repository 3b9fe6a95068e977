package morph

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/aspecta/internal/model"
)

// Inflector puts word forms into a requested grammatical form
type Inflector struct {
	analyzer Analyzer
}

// NewInflector creates an inflector over an analyzer
func NewInflector(analyzer Analyzer) *Inflector {
	return &Inflector{analyzer: analyzer}
}

// Candidates returns all readings of a word form
func (i *Inflector) Candidates(word string) []model.MorphParse {
	return i.analyzer.Parse(word)
}

// Inflect returns word in the form carrying grammemes.
//
// The first reading whose POS starts with one of posPrefixes is inflected;
// when none matches, the first reading is used. The word is returned
// unchanged if it is unknown or has no such form. Title and upper case of
// the input are kept.
func (i *Inflector) Inflect(word string, posPrefixes []string, grammemes ...string) string {
	parses := i.analyzer.Parse(word)
	if len(parses) == 0 {
		return word
	}

	parse := parses[0]
	for _, p := range parses {
		if matchesPOS(p.POS, posPrefixes) {
			parse = p
			break
		}
	}

	form, ok := i.analyzer.Inflect(parse, grammemes)
	if !ok || form == "" {
		return word
	}
	return restoreCase(word, form)
}

func matchesPOS(pos string, prefixes []string) bool {
	if pos == "" {
		return false
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(pos, prefix) {
			return true
		}
	}
	return false
}

// restoreCase applies the casing pattern of original to form
func restoreCase(original, form string) string {
	if utf8.RuneCountInString(original) > 1 && strings.ToUpper(original) == original && strings.ToLower(original) != original {
		return strings.ToUpper(form)
	}

	r, _ := utf8.DecodeRuneInString(original)
	if unicode.IsUpper(r) {
		f, size := utf8.DecodeRuneInString(form)
		return string(unicode.ToUpper(f)) + form[size:]
	}
	return form
}
