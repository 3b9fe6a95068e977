package model

import "strings"

// OpenCorpora grammemes used for inflection
const (
	GrammemeNomn = "nomn"
	GrammemeGent = "gent"
	GrammemePlur = "plur"
	GrammemeMasc = "masc"
	GrammemeFemn = "femn"
	GrammemeNeut = "neut"
)

// MorphParse is one morphological reading of a word form
type MorphParse struct {
	Word      string   `json:"word"`      // Lowercased word form
	Lemma     string   `json:"lemma"`     // Normal form
	POS       string   `json:"pos"`       // OpenCorpora POS (NOUN, ADJF, PRTF, ...)
	Grammemes []string `json:"grammemes"` // Remaining grammemes of the tag
	Paradigm  int      `json:"paradigm"`  // Paradigm index in the analyzer
	Form      int      `json:"form"`      // Form index in the paradigm
}

// Tag renders the parse as an OpenCorpora-like tag string
func (p MorphParse) Tag() string {
	if len(p.Grammemes) == 0 {
		return p.POS
	}
	return p.POS + "," + strings.Join(p.Grammemes, ",")
}

// Has reports whether the parse carries a grammeme
func (p MorphParse) Has(grammeme string) bool {
	for _, g := range p.Grammemes {
		if g == grammeme {
			return true
		}
	}
	return false
}

// ParseTag splits an OpenCorpora tag ("ADJF,Qual neut,sing,nomn") into
// POS and grammemes
func ParseTag(tag string) (string, []string) {
	fields := strings.FieldsFunc(tag, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
