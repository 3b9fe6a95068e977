package model

import "strings"

// POSNoun is the Universal POS tag of common nouns
const POSNoun = "NOUN"

// Dependency relations used by the normalizer
const (
	DepRoot   = "root"
	DepNummod = "nummod"
	DepAppos  = "appos"
	DepAcl    = "acl"
	DepAmod   = "amod"
	DepDet    = "det"
	DepClf    = "clf"
)

// Annotation is the dependency parse of one token of a span
type Annotation struct {
	Index int               `json:"index"`           // Position in the span (0-based)
	Text  string            `json:"text"`            // Surface form
	Lemma string            `json:"lemma,omitempty"` // Lemma reported by the parser
	POS   string            `json:"pos"`             // Universal POS tag
	Dep   string            `json:"dep"`             // Relation to the head
	Head  int               `json:"head"`            // Head index in the span; the root points to itself
	Feats map[string]string `json:"feats,omitempty"` // Morphological features (Number, Gender, ...)
}

// IsRoot reports whether the token heads its own parse
func (a Annotation) IsRoot() bool {
	return a.Head == a.Index
}

// Feat returns a morphological feature value, or "" if absent
func (a Annotation) Feat(name string) string {
	return a.Feats[name]
}

// ParseFeats decodes a CoNLL-U FEATS column ("Gender=Neut|Number=Sing")
func ParseFeats(raw string) map[string]string {
	if raw == "" || raw == "_" {
		return nil
	}

	feats := make(map[string]string)
	for _, pair := range strings.Split(raw, "|") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			continue
		}
		feats[name] = value
	}
	return feats
}

// Root returns the index of the first root of a parse, or -1
func Root(parse []Annotation) int {
	for i, a := range parse {
		if a.IsRoot() {
			return i
		}
	}
	return -1
}
