package morph

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/aspecta/internal/model"
	"gopkg.in/yaml.v3"
)

// Form is one word form of a paradigm with its OpenCorpora tag
type Form struct {
	Word string `yaml:"word"`
	Tag  string `yaml:"tag"` // e.g. "ADJF neut,sing,nomn"
}

// Paradigm is the full set of forms of one lexeme
type Paradigm struct {
	Lemma string `yaml:"lemma,omitempty"` // Defaults to the first form
	Forms []Form `yaml:"forms"`
}

type lexiconFile struct {
	Paradigms []Paradigm `yaml:"paradigms"`
}

type entry struct {
	word      string
	pos       string
	grammemes []string
}

type formRef struct {
	paradigm int
	form     int
}

// Lexicon is an in-memory dictionary of paradigms.
// It is read-only after construction and safe for concurrent use.
type Lexicon struct {
	lemmas []string
	forms  [][]entry
	index  map[string][]formRef
}

// NewLexicon builds a lexicon from paradigms
func NewLexicon(paradigms []Paradigm) (*Lexicon, error) {
	l := &Lexicon{index: make(map[string][]formRef)}

	for pi, p := range paradigms {
		if len(p.Forms) == 0 {
			return nil, fmt.Errorf("paradigm %d (%q) has no forms", pi, p.Lemma)
		}

		entries := make([]entry, len(p.Forms))
		for fi, f := range p.Forms {
			word := strings.ToLower(strings.TrimSpace(f.Word))
			pos, grammemes := model.ParseTag(f.Tag)
			if word == "" || pos == "" {
				return nil, fmt.Errorf("paradigm %d form %d: word and tag are required", pi, fi)
			}
			entries[fi] = entry{word: word, pos: pos, grammemes: grammemes}
			l.index[word] = append(l.index[word], formRef{paradigm: pi, form: fi})
		}

		lemma := strings.ToLower(p.Lemma)
		if lemma == "" {
			lemma = entries[0].word
		}
		l.lemmas = append(l.lemmas, lemma)
		l.forms = append(l.forms, entries)
	}

	return l, nil
}

// ReadLexicon decodes a YAML paradigm file
func ReadLexicon(r io.Reader) (*Lexicon, error) {
	var file lexiconFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	return NewLexicon(file.Paradigms)
}

// LoadLexicon reads a YAML paradigm file from disk
func LoadLexicon(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadLexicon(f)
}

// Size returns the number of paradigms
func (l *Lexicon) Size() int {
	return len(l.forms)
}

// Parse returns the readings of a word form in lexicon order
func (l *Lexicon) Parse(word string) []model.MorphParse {
	refs := l.index[strings.ToLower(strings.TrimSpace(word))]
	if len(refs) == 0 {
		return nil
	}

	parses := make([]model.MorphParse, len(refs))
	for i, ref := range refs {
		e := l.forms[ref.paradigm][ref.form]
		parses[i] = model.MorphParse{
			Word:      e.word,
			Lemma:     l.lemmas[ref.paradigm],
			POS:       e.pos,
			Grammemes: append([]string(nil), e.grammemes...),
			Paradigm:  ref.paradigm,
			Form:      ref.form,
		}
	}
	return parses
}

// Inflect finds the form of the parse's paradigm that carries all the
// requested grammemes and is closest to the parsed form otherwise
func (l *Lexicon) Inflect(parse model.MorphParse, grammemes []string) (string, bool) {
	if parse.Paradigm < 0 || parse.Paradigm >= len(l.forms) {
		return "", false
	}

	return closestForm(l.forms[parse.Paradigm], parse.Grammemes, grammemes)
}

// closestForm picks the entry carrying all requested grammemes whose tag
// is closest to current with the requested grammemes substituted
func closestForm(entries []entry, current, grammemes []string) (string, bool) {
	want := updateGrammemes(current, grammemes)

	best, bestScore := -1, 0.0
	for i, e := range entries {
		if !hasAll(e.grammemes, grammemes) {
			continue
		}
		score := similarity(want, e.grammemes)
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}

	if best < 0 {
		return "", false
	}
	return entries[best].word, true
}

func hasAll(have, required []string) bool {
	for _, r := range required {
		found := false
		for _, h := range have {
			if h == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
