package morph

import (
	"fmt"
	"strings"

	gomorphy "github.com/jus1d/gomorphy"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/aspecta/internal/model"
)

// Dictionary is an Analyzer over the embedded OpenCorpora dictionary.
//
// The dictionary exposes the most probable reading of a word form only, so
// Parse returns at most one reading and a lexeme's paradigm is rebuilt by
// tagging each of its forms. Forms whose own best reading belongs to
// another part of speech are left out of the paradigm. Rebuilt paradigms
// are kept for the life of the Dictionary. Safe for concurrent use.
type Dictionary struct {
	dict      *gomorphy.Analyzer
	paradigms *gocache.Cache
}

// NewDictionary loads the embedded dictionary
func NewDictionary() (*Dictionary, error) {
	dict, err := gomorphy.Default()
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return &Dictionary{
		dict:      dict,
		paradigms: gocache.New(gocache.NoExpiration, 0),
	}, nil
}

// Parse returns the most probable reading of a word form, or nil for an
// unknown word
func (d *Dictionary) Parse(word string) []model.MorphParse {
	word = strings.ToLower(strings.TrimSpace(word))
	pos, grammemes := model.ParseTag(d.dict.Tag(word))
	if pos == "" {
		return nil
	}

	entries := d.paradigm(word, pos)
	parse := model.MorphParse{
		Word:      word,
		Lemma:     word,
		POS:       pos,
		Grammemes: grammemes,
	}
	if len(entries) > 0 {
		parse.Lemma = entries[0].word
	}
	for i, e := range entries {
		if e.word == word {
			parse.Form = i
			break
		}
	}
	return []model.MorphParse{parse}
}

// Inflect finds the form of the parsed word's lexeme that carries all the
// requested grammemes and is closest to the parsed form otherwise
func (d *Dictionary) Inflect(parse model.MorphParse, grammemes []string) (string, bool) {
	if parse.Word == "" || parse.POS == "" {
		return "", false
	}
	return closestForm(d.paradigm(parse.Word, parse.POS), parse.Grammemes, grammemes)
}

// paradigm returns the tagged forms of word's lexeme in dictionary order
func (d *Dictionary) paradigm(word, pos string) []entry {
	key := pos + ":" + word
	if cached, ok := d.paradigms.Get(key); ok {
		return cached.([]entry)
	}

	forms := d.dict.WordForms(word)
	entries := make([]entry, 0, len(forms))
	for _, form := range forms {
		formPOS, formGrammemes := model.ParseTag(d.dict.Tag(form))
		if formPOS != pos {
			continue
		}
		entries = append(entries, entry{word: form, pos: formPOS, grammemes: formGrammemes})
	}

	d.paradigms.Set(key, entries, gocache.NoExpiration)
	return entries
}
