// Package morph provides morphological analysis and inflection of Russian
// word forms with OpenCorpora grammemes.
package morph

import "github.com/ppiankov/aspecta/internal/model"

// Analyzer parses word forms and inflects parses
type Analyzer interface {
	// Parse returns every reading of the word form, most probable first
	Parse(word string) []model.MorphParse

	// Inflect returns the form of the parse's lexeme carrying all grammemes
	Inflect(parse model.MorphParse, grammemes []string) (string, bool)
}

// grammemeCategories groups grammemes that replace each other on inflection
var grammemeCategories = map[string]string{
	"nomn": "case", "gent": "case", "datv": "case", "accs": "case",
	"ablt": "case", "loct": "case", "voct": "case",
	"gen1": "case", "gen2": "case", "acc2": "case", "loc1": "case", "loc2": "case",
	"sing": "number", "plur": "number",
	"masc": "gender", "femn": "gender", "neut": "gender", "ms-f": "gender",
	"anim": "animacy", "inan": "animacy",
	"perf": "aspect", "impf": "aspect",
	"past": "tense", "pres": "tense", "futr": "tense",
	"actv": "voice", "pssv": "voice",
}

// updateGrammemes returns the grammemes of a form once the requested
// grammemes replace their category siblings
func updateGrammemes(current, requested []string) map[string]bool {
	replaced := make(map[string]bool)
	for _, g := range requested {
		if cat, ok := grammemeCategories[g]; ok {
			replaced[cat] = true
		}
	}

	out := make(map[string]bool, len(current)+len(requested))
	for _, g := range current {
		if cat, ok := grammemeCategories[g]; ok && replaced[cat] {
			continue
		}
		out[g] = true
	}
	for _, g := range requested {
		out[g] = true
	}
	return out
}

// similarity scores a candidate form against the wanted grammemes.
// Shared grammemes count one, mismatches cost a tenth.
func similarity(want map[string]bool, candidate []string) float64 {
	have := make(map[string]bool, len(candidate))
	for _, g := range candidate {
		have[g] = true
	}

	shared, diff := 0, 0
	for g := range want {
		if have[g] {
			shared++
		} else {
			diff++
		}
	}
	for g := range have {
		if !want[g] {
			diff++
		}
	}
	return float64(shared) - 0.1*float64(diff)
}
