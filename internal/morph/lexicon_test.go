package morph

import (
	"strings"
	"testing"

	"github.com/ppiankov/aspecta/internal/model"
)

func loadTestLexicon(t *testing.T) *Lexicon {
	t.Helper()
	lex, err := LoadLexicon("testdata/lexicon.yaml")
	if err != nil {
		t.Fatalf("Failed to load lexicon: %v", err)
	}
	return lex
}

func TestLoadLexicon(t *testing.T) {
	lex := loadTestLexicon(t)
	if lex.Size() != 12 {
		t.Errorf("expected 12 paradigms, got %d", lex.Size())
	}
}

func TestLoadLexicon_MissingFile(t *testing.T) {
	if _, err := LoadLexicon("testdata/does-not-exist.yaml"); err == nil {
		t.Fatal("expected error for missing lexicon")
	}
}

func TestReadLexicon_Invalid(t *testing.T) {
	cases := map[string]string{
		"no forms":    "paradigms:\n  - lemma: x\n    forms: []\n",
		"missing tag": "paradigms:\n  - forms:\n      - {word: x}\n",
		"unknown key": "paradigms:\n  - forms:\n      - {word: x, tag: NOUN, case: nomn}\n",
		"broken yaml": "paradigms: [",
	}

	for name, doc := range cases {
		if _, err := ReadLexicon(strings.NewReader(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLexicon_Parse(t *testing.T) {
	lex := loadTestLexicon(t)

	parses := lex.Parse("Воздействия")
	if len(parses) != 2 {
		t.Fatalf("expected 2 parses, got %d", len(parses))
	}
	if parses[0].POS != "NOUN" || parses[0].Lemma != "воздействие" {
		t.Errorf("unexpected first parse: %+v", parses[0])
	}
	if !parses[0].Has("gent") || !parses[1].Has("plur") {
		t.Errorf("unexpected grammemes: %v / %v", parses[0].Grammemes, parses[1].Grammemes)
	}

	if got := lex.Parse("несуществующее"); got != nil {
		t.Errorf("expected no parses, got %v", got)
	}
}

func TestLexicon_Inflect(t *testing.T) {
	lex := loadTestLexicon(t)

	cases := []struct {
		word      string
		index     int
		grammemes []string
		want      string
	}{
		{"теплового", 0, []string{"nomn", "neut"}, "тепловое"},
		{"теплового", 0, []string{"nomn", "femn"}, "тепловая"},
		{"воздействия", 0, []string{"nomn"}, "воздействие"},
		{"воздействия", 1, []string{"gent"}, "воздействий"},
		{"методов", 0, []string{"nomn"}, "методы"},
		{"двух", 0, []string{"nomn"}, "два"},
		{"новых", 0, []string{"nomn", "plur"}, "новые"},
	}

	for _, tc := range cases {
		parse := lex.Parse(tc.word)[tc.index]
		got, ok := lex.Inflect(parse, tc.grammemes)
		if !ok {
			t.Errorf("%s %v: expected a form", tc.word, tc.grammemes)
			continue
		}
		if got != tc.want {
			t.Errorf("%s %v: expected %q, got %q", tc.word, tc.grammemes, tc.want, got)
		}
	}
}

func TestLexicon_InflectMissingForm(t *testing.T) {
	lex := loadTestLexicon(t)

	parse := lex.Parse("стали")[0] // verb reading has a single form
	if _, ok := lex.Inflect(parse, []string{"nomn"}); ok {
		t.Error("expected no form for a verb in nominative")
	}

	if _, ok := lex.Inflect(model.MorphParse{Paradigm: 99}, []string{"nomn"}); ok {
		t.Error("expected no form for unknown paradigm")
	}
}
