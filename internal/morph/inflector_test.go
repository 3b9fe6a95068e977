package morph

import (
	"testing"

	"github.com/ppiankov/aspecta/internal/model"
)

func TestInflector_PrefersRequestedPOS(t *testing.T) {
	inf := NewInflector(loadTestLexicon(t))

	// "стали" is a verb first; the NOUN prefix selects "сталь"
	if got := inf.Inflect("стали", []string{"NOUN"}, "nomn"); got != "сталь" {
		t.Errorf("expected сталь, got %q", got)
	}

	// no POS match falls back to the first reading, which has no nominative
	if got := inf.Inflect("стали", []string{"ADJ"}, "nomn"); got != "стали" {
		t.Errorf("expected unchanged стали, got %q", got)
	}
}

func TestInflector_POSPrefixes(t *testing.T) {
	inf := NewInflector(loadTestLexicon(t))

	if got := inf.Inflect("сглаженных", []string{"ADJ", "PRT"}, "nomn", "femn"); got != "сглаженная" {
		t.Errorf("expected сглаженная, got %q", got)
	}
}

func TestInflector_UnknownWordUnchanged(t *testing.T) {
	inf := NewInflector(loadTestLexicon(t))

	if got := inf.Inflect("SPH", nil, "nomn"); got != "SPH" {
		t.Errorf("expected SPH, got %q", got)
	}
}

func TestInflector_KeepsCase(t *testing.T) {
	inf := NewInflector(loadTestLexicon(t))

	if got := inf.Inflect("Теплового", []string{"ADJ"}, "nomn", "neut"); got != "Тепловое" {
		t.Errorf("expected Тепловое, got %q", got)
	}
	if got := inf.Inflect("МЕТОДОВ", []string{"NOUN"}, "nomn"); got != "МЕТОДЫ" {
		t.Errorf("expected МЕТОДЫ, got %q", got)
	}
}

func TestInflector_Candidates(t *testing.T) {
	inf := NewInflector(loadTestLexicon(t))

	got := inf.Candidates("стали")
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	if got[0].POS != "VERB" || got[1].POS != "NOUN" {
		t.Errorf("unexpected candidate order: %s, %s", got[0].Tag(), got[1].Tag())
	}
}

type stubAnalyzer struct {
	parses []model.MorphParse
	form   string
	ok     bool
	got    model.MorphParse
}

func (s *stubAnalyzer) Parse(word string) []model.MorphParse { return s.parses }

func (s *stubAnalyzer) Inflect(p model.MorphParse, grammemes []string) (string, bool) {
	s.got = p
	return s.form, s.ok
}

func TestInflector_SkipsParsesWithoutPOS(t *testing.T) {
	stub := &stubAnalyzer{
		parses: []model.MorphParse{{Word: "x", POS: "", Form: 0}, {Word: "x", POS: "ADJF", Form: 1}},
		form:   "y",
		ok:     true,
	}
	inf := NewInflector(stub)

	if got := inf.Inflect("x", []string{""}, "nomn"); got != "y" {
		t.Errorf("expected y, got %q", got)
	}
	if stub.got.Form != 1 {
		t.Errorf("expected the ADJF reading, got form %d", stub.got.Form)
	}
}
