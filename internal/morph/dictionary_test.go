package morph

import (
	"sync"
	"testing"

	"github.com/ppiankov/aspecta/internal/model"
)

func newTestDictionary(t *testing.T) *Dictionary {
	t.Helper()
	d, err := NewDictionary()
	if err != nil {
		t.Fatalf("NewDictionary failed: %v", err)
	}
	return d
}

func TestDictionary_Parse(t *testing.T) {
	d := newTestDictionary(t)

	got := d.Parse(" Кошку ")
	if len(got) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(got))
	}
	if got[0].Word != "кошку" || got[0].POS != model.POSNoun {
		t.Errorf("unexpected reading %s %s", got[0].Word, got[0].Tag())
	}
	if got[0].Lemma != "кошка" {
		t.Errorf("expected lemma кошка, got %q", got[0].Lemma)
	}
}

func TestDictionary_ParseUnknown(t *testing.T) {
	d := newTestDictionary(t)

	if got := d.Parse("qwzx"); got != nil {
		t.Errorf("expected no readings, got %v", got)
	}
	if got := d.Parse(""); got != nil {
		t.Errorf("expected no readings for empty word, got %v", got)
	}
}

func TestDictionary_Inflect(t *testing.T) {
	inf := NewInflector(newTestDictionary(t))

	if got := inf.Inflect("кошку", []string{model.POSNoun}, model.GrammemeNomn); got != "кошка" {
		t.Errorf("expected кошка, got %q", got)
	}
	if got := inf.Inflect("Кошку", []string{model.POSNoun}, model.GrammemeNomn); got != "Кошка" {
		t.Errorf("expected Кошка, got %q", got)
	}
	if got := inf.Inflect("qwzx", []string{model.POSNoun}, model.GrammemeNomn); got != "qwzx" {
		t.Errorf("expected unknown word unchanged, got %q", got)
	}
}

func TestDictionary_InflectWithoutReading(t *testing.T) {
	d := newTestDictionary(t)

	if _, ok := d.Inflect(model.MorphParse{}, []string{model.GrammemeNomn}); ok {
		t.Error("expected no form for an empty parse")
	}
}

func TestDictionary_Concurrent(t *testing.T) {
	inf := NewInflector(newTestDictionary(t))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := inf.Inflect("кошку", []string{model.POSNoun}, model.GrammemeNomn); got != "кошка" {
				t.Errorf("expected кошка, got %q", got)
			}
		}()
	}
	wg.Wait()
}
