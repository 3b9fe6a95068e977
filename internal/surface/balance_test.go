package surface

import (
	"reflect"
	"testing"
)

func TestBalance_UnmatchedOpen(t *testing.T) {
	got := Balance([]string{"(", "пример"})
	want := []string{"(", "пример", ")"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBalance_UnmatchedClose(t *testing.T) {
	got := Balance([]string{"пример", ")"})
	want := []string{"(", "пример", ")"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBalance_AlreadyBalanced(t *testing.T) {
	in := []string{"метод", "(", "SPH", ")", "и", "«", "AMR", "»"}
	got := Balance(in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("expected unchanged %v, got %v", in, got)
	}
}

func TestBalance_SymmetricQuotes(t *testing.T) {
	got := Balance([]string{`"`, "Сокол", `"`, "и", `"`, "Орёл"})
	want := []string{`"`, "Сокол", `"`, "и", `"`, "Орёл", `"`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBalance_NestedOpensClosedInReverse(t *testing.T) {
	got := Balance([]string{"(", "[", "x"})
	want := []string{"(", "[", "x", "]", ")"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBalance_SeveralUnmatchedCloses(t *testing.T) {
	got := Balance([]string{"x", ")", "]"})
	want := []string{"(", "[", "x", ")", "]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBalance_MatchesByIdentityNotNesting(t *testing.T) {
	// ")" closes the "(" below "[" in the stack
	got := Balance([]string{"(", "[", "x", ")"})
	want := []string{"(", "[", "x", ")", "]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBalance_DoesNotMutateInput(t *testing.T) {
	in := []string{"пример", ")"}
	_ = Balance(in)
	if !reflect.DeepEqual(in, []string{"пример", ")"}) {
		t.Errorf("input was mutated: %v", in)
	}
}

func TestBalance_Idempotent(t *testing.T) {
	cases := [][]string{
		{"(", "пример"},
		{"пример", ")"},
		{"(", "[", "x", ")"},
		{"x", ")", "]", "«"},
		{`"`, "a", "(", "b"},
		{"}", "a", "{", "{", `"`},
		{"]", "(", ")", "["},
		{},
	}

	for _, in := range cases {
		once := Balance(in)
		twice := Balance(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("not idempotent for %v: %v then %v", in, once, twice)
		}
	}
}

func TestBalance_EveryBracketHasPartner(t *testing.T) {
	cases := [][]string{
		{"x", ")", "]", "«"},
		{"(", "«", "a", "»", "b"},
		{`"`, "a", "(", "b", "}"},
	}

	for _, in := range cases {
		out := Balance(in)
		counts := make(map[string]int)
		quotes := 0
		for _, tok := range out {
			switch {
			case IsLeftBracket(tok):
				counts[tok]++
			case IsRightBracket(tok):
				counts[counterpart(tok)]--
			case IsSymmetricQuote(tok):
				quotes++
			}
		}
		for open, n := range counts {
			if n != 0 {
				t.Errorf("%v: bracket %s unbalanced by %d in %v", in, open, n, out)
			}
		}
		if quotes%2 != 0 {
			t.Errorf("%v: odd number of quotes in %v", in, out)
		}
	}
}
