package tokenize

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "words and comma",
			text: "Метод, подход",
			want: []string{"Метод", ",", "подход"},
		},
		{
			name: "brackets split from each other",
			text: "метод (WCMP).",
			want: []string{"метод", "(", "WCMP", ")", "."},
		},
		{
			name: "quotes and percent",
			text: "модель «BERT» даёт 95%.",
			want: []string{"модель", "«", "BERT", "»", "даёт", "95", "%", "."},
		},
		{
			name: "mixed run stays whole",
			text: "итак -- вывод",
			want: []string{"итак", "--", "вывод"},
		},
		{
			name: "run with a non-splittable mark stays whole",
			text: "да?!",
			want: []string{"да", "?!"},
		},
		{
			name: "digits and underscore are word characters",
			text: "bert_base 2024",
			want: []string{"bert_base", "2024"},
		},
		{
			name: "empty",
			text: "  \n\t",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
