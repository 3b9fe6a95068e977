// Package decode turns per-token aspect labels into mention spans.
//
// Every category runs its own automaton over one shared left-to-right scan:
// a token extends the open span of category c when c is present in both its
// label and the label of the previous token, otherwise it opens a new span.
// A token can therefore belong to spans of several categories at once.
package decode

import "github.com/ppiankov/aspecta/internal/model"

// Decode groups labeled tokens into spans per category
func Decode(labeled []model.LabeledToken) *model.Spans {
	spans := model.NewSpans()

	var prev []model.Category
	for _, lt := range labeled {
		cur := model.ParseLabel(lt.Label)
		for _, c := range cur {
			if !contains(prev, c) {
				spans.Open(c)
			}
			spans.Extend(c, lt.Token)
		}
		prev = cur
	}

	return spans
}

func contains(set []model.Category, c model.Category) bool {
	for _, x := range set {
		if x == c {
			return true
		}
	}
	return false
}
