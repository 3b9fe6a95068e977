package model

import "strings"

// Category is an aspect category identifier (e.g., "Method").
// Identifiers are opaque: unknown values are carried through untouched.
type Category string

const (
	CategoryTask    Category = "Task"    // Stated task of the text
	CategoryMethod  Category = "Method"  // Method or approach used
	CategoryContrib Category = "Contrib" // Contribution of the authors
	CategoryConc    Category = "Conc"    // Conclusion
)

const (
	// NoAspect is the label of a token outside every aspect
	NoAspect = "O"

	// LabelDelimiter joins several categories in one wire label
	LabelDelimiter = "|"
)

// LabeledToken is a (token, label) pair as produced by a predictor
type LabeledToken struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

// ParseLabel decodes a wire label into its set of categories.
// The result keeps first-appearance order and holds no duplicates.
// A label containing the NoAspect marker decodes to an empty set.
func ParseLabel(raw string) []Category {
	pieces := strings.Split(raw, LabelDelimiter)

	categories := make([]Category, 0, len(pieces))
	seen := make(map[Category]bool, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == NoAspect {
			return nil
		}
		if piece == "" || seen[Category(piece)] {
			continue
		}
		seen[Category(piece)] = true
		categories = append(categories, Category(piece))
	}

	return categories
}

// FormatLabel encodes a set of categories into a wire label
func FormatLabel(categories []Category) string {
	if len(categories) == 0 {
		return NoAspect
	}

	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = string(c)
	}
	return strings.Join(parts, LabelDelimiter)
}

// Tokens returns the surface tokens of a labeled sequence
func Tokens(labeled []LabeledToken) []string {
	tokens := make([]string, len(labeled))
	for i, lt := range labeled {
		tokens[i] = lt.Token
	}
	return tokens
}
