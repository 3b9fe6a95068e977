package model

import "strings"

// CategoryName holds the display names of a category
type CategoryName struct {
	Singular string `json:"singular" yaml:"singular"`
	Plural   string `json:"plural" yaml:"plural"`
}

// DefaultCategories is the closed vocabulary of aspect categories, in
// the order the labeling model was trained with
var DefaultCategories = []Category{CategoryTask, CategoryContrib, CategoryMethod, CategoryConc}

// categoryNames maps categories to their Russian display names
var categoryNames = map[Category]CategoryName{
	CategoryTask:    {Singular: "Задача", Plural: "Задачи"},
	CategoryMethod:  {Singular: "Метод", Plural: "Методы"},
	CategoryContrib: {Singular: "Вклад", Plural: "Вклад"},
	CategoryConc:    {Singular: "Вывод", Plural: "Выводы"},
}

// DisplayName returns the header for a category given its mention count.
// Exactly one mention selects the singular form. Unknown categories are
// displayed by their identifier.
func DisplayName(c Category, count int) string {
	name, ok := categoryNames[c]
	if !ok {
		return string(c)
	}
	if count == 1 {
		return name.Singular
	}
	return name.Plural
}

// Header returns the uppercased display name used by renderers
func Header(c Category, count int) string {
	return strings.ToUpper(DisplayName(c, count))
}
