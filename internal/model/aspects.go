package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Spans maps categories to their mention spans.
// Categories keep first-opened order; spans keep detection order.
type Spans struct {
	order []Category
	spans map[Category][][]string
}

// NewSpans creates an empty span collection
func NewSpans() *Spans {
	return &Spans{spans: make(map[Category][][]string)}
}

// Open starts a new, empty span for the category
func (s *Spans) Open(c Category) {
	if _, ok := s.spans[c]; !ok {
		s.order = append(s.order, c)
	}
	s.spans[c] = append(s.spans[c], nil)
}

// Extend appends a token to the most recent span of the category.
// A span is opened first if the category has none.
func (s *Spans) Extend(c Category, token string) {
	list := s.spans[c]
	if len(list) == 0 {
		s.Open(c)
		list = s.spans[c]
	}
	list[len(list)-1] = append(list[len(list)-1], token)
}

// Categories returns categories in first-opened order
func (s *Spans) Categories() []Category {
	return append([]Category(nil), s.order...)
}

// Get returns the spans of a category
func (s *Spans) Get(c Category) [][]string {
	return s.spans[c]
}

// Len returns the number of categories
func (s *Spans) Len() int {
	return len(s.order)
}

// Aspects maps categories to their finished mention strings.
// Iteration and encoding follow insertion order of categories.
type Aspects struct {
	order    []Category
	mentions map[Category][]string
}

// NewAspects creates an empty aspect collection
func NewAspects() *Aspects {
	return &Aspects{mentions: make(map[Category][]string)}
}

// Add appends a mention to a category
func (a *Aspects) Add(c Category, mention string) {
	if _, ok := a.mentions[c]; !ok {
		a.order = append(a.order, c)
	}
	a.mentions[c] = append(a.mentions[c], mention)
}

// Categories returns categories in insertion order
func (a *Aspects) Categories() []Category {
	return append([]Category(nil), a.order...)
}

// Mentions returns the mentions of a category
func (a *Aspects) Mentions(c Category) []string {
	return a.mentions[c]
}

// Len returns the number of categories
func (a *Aspects) Len() int {
	return len(a.order)
}

// Count returns the total number of mentions
func (a *Aspects) Count() int {
	n := 0
	for _, m := range a.mentions {
		n += len(m)
	}
	return n
}

// MarshalJSON encodes the collection as an object with ordered keys
func (a *Aspects) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range a.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(c))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(a.mentions[c])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, keeping its key order. A repeated key
// keeps its first position and its last value.
func (a *Aspects) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("aspects: expected object, got %v", tok)
	}

	*a = Aspects{mentions: make(map[Category][]string)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("aspects: unexpected key %v", tok)
		}
		var mentions []string
		if err := dec.Decode(&mentions); err != nil {
			return fmt.Errorf("aspects: category %s: %w", key, err)
		}
		if _, seen := a.mentions[Category(key)]; !seen {
			a.order = append(a.order, Category(key))
		}
		a.mentions[Category(key)] = mentions
	}

	_, err = dec.Token()
	return err
}

// MarshalYAML encodes the collection as a mapping with ordered keys
func (a *Aspects) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range a.order {
		value := &yaml.Node{}
		if err := value.Encode(a.mentions[c]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(c)},
			value,
		)
	}
	return node, nil
}
