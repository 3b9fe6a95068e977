package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ppiankov/aspecta/internal/model"
)

// CoNLL-U columns
const (
	colID = iota
	colForm
	colLemma
	colUPOS
	colXPOS
	colFeats
	colHead
	colDeprel
	colDeps
	colMisc
	numColumns
)

// ReadCoNLLU decodes CoNLL-U into a flat list of annotations.
//
// Comment lines and multiword or empty nodes are skipped. Sentences are
// concatenated; heads are rebased to 0-based indexes in the whole list and
// every sentence root points to itself. Dependency subtypes are kept
// ("nummod:gov").
func ReadCoNLLU(r io.Reader) ([]model.Annotation, error) {
	var (
		out    []model.Annotation
		offset int // index of the current sentence's first token
		line   int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")

		if text == "" {
			offset = len(out)
			continue
		}
		if strings.HasPrefix(text, "#") {
			continue
		}

		cols := strings.Split(text, "\t")
		if len(cols) != numColumns {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", line, numColumns, len(cols))
		}

		// 1-2 is a multiword token, 1.1 an empty node
		if strings.ContainsAny(cols[colID], "-.") {
			continue
		}

		id, err := strconv.Atoi(cols[colID])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid id %q: %w", line, cols[colID], err)
		}
		head, err := strconv.Atoi(cols[colHead])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid head %q: %w", line, cols[colHead], err)
		}

		index := offset + id - 1
		if index != len(out) {
			return nil, fmt.Errorf("line %d: token id %d out of sequence", line, id)
		}

		headIndex := index
		if head > 0 {
			headIndex = offset + head - 1
		}

		out = append(out, model.Annotation{
			Index: index,
			Text:  cols[colForm],
			Lemma: blank(cols[colLemma]),
			POS:   blank(cols[colUPOS]),
			Dep:   blank(cols[colDeprel]),
			Head:  headIndex,
			Feats: model.ParseFeats(cols[colFeats]),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan conllu: %w", err)
	}

	return out, nil
}

// Align checks that a parse covers tokens one to one
func Align(tokens []string, parse []model.Annotation) error {
	if len(parse) != len(tokens) {
		return fmt.Errorf("%w: %d tokens, %d annotations", ErrMisaligned, len(tokens), len(parse))
	}
	for i, a := range parse {
		if a.Head < 0 || a.Head >= len(parse) {
			return fmt.Errorf("%w: token %d has head %d", ErrMisaligned, i, a.Head)
		}
	}
	return nil
}

func blank(s string) string {
	if s == "_" {
		return ""
	}
	return s
}
