package predict

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/aspecta/internal/model"
)

// ReadLabeled reads documents of "token<TAB>label" lines. Blank lines
// separate documents. A line starting with # and holding no tab is a
// comment, so "#" itself can still be a labeled token. A line without a
// label is labeled O.
func ReadLabeled(r io.Reader) ([][]model.LabeledToken, error) {
	var (
		docs    [][]model.LabeledToken
		current []model.LabeledToken
		line    int
	)

	flush := func() {
		if len(current) > 0 {
			docs = append(docs, current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(text) == "" {
			flush()
			continue
		}
		if strings.HasPrefix(text, "#") && !strings.Contains(text, "\t") {
			continue
		}

		token, label, _ := strings.Cut(text, "\t")
		if token == "" {
			return nil, fmt.Errorf("line %d: empty token", line)
		}
		label = strings.TrimSpace(label)
		if label == "" {
			label = model.NoAspect
		}
		current = append(current, model.LabeledToken{Token: token, Label: label})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan labeled file: %w", err)
	}
	flush()

	return docs, nil
}

// LoadLabeled reads a labeled file from disk
func LoadLabeled(path string) ([][]model.LabeledToken, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labeled file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadLabeled(f)
}

// Replay serves labels recorded for known token sequences
type Replay struct {
	docs map[string][]model.LabeledToken
}

// NewReplay indexes labeled documents by their tokens
func NewReplay(docs [][]model.LabeledToken) *Replay {
	r := &Replay{docs: make(map[string][]model.LabeledToken, len(docs))}
	for _, doc := range docs {
		r.docs[strings.Join(model.Tokens(doc), "\x1f")] = doc
	}
	return r
}

// Predict returns the recorded labels of tokens
func (r *Replay) Predict(ctx context.Context, tokens []string) ([]model.LabeledToken, error) {
	doc, ok := r.docs[strings.Join(tokens, "\x1f")]
	if !ok {
		return nil, fmt.Errorf("%w: no recorded labels for %d tokens", ErrMisaligned, len(tokens))
	}
	return append([]model.LabeledToken(nil), doc...), nil
}
