// Package syntax provides dependency parses of mention spans.
package syntax

import (
	"context"
	"errors"

	"github.com/ppiankov/aspecta/internal/model"
)

// ErrMisaligned is returned when a parse does not cover the input tokens one to one
var ErrMisaligned = errors.New("parse is not aligned with tokens")

// Parser returns one annotation per input token, aligned by position.
// The tokens are parsed as a standalone utterance.
type Parser interface {
	Parse(ctx context.Context, tokens []string) ([]model.Annotation, error)
}

// Limiter throttles requests to a remote service
type Limiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// ParserFunc adapts a function to the Parser interface
type ParserFunc func(ctx context.Context, tokens []string) ([]model.Annotation, error)

// Parse calls f
func (f ParserFunc) Parse(ctx context.Context, tokens []string) ([]model.Annotation, error) {
	return f(ctx, tokens)
}
