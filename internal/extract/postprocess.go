// Package extract turns labeled tokens into finished aspect mentions.
package extract

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/aspecta/internal/surface"
)

// ErrEmptyMention is returned for a mention with no text
var ErrEmptyMention = errors.New("empty mention")

// Normalizer puts mention tokens into canonical form
type Normalizer interface {
	Normalize(ctx context.Context, tokens []string) ([]string, error)
}

// PostProcessor turns the tokens of one span into a mention string
type PostProcessor struct {
	normalizer Normalizer
	logger     *zap.Logger
}

// NewPostProcessor creates a post-processor. A nil normalizer disables
// normalization.
func NewPostProcessor(normalizer Normalizer, logger *zap.Logger) *PostProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostProcessor{
		normalizer: normalizer,
		logger:     logger,
	}
}

// Normalizes reports whether mentions are normalized
func (p *PostProcessor) Normalizes() bool {
	return p.normalizer != nil
}

// Process normalizes, balances, detokenizes and capitalizes a span
func (p *PostProcessor) Process(ctx context.Context, tokens []string) (string, error) {
	if len(tokens) == 0 {
		return "", ErrEmptyMention
	}

	if p.normalizer != nil {
		normalized, err := p.normalizer.Normalize(ctx, tokens)
		if err != nil {
			return "", fmt.Errorf("normalize: %w", err)
		}
		tokens = normalized
	}

	text := surface.Capitalize(surface.Detokenize(surface.Balance(tokens)))
	if text == "" {
		return "", ErrEmptyMention
	}

	return text, nil
}
