// Package predict provides sequence labelers that assign aspect labels
// to tokens.
package predict

import (
	"context"
	"errors"
	"fmt"

	"github.com/ppiankov/aspecta/internal/model"
)

// ErrMisaligned is returned when labels do not match the tokens one to one
var ErrMisaligned = errors.New("labels are not aligned with tokens")

// Predictor labels every token with a wire label ("Method|Task" or "O")
type Predictor interface {
	Predict(ctx context.Context, tokens []string) ([]model.LabeledToken, error)
}

// PredictorFunc adapts a function to the Predictor interface
type PredictorFunc func(ctx context.Context, tokens []string) ([]model.LabeledToken, error)

// Predict calls f
func (f PredictorFunc) Predict(ctx context.Context, tokens []string) ([]model.LabeledToken, error) {
	return f(ctx, tokens)
}

// Zip pairs tokens with labels
func Zip(tokens, labels []string) ([]model.LabeledToken, error) {
	if len(tokens) != len(labels) {
		return nil, fmt.Errorf("%w: %d tokens, %d labels", ErrMisaligned, len(tokens), len(labels))
	}

	labeled := make([]model.LabeledToken, len(tokens))
	for i := range tokens {
		labeled[i] = model.LabeledToken{Token: tokens[i], Label: labels[i]}
	}
	return labeled, nil
}
