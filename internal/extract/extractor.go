package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/aspecta/internal/decode"
	"github.com/ppiankov/aspecta/internal/model"
	"github.com/ppiankov/aspecta/internal/predict"
)

// Extractor runs Predictor → span decoding → post-processing
type Extractor struct {
	predictor predict.Predictor
	post      *PostProcessor
	logger    *zap.Logger
}

// NewExtractor creates an extractor. The predictor may be nil when only
// pre-labeled input is processed.
func NewExtractor(predictor predict.Predictor, post *PostProcessor, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		predictor: predictor,
		post:      post,
		logger:    logger,
	}
}

// Extract labels tokens with the predictor and extracts their aspects
func (e *Extractor) Extract(ctx context.Context, tokens []string) (*model.Aspects, error) {
	if e.predictor == nil {
		return nil, fmt.Errorf("predict: no predictor configured")
	}

	labeled, err := e.predictor.Predict(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	return e.ExtractLabeled(ctx, labeled)
}

// ExtractLabeled extracts aspects from already labeled tokens. Categories
// keep first-appearance order and mentions keep text order.
func (e *Extractor) ExtractLabeled(ctx context.Context, labeled []model.LabeledToken) (*model.Aspects, error) {
	spans := decode.Decode(labeled)

	aspects := model.NewAspects()
	for _, c := range spans.Categories() {
		for _, span := range spans.Get(c) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			mention, err := e.post.Process(ctx, span)
			if err != nil {
				return nil, fmt.Errorf("process %s mention: %w", c, err)
			}
			aspects.Add(c, mention)
		}
	}

	e.logger.Debug("extracted aspects",
		zap.Int("tokens", len(labeled)),
		zap.Int("categories", aspects.Len()),
		zap.Int("mentions", aspects.Count()),
	)

	return aspects, nil
}
