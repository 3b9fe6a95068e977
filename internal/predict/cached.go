package predict

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/aspecta/internal/cache"
	"github.com/ppiankov/aspecta/internal/model"
)

// Cached memoizes the labels of another Predictor
type Cached struct {
	predictor Predictor
	cache     cache.Cache
	namespace string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewCached wraps predictor with c. The namespace separates labels of
// different providers and models.
func NewCached(predictor Predictor, c cache.Cache, namespace string, ttl time.Duration, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{
		predictor: predictor,
		cache:     c,
		namespace: namespace,
		ttl:       ttl,
		logger:    logger,
	}
}

// Predict returns cached labels or asks the wrapped predictor
func (c *Cached) Predict(ctx context.Context, tokens []string) ([]model.LabeledToken, error) {
	key := cache.Key("predict:"+c.namespace, tokens...)

	if raw, ok := c.cache.Get(key); ok {
		var labels []string
		if err := json.Unmarshal(raw, &labels); err == nil {
			if labeled, err := Zip(tokens, labels); err == nil {
				return labeled, nil
			}
		}
		c.logger.Warn("dropping unreadable cached labels", zap.String("key", key))
		_ = c.cache.Delete(key)
	}

	labeled, err := c.predictor.Predict(ctx, tokens)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(labeled))
	for i, lt := range labeled {
		labels[i] = lt.Label
	}
	if raw, err := json.Marshal(labels); err == nil {
		if err := c.cache.Set(key, raw, c.ttl); err != nil {
			c.logger.Warn("cache labels", zap.Error(err))
		}
	}

	return labeled, nil
}
