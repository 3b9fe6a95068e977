package syntax

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/aspecta/internal/cache"
	"github.com/ppiankov/aspecta/internal/model"
)

// Cached memoizes parses of another Parser
type Cached struct {
	parser    Parser
	cache     cache.Cache
	namespace string
	ttl       time.Duration
	logger    *zap.Logger
}

// NewCached wraps parser with c. The namespace separates parses produced by
// different parser models.
func NewCached(parser Parser, c cache.Cache, namespace string, ttl time.Duration, logger *zap.Logger) *Cached {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{
		parser:    parser,
		cache:     c,
		namespace: namespace,
		ttl:       ttl,
		logger:    logger,
	}
}

// Parse returns the cached parse or asks the wrapped parser
func (c *Cached) Parse(ctx context.Context, tokens []string) ([]model.Annotation, error) {
	key := cache.Key("parse:"+c.namespace, tokens...)

	if raw, ok := c.cache.Get(key); ok {
		var parse []model.Annotation
		if err := json.Unmarshal(raw, &parse); err == nil && Align(tokens, parse) == nil {
			return parse, nil
		}
		c.logger.Warn("dropping unreadable cached parse", zap.String("key", key))
		_ = c.cache.Delete(key)
	}

	parse, err := c.parser.Parse(ctx, tokens)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(parse)
	if err == nil {
		if err := c.cache.Set(key, raw, c.ttl); err != nil {
			c.logger.Warn("cache parse", zap.Error(err))
		}
	}

	return parse, nil
}
