package predict

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/aspecta/internal/cache"
	"github.com/ppiankov/aspecta/internal/llm"
	"github.com/ppiankov/aspecta/internal/model"
)

// LLMPredictor labels tokens with a language model provider
type LLMPredictor struct {
	provider   llm.Provider
	categories []model.Category
	limiter    Limiter
}

// NewLLMPredictor creates a predictor over an LLM provider
func NewLLMPredictor(provider llm.Provider, categories []model.Category, limiter Limiter) *LLMPredictor {
	if len(categories) == 0 {
		categories = model.DefaultCategories
	}
	return &LLMPredictor{
		provider:   provider,
		categories: categories,
		limiter:    limiter,
	}
}

// Predict asks the provider for one label per token
func (p *LLMPredictor) Predict(ctx context.Context, tokens []string) ([]model.LabeledToken, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	if p.limiter != nil {
		// providers are throttled per provider name
		if err := p.limiter.Wait(ctx, "llm://"+p.provider.Name()); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	resp, err := p.provider.Label(ctx, llm.LabelRequest{
		Tokens:     tokens,
		Categories: p.categories,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.provider.Name(), err)
	}

	return Zip(tokens, resp.Labels)
}

// New builds the predictor selected by the configuration. A non-nil cache
// memoizes its answers.
func New(cfg *model.Config, limiter Limiter, c cache.Cache, logger *zap.Logger) (Predictor, error) {
	var (
		p         Predictor
		namespace string
	)

	provider := strings.ToLower(cfg.Predictor.Provider)
	switch {
	case provider == "" || provider == "http":
		hp, err := NewHTTPPredictor(cfg.Predictor.BaseURL, cfg.Predictor.Timeout, limiter)
		if err != nil {
			return nil, err
		}
		p = hp
		namespace = "http:" + hp.endpoint

	case llm.IsProvider(provider):
		lp, err := llm.NewProvider(llm.ConfigFromModel(cfg.Predictor, cfg.HTTP))
		if err != nil {
			return nil, fmt.Errorf("create %s provider: %w", provider, err)
		}
		p = NewLLMPredictor(lp, cfg.Predictor.Categories, limiter)
		namespace = lp.Name() + ":" + cfg.Predictor.Model

	default:
		return nil, fmt.Errorf("unknown predictor provider: %s (supported: http, openai, anthropic, ollama)", cfg.Predictor.Provider)
	}

	if c == nil {
		return p, nil
	}
	return NewCached(p, c, namespace, cfg.Cache.DiskTTL, logger), nil
}
