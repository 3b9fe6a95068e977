// Package pipeline wires loading, labeling, decoding and post-processing
// into one extraction run and renders its results.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/aspecta/internal/cache"
	"github.com/ppiankov/aspecta/internal/extract"
	"github.com/ppiankov/aspecta/internal/model"
	"github.com/ppiankov/aspecta/internal/morph"
	"github.com/ppiankov/aspecta/internal/normalize"
	"github.com/ppiankov/aspecta/internal/predict"
	"github.com/ppiankov/aspecta/internal/source"
	"github.com/ppiankov/aspecta/internal/syntax"
	"github.com/ppiankov/aspecta/internal/tokenize"
	"github.com/ppiankov/aspecta/internal/worker"
)

// Pipeline orchestrates the complete extraction process
type Pipeline struct {
	loader    *source.Loader
	extractor *extract.Extractor
	post      *extract.PostProcessor
	logger    *zap.Logger
}

// Option configures a Pipeline
type Option func(*options)

type options struct {
	labeledOnly bool
}

// LabeledOnly skips building the predictor. Only ExtractLabeled is usable
// on such a pipeline; raw-text extraction fails with a predict error.
func LabeledOnly() Option {
	return func(o *options) {
		o.labeledOnly = true
	}
}

// NewPipeline builds every service from the configuration. Services are
// created once and shared by all extractions; any failure here is fatal.
func NewPipeline(cfg *model.Config, logger *zap.Logger, opts ...Option) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.New(cfg.Cache)
	}

	var predictor predict.Predictor
	if !o.labeledOnly {
		p, err := predict.New(cfg, limiter, c, logger.Named("predict"))
		if err != nil {
			return nil, fmt.Errorf("create predictor: %w", err)
		}
		predictor = p
	}

	var normalizer extract.Normalizer
	if cfg.Normalize {
		n, err := newNormalizer(cfg, limiter, c, logger)
		if err != nil {
			return nil, err
		}
		normalizer = n
	}

	post := extract.NewPostProcessor(normalizer, logger.Named("extract"))

	return &Pipeline{
		loader:    source.NewLoader(cfg.HTTP, limiter),
		extractor: extract.NewExtractor(predictor, post, logger.Named("extract")),
		post:      post,
		logger:    logger,
	}, nil
}

func newNormalizer(cfg *model.Config, limiter *worker.Limiter, c cache.Cache, logger *zap.Logger) (*normalize.Normalizer, error) {
	analyzer, err := newAnalyzer(cfg.Morph)
	if err != nil {
		return nil, err
	}

	udpipe, err := syntax.NewUDPipe(cfg.Parser,
		syntax.WithLimiter(limiter),
		syntax.WithLogger(logger.Named("syntax")),
	)
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}

	var parser syntax.Parser = udpipe
	if c != nil {
		parser = syntax.NewCached(udpipe, c, cfg.Parser.URL+"#"+cfg.Parser.Model, cfg.Cache.DiskTTL, logger.Named("syntax"))
	}

	logger.Debug("normalizer ready",
		zap.String("lexicon", cfg.Morph.Lexicon),
		zap.String("parser", cfg.Parser.URL),
	)

	return normalize.New(parser, morph.NewInflector(analyzer), logger.Named("normalize")), nil
}

// newAnalyzer loads the lexicon override when one is configured and the
// embedded dictionary otherwise
func newAnalyzer(cfg model.MorphConfig) (morph.Analyzer, error) {
	if cfg.Lexicon != "" {
		lexicon, err := morph.LoadLexicon(cfg.Lexicon)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		return lexicon, nil
	}

	dict, err := morph.NewDictionary()
	if err != nil {
		return nil, fmt.Errorf("create analyzer: %w", err)
	}
	return dict, nil
}

// ExtractSource loads a file, URL or "-" (stdin) and extracts its aspects
func (p *Pipeline) ExtractSource(ctx context.Context, src string) (*model.Result, error) {
	doc, err := p.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	return p.ExtractText(ctx, doc.Source, doc.Text)
}

// ExtractText tokenizes raw text and extracts its aspects
func (p *Pipeline) ExtractText(ctx context.Context, src, text string) (*model.Result, error) {
	tokens := tokenize.Tokenize(text)
	if len(tokens) == 0 {
		return p.result(src, 0, model.NewAspects()), nil
	}

	start := time.Now()
	aspects, err := p.extractor.Extract(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	p.logger.Debug("extracted aspects",
		zap.String("source", src),
		zap.Int("tokens", len(tokens)),
		zap.Int("mentions", aspects.Count()),
		zap.Duration("duration", time.Since(start)),
	)

	return p.result(src, len(tokens), aspects), nil
}

// ExtractLabeled extracts aspects from tokens labeled elsewhere
func (p *Pipeline) ExtractLabeled(ctx context.Context, src string, labeled []model.LabeledToken) (*model.Result, error) {
	aspects, err := p.extractor.ExtractLabeled(ctx, labeled)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	return p.result(src, len(labeled), aspects), nil
}

func (p *Pipeline) result(src string, tokens int, aspects *model.Aspects) *model.Result {
	return &model.Result{
		Source:      src,
		ExtractedAt: time.Now().UTC(),
		Tokens:      tokens,
		Normalized:  p.post.Normalizes(),
		Aspects:     aspects,
	}
}
