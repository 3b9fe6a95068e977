package syntax

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/aspecta/internal/model"
)

// UDPipe parses tokens with a UDPipe REST service
type UDPipe struct {
	endpoint   string
	model      string
	httpClient *http.Client
	limiter    Limiter
	logger     *zap.Logger
}

// UDPipeOption configures a UDPipe client
type UDPipeOption func(*UDPipe)

// WithHTTPClient sets the HTTP client
func WithHTTPClient(c *http.Client) UDPipeOption {
	return func(u *UDPipe) { u.httpClient = c }
}

// WithLimiter throttles requests to the service host
func WithLimiter(l Limiter) UDPipeOption {
	return func(u *UDPipe) { u.limiter = l }
}

// WithLogger sets the diagnostic logger
func WithLogger(l *zap.Logger) UDPipeOption {
	return func(u *UDPipe) { u.logger = l }
}

type udpipeResponse struct {
	Model  string `json:"model"`
	Result string `json:"result"`
}

// NewUDPipe creates a client for the process endpoint of a UDPipe service
func NewUDPipe(cfg model.ParserConfig, opts ...UDPipeOption) (*UDPipe, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("parser url is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid parser url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	u := &UDPipe{
		endpoint:   cfg.URL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// Parse sends the tokens as one pre-tokenized sentence and decodes the
// returned CoNLL-U
func (u *UDPipe) Parse(ctx context.Context, tokens []string) ([]model.Annotation, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	if u.limiter != nil {
		if err := u.limiter.Wait(ctx, u.endpoint); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	form := url.Values{}
	form.Set("data", strings.Join(tokens, " "))
	form.Set("input", "horizontal")
	form.Set("tagger", "")
	form.Set("parser", "")
	if u.model != "" {
		form.Set("model", u.model)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("udpipe error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out udpipeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	parse, err := ReadCoNLLU(strings.NewReader(out.Result))
	if err != nil {
		return nil, fmt.Errorf("decode conllu: %w", err)
	}
	if err := Align(tokens, parse); err != nil {
		return nil, err
	}

	u.logger.Debug("parsed span",
		zap.Int("tokens", len(tokens)),
		zap.String("model", out.Model),
		zap.Duration("took", time.Since(start)),
	)

	return parse, nil
}
