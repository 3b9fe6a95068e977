package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/aspecta/internal/model"
)

// Limiter throttles requests to a remote service
type Limiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// HTTPPredictor calls a model server exposing POST /predict
type HTTPPredictor struct {
	endpoint   string
	httpClient *http.Client
	limiter    Limiter
}

type predictRequest struct {
	Tokens []string `json:"tokens"`
}

type predictResponse struct {
	Labels []string `json:"labels"`
	Error  string   `json:"error,omitempty"`
}

// DefaultBaseURL is where the model server listens when none is configured
const DefaultBaseURL = "http://localhost:8000"

// NewHTTPPredictor creates a client for the model server at baseURL
func NewHTTPPredictor(baseURL string, timeout time.Duration, limiter Limiter) (*HTTPPredictor, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid predictor base url: %w", err)
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPPredictor{
		endpoint:   strings.TrimSuffix(baseURL, "/") + "/predict",
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}, nil
}

// Predict sends the tokens and pairs them with the returned labels
func (p *HTTPPredictor) Predict(ctx context.Context, tokens []string) ([]model.LabeledToken, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, p.endpoint); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	body, err := json.Marshal(predictRequest{Tokens: tokens})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var out predictResponse
	if resp.StatusCode != http.StatusOK {
		if err := json.Unmarshal(respBody, &out); err == nil && out.Error != "" {
			return nil, fmt.Errorf("predictor error (%d): %s", resp.StatusCode, out.Error)
		}
		return nil, fmt.Errorf("predictor error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return Zip(tokens, out.Labels)
}
