// Package llm labels tokens with aspect categories using hosted or local
// language models.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/aspecta/internal/model"
)

var (
	// ErrLabelLeak is returned in strict mode when the model answers with a
	// category outside the vocabulary
	ErrLabelLeak = errors.New("label outside the category vocabulary")

	// ErrMisalignedAnswer is returned when the answer does not carry one
	// label per token
	ErrMisalignedAnswer = errors.New("answer is not aligned with tokens")
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Label assigns a wire label to every token
	Label(ctx context.Context, req LabelRequest) (*LabelResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// LabelRequest contains the input for labeling
type LabelRequest struct {
	// Tokens to label, in text order
	Tokens []string

	// Categories is the vocabulary the model may answer with
	Categories []model.Category

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// LabelResponse contains one label per requested token
type LabelResponse struct {
	// Labels are canonical wire labels ("Method|Task" or "O")
	Labels []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout time.Duration

	// StrictLabels rejects answers with categories outside the vocabulary
	StrictLabels bool

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

const systemPrompt = "You are a careful annotator of Russian scientific abstracts. You answer with JSON only."

// BuildPrompt constructs the default labeling prompt
func BuildPrompt(tokens []string, categories []model.Category) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Label every token of the text below with the aspects it belongs to.

RULES:
1. Use ONLY these categories: %s
2. A token in several aspects gets the categories joined with "%s" (e.g. "%s").
3. A token outside every aspect gets "%s".
4. Consecutive tokens of the same aspect form one mention.
5. Answer with a JSON object {"labels": [...]} holding exactly %d labels, one per token, in order.

Tokens:
`, joinCategories(categories), model.LabelDelimiter, exampleLabel(categories), model.NoAspect, len(tokens))

	for i, tok := range tokens {
		fmt.Fprintf(&b, "%d\t%s\n", i+1, tok)
	}

	return b.String()
}

// ParseAnswer extracts labels from a model answer. The JSON object may be
// wrapped in prose or a code fence. Labels are returned in canonical form;
// in strict mode a category outside categories is an ErrLabelLeak.
func ParseAnswer(answer string, tokens []string, categories []model.Category, strict bool) ([]string, error) {
	start := strings.Index(answer, "{")
	end := strings.LastIndex(answer, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in answer", ErrMisalignedAnswer)
	}

	var out struct {
		Labels []string `json:"labels"`
	}
	if err := json.Unmarshal([]byte(answer[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMisalignedAnswer, err)
	}

	if len(out.Labels) != len(tokens) {
		return nil, fmt.Errorf("%w: %d tokens, %d labels", ErrMisalignedAnswer, len(tokens), len(out.Labels))
	}

	allowed := make(map[model.Category]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	labels := make([]string, len(out.Labels))
	for i, raw := range out.Labels {
		parsed := model.ParseLabel(raw)
		if strict {
			for _, c := range parsed {
				if !allowed[c] {
					return nil, fmt.Errorf("%w: %q for token %d", ErrLabelLeak, c, i+1)
				}
			}
		}
		labels[i] = model.FormatLabel(parsed)
	}

	return labels, nil
}

func joinCategories(categories []model.Category) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func exampleLabel(categories []model.Category) string {
	if len(categories) < 2 {
		return model.FormatLabel(categories)
	}
	return model.FormatLabel(categories[:2])
}

// resolve fills request defaults from the provider configuration
func resolve(req LabelRequest, config Config, defaultModel string) LabelRequest {
	if len(req.Categories) == 0 {
		req.Categories = model.DefaultCategories
	}
	if req.Prompt == "" {
		req.Prompt = BuildPrompt(req.Tokens, req.Categories)
	}
	if req.Model == "" {
		req.Model = config.Model
	}
	if req.Model == "" {
		req.Model = defaultModel
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = config.MaxTokens
	}
	if req.MaxTokens == 0 {
		// labels are short but the list grows with the text
		req.MaxTokens = 256 + 8*len(req.Tokens)
	}
	return req
}
