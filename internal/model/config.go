package model

import "time"

// Config is the complete aspecta configuration.
// It is filled from defaults, the config file, ASPECTA_* env vars and flags.
type Config struct {
	Predictor    PredictorConfig    `yaml:"predictor" mapstructure:"predictor"`
	Parser       ParserConfig       `yaml:"parser" mapstructure:"parser"`
	Morph        MorphConfig        `yaml:"morph" mapstructure:"morph"`
	Normalize    bool               `yaml:"normalize" mapstructure:"normalize"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// PredictorConfig selects and configures the sequence labeler
type PredictorConfig struct {
	Provider     string        `yaml:"provider" mapstructure:"provider"` // http, openai, anthropic, ollama
	Model        string        `yaml:"model,omitempty" mapstructure:"model"`
	BaseURL      string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	APIKey       string        `yaml:"-" mapstructure:"api_key"` // Never written to config files
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens    int           `yaml:"max_tokens" mapstructure:"max_tokens"`
	StrictLabels bool          `yaml:"strict_labels" mapstructure:"strict_labels"` // Reject labels outside Categories
	Categories   []Category    `yaml:"categories" mapstructure:"categories"`
}

// ParserConfig configures the dependency parser service
type ParserConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`     // UDPipe REST endpoint
	Model   string        `yaml:"model" mapstructure:"model"` // UDPipe model name
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// MorphConfig configures morphological analysis
type MorphConfig struct {
	Lexicon string `yaml:"lexicon" mapstructure:"lexicon"` // Optional YAML paradigm file replacing the embedded dictionary
}

// CacheConfig configures caching of parser and predictor responses
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig configures batch parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles calls to remote services, per host
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// HTTPConfig configures fetching of input documents
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	IgnoreRobots bool          `yaml:"ignore_robots" mapstructure:"ignore_robots"`
}

// OutputConfig configures rendering
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format"` // text, markdown, json, yaml
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// LogConfig configures diagnostic logging
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console, json
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Predictor: PredictorConfig{
			Provider:     "http",
			Timeout:      30 * time.Second,
			MaxTokens:    4000,
			StrictLabels: true,
			Categories:   append([]Category(nil), DefaultCategories...),
		},
		Parser: ParserConfig{
			URL:     "https://lindat.mff.cuni.cz/services/udpipe/api/process",
			Model:   "russian-syntagrus",
			Timeout: 30 * time.Second,
		},
		Morph:     MorphConfig{},
		Normalize: true,
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".aspecta-cache",
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Aspecta/0.1 (+https://github.com/ppiankov/aspecta)",
			MaxBodyBytes: 2_000_000,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}
