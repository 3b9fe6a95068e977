package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/aspecta/internal/logging"
	"github.com/ppiankov/aspecta/internal/model"
)

// Version is set at build time
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
	noCache bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aspecta",
	Short: "Aspecta - aspect extraction from Russian scientific abstracts",
	Long: `Aspecta extracts aspect mentions (task, contribution, method,
conclusion) from Russian scientific abstracts.

A sequence labeler tags every token with its aspect categories. Aspecta
decodes the tags into mention spans, puts each mention into its canonical
form with a dependency parse and a morphological lexicon, balances
brackets, detokenizes and capitalizes it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of Aspecta.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "aspecta %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.aspecta/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	flags.BoolVar(&noCache, "no-cache", false, "disable the parser and predictor cache")

	flags.String("provider", "", "sequence labeler (http, openai, anthropic, ollama)")
	flags.String("model", "", "LLM model name")
	flags.String("predictor-url", "", "base URL of the labeling model server or LLM API")
	flags.String("parser-url", "", "UDPipe REST process endpoint")
	flags.String("parser-model", "", "UDPipe model name")
	flags.String("lexicon", "", "YAML paradigm lexicon replacing the embedded dictionary")
	flags.StringP("format", "o", "", "output format (text, markdown, json, yaml)")
	flags.String("log-level", "", "diagnostic log level (debug, info, warn, error)")
	flags.String("log-format", "", "diagnostic log format (console, json)")

	// Bind flags to viper
	for key, flag := range map[string]string{
		"predictor.provider": "provider",
		"predictor.model":    "model",
		"predictor.base_url": "predictor-url",
		"parser.url":         "parser-url",
		"parser.model":       "parser-model",
		"morph.lexicon":      "lexicon",
		"output.format":      "format",
		"log.level":          "log-level",
		"log.format":         "log-format",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setupViper(viper.GetViper())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".aspecta"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setupViper registers every config key with its default and reads
// ASPECTA_* env vars (ASPECTA_PREDICTOR_PROVIDER, ASPECTA_CACHE_ENABLED, ...)
func setupViper(v *viper.Viper) {
	d := model.DefaultConfig()

	v.SetDefault("predictor.provider", d.Predictor.Provider)
	v.SetDefault("predictor.model", d.Predictor.Model)
	v.SetDefault("predictor.base_url", d.Predictor.BaseURL)
	v.SetDefault("predictor.api_key", d.Predictor.APIKey)
	v.SetDefault("predictor.timeout", d.Predictor.Timeout)
	v.SetDefault("predictor.max_tokens", d.Predictor.MaxTokens)
	v.SetDefault("predictor.strict_labels", d.Predictor.StrictLabels)
	v.SetDefault("predictor.categories", d.Predictor.Categories)
	v.SetDefault("parser.url", d.Parser.URL)
	v.SetDefault("parser.model", d.Parser.Model)
	v.SetDefault("parser.timeout", d.Parser.Timeout)
	v.SetDefault("morph.lexicon", d.Morph.Lexicon)
	v.SetDefault("normalize", d.Normalize)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.memory_ttl", d.Cache.MemoryTTL)
	v.SetDefault("cache.disk_ttl", d.Cache.DiskTTL)
	v.SetDefault("concurrency.workers", d.Concurrency.Workers)
	v.SetDefault("rate_limiting.requests_per_second", d.RateLimiting.RequestsPerSecond)
	v.SetDefault("rate_limiting.burst_size", d.RateLimiting.BurstSize)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("http.max_body_bytes", d.HTTP.MaxBodyBytes)
	v.SetDefault("http.http_proxy", d.HTTP.HTTPProxy)
	v.SetDefault("http.https_proxy", d.HTTP.HTTPSProxy)
	v.SetDefault("http.ignore_robots", d.HTTP.IgnoreRobots)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.verbose", d.Output.Verbose)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	// Read in environment variables that match ASPECTA_*
	v.SetEnvPrefix("ASPECTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadConfig builds the effective configuration from a viper instance
// prepared by setupViper. Provider API keys fall back to the provider's
// usual environment variable.
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := &model.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	switch strings.ToLower(cfg.Predictor.Provider) {
	case "openai":
		if cfg.Predictor.APIKey == "" {
			cfg.Predictor.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	case "anthropic", "claude":
		if cfg.Predictor.APIKey == "" {
			cfg.Predictor.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	case "ollama":
		if cfg.Predictor.BaseURL == "" {
			cfg.Predictor.BaseURL = os.Getenv("OLLAMA_BASE_URL")
		}
	}

	return cfg, nil
}

// effectiveConfig loads the configuration and applies the global flags
func effectiveConfig() (*model.Config, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *model.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}
