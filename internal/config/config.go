// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/launch-orchestrator/internal/llm"
	"github.com/jonathan/launch-orchestrator/internal/schemas"
)

// Defaults
const (
	DefaultAddr              = ":8080"
	DefaultMaxConcurrency    = 4
	DefaultResultsPerQuery   = 5
	DefaultScrapeLimit       = 3
	DefaultEvaluationTimeout = 30
)

// Models overrides the model name per tier
type Models struct {
	Lite     string `json:"lite,omitempty"`
	Standard string `json:"standard,omitempty"`
	Advanced string `json:"advanced,omitempty"`
}

// Evaluation configures the scorecard side effect
type Evaluation struct {
	URL            string `json:"url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, CLI flags, or the environment.
type Config struct {
	DatabaseURL     string     `json:"database_url,omitempty"`      // PostgreSQL connection URL
	Addr            string     `json:"addr,omitempty"`              // HTTP listen address
	Verbose         bool       `json:"verbose,omitempty"`           // Print detailed debug information
	UseBrowser      bool       `json:"use_browser,omitempty"`       // Render JS-heavy pages with headless Chrome
	MaxConcurrency  int        `json:"max_concurrency,omitempty"`   // Parallel search/scrape calls per task
	ResultsPerQuery int        `json:"results_per_query,omitempty"` // Search results requested per query
	ScrapeLimit     int        `json:"scrape_limit,omitempty"`      // Pages scraped per research task
	Temperature     float32    `json:"temperature,omitempty"`       // Sampling temperature
	Models          Models     `json:"models,omitempty"`
	Evaluation      Evaluation `json:"evaluation,omitempty"`
}

// LoadConfig loads configuration from a JSON file. The document is checked
// against the embedded schema before it is decoded.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := schemas.ValidateConfig(data); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those depend on the command.
func (c *Config) Validate() error {
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("config error: 'max_concurrency' must be non-negative")
	}
	if c.ResultsPerQuery < 0 || c.ResultsPerQuery > 10 {
		return fmt.Errorf("config error: 'results_per_query' must be between 0 and 10")
	}
	if c.ScrapeLimit < 0 {
		return fmt.Errorf("config error: 'scrape_limit' must be non-negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.DatabaseURL != "" && !strings.HasPrefix(c.DatabaseURL, "postgres") {
		return fmt.Errorf("config error: 'database_url' must be a postgres URL")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Addr == "" {
		result.Addr = firstNonEmpty(defaults.Addr, DefaultAddr)
	}
	if result.MaxConcurrency == 0 {
		result.MaxConcurrency = firstPositive(defaults.MaxConcurrency, DefaultMaxConcurrency)
	}
	if result.ResultsPerQuery == 0 {
		result.ResultsPerQuery = firstPositive(defaults.ResultsPerQuery, DefaultResultsPerQuery)
	}
	if result.ScrapeLimit == 0 {
		result.ScrapeLimit = firstPositive(defaults.ScrapeLimit, DefaultScrapeLimit)
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.Models.Lite == "" {
		result.Models.Lite = defaults.Models.Lite
	}
	if result.Models.Standard == "" {
		result.Models.Standard = defaults.Models.Standard
	}
	if result.Models.Advanced == "" {
		result.Models.Advanced = defaults.Models.Advanced
	}
	if result.Evaluation.URL == "" {
		result.Evaluation.URL = defaults.Evaluation.URL
	}
	if result.Evaluation.TimeoutSeconds == 0 {
		result.Evaluation.TimeoutSeconds = firstPositive(defaults.Evaluation.TimeoutSeconds, DefaultEvaluationTimeout)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// LLMConfig builds the model configuration from the defaults plus overrides.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Models.Lite != "" {
		cfg = cfg.WithModel(llm.TierLite, c.Models.Lite)
	}
	if c.Models.Standard != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Models.Standard)
	}
	if c.Models.Advanced != "" {
		cfg = cfg.WithModel(llm.TierAdvanced, c.Models.Advanced)
	}
	if c.Temperature > 0 {
		cfg.Temperature = c.Temperature
	}
	return cfg
}

// EvaluationTimeout returns the evaluation timeout as a duration
func (c *Config) EvaluationTimeout() time.Duration {
	if c.Evaluation.TimeoutSeconds <= 0 {
		return DefaultEvaluationTimeout * time.Second
	}
	return time.Duration(c.Evaluation.TimeoutSeconds) * time.Second
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
