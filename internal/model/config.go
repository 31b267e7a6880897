package model

import "time"

// Config holds the full runtime configuration, populated from defaults,
// config file, CONCILIADOR_* environment variables and CLI flags.
type Config struct {
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Identity     IdentityConfig     `yaml:"identity" mapstructure:"identity"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Store        StoreConfig        `yaml:"store" mapstructure:"store"`
}

// ConcurrencyConfig controls the batch worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// IdentityConfig configures the company-identity matcher: the CNPJs that
// belong to us, so supplier CNPJs can be told apart upstream of the engine.
type IdentityConfig struct {
	OwnCNPJs []string      `yaml:"own_cnpjs" mapstructure:"own_cnpjs"`
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// LLMConfig configures the optional verdict summarizer. An empty Provider
// disables it; the summary never affects the conciliation status.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
	Model    string `yaml:"model" mapstructure:"model"`
	APIKey   string `yaml:"-" mapstructure:"-"`
	BaseURL  string `yaml:"base_url,omitempty" mapstructure:"base_url"`
}

// RateLimitingConfig throttles LLM API calls in batch mode.
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// StoreConfig configures optional report persistence. An empty DatabaseURL
// disables it.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url,omitempty" mapstructure:"database_url"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Dir: "./conciliador-reports",
		},
		Identity: IdentityConfig{
			CacheTTL: 24 * time.Hour,
		},
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1.0,
			BurstSize:         2,
		},
	}
}
