// Package config defines service configuration and its loading order.
package config

import (
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// AllowedOrigins lists CORS origins for browser clients.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// OpenAIAPIKey authenticates against the chat-completion backend.
	// When empty, mock mode is forced.
	OpenAIAPIKey string `koanf:"openai_api_key"`

	// OpenAIBaseURL points at an OpenAI-compatible API.
	OpenAIBaseURL string `koanf:"openai_base_url"`

	// OpenAIModel selects the completion model.
	OpenAIModel string `koanf:"openai_model"`

	// OpenAITimeout bounds one model call.
	OpenAITimeout time.Duration `koanf:"openai_timeout"`

	// MockMode serves canned fixtures instead of calling the model.
	MockMode bool `koanf:"mock_mode"`

	// MockDelay simulates model latency in mock mode.
	MockDelay time.Duration `koanf:"mock_delay"`

	// CacheEnabled toggles the in-memory response cache.
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheTTL sets the response cache entry lifetime.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// RedisAddr enables Redis-backed storage and rate limiting when set.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// ResultTTL sets how long stored results stay retrievable.
	ResultTTL time.Duration `koanf:"result_ttl"`

	// EvaluateRateLimit caps evaluation submissions per IP per minute.
	EvaluateRateLimit int `koanf:"evaluate_rate_limit"`
}

// New returns a Config with defaults suitable for local development.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8080",
		AllowedOrigins:    []string{"http://localhost:3000", "http://localhost:5173"},
		OpenAIBaseURL:     "https://api.openai.com/v1",
		OpenAIModel:       "gpt-4o",
		OpenAITimeout:     60 * time.Second,
		MockDelay:         1500 * time.Millisecond,
		CacheEnabled:      true,
		CacheTTL:          5 * time.Minute,
		ResultTTL:         30 * 24 * time.Hour,
		EvaluateRateLimit: 10,
	}
}

// EffectiveMockMode reports whether the service must run on fixtures:
// either asked for explicitly or forced by a missing API key.
func (c *Config) EffectiveMockMode() bool {
	return c.MockMode || c.OpenAIAPIKey == ""
}
