package llm

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// EnvPrefix is prepended to every variable name in Config.
const EnvPrefix = "QUEST_"

// Config holds all LLM provider configuration. Field tags are relative to
// EnvPrefix, so Provider reads QUEST_LLM_PROVIDER.
type Config struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"anthropic"`

	Anthropic AnthropicConfig `envPrefix:"ANTHROPIC_"`
	OpenAI    OpenAIConfig    `envPrefix:"OPENAI_"`
	Gemini    GeminiConfig    `envPrefix:"GEMINI_"`
	Retry     RetryConfig     `envPrefix:"LLM_RETRY_"`

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"fast"`
}

// OpenAIConfig holds configuration for OpenAI or any compatible API.
type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"fast"`
	BaseURL string `env:"BASE_URL"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"fast"`
}

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"INITIAL_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns the envDefault values with no environment applied.
func DefaultConfig() Config {
	cfg, err := parseConfig(map[string]string{})
	if err != nil {
		// Only reachable if a default tag is malformed.
		panic(err)
	}
	return cfg
}

// ConfigFromEnv reads QUEST_* variables from the process environment.
func ConfigFromEnv() (Config, error) {
	return parseConfig(nil)
}

// parseConfig reads from environ, or the process environment when nil.
func parseConfig(environ map[string]string) (Config, error) {
	var cfg Config
	err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ})
	if err != nil {
		return Config{}, fmt.Errorf("parse LLM config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, name string
	switch c.Provider {
	case ProviderAnthropic:
		key, name = c.Anthropic.APIKey, "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, name = c.OpenAI.APIKey, "OPENAI_API_KEY"
	case ProviderGemini:
		key, name = c.Gemini.APIKey, "GEMINI_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s%s is required for the %s provider", EnvPrefix, name, c.Provider)
	}
	return nil
}
