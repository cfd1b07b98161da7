package llm

import (
	"fmt"
	"os"
	"time"
)

// Config is the "llm" config section. Only the block for the selected
// Provider is read.
type Config struct {
	// Provider is one of anthropic, openai, gemini, openrouter or mock.
	Provider string `mapstructure:"provider"`

	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds one translation, retries included. Keep it under
	// translation.timeout, which wraps the whole call.
	Timeout time.Duration `mapstructure:"timeout"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig shapes the backoff in WithRetry.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig picks small, cheap models; a sentence translation needs
// nothing larger. No provider is selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2,
		},
		Timeout: 12 * time.Second,
	}
}

// discoveryOrder is the order in which Discover checks API key variables.
var discoveryOrder = []struct{ provider, env string }{
	{"gemini", "GEMINI_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openrouter", "OPENROUTER_API_KEY"},
}

// apiKey points at the key field of the named provider, or nil for a
// provider that takes no key or does not exist.
func (c *Config) apiKey(provider string) *string {
	switch provider {
	case "anthropic":
		return &c.Anthropic.APIKey
	case "openai":
		return &c.OpenAI.APIKey
	case "gemini":
		return &c.Gemini.APIKey
	case "openrouter":
		return &c.OpenRouter.APIKey
	}
	return nil
}

// Configured reports whether a provider has been selected.
func (c Config) Configured() bool {
	return c.Provider != ""
}

// Discover selects the first provider whose well-known API key variable
// is set, unless one is already configured. It reports false when nothing
// was found.
func (c Config) Discover() (Config, bool) {
	if c.Configured() {
		return c, true
	}
	for _, d := range discoveryOrder {
		if k := os.Getenv(d.env); k != "" {
			c.Provider = d.provider
			*c.apiKey(d.provider) = k
			return c, true
		}
	}
	return c, false
}

// Validate checks that the selected provider exists and has its key.
func (c Config) Validate() error {
	switch c.Provider {
	case "":
		return fmt.Errorf("no LLM provider configured")
	case "mock":
		return nil
	}
	key := c.apiKey(c.Provider)
	if key == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if *key == "" {
		return fmt.Errorf("llm.%s.api_key is required for the %s provider", c.Provider, c.Provider)
	}
	return nil
}
