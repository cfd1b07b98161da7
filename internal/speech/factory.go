package speech

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Config selects and configures a synthesizer.
type Config struct {
	Provider     string        `mapstructure:"provider"`
	Voice        Voice         `mapstructure:",squash"`
	GoogleAPIKey string        `mapstructure:"google_api_key"`
	OpenAI       OpenAIConfig  `mapstructure:",squash"`
	CacheDir     string        `mapstructure:"cache_dir"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// NewSynthesizer builds the configured synthesizer chain: timeout, then
// cache, then the provider.
func NewSynthesizer(cfg Config, log logrus.FieldLogger) (Synthesizer, error) {
	var base Synthesizer
	switch cfg.Provider {
	case "google", "":
		g, err := NewGoogleSynthesizer(cfg.GoogleAPIKey)
		if err != nil {
			return nil, err
		}
		base = g
	case "openai":
		o, err := NewOpenAISynthesizer(cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		base = o
	case "mock":
		return NewMockSynthesizer(), nil
	default:
		return nil, fmt.Errorf("unsupported speech provider: %q", cfg.Provider)
	}

	cached, err := WithCache(base, cfg.CacheDir, log)
	if err != nil {
		return nil, err
	}
	return WithTimeout(cached, cfg.Timeout), nil
}
