// Package config loads dictaz settings from defaults, an optional config
// file, an optional .env file, environment variables, and CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/dictaz/internal/llm"
	"github.com/abhisek/dictaz/internal/speech"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DICTAZ"

// Config holds all configuration for dictaz.
type Config struct {
	Corpus      CorpusConfig      `mapstructure:"corpus"`
	Translation TranslationConfig `mapstructure:"translation"`
	Speech      speech.Config     `mapstructure:"speech"`
	LLM         llm.Config        `mapstructure:"llm"`
	Player      PlayerConfig      `mapstructure:"player"`
	Session     SessionConfig     `mapstructure:"session"`
	Log         LogConfig         `mapstructure:"log"`
}

// CorpusConfig selects where practice sentences come from.
type CorpusConfig struct {
	Source    string `mapstructure:"source"` // builtin, csv, sqlite, sheet
	Path      string `mapstructure:"path"`
	Table     string `mapstructure:"table"`
	SheetKey  string `mapstructure:"sheet_key"`
	Worksheet string `mapstructure:"worksheet"`
}

// TranslationConfig selects how translations are produced.
type TranslationConfig struct {
	Strategy     string        `mapstructure:"strategy"` // auto, column, llm, google
	Source       string        `mapstructure:"source"`
	Target       string        `mapstructure:"target"`
	GoogleAPIKey string        `mapstructure:"google_api_key"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// PlayerConfig holds the external audio player command.
type PlayerConfig struct {
	Command string `mapstructure:"command"`
}

// SessionConfig holds per-session settings.
type SessionConfig struct {
	Seed uint64 `mapstructure:"seed"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Options controls where Load looks for settings.
type Options struct {
	// File is an explicit config file. When empty, dictaz.yaml is searched
	// for in the working directory and the user config directory.
	File string

	// EnvFile is a dotenv file whose entries are exported before the
	// environment is read. Missing files are ignored.
	EnvFile string

	// Flags are bound over every other source.
	Flags *pflag.FlagSet
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"corpus":      "corpus.source",
	"corpus-path": "corpus.path",
	"strategy":    "translation.strategy",
	"voice":       "speech.voice",
	"speech":      "speech.provider",
	"seed":        "session.seed",
	"log-level":   "log.level",
}

// Load reads configuration from all sources.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if opts.EnvFile != "" {
		if err := loadDotEnv(opts.EnvFile); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindFallbackEnv(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("dictaz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "dictaz"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("corpus.source", "builtin")
	v.SetDefault("corpus.path", "")
	v.SetDefault("corpus.table", "dictation")
	v.SetDefault("corpus.sheet_key", "")
	v.SetDefault("corpus.worksheet", "dictation")

	v.SetDefault("translation.strategy", "auto")
	v.SetDefault("translation.source", "en")
	v.SetDefault("translation.target", "ja")
	v.SetDefault("translation.google_api_key", "")
	v.SetDefault("translation.timeout", 15*time.Second)

	voice := speech.DefaultVoice()
	v.SetDefault("speech.provider", "google")
	v.SetDefault("speech.language", voice.Language)
	v.SetDefault("speech.voice", voice.Name)
	v.SetDefault("speech.speed", voice.Speed)
	v.SetDefault("speech.google_api_key", "")
	v.SetDefault("speech.openai_api_key", "")
	v.SetDefault("speech.openai_model", "tts-1")
	v.SetDefault("speech.openai_base_url", "")
	v.SetDefault("speech.cache_dir", defaultCacheDir())
	v.SetDefault("speech.timeout", 20*time.Second)

	l := llm.DefaultConfig()
	v.SetDefault("llm.provider", l.Provider)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
	v.SetDefault("llm.timeout", l.Timeout)

	v.SetDefault("player.command", "")
	v.SetDefault("session.seed", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

// bindFallbackEnv lets well-known unprefixed variables fill keys when the
// prefixed variable is unset.
func bindFallbackEnv(v *viper.Viper) {
	_ = v.BindEnv("corpus.sheet_key", EnvPrefix+"_CORPUS_SHEET_KEY", "SHEET_KEY")
	_ = v.BindEnv("speech.google_api_key", EnvPrefix+"_SPEECH_GOOGLE_API_KEY", "GOOGLE_TTS_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("speech.openai_api_key", EnvPrefix+"_SPEECH_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("translation.google_api_key", EnvPrefix+"_TRANSLATION_GOOGLE_API_KEY", "GOOGLE_TRANSLATE_API_KEY", "GOOGLE_API_KEY")
}

// loadDotEnv exports entries from a dotenv file without overriding
// variables that are already set.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}

	for _, key := range env.AllKeys() {
		name := strings.ToUpper(key)
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := os.Setenv(name, env.GetString(key)); err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
	}
	return nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Corpus.Source {
	case "builtin":
	case "csv", "sqlite":
		if c.Corpus.Path == "" {
			return fmt.Errorf("corpus.path is required for the %s source", c.Corpus.Source)
		}
	case "sheet":
		if c.Corpus.SheetKey == "" {
			return fmt.Errorf("corpus.sheet_key is required for the sheet source")
		}
	default:
		return fmt.Errorf("unknown corpus source: %q", c.Corpus.Source)
	}

	switch c.Translation.Strategy {
	case "auto", "column", "llm", "google":
	default:
		return fmt.Errorf("unknown translation strategy: %q", c.Translation.Strategy)
	}

	switch c.Speech.Provider {
	case "google", "openai", "mock":
	default:
		return fmt.Errorf("unknown speech provider: %q", c.Speech.Provider)
	}
	return nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dictaz", "audio")
}

func defaultLogFile() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "dictaz", "dictaz.log")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", "dictaz", "dictaz.log")
	}
	return ""
}
