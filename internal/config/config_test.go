package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup location at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	unsetenv(t,
		"SHEET_KEY", "GOOGLE_API_KEY", "GOOGLE_TTS_API_KEY", "GOOGLE_TRANSLATE_API_KEY", "OPENAI_API_KEY",
		"DICTAZ_CORPUS_SOURCE", "DICTAZ_TRANSLATION_TARGET", "DICTAZ_TRANSLATION_STRATEGY", "DICTAZ_SESSION_SEED",
	)
	return dir
}

// unsetenv clears keys for the test and restores them afterwards, so values
// exported from a .env file do not leak into other tests.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, "builtin", cfg.Corpus.Source)
	assert.Equal(t, "dictation", cfg.Corpus.Table)
	assert.Equal(t, "dictation", cfg.Corpus.Worksheet)
	assert.Equal(t, "auto", cfg.Translation.Strategy)
	assert.Equal(t, "en", cfg.Translation.Source)
	assert.Equal(t, "ja", cfg.Translation.Target)
	assert.Equal(t, 15*time.Second, cfg.Translation.Timeout)
	assert.Equal(t, "google", cfg.Speech.Provider)
	assert.Equal(t, "en-US", cfg.Speech.Voice.Language)
	assert.Equal(t, "en-US-Neural2-I", cfg.Speech.Voice.Name)
	assert.Equal(t, "tts-1", cfg.Speech.OpenAI.Model)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 12*time.Second, cfg.LLM.Timeout)
	assert.Empty(t, cfg.LLM.Provider)
	assert.Equal(t, uint64(0), cfg.Session.Seed)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "state", "dictaz", "dictaz.log"), cfg.Log.File)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
corpus:
  source: csv
  path: sentences.csv
speech:
  provider: openai
  voice: nova
llm:
  provider: mock
  timeout: 5s
session:
  seed: 7
`), 0o644))

	t.Setenv("DICTAZ_TRANSLATION_STRATEGY", "llm")
	t.Setenv("DICTAZ_SESSION_SEED", "42")

	cfg, err := Load(Options{File: file})
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Corpus.Source)
	assert.Equal(t, "sentences.csv", cfg.Corpus.Path)
	assert.Equal(t, "openai", cfg.Speech.Provider)
	assert.Equal(t, "nova", cfg.Speech.Voice.Name)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "llm", cfg.Translation.Strategy)
	assert.Equal(t, uint64(42), cfg.Session.Seed)
}

func TestLoad_SearchesWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dictaz.yaml"), []byte("translation:\n  target: ko\n"), 0o644))

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "ko", cfg.Translation.Target)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SHEET_KEY=abc123\nDICTAZ_CORPUS_SOURCE=sheet\nGOOGLE_API_KEY=gk\n"), 0o644))

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "sheet", cfg.Corpus.Source)
	assert.Equal(t, "abc123", cfg.Corpus.SheetKey)
	assert.Equal(t, "gk", cfg.Speech.GoogleAPIKey)
	assert.Equal(t, "gk", cfg.Translation.GoogleAPIKey)
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DICTAZ_TRANSLATION_TARGET=fr\n"), 0o644))
	t.Setenv("DICTAZ_TRANSLATION_TARGET", "de")

	cfg, err := Load(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Translation.Target)
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	dir := isolate(t)
	_, err := Load(Options{EnvFile: filepath.Join(dir, "nope.env")})
	assert.NoError(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(Options{File: filepath.Join(dir, "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_FlagsWin(t *testing.T) {
	isolate(t)
	t.Setenv("DICTAZ_TRANSLATION_STRATEGY", "llm")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("strategy", "", "")
	fs.String("voice", "", "")
	require.NoError(t, fs.Parse([]string{"--strategy", "column"}))

	cfg, err := Load(Options{Flags: fs})
	require.NoError(t, err)
	assert.Equal(t, "column", cfg.Translation.Strategy)
	assert.Equal(t, "en-US-Neural2-I", cfg.Speech.Voice.Name, "unset flags keep lower layers")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"csv without path", func(c *Config) { c.Corpus.Source = "csv" }, "corpus.path"},
		{"sqlite without path", func(c *Config) { c.Corpus.Source = "sqlite" }, "corpus.path"},
		{"sheet without key", func(c *Config) { c.Corpus.Source = "sheet" }, "sheet_key"},
		{"unknown source", func(c *Config) { c.Corpus.Source = "xlsx" }, "unknown corpus source"},
		{"unknown strategy", func(c *Config) { c.Translation.Strategy = "deepl" }, "unknown translation strategy"},
		{"unknown speech", func(c *Config) { c.Speech.Provider = "espeak" }, "unknown speech provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Corpus:      CorpusConfig{Source: "builtin"},
				Translation: TranslationConfig{Strategy: "auto"},
			}
			cfg.Speech.Provider = "mock"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
