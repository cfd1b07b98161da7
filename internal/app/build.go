package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/dictaz/internal/config"
	"github.com/abhisek/dictaz/internal/corpus"
	"github.com/abhisek/dictaz/internal/llm"
	"github.com/abhisek/dictaz/internal/selector"
	"github.com/abhisek/dictaz/internal/session"
	"github.com/abhisek/dictaz/internal/speech"
	"github.com/abhisek/dictaz/internal/translate"
)

// CorpusSource returns the configured tabular source.
func CorpusSource(cfg config.CorpusConfig) (corpus.Source, error) {
	switch cfg.Source {
	case "builtin", "":
		return corpus.Builtin(), nil
	case "csv":
		return corpus.CSVFile{Path: cfg.Path}, nil
	case "sqlite":
		return corpus.SQLiteTable{Path: cfg.Path, Table: cfg.Table}, nil
	case "sheet":
		return corpus.Sheet{Key: cfg.SheetKey, Worksheet: cfg.Worksheet}, nil
	default:
		return nil, fmt.Errorf("unknown corpus source: %q", cfg.Source)
	}
}

// SourceName describes the configured source for display.
func SourceName(cfg config.CorpusConfig) string {
	src, err := CorpusSource(cfg)
	if err != nil {
		return cfg.Source
	}
	if s, ok := src.(fmt.Stringer); ok {
		return s.String()
	}
	return cfg.Source
}

// LoadCorpus fetches and parses the configured corpus.
func LoadCorpus(ctx context.Context, cfg config.CorpusConfig, log logrus.FieldLogger) (*corpus.Corpus, error) {
	src, err := CorpusSource(cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	c, err := corpus.Load(ctx, src)
	if err != nil {
		log.WithError(err).WithField("source", cfg.Source).Error("corpus load failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"source":     cfg.Source,
		"rows":       c.Len(),
		"themes":     len(c.DistinctThemes()),
		"latency_ms": time.Since(start).Milliseconds(),
	}).Info("corpus loaded")
	return c, nil
}

// LiveTranslator builds the configured live translator. kind is "google" or
// "llm"; for the auto strategy pass "" to take whichever is available,
// preferring Google when its key is set. It returns nil, nil when auto finds
// nothing.
func LiveTranslator(ctx context.Context, cfg *config.Config, kind string, log logrus.FieldLogger) (translate.Translator, error) {
	var (
		t   translate.Translator
		err error
	)
	switch {
	case kind == "google" || (kind == "" && cfg.Translation.GoogleAPIKey != ""):
		t, err = translate.NewGoogleTranslator(cfg.Translation.GoogleAPIKey)
	case kind == "llm" || kind == "":
		lc, ok := cfg.LLM.Discover()
		if !ok {
			if kind == "" {
				return nil, nil
			}
			return nil, fmt.Errorf("translation.strategy=llm needs an LLM provider (set llm.provider or an API key such as OPENAI_API_KEY)")
		}
		var p llm.Provider
		p, err = llm.NewProvider(ctx, lc, log)
		if err == nil {
			t = translate.NewLLMTranslator(p)
		}
	default:
		return nil, fmt.Errorf("unknown translator: %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return translate.WithTimeout(t, cfg.Translation.Timeout), nil
}

// TranslationStrategy builds the configured strategy.
func TranslationStrategy(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (translate.Strategy, error) {
	tc := cfg.Translation
	switch tc.Strategy {
	case "column":
		return translate.Column{}, nil
	case "google", "llm":
		t, err := LiveTranslator(ctx, cfg, tc.Strategy, log)
		if err != nil {
			return nil, err
		}
		return translate.Live{Translator: t, Source: tc.Source, Target: tc.Target}, nil
	case "auto", "":
		t, err := LiveTranslator(ctx, cfg, "", log)
		if err != nil {
			return nil, err
		}
		if t == nil {
			log.Info("no live translator configured; using stored translations only")
		}
		return translate.Auto{Live: translate.Live{Translator: t, Source: tc.Source, Target: tc.Target}}, nil
	default:
		return nil, fmt.Errorf("unknown translation strategy: %q", tc.Strategy)
	}
}

// NewSession builds a session from configuration.
func NewSession(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*session.Session, error) {
	strategy, err := TranslationStrategy(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("translation: %w", err)
	}

	synth, err := speech.NewSynthesizer(cfg.Speech, log)
	if err != nil {
		return nil, fmt.Errorf("speech: %w", err)
	}

	s := session.New(session.Options{
		Translation: strategy,
		Synthesizer: synth,
		Voice:       cfg.Speech.Voice,
		Selector:    selector.NewSeeded(cfg.Session.Seed),
		Logger:      log,
	})
	log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"strategy":   cfg.Translation.Strategy,
		"speech":     cfg.Speech.Provider,
		"voice":      cfg.Speech.Voice.Name,
		"seeded":     cfg.Session.Seed != 0,
	}).Info("session created")
	return s, nil
}
