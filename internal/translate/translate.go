// Package translate resolves the target-language rendering of a practice
// sentence, either from the corpus or from a live translation service.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/dictaz/internal/corpus"
)

// Translator is a live translation service.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Strategy decides where a row's translation comes from.
type Strategy interface {
	Translation(ctx context.Context, row corpus.Row) (string, error)
}

// ErrNoTranslation is returned by Column when the row has no stored
// translation.
var ErrNoTranslation = errors.New("row has no stored translation")

// Column reads the translation stored alongside the sentence.
type Column struct{}

func (Column) Translation(_ context.Context, row corpus.Row) (string, error) {
	if strings.TrimSpace(row.Translation) == "" {
		return "", ErrNoTranslation
	}
	return row.Translation, nil
}

// Live asks a Translator for every row.
type Live struct {
	Translator Translator
	Source     string
	Target     string
}

func (l Live) Translation(ctx context.Context, row corpus.Row) (string, error) {
	out, err := l.Translator.Translate(ctx, row.Sentence, l.Source, l.Target)
	if err != nil {
		return "", fmt.Errorf("translate %s→%s: %w", l.Source, l.Target, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("translate %s→%s: empty result", l.Source, l.Target)
	}
	return out, nil
}

// Auto uses the stored translation when present and falls back to Live.
type Auto struct {
	Live Live
}

func (a Auto) Translation(ctx context.Context, row corpus.Row) (string, error) {
	if t, err := (Column{}).Translation(ctx, row); err == nil {
		return t, nil
	}
	if a.Live.Translator == nil {
		return "", ErrNoTranslation
	}
	return a.Live.Translation(ctx, row)
}

type timeoutTranslator struct {
	inner   Translator
	timeout time.Duration
}

// WithTimeout bounds every Translate call. A non-positive d returns t.
func WithTimeout(t Translator, d time.Duration) Translator {
	if d <= 0 {
		return t
	}
	return &timeoutTranslator{inner: t, timeout: d}
}

func (t *timeoutTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Translate(ctx, text, source, target)
}
