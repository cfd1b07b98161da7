// Package session owns the per-user dictation state: the active sentence,
// its translation, hints, and audio, and the grading of typed answers.
package session

import (
	"context"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/dictaz/internal/corpus"
	"github.com/abhisek/dictaz/internal/selector"
	"github.com/abhisek/dictaz/internal/speech"
	"github.com/abhisek/dictaz/internal/translate"
)

// Options configures a Session.
type Options struct {
	Translation translate.Strategy
	Synthesizer speech.Synthesizer
	Voice       speech.Voice

	// Selector draws rows for Next. Nil means a time-seeded selector.
	Selector *selector.Selector

	// Logger receives session events. Nil discards them.
	Logger logrus.FieldLogger
}

// Session holds one learner's active selection. It is safe for concurrent
// use; Generate commits all fields of the selection at once.
type Session struct {
	ID string

	translation translate.Strategy
	synth       speech.Synthesizer
	voice       speech.Voice
	sel         *selector.Selector
	log         logrus.FieldLogger

	mu      sync.RWMutex
	current ActiveSelection
}

// New creates a session with a fresh ID and an empty selection.
func New(opts Options) *Session {
	id := uuid.New().String()

	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	sel := opts.Selector
	if sel == nil {
		sel = selector.NewSeeded(0)
	}

	return &Session{
		ID:          id,
		translation: opts.Translation,
		synth:       opts.Synthesizer,
		voice:       opts.Voice,
		sel:         sel,
		log:         logger.WithField("session_id", id),
	}
}

// NewWithSource is New with the selector drawing from src.
func NewWithSource(opts Options, src rand.Source) *Session {
	opts.Selector = selector.New(src)
	return New(opts)
}

// Current returns a copy of the active selection.
func (s *Session) Current() ActiveSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Generate builds a new selection from row and makes it current. On any
// error the previous selection is left untouched.
func (s *Session) Generate(ctx context.Context, row corpus.Row) (ActiveSelection, error) {
	start := time.Now()
	log := s.log.WithField("theme", row.Theme)

	sentence := row.Sentence

	translation, err := s.translation.Translation(ctx, row)
	if err != nil {
		log.WithError(err).Warn("translation failed")
		return ActiveSelection{}, &TranslationError{Sentence: sentence, Err: err}
	}

	hints, err := row.ResolveHints()
	if err != nil {
		log.WithError(err).Warn("hint decode failed")
		return ActiveSelection{}, err
	}

	audio, err := s.synth.Synthesize(ctx, sentence, s.voice)
	if err == nil && (audio == nil || len(audio.Data) == 0) {
		err = speech.ErrEmptyAudio
	}
	if err != nil {
		log.WithError(err).Warn("speech synthesis failed")
		return ActiveSelection{}, &SynthesisError{Sentence: sentence, Err: err}
	}

	next := ActiveSelection{
		Sentence:    sentence,
		Translation: translation,
		Hints:       hints,
		Audio:       audio,
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	log.WithFields(logrus.Fields{
		"hints":      len(hints),
		"audio_size": len(audio.Data),
		"latency_ms": time.Since(start).Milliseconds(),
	}).Info("sentence generated")

	return next.clone(), nil
}

// Next filters c by theme, draws one row, and generates from it.
func (s *Session) Next(ctx context.Context, c *corpus.Corpus, theme string) (ActiveSelection, error) {
	rows, err := c.Filter(theme)
	if err != nil {
		return ActiveSelection{}, err
	}
	row, err := s.sel.Pick(rows)
	if err != nil {
		return ActiveSelection{}, err
	}
	return s.Generate(ctx, row)
}

// Grade checks input against the current sentence.
func (s *Session) Grade(input string) Verdict {
	s.mu.RLock()
	sentence := s.current.Sentence
	s.mu.RUnlock()

	v := Grade(input, sentence)
	s.log.WithField("verdict", v.String()).Debug("answer graded")
	return v
}
