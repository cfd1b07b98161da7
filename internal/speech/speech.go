// Package speech turns practice sentences into playable audio.
//
// The audio payload is opaque: synthesizers return encoded bytes plus a MIME
// type and callers hand them to a player unchanged.
package speech

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Voice selects how a sentence is spoken.
type Voice struct {
	// Language is a BCP-47 tag such as "en-US".
	Language string `mapstructure:"language"`

	// Name is a provider voice name such as "en-US-Neural2-I" or "alloy".
	Name string `mapstructure:"voice"`

	// Speed is the speaking rate; 0 means provider default.
	Speed float64 `mapstructure:"speed"`
}

// DefaultVoice is a US English neural voice.
func DefaultVoice() Voice {
	return Voice{Language: "en-US", Name: "en-US-Neural2-I", Speed: 1.0}
}

// Audio is an encoded audio clip.
type Audio struct {
	Data     []byte
	MIMEType string
}

// Clone returns a deep copy. A nil receiver returns nil.
func (a *Audio) Clone() *Audio {
	if a == nil {
		return nil
	}
	return &Audio{Data: append([]byte(nil), a.Data...), MIMEType: a.MIMEType}
}

// Ext returns a file extension for the audio's MIME type.
func (a *Audio) Ext() string {
	switch a.MIMEType {
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/ogg", "audio/opus":
		return ".ogg"
	case "audio/flac":
		return ".flac"
	default:
		return ".mp3"
	}
}

// Synthesizer produces audio for a piece of text.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice Voice) (*Audio, error)
}

// TimeoutSynthesizer bounds every call with a deadline.
type TimeoutSynthesizer struct {
	inner   Synthesizer
	timeout time.Duration
}

// WithTimeout wraps s so each call gets at most d. A non-positive d returns s.
func WithTimeout(s Synthesizer, d time.Duration) Synthesizer {
	if d <= 0 {
		return s
	}
	return &TimeoutSynthesizer{inner: s, timeout: d}
}

func (t *TimeoutSynthesizer) Synthesize(ctx context.Context, text string, voice Voice) (*Audio, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Synthesize(ctx, text, voice)
}

// ErrEmptyAudio marks a synthesis that produced no bytes.
var ErrEmptyAudio = errors.New("empty audio")

// emptyAudioError reports a provider that answered with no bytes.
func emptyAudioError(provider string) error {
	return fmt.Errorf("%s returned %w", provider, ErrEmptyAudio)
}
