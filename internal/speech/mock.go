package speech

import (
	"context"
	"sync"
)

// MockCall records one Synthesize invocation.
type MockCall struct {
	Text  string
	Voice Voice
}

// MockSynthesizer returns a fixed clip, or Err when set, and records calls.
type MockSynthesizer struct {
	mu    sync.Mutex
	Audio *Audio
	Err   error
	Calls []MockCall
}

// NewMockSynthesizer returns a mock that answers with a short fake MP3 body.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{Audio: &Audio{Data: []byte("ID3mock"), MIMEType: "audio/mpeg"}}
}

func (m *MockSynthesizer) Synthesize(_ context.Context, text string, voice Voice) (*Audio, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, MockCall{Text: text, Voice: voice})
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Audio.Clone(), nil
}

// CallCount returns the number of Synthesize calls.
func (m *MockSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
