package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is one queued answer for MockProvider. Err, when set, is
// returned instead of JSON.
type MockReply struct {
	JSON  json.RawMessage
	Usage Usage
	Err   error
}

// MockProvider is an offline Provider. Queued replies are served in order
// and checked against the prompt's schema like a real provider's. Once the
// queue is empty it echoes the prompt input into every required string
// property, so a translation prompt gets its own sentence back.
type MockProvider struct {
	mu      sync.Mutex
	queue   []MockReply
	Prompts []Prompt
}

// NewMockProvider creates a MockProvider with the given replies queued.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{queue: replies}
}

func (m *MockProvider) Name() string  { return "mock" }
func (m *MockProvider) Model() string { return "mock" }

func (m *MockProvider) Complete(_ context.Context, pr Prompt) (*Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, pr)
	if err := pr.check(); err != nil {
		return nil, err
	}

	var reply MockReply
	if len(m.queue) > 0 {
		reply, m.queue = m.queue[0], m.queue[1:]
	} else {
		reply.JSON = echo(pr)
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	if err := pr.Schema.Check(reply.JSON); err != nil {
		return nil, err
	}
	return &Completion{JSON: reply.JSON, Usage: reply.Usage, Model: "mock"}, nil
}

// Queue appends a reply.
func (m *MockProvider) Queue(r MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, r)
}

// CallCount returns the number of Complete calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

func echo(pr Prompt) json.RawMessage {
	obj := map[string]string{}
	for _, name := range pr.Schema.requiredStrings() {
		obj[name] = pr.Input
	}
	raw, _ := json.Marshal(obj)
	return raw
}
