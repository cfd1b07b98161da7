// Package llm adapts hosted language models to one job: answer a single
// instruction about a single piece of text with JSON of a known shape.
// Translation is the only caller today.
package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Provider completes schema-bound prompts.
type Provider interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)

	// Name is the configured provider key ("openai", "gemini", ...).
	Name() string

	// Model is the model ID requests are sent to.
	Model() string
}

// Prompt is one single-turn request. Instruction becomes the system
// prompt and Input the only user turn. Schema is required: every provider
// asks for structured output and validates the reply against it.
type Prompt struct {
	Instruction string
	Input       string
	Schema      *Schema
	MaxTokens   int
}

var errNoSchema = errors.New("llm: prompt has no schema")

func (p Prompt) check() error {
	if p.Schema == nil {
		return errNoSchema
	}
	return nil
}

// Completion is a validated reply.
type Completion struct {
	// JSON conforms to the prompt's Schema.
	JSON json.RawMessage

	Usage Usage

	// Model is the model that served the request, which may be more
	// specific than the configured alias.
	Model string
}

// Decode unmarshals the reply into v.
func (c *Completion) Decode(v any) error {
	return json.Unmarshal(c.JSON, v)
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}
