package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenAIProvider completes prompts through the chat completions API with a
// strict json_schema response format. OpenRouter speaks the same API, so
// it is served by this type under its own name.
type OpenAIProvider struct {
	client *openai.Client
	name   string
	model  string
}

// NewOpenAIProvider builds a provider against api.openai.com, or cfg.BaseURL
// for a compatible endpoint.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	return newOpenAICompatible("openai", cfg.APIKey, cfg.BaseURL, cfg.Model)
}

// NewOpenRouterProvider builds a provider against OpenRouter. Model IDs are
// OpenRouter's own ("vendor/model") and are not aliased.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	base := cfg.BaseURL
	if base == "" {
		base = defaultOpenRouterBaseURL
	}
	return newOpenAICompatible("openrouter", cfg.APIKey, base, cfg.Model)
}

func newOpenAICompatible(name, apiKey, baseURL, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: API key is required", name)
	}
	conf := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		conf.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(conf),
		name:   name,
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Name() string  { return p.name }
func (p *OpenAIProvider) Model() string { return p.model }

func (p *OpenAIProvider) Complete(ctx context.Context, pr Prompt) (*Completion, error) {
	if err := pr.check(); err != nil {
		return nil, err
	}
	schema, err := json.Marshal(pr.Schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", pr.Schema.Name, err)
	}

	var msgs []openai.ChatCompletionMessage
	if pr.Instruction != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: pr.Instruction})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: pr.Input})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            msgs,
		MaxCompletionTokens: pr.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        pr.Schema.Name,
				Description: pr.Schema.Description,
				Schema:      json.RawMessage(schema),
				Strict:      true,
			},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(p.name, apiErr.HTTPStatusCode, err)
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return nil, classifyStatus(p.name, reqErr.HTTPStatusCode, err)
		}
		return nil, &UnavailableError{Provider: p.name, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &InvalidOutputError{Schema: pr.Schema.Name, Err: errors.New("no choices in reply")}
	}

	choice := resp.Choices[0]
	out := json.RawMessage(choice.Message.Content)
	if choice.FinishReason == openai.FinishReasonLength {
		return nil, &TruncatedError{MaxTokens: pr.MaxTokens, Output: out}
	}
	if err := pr.Schema.Check(out); err != nil {
		return nil, err
	}

	return &Completion{
		JSON:  out,
		Model: resp.Model,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
