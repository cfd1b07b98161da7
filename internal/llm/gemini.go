package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

var geminiAliases = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.5-pro",
}

// GeminiProvider completes prompts through the Gemini API, passing the
// prompt's schema as responseJsonSchema.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider builds a provider from cfg.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &GeminiProvider{client: client, model: resolveModel(cfg.Model, geminiAliases)}, nil
}

func (p *GeminiProvider) Name() string  { return "gemini" }
func (p *GeminiProvider) Model() string { return p.model }

func (p *GeminiProvider) Complete(ctx context.Context, pr Prompt) (*Completion, error) {
	if err := pr.check(); err != nil {
		return nil, err
	}

	conf := &genai.GenerateContentConfig{
		MaxOutputTokens:    int32(pr.MaxTokens),
		ResponseMIMEType:   "application/json",
		ResponseJsonSchema: pr.Schema.Definition,
	}
	if pr.Instruction != "" {
		conf.SystemInstruction = genai.NewContentFromText(pr.Instruction, genai.RoleUser)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(pr.Input), conf)
	if err != nil {
		// The SDK returns APIError by value.
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(p.Name(), apiErr.Code, err)
		}
		return nil, &UnavailableError{Provider: p.Name(), Err: err}
	}

	out := json.RawMessage(result.Text())
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return nil, &TruncatedError{MaxTokens: pr.MaxTokens, Output: out}
	}
	if err := pr.Schema.Check(out); err != nil {
		return nil, err
	}

	c := &Completion{JSON: out, Model: p.model}
	if result.ModelVersion != "" {
		c.Model = result.ModelVersion
	}
	if u := result.UsageMetadata; u != nil {
		c.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
		}
	}
	return c, nil
}
