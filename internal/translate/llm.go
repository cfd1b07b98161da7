package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/dictaz/internal/llm"
)

var translationSchema = &llm.Schema{
	Name:        "sentence-translation",
	Description: "A natural translation of one practice sentence",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"translation": map[string]any{
				"type":        "string",
				"description": "The translated sentence, nothing else",
			},
		},
		"required":             []any{"translation"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You translate short sentences used in language-learning dictation drills.
Translate the user's sentence from %s into %s. Keep the meaning and register of the original.
Do not add explanations, romanization, or quotes.`

// LLMTranslator translates through an LLM provider with structured output.
type LLMTranslator struct {
	provider llm.Provider
}

// NewLLMTranslator creates a translator backed by provider.
func NewLLMTranslator(provider llm.Provider) *LLMTranslator {
	return &LLMTranslator{provider: provider}
}

func (t *LLMTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeTranslation)

	c, err := t.provider.Complete(ctx, llm.Prompt{
		Instruction: fmt.Sprintf(systemPrompt, languageName(source), languageName(target)),
		Input:       text,
		Schema:      translationSchema,
		MaxTokens:   512,
	})
	if err != nil {
		return "", err
	}

	var out struct {
		Translation string `json:"translation"`
	}
	if err := c.Decode(&out); err != nil {
		return "", fmt.Errorf("decode translation: %w", err)
	}
	if strings.TrimSpace(out.Translation) == "" {
		return "", fmt.Errorf("%s returned an empty translation", t.provider.Name())
	}
	return out.Translation, nil
}

// languageName expands common ISO 639-1 codes for the prompt.
func languageName(code string) string {
	switch code {
	case "en":
		return "English"
	case "ja":
		return "Japanese"
	case "zh":
		return "Chinese"
	case "ko":
		return "Korean"
	case "es":
		return "Spanish"
	case "fr":
		return "French"
	case "de":
		return "German"
	default:
		return code
	}
}
