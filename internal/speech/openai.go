package speech

import (
	"context"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var openaiVoices = map[string]openai.SpeechVoice{
	"alloy":   openai.VoiceAlloy,
	"echo":    openai.VoiceEcho,
	"fable":   openai.VoiceFable,
	"onyx":    openai.VoiceOnyx,
	"nova":    openai.VoiceNova,
	"shimmer": openai.VoiceShimmer,
}

// OpenAIConfig holds settings for the OpenAI speech endpoint.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"openai_api_key"`
	Model   string `mapstructure:"openai_model"`
	BaseURL string `mapstructure:"openai_base_url"`
}

// OpenAISynthesizer uses the OpenAI audio/speech endpoint.
type OpenAISynthesizer struct {
	client *openai.Client
	model  openai.SpeechModel
}

// NewOpenAISynthesizer creates a synthesizer. The model defaults to tts-1.
func NewOpenAISynthesizer(cfg OpenAIConfig) (*OpenAISynthesizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := openai.TTSModel1
	if cfg.Model != "" {
		model = openai.SpeechModel(cfg.Model)
	}

	return &OpenAISynthesizer{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (s *OpenAISynthesizer) Synthesize(ctx context.Context, text string, voice Voice) (*Audio, error) {
	req := openai.CreateSpeechRequest{
		Model:          s.model,
		Input:          text,
		Voice:          openaiVoice(voice.Name),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}
	if voice.Speed > 0 {
		req.Speed = voice.Speed
	}

	resp, err := s.client.CreateSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read speech: %w", err)
	}
	if len(data) == 0 {
		return nil, emptyAudioError("openai")
	}
	return &Audio{Data: data, MIMEType: "audio/mpeg"}, nil
}

// openaiVoice maps a configured voice name to an OpenAI voice. Names that
// belong to other providers fall back to alloy.
func openaiVoice(name string) openai.SpeechVoice {
	if v, ok := openaiVoices[strings.ToLower(name)]; ok {
		return v
	}
	return openai.VoiceAlloy
}
