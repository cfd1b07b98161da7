package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGoogleTTSURL = "https://texttospeech.googleapis.com/v1/text:synthesize"

// GoogleSynthesizer calls the Cloud Text-to-Speech REST API with an API key.
type GoogleSynthesizer struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// GoogleOption configures a GoogleSynthesizer.
type GoogleOption func(*GoogleSynthesizer)

// WithGoogleEndpoint overrides the synthesize endpoint.
func WithGoogleEndpoint(url string) GoogleOption {
	return func(g *GoogleSynthesizer) { g.endpoint = url }
}

// WithGoogleHTTPClient sets the HTTP client.
func WithGoogleHTTPClient(c *http.Client) GoogleOption {
	return func(g *GoogleSynthesizer) { g.httpClient = c }
}

// NewGoogleSynthesizer creates a synthesizer. apiKey must be non-empty.
func NewGoogleSynthesizer(apiKey string, opts ...GoogleOption) (*GoogleSynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google text-to-speech API key is required")
	}
	g := &GoogleSynthesizer{
		apiKey:   apiKey,
		endpoint: defaultGoogleTTSURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

func (g *GoogleSynthesizer) Synthesize(ctx context.Context, text string, voice Voice) (*Audio, error) {
	audioConfig := map[string]any{"audioEncoding": "MP3"}
	if voice.Speed > 0 {
		audioConfig["speakingRate"] = voice.Speed
	}
	voiceSel := map[string]any{"languageCode": voice.Language}
	if voice.Name != "" {
		voiceSel["name"] = voice.Name
	}

	body, err := json.Marshal(map[string]any{
		"input":       map[string]string{"text": text},
		"voice":       voiceSel,
		"audioConfig": audioConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?key="+g.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS API error %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, emptyAudioError("google")
	}
	return &Audio{Data: audio, MIMEType: "audio/mpeg"}, nil
}
