package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGoogleTranslateURL = "https://translation.googleapis.com/language/translate/v2"

// GoogleTranslator calls the Cloud Translation v2 REST API with an API key.
type GoogleTranslator struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// GoogleOption configures a GoogleTranslator.
type GoogleOption func(*GoogleTranslator)

// WithGoogleEndpoint overrides the API endpoint.
func WithGoogleEndpoint(url string) GoogleOption {
	return func(g *GoogleTranslator) { g.endpoint = url }
}

// WithGoogleHTTPClient sets the HTTP client.
func WithGoogleHTTPClient(c *http.Client) GoogleOption {
	return func(g *GoogleTranslator) { g.httpClient = c }
}

// NewGoogleTranslator creates a translator. apiKey must be non-empty.
func NewGoogleTranslator(apiKey string, opts ...GoogleOption) (*GoogleTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("google translate API key is required")
	}
	g := &GoogleTranslator{
		apiKey:     apiKey,
		endpoint:   defaultGoogleTranslateURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

func (g *GoogleTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"q":      []string{text},
		"source": source,
		"target": target,
		"format": "text",
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?key="+g.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate API error %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var result struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(result.Data.Translations) == 0 {
		return "", fmt.Errorf("translate API returned no translations")
	}
	return html.UnescapeString(result.Data.Translations[0].TranslatedText), nil
}
