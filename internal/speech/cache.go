package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// CachedSynthesizer stores synthesized audio on disk keyed by voice and text.
type CachedSynthesizer struct {
	inner Synthesizer
	dir   string
	log   logrus.FieldLogger
	mu    sync.Mutex
}

type cacheMeta struct {
	MIMEType string `json:"mime_type"`
}

// WithCache wraps s with a disk cache in dir. An empty dir returns s.
func WithCache(s Synthesizer, dir string, log logrus.FieldLogger) (Synthesizer, error) {
	if dir == "" {
		return s, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio cache: %w", err)
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(nopWriter{})
		log = l
	}
	return &CachedSynthesizer{inner: s, dir: dir, log: log}, nil
}

// CacheKey returns the cache file stem for text spoken with voice.
func CacheKey(text string, voice Voice) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%g:%s", voice.Language, voice.Name, voice.Speed, text)))
	return hex.EncodeToString(h[:16])
}

func (c *CachedSynthesizer) Synthesize(ctx context.Context, text string, voice Voice) (*Audio, error) {
	key := CacheKey(text, voice)
	if a, ok := c.read(key); ok {
		c.log.WithField("key", key).Debug("audio cache hit")
		return a, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if a, ok := c.read(key); ok {
		return a, nil
	}

	a, err := c.inner.Synthesize(ctx, text, voice)
	if err != nil {
		return nil, err
	}
	if a == nil || len(a.Data) == 0 {
		return nil, ErrEmptyAudio
	}
	if err := c.write(key, a); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("audio cache write failed")
	}
	return a, nil
}

func (c *CachedSynthesizer) read(key string) (*Audio, bool) {
	data, err := os.ReadFile(filepath.Join(c.dir, key+".audio"))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	meta := cacheMeta{MIMEType: "audio/mpeg"}
	if raw, err := os.ReadFile(filepath.Join(c.dir, key+".json")); err == nil {
		_ = json.Unmarshal(raw, &meta)
	}
	return &Audio{Data: data, MIMEType: meta.MIMEType}, true
}

func (c *CachedSynthesizer) write(key string, a *Audio) error {
	raw, err := json.Marshal(cacheMeta{MIMEType: a.MIMEType})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(c.dir, key+".json"), raw, 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key+".audio"), a.Data, 0o644)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
