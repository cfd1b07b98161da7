package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// LoggingProvider is a decorator that logs every LLM request with its
// latency, token usage and estimated cost.
type LoggingProvider struct {
	inner Provider
	log   logrus.FieldLogger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, log logrus.FieldLogger) Provider {
	if log == nil {
		l := logrus.New()
		l.Out = nopWriter{}
		log = l
	}
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Complete(ctx context.Context, pr Prompt) (*Completion, error) {
	start := time.Now()
	c, err := l.inner.Complete(ctx, pr)

	fields := logrus.Fields{
		"provider":    l.inner.Name(),
		"model":       l.inner.Model(),
		"purpose":     PurposeFrom(ctx),
		"input_chars": len([]rune(pr.Input)),
		"latency_ms":  time.Since(start).Milliseconds(),
	}
	if pr.Schema != nil {
		fields["schema"] = pr.Schema.Name
	}
	if c != nil {
		fields["model"] = c.Model
		fields["input_tokens"] = c.Usage.InputTokens
		fields["output_tokens"] = c.Usage.OutputTokens
		if cost := LookupCost(c.Model); cost != nil {
			fields["cost_usd"] = cost.Cost(c.Usage.InputTokens, c.Usage.OutputTokens)
		}
	}

	entry := l.log.WithFields(fields)
	if err != nil {
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.Debug("llm request")
	}

	return c, err
}

func (l *LoggingProvider) Name() string  { return l.inner.Name() }
func (l *LoggingProvider) Model() string { return l.inner.Model() }

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
