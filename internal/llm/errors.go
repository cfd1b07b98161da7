package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RateLimitError is a 429 from the provider.
type RateLimitError struct {
	Provider   string
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s: rate limited, retry after %s: %v", e.Provider, e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("%s: rate limited: %v", e.Provider, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// UnavailableError covers transport failures and 5xx responses.
type UnavailableError struct {
	Provider string
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Provider, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// InvalidOutputError means the model answered, but not with JSON matching
// the prompt's schema.
type InvalidOutputError struct {
	Schema string
	Output json.RawMessage
	Err    error
}

func (e *InvalidOutputError) Error() string {
	return fmt.Sprintf("reply does not match %s: %v", e.Schema, e.Err)
}

func (e *InvalidOutputError) Unwrap() error { return e.Err }

// TruncatedError means generation stopped at the token limit. Retrying the
// same prompt hits the same limit.
type TruncatedError struct {
	MaxTokens int
	Output    json.RawMessage
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("reply cut off at %d tokens", e.MaxTokens)
}

// RejectedError is a 4xx other than 429, such as a bad key or an unknown
// model. It is never retried.
type RejectedError struct {
	Provider string
	Status   int
	Err      error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected the request (%d): %v", e.Provider, e.Status, e.Err)
}

func (e *RejectedError) Unwrap() error { return e.Err }

// classifyStatus maps the HTTP status carried by an SDK error. A zero
// status means the request never got a response.
func classifyStatus(provider string, status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Provider: provider, Err: err}
	case status >= 400 && status < 500:
		return &RejectedError{Provider: provider, Status: status, Err: err}
	default:
		return &UnavailableError{Provider: provider, Err: err}
	}
}
