package session

import "fmt"

// TranslationError means the translation step of Generate failed.
type TranslationError struct {
	Sentence string
	Err      error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translate %q: %v", e.Sentence, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// SynthesisError means the speech step of Generate failed.
type SynthesisError struct {
	Sentence string
	Err      error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesize %q: %v", e.Sentence, e.Err)
}

func (e *SynthesisError) Unwrap() error { return e.Err }
