package session

import "strings"

// Verdict is the outcome of grading a transcription.
type Verdict int

const (
	NoActiveSentence Verdict = iota // nothing has been generated yet
	Correct
	Incorrect
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "no_active_sentence"
	}
}

// Message is the text shown to the learner for this verdict.
func (v Verdict) Message() string {
	switch v {
	case Correct:
		return "You Got It !!"
	case Incorrect:
		return "Try again."
	default:
		return "Generate a sentence first."
	}
}

// Grade compares input against sentence ignoring letter case only.
// Whitespace and punctuation must match exactly.
func Grade(input, sentence string) Verdict {
	if sentence == "" {
		return NoActiveSentence
	}
	if strings.ToLower(input) == strings.ToLower(sentence) {
		return Correct
	}
	return Incorrect
}
