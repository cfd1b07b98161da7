package session

import (
	"slices"

	"github.com/abhisek/dictaz/internal/corpus"
	"github.com/abhisek/dictaz/internal/speech"
)

// ActiveSelection is the sentence currently being practiced together with
// everything the UI can reveal about it.
type ActiveSelection struct {
	// Sentence is the exact dictation text. Empty until the first Generate.
	Sentence string

	// Translation is the target-language rendering of Sentence.
	Translation string

	// Hints are vocabulary notes in the order the corpus listed them.
	Hints []corpus.Hint

	// Audio is the spoken sentence (nil when absent).
	Audio *speech.Audio
}

// Empty reports whether no sentence has been generated yet.
func (a ActiveSelection) Empty() bool {
	return a.Sentence == ""
}

func (a ActiveSelection) clone() ActiveSelection {
	return ActiveSelection{
		Sentence:    a.Sentence,
		Translation: a.Translation,
		Hints:       slices.Clone(a.Hints),
		Audio:       a.Audio.Clone(),
	}
}
