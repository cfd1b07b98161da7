package dictation

import (
	sess "github.com/abhisek/dictaz/internal/session"
)

// generatedMsg is sent when a Next call finishes.
type generatedMsg struct {
	Selection sess.ActiveSelection
	Err       error
}

// playedMsg is sent when the player exits.
type playedMsg struct {
	Err error
}
