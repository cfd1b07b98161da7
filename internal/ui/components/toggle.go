package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dictaz/internal/ui/theme"
)

// Toggle is a labeled on/off switch bound to a key.
type Toggle struct {
	Key   string
	Label string
	On    bool
}

// Flip inverts the toggle.
func (t *Toggle) Flip() {
	t.On = !t.On
}

// View renders the toggle as "[x] Label (key)".
func (t Toggle) View() string {
	box := "[ ]"
	style := theme.Unselected
	if t.On {
		box = "[x]"
		style = theme.Selected
	}
	keyHint := lipgloss.NewStyle().Foreground(theme.TextDim).Render("(" + t.Key + ")")
	return style.Render(box+" "+t.Label) + " " + keyHint
}
