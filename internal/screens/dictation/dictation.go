// Package dictation is the practice screen: hear a sentence, type it, check
// it, and reveal the translation, hints, or answer on demand.
package dictation

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dictaz/internal/corpus"
	"github.com/abhisek/dictaz/internal/screen"
	sess "github.com/abhisek/dictaz/internal/session"
	"github.com/abhisek/dictaz/internal/speech"
	"github.com/abhisek/dictaz/internal/ui/components"
	"github.com/abhisek/dictaz/internal/ui/layout"
)

// Player plays a clip and blocks until it finishes.
type Player interface {
	Play(ctx context.Context, a *speech.Audio) error
}

// DictationScreen implements screen.Screen for one theme's practice.
type DictationScreen struct {
	session *sess.Session
	corpus  *corpus.Corpus
	theme   string
	player  Player

	input       components.TextInput
	translation components.Toggle
	hints       components.Toggle
	answer      components.Toggle
	spinner     spinner.Model

	generating bool
	playing    bool
	verdict    sess.Verdict
	graded     bool
	errMsg     string
}

var _ screen.Screen = (*DictationScreen)(nil)
var _ screen.KeyHintProvider = (*DictationScreen)(nil)
var _ screen.StatusProvider = (*DictationScreen)(nil)

// New creates a dictation screen. player may be nil, in which case audio is
// generated but never played.
func New(s *sess.Session, c *corpus.Corpus, theme string, player Player) *DictationScreen {
	return &DictationScreen{
		session:     s,
		corpus:      c,
		theme:       theme,
		player:      player,
		input:       components.NewTextInput("Type what you hear...", 0),
		translation: components.Toggle{Key: "Ctrl+T", Label: "Translation"},
		hints:       components.Toggle{Key: "Ctrl+O", Label: "Hints"},
		answer:      components.Toggle{Key: "Ctrl+S", Label: "Answer"},
		spinner:     spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

func (d *DictationScreen) Init() tea.Cmd {
	return d.input.Init()
}

func (d *DictationScreen) Title() string {
	return "Dictation"
}

func (d *DictationScreen) Status() string {
	if d.theme == corpus.AllThemes {
		return "all themes"
	}
	return d.theme
}

func (d *DictationScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Ctrl+N", Description: "New sentence"},
	}
	if d.player != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Replay"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Check"},
		layout.KeyHint{Key: "Esc", Description: "Themes"},
	)
}

func (d *DictationScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		return d.handleGenerated(msg)

	case playedMsg:
		d.playing = false
		if msg.Err != nil {
			d.errMsg = "Playback failed: " + msg.Err.Error()
		}
		return d, nil

	case spinner.TickMsg:
		if !d.generating {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyPressMsg:
		return d.handleKey(msg)
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d *DictationScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+n":
		return d, d.generate()
	case "ctrl+r":
		return d, d.play(d.session.Current().Audio)
	case "ctrl+t":
		d.translation.Flip()
		return d, nil
	case "ctrl+o":
		d.hints.Flip()
		return d, nil
	case "ctrl+s":
		d.answer.Flip()
		return d, nil
	case "enter":
		return d.submit()
	}

	before := d.input.Value()
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if d.input.Value() != before {
		d.graded = false
	}
	return d, cmd
}

// generate starts a Next call unless one is already running.
func (d *DictationScreen) generate() tea.Cmd {
	if d.generating {
		return nil
	}
	d.generating = true
	d.errMsg = ""

	s, c, theme := d.session, d.corpus, d.theme
	return tea.Batch(
		d.spinner.Tick,
		func() tea.Msg {
			sel, err := s.Next(context.Background(), c, theme)
			return generatedMsg{Selection: sel, Err: err}
		},
	)
}

func (d *DictationScreen) handleGenerated(msg generatedMsg) (screen.Screen, tea.Cmd) {
	d.generating = false
	if msg.Err != nil {
		// The session keeps its previous selection; only report.
		d.errMsg = describeError(msg.Err)
		return d, nil
	}

	d.input.Reset()
	d.graded = false
	d.answer.On = false
	return d, d.play(msg.Selection.Audio)
}

func (d *DictationScreen) play(a *speech.Audio) tea.Cmd {
	if d.player == nil || a == nil || d.playing {
		return nil
	}
	d.playing = true
	p := d.player
	return func() tea.Msg {
		return playedMsg{Err: p.Play(context.Background(), a)}
	}
}

func (d *DictationScreen) submit() (screen.Screen, tea.Cmd) {
	if d.input.Value() == "" {
		return d, nil
	}
	d.verdict = d.session.Grade(d.input.Value())
	d.graded = true
	if d.verdict != sess.NoActiveSentence {
		d.input.Submit(d.verdict == sess.Correct)
	}
	return d, nil
}
