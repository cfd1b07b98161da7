// Package loading shows the banner while the corpus is fetched, then hands
// off to the next screen.
package loading

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dictaz/internal/corpus"
	"github.com/abhisek/dictaz/internal/router"
	"github.com/abhisek/dictaz/internal/screen"
	"github.com/abhisek/dictaz/internal/ui/layout"
	"github.com/abhisek/dictaz/internal/ui/theme"
)

// LoadFunc fetches the corpus.
type LoadFunc func(ctx context.Context) (*corpus.Corpus, error)

// NextFunc builds the screen shown once the corpus is loaded.
type NextFunc func(c *corpus.Corpus) screen.Screen

type loadedMsg struct {
	Corpus *corpus.Corpus
	Err    error
}

// LoadingScreen runs LoadFunc and replaces itself with the next screen.
type LoadingScreen struct {
	load    LoadFunc
	next    NextFunc
	source  string
	spinner spinner.Model
	err     error
	done    bool
}

var _ screen.Screen = (*LoadingScreen)(nil)
var _ screen.KeyHintProvider = (*LoadingScreen)(nil)

// New creates a LoadingScreen. source describes where sentences come from.
func New(source string, load LoadFunc, next NextFunc) *LoadingScreen {
	return &LoadingScreen{
		load:    load,
		next:    next,
		source:  source,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (l *LoadingScreen) Title() string {
	return ""
}

func (l *LoadingScreen) KeyHints() []layout.KeyHint {
	if l.err != nil {
		return []layout.KeyHint{
			{Key: "any key", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoadingScreen) Init() tea.Cmd {
	load := l.load
	return tea.Batch(
		l.spinner.Tick,
		func() tea.Msg {
			c, err := load(context.Background())
			return loadedMsg{Corpus: c, Err: err}
		},
	)
}

func (l *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			l.err = msg.Err
			return l, nil
		}
		return l, l.transition(msg.Corpus)

	case spinner.TickMsg:
		if l.err != nil || l.done {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd

	case tea.KeyPressMsg:
		if l.err != nil {
			return l, tea.Quit
		}
	}
	return l, nil
}

func (l *LoadingScreen) transition(c *corpus.Corpus) tea.Cmd {
	if l.done {
		return nil
	}
	l.done = true
	next := l.next(c)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (l *LoadingScreen) View(width, height int) string {
	sections := []string{RenderBanner(width), ""}

	if l.err != nil {
		sections = append(sections,
			layout.RenderError("Could not load sentences from "+l.source),
			lipgloss.NewStyle().Foreground(theme.TextDim).Width(width-8).Render(l.err.Error()),
		)
	} else {
		sections = append(sections,
			l.spinner.View()+" "+theme.Body.Render("Loading sentences from "+l.source+"..."),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
