package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/dictaz/internal/corpus"
	"github.com/abhisek/dictaz/internal/router"
	"github.com/abhisek/dictaz/internal/screen"
	"github.com/abhisek/dictaz/internal/screens/dictation"
	"github.com/abhisek/dictaz/internal/screens/loading"
	"github.com/abhisek/dictaz/internal/screens/themepicker"
	"github.com/abhisek/dictaz/internal/session"
	"github.com/abhisek/dictaz/internal/ui/layout"
)

// Options holds the dependencies of the interactive app.
type Options struct {
	// Source names where sentences come from, for display.
	Source string

	// LoadCorpus fetches the corpus. It runs behind the loading screen.
	LoadCorpus loading.LoadFunc

	Session *session.Session

	// Player is optional; without it audio is generated but not played.
	Player dictation.Player

	// Theme, when set, skips the picker and starts practicing directly.
	Theme string

	Logger logrus.FieldLogger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the loading screen.
func newAppModel(opts Options) AppModel {
	practice := func(c *corpus.Corpus) themepicker.PracticeFunc {
		return func(theme string) screen.Screen {
			return dictation.New(opts.Session, c, theme, opts.Player)
		}
	}

	next := func(c *corpus.Corpus) screen.Screen {
		if opts.Theme != "" {
			return dictation.New(opts.Session, c, opts.Theme, opts.Player)
		}
		return themepicker.New(c, practice(c))
	}

	return AppModel{
		router: router.New(loading.New(opts.Source, opts.LoadCorpus, next)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Session == nil || opts.LoadCorpus == nil {
		return fmt.Errorf("app: session and corpus loader are required")
	}
	if opts.Logger != nil {
		opts.Logger.WithField("session_id", opts.Session.ID).Info("tui started")
	}

	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
