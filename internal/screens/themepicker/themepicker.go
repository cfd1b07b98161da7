// Package themepicker lets the learner choose which theme to practice.
package themepicker

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dictaz/internal/corpus"
	"github.com/abhisek/dictaz/internal/router"
	"github.com/abhisek/dictaz/internal/screen"
	"github.com/abhisek/dictaz/internal/ui/components"
	"github.com/abhisek/dictaz/internal/ui/layout"
	"github.com/abhisek/dictaz/internal/ui/theme"
)

// PracticeFunc builds the practice screen for a theme, which may be
// corpus.AllThemes.
type PracticeFunc func(theme string) screen.Screen

// ThemePickerScreen lists the corpus themes with an "all themes" toggle.
type ThemePickerScreen struct {
	menu     components.Menu
	all      components.Toggle
	total    int
	practice PracticeFunc
}

var _ screen.Screen = (*ThemePickerScreen)(nil)
var _ screen.KeyHintProvider = (*ThemePickerScreen)(nil)
var _ screen.StatusProvider = (*ThemePickerScreen)(nil)

// New creates a picker over c's themes in first-appearance order.
func New(c *corpus.Corpus, practice PracticeFunc) *ThemePickerScreen {
	p := &ThemePickerScreen{
		all:      components.Toggle{Key: "a", Label: "Random sentence from all themes"},
		total:    c.Len(),
		practice: practice,
	}

	counts := c.CountByTheme()
	themes := c.DistinctThemes()
	items := make([]components.MenuItem, 0, len(themes))
	for _, name := range themes {
		items = append(items, components.MenuItem{
			Label:  name,
			Detail: pluralize(counts[name]),
			Action: func() tea.Cmd { return p.start(name) },
		})
	}
	p.menu = components.NewMenu(items)
	return p
}

// Selected returns the theme that Enter would start.
func (p *ThemePickerScreen) Selected() string {
	if p.all.On {
		return corpus.AllThemes
	}
	if item, ok := p.menu.Current(); ok {
		return item.Label
	}
	return corpus.AllThemes
}

func (p *ThemePickerScreen) start(name string) tea.Cmd {
	if p.all.On {
		name = corpus.AllThemes
	}
	next := p.practice(name)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func (p *ThemePickerScreen) Init() tea.Cmd {
	return nil
}

func (p *ThemePickerScreen) Title() string {
	return "Choose a Theme"
}

func (p *ThemePickerScreen) Status() string {
	return p.Selected()
}

func (p *ThemePickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Theme"},
		{Key: "A", Description: "All themes"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (p *ThemePickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "a", "space":
			p.all.Flip()
			return p, nil
		case "enter":
			if p.all.On || len(p.menu.Items) == 0 {
				return p, p.start(corpus.AllThemes)
			}
		case "q":
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *ThemePickerScreen) View(width, height int) string {
	cw := min(width-4, 60)

	heading := theme.Title.Width(cw).Render("What would you like to practice?")
	sub := theme.Subtitle.Width(cw).Render(fmt.Sprintf("%s across %d themes", pluralize(p.total), len(p.menu.Items)))

	menu := p.menu.View()
	if p.all.On {
		menu = lipgloss.NewStyle().Foreground(theme.TextDim).Render(stripSelection(menu))
	}

	body := theme.Card.Width(cw).Render(menu + "\n" + p.all.View())

	content := strings.Join([]string{heading, sub, "", body}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// stripSelection removes the cursor so the list reads as inactive.
func stripSelection(s string) string {
	return strings.Replace(s, "▸", " ", 1)
}

func pluralize(n int) string {
	if n == 1 {
		return "1 sentence"
	}
	return fmt.Sprintf("%d sentences", n)
}
