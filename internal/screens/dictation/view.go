package dictation

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dictaz/internal/corpus"
	sess "github.com/abhisek/dictaz/internal/session"
	"github.com/abhisek/dictaz/internal/ui/layout"
	"github.com/abhisek/dictaz/internal/ui/theme"
)

func (d *DictationScreen) View(width, height int) string {
	cw := min(width-4, 76)
	cur := d.session.Current()

	var sections []string
	sections = append(sections, d.renderStatus(cur))
	sections = append(sections, "", d.input.View())

	if d.graded {
		sections = append(sections, "", renderVerdict(d.verdict))
	}

	sections = append(sections, "", strings.Join([]string{
		d.translation.View(), d.hints.View(), d.answer.View(),
	}, "   "))

	if !cur.Empty() {
		if d.translation.On {
			sections = append(sections, "", layout.RenderPanel("Translation", theme.Translation.Render(cur.Translation), cw))
		}
		if d.hints.On {
			sections = append(sections, "", layout.RenderPanel("Hints", renderHints(cur.Hints), cw))
		}
		if d.answer.On {
			sections = append(sections, "", layout.RenderPanel("Answer", theme.Sentence.Render(cur.Sentence), cw))
		}
	}

	if d.errMsg != "" {
		sections = append(sections, "", layout.RenderError(d.errMsg))
	}

	content := lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+content)
}

func (d *DictationScreen) renderStatus(cur sess.ActiveSelection) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	switch {
	case d.generating:
		return d.spinner.View() + " " + theme.Body.Render("Preparing a sentence...")
	case cur.Empty():
		return theme.Body.Render("Press ") + theme.HintTerm.Render("Ctrl+N") + theme.Body.Render(" to hear your first sentence.")
	case d.playing:
		return theme.Body.Render("♪ Playing...")
	case d.player == nil:
		return dim.Render("♪ Audio ready (no player configured)")
	default:
		return theme.Body.Render("♪ Listen and type. ") + dim.Render("Ctrl+R replays.")
	}
}

func renderVerdict(v sess.Verdict) string {
	switch v {
	case sess.Correct:
		return theme.Correct.Render(v.Message())
	case sess.Incorrect:
		return theme.Incorrect.Render(v.Message())
	default:
		return theme.Hint.Render(v.Message())
	}
}

// renderHints renders one "term: note" line per hint.
func renderHints(hints []corpus.Hint) string {
	if len(hints) == 0 {
		return theme.Hint.Render("No hints for this sentence.")
	}
	lines := make([]string, 0, len(hints))
	for _, h := range hints {
		lines = append(lines, theme.HintTerm.Render(h.Term)+theme.HintNote.Render(": "+h.Note))
	}
	return strings.Join(lines, "\n")
}

// describeError turns a Generate failure into a one-line message.
func describeError(err error) string {
	var (
		empty *corpus.EmptyFilterError
		hint  *corpus.HintDecodeError
		tr    *sess.TranslationError
		syn   *sess.SynthesisError
	)
	switch {
	case errors.As(err, &empty):
		return fmt.Sprintf("No sentences for theme %q.", empty.Theme)
	case errors.As(err, &tr):
		return "Translation failed: " + tr.Err.Error()
	case errors.As(err, &hint):
		return "This sentence has malformed hints: " + hint.Err.Error()
	case errors.As(err, &syn):
		return "Speech synthesis failed: " + syn.Err.Error()
	default:
		return err.Error()
	}
}
