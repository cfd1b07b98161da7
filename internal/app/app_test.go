package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dictaz/internal/corpus"
	"github.com/abhisek/dictaz/internal/router"
	"github.com/abhisek/dictaz/internal/session"
	"github.com/abhisek/dictaz/internal/speech"
	"github.com/abhisek/dictaz/internal/translate"
)

func testModel() AppModel {
	s := session.New(session.Options{
		Translation: translate.Column{},
		Synthesizer: speech.NewMockSynthesizer(),
	})
	return newAppModel(Options{
		Source:  "builtin",
		Session: s,
		LoadCorpus: func(context.Context) (*corpus.Corpus, error) {
			return corpus.New([]corpus.Row{{Theme: "food", Sentence: "I like rice."}}), nil
		},
	})
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppModel_EscAtRootIsNoop(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc at the root screen should do nothing")
	}
}

func TestAppModel_EscPops(t *testing.T) {
	m := testModel()
	m.router.Push(m.router.Active())
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestAppModel_WindowSize(t *testing.T) {
	m := testModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	am := updated.(AppModel)
	if am.width != 100 || am.height != 30 {
		t.Errorf("size = %dx%d, want 100x30", am.width, am.height)
	}
	if !am.View().AltScreen {
		t.Error("expected alt screen")
	}
	if am.router.View(am.width, am.height) == "" {
		t.Error("expected the loading screen to render")
	}
}

func TestRun_RequiresDependencies(t *testing.T) {
	if err := Run(context.Background(), Options{}); err == nil {
		t.Error("expected error without session and loader")
	}
}
