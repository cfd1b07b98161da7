package dictation

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dictaz/internal/corpus"
	"github.com/abhisek/dictaz/internal/selector"
	sess "github.com/abhisek/dictaz/internal/session"
	"github.com/abhisek/dictaz/internal/speech"
	"github.com/abhisek/dictaz/internal/translate"
)

// recordingPlayer records played clips.
type recordingPlayer struct {
	mu     sync.Mutex
	played int
	err    error
}

func (p *recordingPlayer) Play(context.Context, *speech.Audio) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played++
	return p.err
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func typeText(d *DictationScreen, s string) {
	for _, r := range s {
		d.Update(keyPress(r))
	}
}

// find runs cmd, unpacking batches, and returns the first message of type T.
func find[T any](cmd tea.Cmd) (T, bool) {
	var zero T
	if cmd == nil {
		return zero, false
	}
	switch msg := cmd().(type) {
	case T:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if m, ok := find[T](c); ok {
				return m, true
			}
		}
	}
	return zero, false
}

func testCorpus() *corpus.Corpus {
	return corpus.New([]corpus.Row{{
		Theme:       "animals",
		Sentence:    "The cat sat.",
		Translation: "猫が座った。",
		Hints:       []corpus.Hint{{Term: "sat", Note: "past tense of sit"}},
	}})
}

func testScreen(synth *speech.MockSynthesizer, player Player) *DictationScreen {
	s := sess.New(sess.Options{
		Translation: translate.Column{},
		Synthesizer: synth,
		Voice:       speech.DefaultVoice(),
		Selector:    selector.New(rand.NewPCG(1, 1)),
	})
	return New(s, testCorpus(), "animals", player)
}

// generateNow presses Ctrl+N and feeds the result back.
func generateNow(t *testing.T, d *DictationScreen) tea.Cmd {
	t.Helper()
	_, cmd := d.Update(ctrlKey('n'))
	msg, ok := find[generatedMsg](cmd)
	if !ok {
		t.Fatal("expected generatedMsg")
	}
	_, next := d.Update(msg)
	return next
}

func TestDictation_Title(t *testing.T) {
	d := testScreen(speech.NewMockSynthesizer(), nil)
	if d.Title() != "Dictation" {
		t.Errorf("Title = %q, want Dictation", d.Title())
	}
	if d.Status() != "animals" {
		t.Errorf("Status = %q, want animals", d.Status())
	}
}

func TestDictation_EmptyPrompt(t *testing.T) {
	d := testScreen(speech.NewMockSynthesizer(), nil)
	if !strings.Contains(d.View(80, 24), "first sentence") {
		t.Error("expected first-sentence prompt before generating")
	}
}

func TestDictation_GradeBeforeGenerate(t *testing.T) {
	d := testScreen(speech.NewMockSynthesizer(), nil)
	typeText(d, "hello")
	d.Update(specialKey(tea.KeyEnter))

	if d.verdict != sess.NoActiveSentence {
		t.Errorf("verdict = %v, want NoActiveSentence", d.verdict)
	}
}

func TestDictation_GenerateAndGrade(t *testing.T) {
	player := &recordingPlayer{}
	d := testScreen(speech.NewMockSynthesizer(), player)

	playCmd := generateNow(t, d)
	if d.generating {
		t.Error("generating should be cleared")
	}
	played, ok := find[playedMsg](playCmd)
	if !ok {
		t.Fatal("expected autoplay after generate")
	}
	d.Update(played)
	if player.played != 1 {
		t.Errorf("played %d times, want 1", player.played)
	}

	typeText(d, "the cat sat.")
	d.Update(specialKey(tea.KeyEnter))
	if d.verdict != sess.Correct {
		t.Errorf("verdict = %v, want Correct", d.verdict)
	}
	if !strings.Contains(d.View(80, 40), "You Got It !!") {
		t.Error("expected success message")
	}

	d.Update(specialKey(tea.KeyBackspace))
	if d.graded {
		t.Error("editing should clear the verdict")
	}
	d.Update(specialKey(tea.KeyEnter))
	if d.verdict != sess.Incorrect {
		t.Errorf("verdict = %v, want Incorrect", d.verdict)
	}
	if !strings.Contains(d.View(80, 40), "Try again.") {
		t.Error("expected retry message")
	}
}

func TestDictation_RevealToggles(t *testing.T) {
	d := testScreen(speech.NewMockSynthesizer(), nil)
	generateNow(t, d)

	view := d.View(100, 40)
	if strings.Contains(view, "猫が座った。") || strings.Contains(view, "past tense of sit") {
		t.Error("nothing should be revealed by default")
	}

	d.Update(ctrlKey('t'))
	d.Update(ctrlKey('o'))
	d.Update(ctrlKey('s'))
	view = d.View(100, 40)
	for _, want := range []string{"猫が座った。", "sat", "past tense of sit", "The cat sat."} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}

	// A new sentence hides the answer again but keeps the other reveals.
	generateNow(t, d)
	if d.answer.On {
		t.Error("answer toggle should reset on a new sentence")
	}
	if !d.translation.On || !d.hints.On {
		t.Error("translation and hint toggles should persist")
	}
}

func TestDictation_ErrorKeepsSelection(t *testing.T) {
	synth := speech.NewMockSynthesizer()
	d := testScreen(synth, nil)
	generateNow(t, d)

	synth.Err = errors.New("quota exceeded")
	generateNow(t, d)

	if !strings.Contains(d.errMsg, "Speech synthesis failed") {
		t.Errorf("errMsg = %q", d.errMsg)
	}
	if d.session.Current().Sentence != "The cat sat." {
		t.Error("previous selection should survive a failed generate")
	}

	synth.Err = nil
	generateNow(t, d)
	if d.errMsg != "" {
		t.Error("a successful generate should clear the error")
	}
}

func TestDictation_EmptyTheme(t *testing.T) {
	s := sess.New(sess.Options{
		Translation: translate.Column{},
		Synthesizer: speech.NewMockSynthesizer(),
	})
	d := New(s, testCorpus(), "weather", nil)
	generateNow(t, d)

	if !strings.Contains(d.errMsg, `No sentences for theme "weather"`) {
		t.Errorf("errMsg = %q", d.errMsg)
	}
}

func TestDictation_ReplayWithoutPlayer(t *testing.T) {
	d := testScreen(speech.NewMockSynthesizer(), nil)
	generateNow(t, d)

	_, cmd := d.Update(ctrlKey('r'))
	if cmd != nil {
		t.Error("replay without a player should do nothing")
	}
	if !strings.Contains(d.View(80, 24), "no player configured") {
		t.Error("expected no-player notice")
	}
}

func TestDictation_PlaybackError(t *testing.T) {
	player := &recordingPlayer{err: errors.New("mpv: exit status 2")}
	d := testScreen(speech.NewMockSynthesizer(), player)
	playCmd := generateNow(t, d)

	played, ok := find[playedMsg](playCmd)
	if !ok {
		t.Fatal("expected playedMsg")
	}
	d.Update(played)
	if !strings.Contains(d.errMsg, "Playback failed") {
		t.Errorf("errMsg = %q", d.errMsg)
	}
}

func TestDictation_DoubleGenerateIgnored(t *testing.T) {
	d := testScreen(speech.NewMockSynthesizer(), nil)
	d.Update(ctrlKey('n'))
	_, cmd := d.Update(ctrlKey('n'))
	if cmd != nil {
		t.Error("second Ctrl+N while generating should be ignored")
	}
}
