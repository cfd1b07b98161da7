package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dictaz/internal/corpus"
	"github.com/abhisek/dictaz/internal/selector"
	"github.com/abhisek/dictaz/internal/speech"
	"github.com/abhisek/dictaz/internal/translate"
)

type failingStrategy struct{ err error }

func (f failingStrategy) Translation(context.Context, corpus.Row) (string, error) {
	return "", f.err
}

func newTestSession(strategy translate.Strategy, synth speech.Synthesizer) *Session {
	return New(Options{
		Translation: strategy,
		Synthesizer: synth,
		Voice:       speech.DefaultVoice(),
		Selector:    selector.New(rand.NewPCG(1, 2)),
	})
}

func catRow() corpus.Row {
	return corpus.Row{
		Theme:       "animals",
		Sentence:    "The cat sat.",
		Translation: "猫が座った。",
		Hints:       []corpus.Hint{{Term: "sat", Note: "past tense of sit"}},
	}
}

func dogRow() corpus.Row {
	return corpus.Row{
		Theme:       "animals",
		Sentence:    "The dog ran.",
		Translation: "犬が走った。",
		Hints:       []corpus.Hint{{Term: "ran", Note: "past tense of run"}},
	}
}

func TestNew_EmptySelection(t *testing.T) {
	s := newTestSession(translate.Column{}, speech.NewMockSynthesizer())

	assert.NotEmpty(t, s.ID)
	cur := s.Current()
	assert.True(t, cur.Empty())
	assert.Nil(t, cur.Audio)
	assert.Equal(t, NoActiveSentence, s.Grade("anything"))
}

func TestGenerate_CommitsAllFields(t *testing.T) {
	synth := speech.NewMockSynthesizer()
	s := newTestSession(translate.Column{}, synth)

	got, err := s.Generate(context.Background(), catRow())
	require.NoError(t, err)

	assert.Equal(t, "The cat sat.", got.Sentence)
	assert.Equal(t, "猫が座った。", got.Translation)
	assert.Equal(t, []corpus.Hint{{Term: "sat", Note: "past tense of sit"}}, got.Hints)
	require.NotNil(t, got.Audio)
	assert.Equal(t, "audio/mpeg", got.Audio.MIMEType)

	assert.Equal(t, got, s.Current())

	require.Len(t, synth.Calls, 1)
	assert.Equal(t, "The cat sat.", synth.Calls[0].Text)
	assert.Equal(t, speech.DefaultVoice(), synth.Calls[0].Voice)
}

func TestGenerate_TranslationFailureKeepsPrevious(t *testing.T) {
	synth := speech.NewMockSynthesizer()
	s := newTestSession(translate.Column{}, synth)
	_, err := s.Generate(context.Background(), catRow())
	require.NoError(t, err)
	before := s.Current()

	s.translation = failingStrategy{err: errors.New("service down")}
	_, err = s.Generate(context.Background(), dogRow())

	var te *TranslationError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "The dog ran.", te.Sentence)
	assert.Equal(t, before, s.Current())
	assert.Equal(t, 1, synth.CallCount())
}

func TestGenerate_MissingColumnTranslation(t *testing.T) {
	s := newTestSession(translate.Column{}, speech.NewMockSynthesizer())
	row := dogRow()
	row.Translation = ""

	_, err := s.Generate(context.Background(), row)
	var te *TranslationError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, translate.ErrNoTranslation)
	assert.True(t, s.Current().Empty())
}

func TestGenerate_HintFailureSkipsSynthesis(t *testing.T) {
	synth := speech.NewMockSynthesizer()
	s := newTestSession(translate.Column{}, synth)
	_, err := s.Generate(context.Background(), catRow())
	require.NoError(t, err)
	before := s.Current()

	row := dogRow()
	row.Hints = nil
	row.RawHints = `{"ran": `

	_, err = s.Generate(context.Background(), row)
	var he *corpus.HintDecodeError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, before, s.Current())
	assert.Equal(t, 1, synth.CallCount(), "synthesis must not run after a hint failure")
}

func TestGenerate_RawHintsDecoded(t *testing.T) {
	s := newTestSession(translate.Column{}, speech.NewMockSynthesizer())
	row := dogRow()
	row.Hints = nil
	row.RawHints = `{"dog": "a canine", "ran": "past tense of run"}`

	got, err := s.Generate(context.Background(), row)
	require.NoError(t, err)
	assert.Equal(t, []corpus.Hint{
		{Term: "dog", Note: "a canine"},
		{Term: "ran", Note: "past tense of run"},
	}, got.Hints)
}

func TestGenerate_SynthesisFailureKeepsPrevious(t *testing.T) {
	synth := speech.NewMockSynthesizer()
	s := newTestSession(translate.Column{}, synth)
	_, err := s.Generate(context.Background(), catRow())
	require.NoError(t, err)
	before := s.Current()

	synth.Err = errors.New("quota exceeded")
	_, err = s.Generate(context.Background(), dogRow())

	var se *SynthesisError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Error(), "quota exceeded")
	assert.Equal(t, before, s.Current())
	assert.Equal(t, Correct, s.Grade("the cat sat."))
}

func TestGenerate_EmptyAudioKeepsPrevious(t *testing.T) {
	synth := speech.NewMockSynthesizer()
	s := newTestSession(translate.Column{}, synth)
	_, err := s.Generate(context.Background(), catRow())
	require.NoError(t, err)
	before := s.Current()

	for _, audio := range []*speech.Audio{nil, {MIMEType: "audio/mpeg"}} {
		synth.Audio = audio
		var sel ActiveSelection
		assert.NotPanics(t, func() {
			sel, err = s.Generate(context.Background(), dogRow())
		})

		var se *SynthesisError
		require.ErrorAs(t, err, &se)
		assert.ErrorIs(t, err, speech.ErrEmptyAudio)
		assert.Equal(t, "The dog ran.", se.Sentence)
		assert.True(t, sel.Empty())
		assert.Equal(t, before, s.Current())
	}
}

func TestGenerate_ZeroValueMockSynthesizer(t *testing.T) {
	s := newTestSession(translate.Column{}, &speech.MockSynthesizer{})

	var err error
	assert.NotPanics(t, func() {
		_, err = s.Generate(context.Background(), catRow())
	})
	assert.ErrorIs(t, err, speech.ErrEmptyAudio)
	assert.True(t, s.Current().Empty())
	assert.Equal(t, NoActiveSentence, s.Grade("the cat sat."))
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	s := newTestSession(translate.Column{}, speech.NewMockSynthesizer())
	_, err := s.Generate(context.Background(), catRow())
	require.NoError(t, err)

	cur := s.Current()
	cur.Hints[0].Note = "changed"
	cur.Audio.Data[0] = 'X'

	again := s.Current()
	assert.Equal(t, "past tense of sit", again.Hints[0].Note)
	assert.Equal(t, byte('I'), again.Audio.Data[0])
}

func TestNext(t *testing.T) {
	c := corpus.New([]corpus.Row{
		{Theme: "food", Sentence: "I like rice.", Translation: "ご飯が好き。", Hints: []corpus.Hint{}},
		catRow(),
		dogRow(),
	})
	s := newTestSession(translate.Column{}, speech.NewMockSynthesizer())

	for range 20 {
		got, err := s.Next(context.Background(), c, "animals")
		require.NoError(t, err)
		assert.Contains(t, []string{"The cat sat.", "The dog ran."}, got.Sentence)
	}

	got, err := s.Next(context.Background(), c, "food")
	require.NoError(t, err)
	assert.Equal(t, "I like rice.", got.Sentence)

	_, err = s.Next(context.Background(), c, corpus.AllThemes)
	require.NoError(t, err)

	before := s.Current()
	_, err = s.Next(context.Background(), c, "weather")
	var fe *corpus.EmptyFilterError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, before, s.Current())
}

func TestGrade_ThroughSession(t *testing.T) {
	s := newTestSession(translate.Column{}, speech.NewMockSynthesizer())
	_, err := s.Generate(context.Background(), catRow())
	require.NoError(t, err)

	assert.Equal(t, Correct, s.Grade("the cat sat."))
	assert.Equal(t, Incorrect, s.Grade("The cat sat"))
	assert.Equal(t, "The cat sat.", s.Current().Sentence, "grading must not clear the selection")
}

func TestGenerate_LogsSessionID(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s := New(Options{
		Translation: translate.Column{},
		Synthesizer: speech.NewMockSynthesizer(),
		Voice:       speech.DefaultVoice(),
		Logger:      logger,
	})
	_, err := s.Generate(context.Background(), catRow())
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "sentence generated", entry.Message)
	assert.Equal(t, s.ID, entry.Data["session_id"])
	assert.Equal(t, "animals", entry.Data["theme"])
}
