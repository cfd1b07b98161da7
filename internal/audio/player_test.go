package audio

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dictaz/internal/speech"
)

func clip() *speech.Audio {
	return &speech.Audio{Data: []byte("ID3fake"), MIMEType: "audio/mpeg"}
}

func TestPlayer_Play(t *testing.T) {
	p, err := NewPlayer("test -s")
	require.NoError(t, err)
	assert.Equal(t, "test", p.Command())

	assert.NoError(t, p.Play(context.Background(), clip()))
}

func TestPlayer_PlayFailure(t *testing.T) {
	p, err := NewPlayer("false")
	require.NoError(t, err)

	err = p.Play(context.Background(), clip())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "false")
}

func TestPlayer_NoAudio(t *testing.T) {
	p, err := NewPlayer("true")
	require.NoError(t, err)

	assert.Error(t, p.Play(context.Background(), nil))
	assert.Error(t, p.Play(context.Background(), &speech.Audio{}))
}

func TestNewPlayer_NothingOnPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := NewPlayer("")
	assert.ErrorIs(t, err, ErrNoPlayer)
}

func TestSave(t *testing.T) {
	dir := t.TempDir()

	path, err := Save(filepath.Join(dir, "sentence"), clip())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sentence.mp3"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3fake"), data)

	path, err = Save(filepath.Join(dir, "out.bin"), clip())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.bin"), path)

	_, err = Save(filepath.Join(dir, "x"), nil)
	assert.Error(t, err)
}
