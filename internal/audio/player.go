// Package audio plays synthesized clips through an external player.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/abhisek/dictaz/internal/speech"
)

// ErrNoPlayer is returned when no player command is configured or found.
var ErrNoPlayer = errors.New("no audio player found (install mpv or ffplay, or set player.command)")

// candidates are tried in order when no command is configured.
var candidates = [][]string{
	{"mpv", "--really-quiet", "--no-video"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"afplay"},
	{"paplay"},
}

// Player runs a command with the clip's file path appended.
type Player struct {
	argv []string
}

// NewPlayer creates a player. An empty command detects one on PATH.
func NewPlayer(command string) (*Player, error) {
	if argv := strings.Fields(command); len(argv) > 0 {
		return &Player{argv: argv}, nil
	}
	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return &Player{argv: c}, nil
		}
	}
	return nil, ErrNoPlayer
}

// Command returns the player program name.
func (p *Player) Command() string {
	return p.argv[0]
}

// Play writes a to a temp file and blocks until the player exits or ctx is
// cancelled.
func (p *Player) Play(ctx context.Context, a *speech.Audio) error {
	if a == nil || len(a.Data) == 0 {
		return fmt.Errorf("no audio to play")
	}

	f, err := os.CreateTemp("", "dictaz-*"+a.Ext())
	if err != nil {
		return fmt.Errorf("create temp audio: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(a.Data); err != nil {
		f.Close()
		return fmt.Errorf("write temp audio: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp audio: %w", err)
	}

	args := append(append([]string{}, p.argv[1:]...), path)
	cmd := exec.CommandContext(ctx, p.argv[0], args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", p.argv[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Save writes a to path, adding the clip's extension when path has none.
func Save(path string, a *speech.Audio) (string, error) {
	if a == nil {
		return "", fmt.Errorf("no audio to save")
	}
	if filepath.Ext(path) == "" {
		path += a.Ext()
	}
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	return path, nil
}
