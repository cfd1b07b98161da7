package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dictaz/internal/config"
)

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "dictaz.log")
	logger, closer, err := NewLogger(config.LogConfig{Level: "debug", Format: "json", File: path}, true)
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	logger.WithField("session_id", "abc").Info("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session_id":"abc"`)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNewLogger_Stderr(t *testing.T) {
	logger, closer, err := NewLogger(config.LogConfig{Level: "warn", Format: "text"}, false)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.Equal(t, os.Stderr, logger.Out)
	assert.NoError(t, closer.Close())
}

func TestNewLogger_Errors(t *testing.T) {
	_, _, err := NewLogger(config.LogConfig{Level: "loud"}, false)
	assert.Error(t, err)

	_, _, err = NewLogger(config.LogConfig{Level: "info", Format: "xml"}, false)
	assert.Error(t, err)
}
