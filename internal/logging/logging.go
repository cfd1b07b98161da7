// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/dictaz/internal/config"
)

// NewLogger builds a configured logrus logger. When toFile is set, output goes
// to cfg.File (created along with its directory) because the TUI owns the
// terminal; otherwise it goes to stderr. The returned closer releases the file.
func NewLogger(cfg config.LogConfig, toFile bool) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: toFile})
	default:
		return nil, nil, fmt.Errorf("unknown log format: %q", cfg.Format)
	}

	if !toFile {
		logger.SetOutput(os.Stderr)
		return logger, io.NopCloser(nil), nil
	}
	if cfg.File == "" {
		logger.SetOutput(io.Discard)
		return logger, io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}
