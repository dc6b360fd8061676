// Package logging builds the application logger. The TUI owns the
// terminal, so logs go to a file rather than stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a JSON file logger at path, creating parent directories.
// The returned closer flushes buffered entries and should run at exit.
func New(path string, debug bool) (*zap.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// DefaultPath resolves the log file location: VIMDOJO_LOG, then
// XDG_STATE_HOME, then ~/.local/state.
func DefaultPath() string {
	if path := os.Getenv("VIMDOJO_LOG"); path != "" {
		return path
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "vimdojo", "vimdojo.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "vimdojo.log")
	}
	return filepath.Join(home, ".local", "state", "vimdojo", "vimdojo.log")
}
