// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ik5/audsr/config"
)

// initLogger builds the process logger. The returned closer releases a log
// file when one is configured.
func initLogger(cfg config.LoggingConfig) (*slog.Logger, func() error, error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var (
		output io.Writer
		closer = func() error { return nil }
	)
	switch cfg.Output {
	case "stderr", "":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.Output, err)
		}
		output = file
		closer = file.Close
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler), closer, nil
}
