// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging configures the structured logger shared by all stages.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citegraph/pkg/types"
)

// New builds a zerolog logger from cfg. With a File set the log is appended
// there (the collection runs produce a lot of per-page debug output that is
// better kept out of the terminal); otherwise it goes to stderr. The console
// format wraps the output in zerolog's ConsoleWriter.
func New(cfg types.LoggingConfig) (zerolog.Logger, func() error, error) {
	closer := func() error { return nil }

	var out io.Writer = os.Stderr
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("opening log file %s: %w", cfg.File, err)
		}
		out = f
		closer = f.Close
	}

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	logger := zerolog.New(out).With().Timestamp().Logger().Level(parseLevel(cfg.Level))
	return logger, closer, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "", "info":
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}
