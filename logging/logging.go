// Package logging builds the structured logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Options configures New.
type Options struct {
	Level  string // debug, info, warn, error; empty means info
	Format string // text or json
	RunID  string // attached to every record when set
}

// New returns a logger writing to w. Diagnostics go to stderr in the CLI so
// stdout carries only the formatted outcome. An unparsable level falls back
// to info; callers validate it up front with ParseLevel.
func New(w io.Writer, opts Options) *slog.Logger {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewTextHandler(w, handlerOpts)
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.RunID != "" {
		logger = logger.With("run_id", opts.RunID)
	}
	return logger
}

// ParseLevel accepts the slog level names (case-insensitive, offsets such as
// "debug+2" included) plus "warning".
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
