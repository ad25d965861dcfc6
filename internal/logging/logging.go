// Package logging builds the process logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// ParseLevel maps a config level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// New returns a tint logger writing to w. Every record carries a per-run
// session id.
func New(w io.Writer, level slog.Leveler, color bool) *slog.Logger {
	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !color,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Drop empty strings (e.g. blank titles) to keep lines short.
			if a.Value.Kind() == slog.KindString && a.Value.String() == "" && len(groups) == 0 && a.Key != slog.MessageKey {
				return slog.Attr{}
			}
			if a.Value.Kind() == slog.KindDuration && a.Value.Duration() == 0 {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(h).With("session", uuid.NewString()[:8])
}

// Stderr returns a logger for line-oriented modes, coloured when stderr is a
// terminal.
func Stderr(level slog.Leveler) *slog.Logger {
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return New(colorable.NewColorable(os.Stderr), level, color)
}

// File returns a logger appending to path. An empty path discards logs,
// which keeps the full-screen UI clean.
func File(path string, level slog.Leveler) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return New(io.Discard, level, false), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := New(f, level, false)
	l.Debug("log opened", "at", time.Now().Format(time.RFC3339))
	return l, f, nil
}
