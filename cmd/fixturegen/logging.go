package main

import (
	"io"
	"log/slog"
)

// newLogger writes to w, keeping stdout free for fixtures. Debug level is
// enabled with verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case "error":
				a.Key = "err"
			}
			return a
		},
	}))
}
