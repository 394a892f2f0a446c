package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns JSON logger writing to w. LOG_LEVEL overrides the given level;
// unparsable levels fall back to warn.
func New(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelWarn
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	if level != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(level)); err == nil {
			lvl = parsed
		}
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h)
}
