package common

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger. Records go to w as JSON; stdout is
// reserved for extracted text, so callers pass stderr. An empty level
// returns a logger that drops everything.
func NewLogger(w io.Writer, cfg LogConfig) *slog.Logger {
	if cfg.Level == "" {
		return slog.New(slog.DiscardHandler)
	}
	lvl, err := ParseLogLevel(cfg.Level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	}))
}
