package observability

import (
	"log/slog"
	"os"

	"github.com/couchcryptid/recall-search-service/internal/config"
)

// NewLogger builds the process logger from config: JSON or text handler,
// level parsed leniently (unknown levels fall back to info).
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
