package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/opeak/internal/config"
)

// Environments recognised by New.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// New creates a preconfigured slog.Logger.
func New(cfg *config.Config) *slog.Logger {
	return build(os.Stdout, cfg.Env, cfg.LogLevel)
}

func build(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	switch env {
	case EnvLocal:
		opts.Level = slog.LevelDebug
		return slog.New(NewPrettyHandler(w, opts))
	case EnvDev:
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a textual level to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
