package logger

import (
	"log/slog"

	"github.com/dusted-go/logging/prettylog"
	"github.com/trickypr/sync-party/config"
)

var Log *slog.Logger

func level() slog.Level {
	switch config.Conf.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	Log = slog.New(prettylog.NewHandler(&slog.HandlerOptions{
		Level: level(),
	}))
}
