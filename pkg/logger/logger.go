package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

func Init() {
	level := slog.LevelInfo
	if os.Getenv("GIN_MODE") != "release" {
		level = slog.LevelDebug
	}

	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
