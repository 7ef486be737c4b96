package logs

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Init sets the process-wide slog default to a tint handler on stderr.
// Operator-facing output goes through internal/message; slog carries
// diagnostics only.
func Init(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

// ConsoleLogger returns a tint-backed logger for callers that want their own
// handle rather than the default.
func ConsoleLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, nil))
}
