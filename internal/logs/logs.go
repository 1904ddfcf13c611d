package logs

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// ConsoleLogger configures the process-wide slog default to write tinted
// output to stderr and returns the logger. Verbose enables debug records.
func ConsoleLogger(verbose bool) *slog.Logger {
	w := os.Stderr

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	return logger
}
