package logger

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// New returns the process-wide structured logger. Local development gets
// colorized tint output; production (LOG_FORMAT=json) gets JSON lines.
func New() *slog.Logger {
	if os.Getenv("LOG_FORMAT") == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		TimeFormat: time.TimeOnly,
	}))
}
