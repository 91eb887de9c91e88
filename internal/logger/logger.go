package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var Log zerolog.Logger

// Init configures the process-wide logger. Dev mode writes human-readable
// lines to stderr; otherwise JSON is emitted.
func Init(isDev bool, level string) {
	Log = New(os.Stderr, isDev, level)
}

// New builds a logger on w. Unknown levels fall back to info.
func New(w io.Writer, isDev bool, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if isDev {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
		}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func IsDev() bool {
	env := os.Getenv("ENV")
	return env == "" || env == "dev" || env == "development"
}
