package config

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger writing to stderr with the level taken from
// LOG_LEVEL (debug, info, warn, error). Unknown levels fall back to info.
func NewLogger(prefix string) *log.Logger {
	return newLogger(os.Stderr, prefix, GetEnv("LOG_LEVEL", "info"))
}

func newLogger(w io.Writer, prefix, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}
