// Package logger installs the process-wide slog logger, rendered by charmbracelet/log.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a slog.Logger backed by a charmbracelet/log handler.
// Unknown levels fall back to info and unknown formats to text.
func New(w io.Writer, level, format string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           lvl,
		Formatter:       formatter(format),
	})
	return slog.New(handler)
}

// Setup installs New(os.Stderr, level, format) as the slog default.
func Setup(level, format string) *slog.Logger {
	l := New(os.Stderr, level, format)
	slog.SetDefault(l)
	return l
}

func formatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
