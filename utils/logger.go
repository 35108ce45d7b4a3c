// Package utils sets up process-wide logging.
package utils

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"
)

// LogOptions selects the slog handler built by InitLogger.
type LogOptions struct {
	Debug  bool
	Stdout bool   // JSON records on stdout
	File   string // text records appended to this file
}

// Logger owns the installed slog logger and the log file behind it, if any.
type Logger struct {
	*slog.Logger
	file *os.File
}

// InitLogger builds a logger from opts and installs it as the slog default.
// Stdout wins over File when both are set.
func InitLogger(opts LogOptions) (*Logger, error) {
	var handlerOpts slog.HandlerOptions
	if opts.Debug {
		handlerOpts.Level = slog.LevelDebug
		handlerOpts.AddSource = true
	} else {
		handlerOpts.Level = slog.LevelInfo
	}

	l := &Logger{}
	var handler slog.Handler
	switch {
	case opts.Stdout:
		handler = slog.NewJSONHandler(os.Stdout, &handlerOpts)
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644) // #nosec G302
		if err != nil {
			return nil, errors.Wrapf(err, "open log file %s", opts.File)
		}
		l.file = f
		handler = slog.NewTextHandler(f, &handlerOpts)
	default:
		handler = slog.NewTextHandler(os.Stderr, &handlerOpts)
	}
	l.Logger = slog.New(handler)
	slog.SetDefault(l.Logger)
	return l, nil
}

// Close releases the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
