package logging

import (
	"io"
	"log/slog"
	"os"
)

var (
	// Logger is the global structured logger
	Logger *slog.Logger

	// Verbose enables debug logging
	Verbose bool
)

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Options controls how Setup builds the global logger.
type Options struct {
	Verbose bool
	JSON    bool
	Writer  io.Writer // defaults to stderr
}

// Setup configures the logger based on verbosity and output preferences
func Setup(opts Options) {
	Verbose = opts.Verbose

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	if opts.JSON {
		Logger = slog.New(slog.NewJSONHandler(w, handlerOpts))
	} else {
		Logger = slog.New(slog.NewTextHandler(w, handlerOpts))
	}
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// With returns a logger with additional attributes
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

// Component returns a logger tagged with the given component name.
// It binds to the logger current at call time, so call it after Setup.
func Component(name string) *slog.Logger {
	return Logger.With("component", name)
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
