package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the process-wide structured logger. Until Setup runs it writes
// text records at info level to stderr.
var Logger = newLogger(os.Stderr, false, false)

// Setup replaces Logger. verbose lowers the level to debug, jsonOutput
// switches to slog's JSON handler, and a nil w means stderr.
func Setup(verbose, jsonOutput bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	Logger = newLogger(w, verbose, jsonOutput)
}

func newLogger(w io.Writer, verbose, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Debug logs at debug level; only visible with --verbose.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// With returns a logger carrying args on every record.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}
