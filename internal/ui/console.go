package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/MrLemur/dailycommits/internal/models"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// ConsoleReporter prints progress as log lines
type ConsoleReporter struct {
	log zerolog.Logger
}

// NewConsoleReporter creates a reporter writing human readable lines to w,
// colored only when w is a terminal. Shell commands and per-commit details
// are shown when verbose is set.
func NewConsoleReporter(w io.Writer, verbose bool) *ConsoleReporter {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: noColor}).
		Level(level).
		With().
		Timestamp().
		Logger()
	SetConsoleLogger(logger)
	return &ConsoleReporter{log: logger}
}

// Info logs an informational message
func (r *ConsoleReporter) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	record(zerolog.InfoLevel, msg)
	r.log.Info().Msg(msg)
}

// Success logs a success message
func (r *ConsoleReporter) Success(format string, args ...any) {
	msg := "✓ " + fmt.Sprintf(format, args...)
	record(zerolog.InfoLevel, msg)
	r.log.Info().Msg(msg)
}

// Warn logs a warning
func (r *ConsoleReporter) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	record(zerolog.WarnLevel, msg)
	r.log.Warn().Msg(msg)
}

// Error logs an error message
func (r *ConsoleReporter) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	record(zerolog.ErrorLevel, msg)
	r.log.Error().Msg(msg)
}

// Status logs the status at debug level
func (r *ConsoleReporter) Status(text string) {
	record(zerolog.DebugLevel, text)
	r.log.Debug().Msg(text)
}

// Progress logs the commit counter at debug level
func (r *ConsoleReporter) Progress(done, total int) {
	r.log.Debug().Int("done", done).Int("total", total).Msg("progress")
}

// CommitDetails logs the commit being created at debug level
func (r *ConsoleReporter) CommitDetails(event models.CommitEvent) {
	r.log.Debug().
		Str("progress", event.Progress()).
		Str("commit_time", event.CommitTime.Format(models.WriteTimeLayout)).
		Str("message", event.Message).
		Msg("creating commit")
}

// Close implements Reporter
func (r *ConsoleReporter) Close() {}
