package ui

import "github.com/MrLemur/dailycommits/internal/models"

// Reporter receives progress from a run.
// The console and terminal UI implementations both satisfy it, and tests
// can record calls without any output.
type Reporter interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	// Status replaces the one-line status of the run
	Status(text string)
	// Progress reports done commits out of total
	Progress(done, total int)
	// CommitDetails shows the commit currently being created
	CommitDetails(event models.CommitEvent)
	Close()
}
