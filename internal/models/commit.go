package models

import (
	"fmt"
	"time"
)

const (
	// DefaultTargetFile is the activity file used when no path is given
	DefaultTargetFile = "activity.txt"
	// DefaultMinCommits is the lower commit bound used when no bounds are given
	DefaultMinCommits = 1
	// DefaultMaxCommits is the upper commit bound used when no bounds are given
	DefaultMaxCommits = 10

	// WriteTimeLayout is the local, second precision ISO-8601 layout of activity lines
	WriteTimeLayout = "2006-01-02T15:04:05"
	// DateLayout is the calendar date layout used in commit messages
	DateLayout      = "2006-01-02"
)

// RunConfig holds the normalized inputs of a single run
type RunConfig struct {
	TargetFile  string `json:"target_file"`
	MinCommits  int    `json:"min_commits"`
	MaxCommits  int    `json:"max_commits"`
	PushEnabled bool   `json:"push_enabled"`
}

// CommitPlan is the number of commits a run will create
type CommitPlan struct {
	Count int `json:"count"`
}

// CommitEvent describes one iteration of the commit loop
type CommitEvent struct {
	Sequence   int       `json:"sequence"`
	Total      int       `json:"total"`
	WrittenAt  time.Time `json:"written_at"`
	CommitTime time.Time `json:"commit_time"`
	Message    string    `json:"message"`
	Note       string    `json:"note,omitempty"`
}

// RunResult summarizes a completed run
type RunResult struct {
	Root   string        `json:"root"`
	Plan   CommitPlan    `json:"plan"`
	Events []CommitEvent `json:"events"`
	Pushed bool          `json:"pushed"`
}

// CommitMessage formats the message recorded for commit i of total on day
func CommitMessage(day time.Time, i, total int) string {
	return fmt.Sprintf("Automated commit on %s (%d/%d)", day.Format(DateLayout), i, total)
}

// ActivityLine returns the line appended to the target file for this event,
// without the trailing newline
func (e CommitEvent) ActivityLine() string {
	line := fmt.Sprintf("%s - automated commit %d/%d", e.WrittenAt.Format(WriteTimeLayout), e.Sequence, e.Total)
	if e.Note != "" {
		line += " | " + e.Note
	}
	return line
}

// Progress returns the "i/total" fragment of the event
func (e CommitEvent) Progress() string {
	return fmt.Sprintf("%d/%d", e.Sequence, e.Total)
}
