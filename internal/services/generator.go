package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/MrLemur/dailycommits/internal/models"
	"github.com/MrLemur/dailycommits/internal/ui"
)

// BranchNamer is implemented by engines that can report the checked out branch
type BranchNamer interface {
	GetCurrentBranchName(ctx context.Context, root string) (string, error)
}

// CommitGenerator appends to an activity file and records one backdated
// commit per append
type CommitGenerator struct {
	VCS      VersionControl
	Reporter ui.Reporter
	Rand     *rand.Rand
	Clock    Clock
	// Notes is optional; when set each activity line gets a generated note
	Notes NoteGenerator
	// OpenWorkspace builds the workspace for a discovered root; NewWorkspace when nil
	OpenWorkspace func(root string) Workspace
}

// NewCommitGenerator creates a generator with a random seed and the system clock
func NewCommitGenerator(vcs VersionControl, reporter ui.Reporter) *CommitGenerator {
	return &CommitGenerator{
		VCS:      vcs,
		Reporter: reporter,
		Rand:     NewRand(),
		Clock:    SystemClock(),
	}
}

// Run performs a full run from dir: locate the repository root, plan the
// commit count, create the commits and push if enabled. It stops at the
// first error; commits already created are kept.
func (g *CommitGenerator) Run(ctx context.Context, cfg models.RunConfig, dir string) (*models.RunResult, error) {
	g.Reporter.Status("Locating repository...")
	ws, err := g.LocateRepositoryRoot(ctx, dir)
	if err != nil {
		return nil, err
	}
	g.Reporter.Info("Repository root: %s", ws.Root)

	target, err := ws.RelativePath(cfg.TargetFile)
	if err != nil {
		return nil, err
	}
	cfg.TargetFile = target

	plan := g.PlanCommitCount(cfg)
	g.Reporter.Info("Creating %d commit(s) in %s", plan.Count, cfg.TargetFile)
	result := &models.RunResult{Root: ws.Root, Plan: plan}

	events, err := g.RunCommitLoop(ctx, ws, cfg, plan.Count)
	result.Events = events
	if err != nil {
		return result, err
	}

	pushed, err := g.PushIfEnabled(ctx, ws, cfg)
	result.Pushed = pushed
	if err != nil {
		return result, err
	}
	g.Reporter.Status("Finished")
	return result, nil
}

// LocateRepositoryRoot asks the VCS for the repository enclosing dir
func (g *CommitGenerator) LocateRepositoryRoot(ctx context.Context, dir string) (Workspace, error) {
	root, err := g.VCS.RepositoryRoot(ctx, dir)
	if err != nil {
		return Workspace{}, err
	}
	if g.OpenWorkspace != nil {
		return g.OpenWorkspace(root), nil
	}
	return NewWorkspace(root), nil
}

// PlanCommitCount draws the number of commits from the configured bounds
func (g *CommitGenerator) PlanCommitCount(cfg models.RunConfig) models.CommitPlan {
	return models.CommitPlan{Count: CommitCount(g.Rand, cfg.MinCommits, cfg.MaxCommits)}
}

// RunCommitLoop creates count commits, one appended line each. It returns
// the events of the commits that were recorded before any failure.
func (g *CommitGenerator) RunCommitLoop(ctx context.Context, ws Workspace, cfg models.RunConfig, count int) ([]models.CommitEvent, error) {
	var events []models.CommitEvent
	g.Reporter.Progress(0, count)

	var lastWrite time.Time
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return events, err
		}

		writtenAt, err := g.nextWriteTime(ctx, lastWrite)
		if err != nil {
			return events, err
		}
		lastWrite = writtenAt

		event := models.CommitEvent{
			Sequence:   i,
			Total:      count,
			WrittenAt:  writtenAt,
			CommitTime: RandomTimeOfDay(g.Rand, writtenAt),
			Message:    models.CommitMessage(writtenAt, i, count),
		}
		if g.Notes != nil {
			note, err := g.Notes.Note(ctx, event)
			if err != nil {
				g.Reporter.Warn("Skipping note for commit %s: %v", event.Progress(), err)
			} else {
				event.Note = note
			}
		}

		g.Reporter.Status(fmt.Sprintf("Creating commit %s...", event.Progress()))
		g.Reporter.CommitDetails(event)

		if err := AppendLine(ws.FS, cfg.TargetFile, event.ActivityLine()); err != nil {
			return events, err
		}
		if err := g.VCS.Stage(ctx, ws.Root, cfg.TargetFile); err != nil {
			return events, err
		}
		if err := g.VCS.Commit(ctx, ws.Root, event.Message, event.CommitTime); err != nil {
			return events, err
		}

		events = append(events, event)
		g.Reporter.Success("commit %s at %s", event.Progress(), event.CommitTime.Format(models.WriteTimeLayout))
		g.Reporter.Progress(i, count)
	}
	return events, nil
}

// nextWriteTime returns the current time truncated to the second, waiting
// for the next second when it would not be after last
func (g *CommitGenerator) nextWriteTime(ctx context.Context, last time.Time) (time.Time, error) {
	now := g.Clock.Now().Truncate(time.Second)
	for !last.IsZero() && !now.After(last) {
		wait := last.Add(time.Second).Sub(g.Clock.Now())
		if wait <= 0 {
			wait = time.Millisecond
		}
		if err := g.Clock.Sleep(ctx, wait); err != nil {
			return time.Time{}, err
		}
		now = g.Clock.Now().Truncate(time.Second)
	}
	return now, nil
}

// PushIfEnabled pushes once when the configuration allows it and reports
// whether a push happened
func (g *CommitGenerator) PushIfEnabled(ctx context.Context, ws Workspace, cfg models.RunConfig) (bool, error) {
	if !cfg.PushEnabled {
		g.Reporter.Info("Push disabled, skipping")
		return false, nil
	}

	target := "remote"
	if namer, ok := g.VCS.(BranchNamer); ok {
		if branch, err := namer.GetCurrentBranchName(ctx, ws.Root); err == nil && branch != "" {
			target = "remote (" + branch + ")"
		}
	}
	g.Reporter.Status("Pushing to " + target + "...")
	if err := g.VCS.Push(ctx, ws.Root); err != nil {
		return false, err
	}
	g.Reporter.Success("pushed to %s", target)
	return true, nil
}
