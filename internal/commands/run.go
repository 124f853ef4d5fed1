package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MrLemur/dailycommits/internal/models"
	"github.com/MrLemur/dailycommits/internal/services"
	"github.com/MrLemur/dailycommits/internal/ui"
)

// Supported git engines
const (
	EngineExec  = "exec"
	EngineGoGit = "gogit"
)

// NewVersionControl returns the engine selected by name
func NewVersionControl(engine string) (services.VersionControl, error) {
	switch engine {
	case EngineExec, "":
		return services.NewExecGit(), nil
	case EngineGoGit:
		return services.NewGoGit(), nil
	default:
		return nil, fmt.Errorf("%w: unknown engine %q (want %s or %s)", services.ErrInvalidArgument, engine, EngineExec, EngineGoGit)
	}
}

// RunApplication runs the application with the parsed flags and positional
// arguments and returns the process exit status
func RunApplication(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if DebugLogFile != "" {
		if err := ui.InitDebugLogging(DebugLogFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize debug logging: %v\n", err)
			return 1
		}
		defer ui.CloseDebugLog()
	}

	cfg, err := ResolveConfig(args, os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		usage()
		return services.ExitCode(err)
	}
	vcs, err := NewVersionControl(Engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return services.ExitCode(err)
	}

	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to determine working directory: %v\n", err)
		return 1
	}

	if UseTUI {
		return runWithTUI(ctx, stop, cfg, vcs, dir)
	}
	reporter := ui.NewConsoleReporter(os.Stderr, Verbose)
	_, err = execute(ctx, cfg, vcs, reporter, dir)
	return services.ExitCode(err)
}

func runWithTUI(ctx context.Context, cancel context.CancelFunc, cfg models.RunConfig, vcs services.VersionControl, dir string) int {
	tui := ui.NewTUI(cancel)
	tui.Start()
	defer tui.Close()

	result, err := execute(ctx, cfg, vcs, tui, dir)
	if ctx.Err() == nil {
		if err != nil {
			tui.Status("Failed. Press q or Ctrl+C to exit")
		} else {
			tui.Status("Finished. Press q or Ctrl+C to exit")
		}
		if waitErr := tui.Wait(); waitErr != nil {
			fmt.Fprintf(os.Stderr, "Terminal UI failed: %v\n", waitErr)
		}
	}

	// The terminal UI clears the screen on exit, so repeat the outcome.
	printSummary(os.Stdout, os.Stderr, result, err)
	return services.ExitCode(err)
}

// execute wires the generator for one run and reports a fatal error
func execute(ctx context.Context, cfg models.RunConfig, vcs services.VersionControl, reporter ui.Reporter, dir string) (*models.RunResult, error) {
	generator := services.NewCommitGenerator(vcs, reporter)
	if NoteModel != "" {
		generator.Notes = newNotes(ctx, reporter)
	}

	result, err := generator.Run(ctx, cfg, dir)
	if err != nil {
		reporter.Error("%v", err)
		reporter.Status("Failed")
	}
	return result, err
}

// newNotes returns the Ollama note generator, or nil when the server cannot
// be used. Notes are decorative, so this never fails the run.
func newNotes(ctx context.Context, reporter ui.Reporter) services.NoteGenerator {
	notes, err := services.NewOllamaNotes(NoteModel, NoteTemperature)
	if err != nil {
		reporter.Warn("Notes disabled: %v", err)
		return nil
	}
	reporter.Status("Checking Ollama availability...")
	if err := notes.CheckAvailability(ctx); err != nil {
		reporter.Warn("Notes disabled: %v", err)
		return nil
	}
	reporter.Info("Adding notes with Ollama model %s", NoteModel)
	return notes
}

func printSummary(w, errW io.Writer, result *models.RunResult, err error) {
	if result != nil {
		for _, event := range result.Events {
			fmt.Fprintf(w, "✓ commit %s at %s\n", event.Progress(), event.CommitTime.Format(models.WriteTimeLayout))
		}
		if result.Pushed {
			fmt.Fprintln(w, "✓ pushed to remote")
		}
	}
	if err != nil {
		fmt.Fprintf(errW, "error: %v\n", err)
	}
}
