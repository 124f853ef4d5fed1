package ui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/MrLemur/dailycommits/internal/models"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
)

const progressBarWidth = 50

// TUI renders a run in a full screen terminal UI
type TUI struct {
	App               *tview.Application
	MainFlex          *tview.Flex
	ProgressBar       *tview.TextView
	LogView           *tview.TextView
	StatusBar         *tview.TextView
	CommitDetailsView *tview.TextView
	LastCommitDetails *tview.TextView

	cancel    context.CancelFunc
	stopped   atomic.Bool
	done      chan struct{}
	runErr    error
	committed int
}

// NewTUI builds the terminal UI components. Ctrl+C stops the UI and calls
// cancel so the run in progress is interrupted.
func NewTUI(cancel context.CancelFunc) *TUI {
	t := &TUI{
		App:    tview.NewApplication(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	t.MainFlex = tview.NewFlex().SetDirection(tview.FlexRow)

	header := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText("Daily Commits").
		SetTextColor(tcell.ColorYellow)

	t.ProgressBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	t.LogView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	t.LogView.SetBorder(true)
	t.LogView.SetTitle("Log")
	t.LogView.SetTitleColor(tcell.ColorGreen)

	t.CommitDetailsView = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	t.CommitDetailsView.SetBorder(true)
	t.CommitDetailsView.SetTitle("Current Commit")
	t.CommitDetailsView.SetTitleColor(tcell.ColorBlue)

	t.LastCommitDetails = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetText("[yellow]No commits created yet[white]")
	t.LastCommitDetails.SetBorder(true)
	t.LastCommitDetails.SetTitle("Last Commit")
	t.LastCommitDetails.SetTitleColor(tcell.ColorPurple)

	t.StatusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[yellow]Press Ctrl+C to exit[white]")

	commitDetailsFlex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.CommitDetailsView, 0, 1, false).
		AddItem(t.LastCommitDetails, 0, 1, false)

	t.MainFlex.AddItem(header, 1, 1, false).
		AddItem(t.ProgressBar, 1, 1, false).
		AddItem(tview.NewFlex().
			SetDirection(tview.FlexRow).
			AddItem(t.LogView, 0, 3, false).
			AddItem(commitDetailsFlex, 0, 2, false),
			0, 10, false).
		AddItem(t.StatusBar, 1, 1, false)

	t.App.SetInputCapture(t.handleKey)
	return t
}

func (t *TUI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		t.stop()
		return nil
	case tcell.KeyPgUp:
		_, _, _, height := t.LogView.GetInnerRect()
		row, _ := t.LogView.GetScrollOffset()
		t.LogView.ScrollTo(row-height+1, 0)
		return nil
	case tcell.KeyPgDn:
		_, _, _, height := t.LogView.GetInnerRect()
		row, _ := t.LogView.GetScrollOffset()
		t.LogView.ScrollTo(row+height-1, 0)
		return nil
	case tcell.KeyEnd:
		t.LogView.ScrollToEnd()
		return nil
	case tcell.KeyHome:
		t.LogView.ScrollTo(0, 0)
		return nil
	}
	if event.Rune() == 'q' {
		t.stop()
		return nil
	}
	return event
}

// Start runs the UI event loop in the background
func (t *TUI) Start() {
	go func() {
		defer close(t.done)
		t.runErr = t.App.SetRoot(t.MainFlex, true).Run()
		t.stopped.Store(true)
	}()
}

// Wait blocks until the user closes the UI and returns the event loop error
func (t *TUI) Wait() error {
	<-t.done
	return t.runErr
}

func (t *TUI) stop() {
	if t.stopped.Swap(true) {
		return
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.App.Stop()
}

// update applies f on the UI goroutine unless the UI has been stopped
func (t *TUI) update(f func()) {
	if t.stopped.Load() {
		return
	}
	t.App.QueueUpdateDraw(f)
}

func (t *TUI) logLine(color, label, msg string) {
	timestamp := time.Now().Format("15:04:05")
	t.update(func() {
		fmt.Fprintf(t.LogView, "[blue]%s[white] [%s]%s[white]: %s\n", timestamp, color, label, tview.Escape(msg))
		t.LogView.ScrollToEnd()
	})
}

// Info logs an informational message
func (t *TUI) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	record(zerolog.InfoLevel, msg)
	t.logLine("yellow", "INFO", msg)
}

// Success logs a success message
func (t *TUI) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	record(zerolog.InfoLevel, "✓ "+msg)
	t.logLine("green", "SUCCESS", msg)
}

// Warn logs a warning
func (t *TUI) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	record(zerolog.WarnLevel, msg)
	t.logLine("orange", "WARN", msg)
}

// Error logs an error message
func (t *TUI) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	record(zerolog.ErrorLevel, msg)
	t.logLine("red", "ERROR", msg)
}

// Status updates the status bar text
func (t *TUI) Status(text string) {
	record(zerolog.DebugLevel, text)
	t.update(func() {
		t.StatusBar.SetText(fmt.Sprintf("[yellow]%s[white]", tview.Escape(text)))
	})
}

// Progress updates the progress bar
func (t *TUI) Progress(done, total int) {
	text := ProgressText(done, total)
	t.update(func() {
		t.ProgressBar.SetText(text)
	})
}

// CommitDetails shows the commit being created and moves the previous one
// to the last commit panel
func (t *TUI) CommitDetails(event models.CommitEvent) {
	first := t.committed == 0
	t.committed++
	t.update(func() {
		if !first {
			t.LastCommitDetails.SetText(t.CommitDetailsView.GetText(false))
		}
		t.CommitDetailsView.Clear()
		fmt.Fprintf(t.CommitDetailsView, "[yellow]Commit:[white]\n%s\n\n", event.Progress())
		fmt.Fprintf(t.CommitDetailsView, "[red]Backdated To:[white]\n%s\n\n", event.CommitTime.Format(time.RFC3339))
		fmt.Fprintf(t.CommitDetailsView, "[green]Message:[white]\n%s\n", tview.Escape(event.Message))
		if event.Note != "" {
			fmt.Fprintf(t.CommitDetailsView, "\n[blue]Note:[white]\n%s\n", tview.Escape(event.Note))
		}
	})
}

// Close stops the UI without waiting for the user
func (t *TUI) Close() {
	t.stop()
}

// ProgressText renders the progress bar markup for done out of total commits
func ProgressText(done, total int) string {
	if total == 0 {
		return "[yellow]No commits to create[white]"
	}
	percentage := float64(done) / float64(total) * 100
	completedWidth := progressBarWidth * done / total
	var bar strings.Builder
	for i := 0; i < progressBarWidth; i++ {
		if i < completedWidth {
			bar.WriteString("[green]█[white]")
		} else {
			bar.WriteString("[gray]░[white]")
		}
	}
	return fmt.Sprintf("%s [green]%d/%d commits created (%.1f%%)[white]", bar.String(), done, total, percentage)
}
