package commands

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/MrLemur/dailycommits/internal/models"
	"github.com/MrLemur/dailycommits/internal/services"
)

func TestNewVersionControl(t *testing.T) {
	tests := []struct {
		engine string
		want   string
	}{
		{"", "*services.ExecGit"},
		{EngineExec, "*services.ExecGit"},
		{EngineGoGit, "*services.GoGit"},
	}

	for _, tt := range tests {
		vcs, err := NewVersionControl(tt.engine)
		if err != nil {
			t.Fatalf("NewVersionControl(%q): expected no error, got: %v", tt.engine, err)
		}
		if got := fmt.Sprintf("%T", vcs); got != tt.want {
			t.Errorf("NewVersionControl(%q) = %s, want %s", tt.engine, got, tt.want)
		}
	}

	if _, err := NewVersionControl("svn"); !errors.Is(err, services.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for an unknown engine, got: %v", err)
	}
}

func TestPrintSummary(t *testing.T) {
	result := &models.RunResult{
		Root: "/repo",
		Plan: models.CommitPlan{Count: 2},
		Events: []models.CommitEvent{
			{Sequence: 1, Total: 2, CommitTime: time.Date(2026, 10, 17, 3, 4, 5, 0, time.Local)},
			{Sequence: 2, Total: 2, CommitTime: time.Date(2026, 10, 17, 22, 0, 1, 0, time.Local)},
		},
		Pushed: true,
	}

	var out, errOut bytes.Buffer
	printSummary(&out, &errOut, result, nil)

	want := "✓ commit 1/2 at 2026-10-17T03:04:05\n" +
		"✓ commit 2/2 at 2026-10-17T22:00:01\n" +
		"✓ pushed to remote\n"
	if out.String() != want {
		t.Errorf("Expected summary:\n%s\ngot:\n%s", want, out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("Expected no error output, got: %s", errOut.String())
	}
}

func TestPrintSummaryFailure(t *testing.T) {
	result := &models.RunResult{
		Events: []models.CommitEvent{
			{Sequence: 1, Total: 3, CommitTime: time.Date(2026, 10, 17, 3, 4, 5, 0, time.Local)},
		},
	}
	err := fmt.Errorf("%w: exit status 1", services.ErrCommitFailed)

	var out, errOut bytes.Buffer
	printSummary(&out, &errOut, result, err)

	if strings.Contains(out.String(), "pushed") {
		t.Errorf("Expected no push line, got: %s", out.String())
	}
	if !strings.Contains(out.String(), "✓ commit 1/3") {
		t.Errorf("Expected the completed commit in the summary, got: %s", out.String())
	}
	if !strings.Contains(errOut.String(), "error: ") || !strings.Contains(errOut.String(), "exit status 1") {
		t.Errorf("Expected the error on stderr, got: %s", errOut.String())
	}

	out.Reset()
	errOut.Reset()
	printSummary(&out, &errOut, nil, services.ErrNotARepository)
	if out.Len() != 0 {
		t.Errorf("Expected no summary without a result, got: %s", out.String())
	}
}
