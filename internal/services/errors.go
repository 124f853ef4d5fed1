package services

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Sentinel errors checked with errors.Is
var (
	// ErrInvalidArgument indicates unusable command line input
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotARepository indicates no enclosing git repository was found
	ErrNotARepository = errors.New("not a git repository")

	// ErrStageFailed indicates staging the target file failed
	ErrStageFailed = errors.New("stage failed")

	// ErrCommitFailed indicates creating a commit failed
	ErrCommitFailed = errors.New("commit failed")

	// ErrPushFailed indicates pushing to the remote failed
	ErrPushFailed = errors.New("push failed")
)

// GitError describes a failed git invocation
type GitError struct {
	Operation string
	Args      []string
	ExitCode  int
	Output    string
	Err       error
}

// Error implements the error interface
func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Operation)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg = fmt.Sprintf("%s: %s", msg, out)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *GitError) Unwrap() error {
	return e.Err
}

// NewGitError builds a GitError, extracting the exit status from err when
// it comes from a finished process
func NewGitError(operation string, args []string, err error, output string) *GitError {
	gitErr := &GitError{
		Operation: operation,
		Args:      args,
		Output:    output,
		Err:       err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		gitErr.ExitCode = exitErr.ExitCode()
	}
	return gitErr
}

// ExitCode maps a run error to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrInvalidArgument) {
		return 2
	}
	var gitErr *GitError
	if errors.As(err, &gitErr) && gitErr.ExitCode > 0 {
		return gitErr.ExitCode
	}
	return 1
}
