package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrLemur/dailycommits/internal/ui"
)

// VersionControl is the set of git capabilities the commit generator needs.
// Every method blocks until the operation has finished.
type VersionControl interface {
	// RepositoryRoot returns the top-level directory of the repository enclosing dir
	RepositoryRoot(ctx context.Context, dir string) (string, error)
	// Stage adds path, relative to root, to the index
	Stage(ctx context.Context, root, path string) error
	// Commit records the index with message, using when as both author and committer date
	Commit(ctx context.Context, root, message string, when time.Time) error
	// Push sends local commits to the configured remote
	Push(ctx context.Context, root string) error
}

// GitDateLayout is the layout passed through GIT_AUTHOR_DATE and GIT_COMMITTER_DATE
const GitDateLayout = time.RFC3339

// ExecGit implements VersionControl by running the git binary
type ExecGit struct {
	// Binary is the git executable; "git" from PATH when empty
	Binary string
}

// NewExecGit creates an ExecGit using git from PATH
func NewExecGit() *ExecGit {
	return &ExecGit{Binary: "git"}
}

func (g *ExecGit) binary() string {
	if g.Binary == "" {
		return "git"
	}
	return g.Binary
}

// run executes git with args in dir. The returned string is stdout; on
// failure the GitError carries stderr followed by stdout.
func (g *ExecGit) run(ctx context.Context, dir string, env []string, args ...string) (string, error) {
	binary := g.binary()
	ui.LogShellCommand(binary, args, dir)
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String() + "\n" + stdout.String())
		return "", NewGitError(args[0], args[1:], err, output)
	}
	ui.LogCommandOutput(binary, args, stdout.String())
	return stdout.String(), nil
}

// RepositoryRoot implements VersionControl.RepositoryRoot
func (g *ExecGit) RepositoryRoot(ctx context.Context, dir string) (string, error) {
	output, err := g.run(ctx, dir, nil, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotARepository, err)
	}
	root := strings.TrimSpace(output)
	if root == "" {
		return "", fmt.Errorf("%w: git reported an empty top-level directory for %s", ErrNotARepository, dir)
	}
	return filepath.FromSlash(root), nil
}

// Stage implements VersionControl.Stage
func (g *ExecGit) Stage(ctx context.Context, root, path string) error {
	if _, err := g.run(ctx, root, nil, "add", "--", filepath.ToSlash(path)); err != nil {
		return fmt.Errorf("%w: %w", ErrStageFailed, err)
	}
	return nil
}

// Commit implements VersionControl.Commit. Author and committer dates are
// set through the environment so they are always identical.
func (g *ExecGit) Commit(ctx context.Context, root, message string, when time.Time) error {
	date := when.Format(GitDateLayout)
	env := []string{
		"GIT_AUTHOR_DATE=" + date,
		"GIT_COMMITTER_DATE=" + date,
	}
	if _, err := g.run(ctx, root, env, "commit", "-m", message); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	return nil
}

// Push implements VersionControl.Push
func (g *ExecGit) Push(ctx context.Context, root string) error {
	if _, err := g.run(ctx, root, nil, "push"); err != nil {
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}
	return nil
}

// GetCurrentBranchName gets the name of the current branch
func (g *ExecGit) GetCurrentBranchName(ctx context.Context, root string) (string, error) {
	output, err := g.run(ctx, root, nil, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch name: %w", err)
	}
	return strings.TrimSpace(output), nil
}
