package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/MrLemur/dailycommits/internal/ui"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGit implements VersionControl in-process with go-git
type GoGit struct{}

// NewGoGit creates a go-git backed VersionControl
func NewGoGit() *GoGit {
	return &GoGit{}
}

func (g *GoGit) open(root string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
}

// RepositoryRoot implements VersionControl.RepositoryRoot
func (g *GoGit) RepositoryRoot(ctx context.Context, dir string) (string, error) {
	ui.LogShellCommand("go-git", []string{"open", "--detect-dot-git"}, dir)
	repo, err := g.open(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotARepository, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no working tree to write into.
		return "", fmt.Errorf("%w: %w", ErrNotARepository, err)
	}
	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotARepository, err)
	}
	return root, nil
}

// Stage implements VersionControl.Stage
func (g *GoGit) Stage(ctx context.Context, root, path string) error {
	ui.LogShellCommand("go-git", []string{"add", path}, root)
	repo, err := g.open(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStageFailed, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStageFailed, err)
	}
	if _, err := wt.Add(filepath.ToSlash(path)); err != nil {
		return fmt.Errorf("%w: %w", ErrStageFailed, NewGitError("add", []string{path}, err, ""))
	}
	return nil
}

// Commit implements VersionControl.Commit. The identity comes from the
// repository config merged with the user's global config.
func (g *GoGit) Commit(ctx context.Context, root, message string, when time.Time) error {
	ui.LogShellCommand("go-git", []string{"commit", "-m", message, "--date", when.Format(GitDateLayout)}, root)
	repo, err := g.open(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	if err := requireStagedChanges(wt); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	signature, err := g.signature(repo, when)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}
	committer := *signature
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:    signature,
		Committer: &committer,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCommitFailed, NewGitError("commit", []string{"-m", message}, err, ""))
	}
	ui.LogCommandOutput("go-git", []string{"commit"}, hash.String())
	return nil
}

// requireStagedChanges fails like git commit does when the index matches HEAD
func requireStagedChanges(wt *git.Worktree) error {
	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("failed to get worktree status: %w", err)
	}
	for _, fileStatus := range status {
		if fileStatus.Staging != git.Unmodified && fileStatus.Staging != git.Untracked {
			return nil
		}
	}
	return errors.New("nothing to commit, working tree clean")
}

func (g *GoGit) signature(repo *git.Repository, when time.Time) (*object.Signature, error) {
	cfg, err := repo.ConfigScoped(config.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("failed to read git config: %w", err)
	}
	name, email := cfg.Author.Name, cfg.Author.Email
	if name == "" {
		name = cfg.User.Name
	}
	if email == "" {
		email = cfg.User.Email
	}
	if name == "" || email == "" {
		return nil, errors.New("user.name and user.email must be set in git config")
	}
	return &object.Signature{Name: name, Email: email, When: when}, nil
}

// Push implements VersionControl.Push. Like git push, only the checked out
// branch is sent, to its upstream when one is configured and to the branch
// of the same name on origin otherwise.
func (g *GoGit) Push(ctx context.Context, root string) error {
	repo, err := g.open(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}
	remoteName, refSpec, err := g.upstream(repo)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}
	ui.LogShellCommand("go-git", []string{"push", remoteName, refSpec.String()}, root)
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{refSpec},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("%w: %w", ErrPushFailed, NewGitError("push", []string{remoteName, refSpec.String()}, err, ""))
	}
	return nil
}

// upstream returns the remote and refspec for pushing the current branch
func (g *GoGit) upstream(repo *git.Repository) (string, config.RefSpec, error) {
	head, err := repo.Head()
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", "", errors.New("not currently on a branch")
	}
	cfg, err := repo.Config()
	if err != nil {
		return "", "", fmt.Errorf("failed to read git config: %w", err)
	}

	remoteName, dst := git.DefaultRemoteName, head.Name()
	if branch, ok := cfg.Branches[head.Name().Short()]; ok && branch.Remote != "" {
		remoteName = branch.Remote
		if branch.Merge != "" {
			dst = branch.Merge
		}
	}
	refSpec := config.RefSpec(fmt.Sprintf("%s:%s", head.Name(), dst))
	if err := refSpec.Validate(); err != nil {
		return "", "", err
	}
	return remoteName, refSpec, nil
}

// GetCurrentBranchName gets the short name of the checked out branch
func (g *GoGit) GetCurrentBranchName(ctx context.Context, root string) (string, error) {
	repo, err := g.open(root)
	if err != nil {
		return "", fmt.Errorf("failed to open repository: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get current branch name: %w", err)
	}
	return head.Name().Short(), nil
}
