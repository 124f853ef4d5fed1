package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// Workspace is a repository root together with a file system rooted at it.
// It is passed explicitly to every operation that follows root discovery,
// so the process working directory never changes.
type Workspace struct {
	Root string
	FS   billy.Filesystem
}

// NewWorkspace returns a Workspace whose file system is chrooted to root
func NewWorkspace(root string) Workspace {
	return Workspace{Root: root, FS: osfs.New(root)}
}

// CleanTargetPath validates a user supplied target path. Relative paths are
// taken from the repository root and must stay inside it; absolute paths
// are checked against the root once it is known (Workspace.RelativePath).
func CleanTargetPath(path string) (string, error) {
	cleaned := filepath.Clean(path)
	if filepath.IsAbs(cleaned) {
		return cleaned, nil
	}
	if cleaned == "." || !filepath.IsLocal(cleaned) {
		return "", fmt.Errorf("%w: target file %q must be a path inside the repository", ErrInvalidArgument, path)
	}
	return cleaned, nil
}

// RelativePath returns path relative to the workspace root. Absolute paths
// outside the root are rejected with ErrInvalidArgument.
func (w Workspace) RelativePath(path string) (string, error) {
	if !filepath.IsAbs(path) {
		return path, nil
	}
	if rel, ok := localTo(w.Root, path); ok {
		return rel, nil
	}
	// git reports the resolved root, while the argument may go through a symlink.
	if rel, ok := localTo(resolveSymlinks(w.Root), resolveSymlinks(path)); ok {
		return rel, nil
	}
	return "", fmt.Errorf("%w: target file %q is outside the repository %s", ErrInvalidArgument, path, w.Root)
}

func localTo(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || !filepath.IsLocal(rel) {
		return "", false
	}
	return rel, true
}

// resolveSymlinks resolves the deepest existing ancestor of path
func resolveSymlinks(path string) string {
	var missing []string
	for dir := path; ; dir = filepath.Dir(dir) {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return path
		}
		missing = append([]string{filepath.Base(dir)}, missing...)
	}
}

// AppendLine appends line and a newline to path, creating the file and its
// parent directories when missing
func AppendLine(fs billy.Filesystem, path, line string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err := f.Write([]byte(line + "\n")); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
