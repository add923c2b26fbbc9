// Package adapter contains the infrastructure adapters of the checklist CLI:
// filesystem access, Python parsing, ledger persistence and host execution.
package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	m "checklist.dev/pkg/checklist/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects. It hides direct `os` access so the
// discovery logic can be tested without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps discovery logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Walk traverses root recursively in lexical order.
	Walk(ctx context.Context, root m.Path, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// ReadDir lists the direct entries of a directory.
	ReadDir(ctx context.Context, path m.Path) ([]os.DirEntry, error)

	// Abs returns a cleaned absolute form of path.
	Abs(ctx context.Context, path m.Path) (m.Path, error)

	// RelPath returns the relative path from base to target.
	RelPath(ctx context.Context, base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(ctx context.Context, elem ...string) m.Path
}

// FilepathWalkFunc mirrors the callback shape used by filepath.WalkDir. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path m.Path, entry fs.DirEntry, err error) error

// SkipDir may be returned from a FilepathWalkFunc to skip a directory.
var SkipDir = filepath.SkipDir

// LocalSourceFSAdapter is the os backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over every entry under root.
func (a *LocalSourceFSAdapter) Walk(ctx context.Context, root m.Path, fn FilepathWalkFunc) error {
	return filepath.WalkDir(string(root), func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		return fn(m.Path(path), entry, err)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from the scanned source tree
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// ReadDir lists the entries of a directory sorted by name.
func (a *LocalSourceFSAdapter) ReadDir(ctx context.Context, path m.Path) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadDir(string(path))
}

// Abs returns the absolute, symlink-free form of path when it exists.
func (a *LocalSourceFSAdapter) Abs(ctx context.Context, path m.Path) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", fmt.Errorf("absolute path of %s: %w", path, err)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	return m.Path(abs), nil
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(_ context.Context, base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(_ context.Context, elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
