package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"checklist.dev/pkg/checklist/internal/adapter"
	m "checklist.dev/pkg/checklist/internal/model"
)

var (
	// ErrNoSearchRoot is returned when no import root can be resolved for
	// the collect path.
	ErrNoSearchRoot = errors.New("no search root found")
	// ErrOutsideSearchRoot is returned for a source file that does not live
	// below the resolved search root.
	ErrOutsideSearchRoot = errors.New("path is outside the search root")
)

// RootStrategy selects how the import root of the collect path is found.
type RootStrategy int

const (
	// InferSearchModule walks up from the collect path to the first
	// directory that is not a package.
	InferSearchModule RootStrategy = iota
	// SearchPathMembership picks the shortest configured search path that is
	// the collect path or one of its ancestors.
	SearchPathMembership
)

func (s RootStrategy) String() string {
	if s == SearchPathMembership {
		return "search-path"
	}

	return "infer"
}

// ModuleNamer turns source paths into dotted module names.
type ModuleNamer interface {
	// ResolveSearchRoot finds the import root for dir. candidates are only
	// used by SearchPathMembership.
	ResolveSearchRoot(ctx context.Context, dir m.Path, strategy RootStrategy, candidates []m.Path) (m.Path, error)
	// FindTopLevelModuleDir walks up from a package directory to the first
	// ancestor without a package marker. A directory that is not a package
	// is its own root when at least one child directory is a package.
	FindTopLevelModuleDir(ctx context.Context, dir m.Path) (m.Path, error)
	// ResolveSearchPathRoot returns the shortest candidate that is dir or
	// one of its ancestors. Nested search paths therefore resolve to the
	// outermost one.
	ResolveSearchPathRoot(ctx context.Context, dir m.Path, candidates []m.Path) (m.Path, error)
	// NameModules names every path relative to searchRoot.
	NameModules(paths []m.Path, searchRoot m.Path) ([]m.Module, error)
}

type moduleNamer struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewModuleNamer constructs a ModuleNamer.
func NewModuleNamer(fsAdapter adapter.SourceFSAdapter) ModuleNamer {
	return &moduleNamer{fsAdapter: fsAdapter}
}

func (mn *moduleNamer) ResolveSearchRoot(ctx context.Context, dir m.Path, strategy RootStrategy, candidates []m.Path) (m.Path, error) {
	abs, err := mn.fsAdapter.Abs(ctx, dir)
	if err != nil {
		return "", err
	}

	var root m.Path

	switch strategy {
	case InferSearchModule:
		root, err = mn.FindTopLevelModuleDir(ctx, abs)
	case SearchPathMembership:
		root, err = mn.ResolveSearchPathRoot(ctx, abs, candidates)
	default:
		err = fmt.Errorf("unknown root strategy %d", strategy)
	}

	if err != nil {
		slog.Error("failed to resolve search root", "dir", dir, "strategy", strategy, "error", err)
		return "", err
	}

	slog.Debug("resolved search root", "dir", abs, "root", root, "strategy", strategy)

	return root, nil
}

func (mn *moduleNamer) FindTopLevelModuleDir(ctx context.Context, dir m.Path) (m.Path, error) {
	dir, err := mn.fsAdapter.Abs(ctx, dir)
	if err != nil {
		return "", err
	}

	hasMarker, err := mn.isPackage(ctx, dir)
	if err != nil {
		return "", err
	}

	if !hasMarker {
		// Not a package itself: it is a search root only if it holds packages.
		entries, err := mn.fsAdapter.ReadDir(ctx, dir)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", dir, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}

			childIsPackage, err := mn.isPackage(ctx, mn.fsAdapter.JoinPath(ctx, string(dir), entry.Name()))
			if err != nil {
				return "", err
			}

			if childIsPackage {
				return dir, nil
			}
		}

		return "", fmt.Errorf("%w: %s is not a package and contains no packages", ErrNoSearchRoot, dir)
	}

	for current := dir; ; {
		isPkg, err := mn.isPackage(ctx, current)
		if err != nil {
			return "", err
		}

		if !isPkg {
			return current, nil
		}

		parent := m.Path(filepath.Dir(string(current)))
		if parent == current {
			return "", fmt.Errorf("%w: every ancestor of %s is a package", ErrNoSearchRoot, dir)
		}

		current = parent
	}
}

func (mn *moduleNamer) isPackage(ctx context.Context, dir m.Path) (bool, error) {
	info, err := mn.fsAdapter.FileInfo(ctx, mn.fsAdapter.JoinPath(ctx, string(dir), m.PackageMarker))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("stat %s: %w", dir, err)
	}

	return !info.IsDir(), nil
}

func (mn *moduleNamer) ResolveSearchPathRoot(ctx context.Context, dir m.Path, candidates []m.Path) (m.Path, error) {
	dir, err := mn.fsAdapter.Abs(ctx, dir)
	if err != nil {
		return "", err
	}

	ancestors := map[m.Path]struct{}{}

	for current := dir; ; {
		ancestors[current] = struct{}{}

		parent := m.Path(filepath.Dir(string(current)))
		if parent == current {
			break
		}

		current = parent
	}

	var best m.Path

	for _, candidate := range candidates {
		if strings.TrimSpace(string(candidate)) == "" {
			continue
		}

		abs, err := mn.fsAdapter.Abs(ctx, candidate)
		if err != nil {
			return "", err
		}

		if _, ok := ancestors[abs]; !ok {
			continue
		}

		if best == "" || len(abs) < len(best) {
			best = abs
		}
	}

	if best == "" {
		return "", fmt.Errorf("%w: none of the search paths contains %s", ErrNoSearchRoot, dir)
	}

	return best, nil
}

func (mn *moduleNamer) NameModules(paths []m.Path, searchRoot m.Path) ([]m.Module, error) {
	modules := make([]m.Module, 0, len(paths))

	for _, path := range paths {
		name, err := ModuleName(path, searchRoot)
		if err != nil {
			return nil, err
		}

		modules = append(modules, m.Module{Path: path, FullyQualifiedName: name})
	}

	return modules, nil
}

// ModuleName returns the dotted import name of path below searchRoot: the
// directories between the two plus the file stem. A package's __init__.py
// is named after the package, which is the __module__ its functions report
// at runtime, so pointers recorded from tests resolve to the same name.
func ModuleName(path, searchRoot m.Path) (string, error) {
	absPath, err := filepath.Abs(string(path))
	if err != nil {
		return "", fmt.Errorf("absolute path of %s: %w", path, err)
	}

	absRoot, err := filepath.Abs(string(searchRoot))
	if err != nil {
		return "", fmt.Errorf("absolute path of %s: %w", searchRoot, err)
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is not below %s", ErrOutsideSearchRoot, path, searchRoot)
	}

	segments := strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/")
	if len(segments) == 1 && segments[0] == "." {
		segments = nil
	}

	stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	if stem != "__init__" || len(segments) == 0 {
		segments = append(segments, stem)
	}

	return strings.Join(segments, "."), nil
}
