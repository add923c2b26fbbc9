package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"checklist.dev/pkg/checklist/internal/adapter"
	m "checklist.dev/pkg/checklist/internal/model"
)

// ErrInvalidPattern is returned for an exclude glob that cannot be parsed.
var ErrInvalidPattern = errors.New("invalid exclude pattern")

// ParseExcludePatterns splits the comma separated exclude option. An empty
// string yields no patterns; duplicates are dropped.
func ParseExcludePatterns(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	seen := map[string]struct{}{}

	var patterns []string

	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if _, ok := seen[part]; ok {
			continue
		}

		seen[part] = struct{}{}
		patterns = append(patterns, part)
	}

	return patterns
}

// EnumerateResult holds the files to scan and the files the exclude
// patterns removed, both sorted.
type EnumerateResult struct {
	Files    []m.Path
	Excluded []m.Path
}

// PathFilter lists the Python sources of a tree.
type PathFilter interface {
	// Enumerate returns every *.py file under root that no exclude pattern
	// matches. Patterns are relative to root and match at any depth, like
	// a recursive glob. Only the file path itself is tested, so excluding a
	// whole directory takes a pattern such as "pkg/**".
	Enumerate(ctx context.Context, root m.Path, exclude []string) (EnumerateResult, error)
}

type pathFilter struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewPathFilter constructs a PathFilter over the given filesystem adapter.
func NewPathFilter(fsAdapter adapter.SourceFSAdapter) PathFilter {
	return &pathFilter{fsAdapter: fsAdapter}
}

func (pf *pathFilter) Enumerate(ctx context.Context, root m.Path, exclude []string) (EnumerateResult, error) {
	patterns, err := recursivePatterns(exclude)
	if err != nil {
		return EnumerateResult{}, err
	}

	info, err := pf.fsAdapter.FileInfo(ctx, root)
	if err != nil {
		slog.Error("collect path not accessible", "root", root, "error", err)
		return EnumerateResult{}, fmt.Errorf("collect path %s: %w", root, err)
	}

	if !info.IsDir() {
		return EnumerateResult{}, fmt.Errorf("collect path %s is not a directory", root)
	}

	var result EnumerateResult

	matched := make(map[string]int, len(patterns))

	err = pf.fsAdapter.Walk(ctx, root, func(path m.Path, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if entry.IsDir() || filepath.Ext(string(path)) != m.SourceExt {
			return nil
		}

		rel, err := pf.fsAdapter.RelPath(ctx, root, path)
		if err != nil {
			return err
		}

		if pattern, ok := matchExclude(patterns, filepath.ToSlash(string(rel))); ok {
			matched[pattern]++

			result.Excluded = append(result.Excluded, path)

			return nil
		}

		result.Files = append(result.Files, path)

		return nil
	})
	if err != nil {
		slog.Error("failed to walk collect path", "root", root, "error", err)
		return EnumerateResult{}, fmt.Errorf("walk %s: %w", root, err)
	}

	for _, pattern := range patterns {
		if matched[pattern] == 0 {
			slog.Debug("exclude pattern matched no files", "pattern", pattern)
		}
	}

	sortPaths(result.Files)
	sortPaths(result.Excluded)

	return result, nil
}

// recursivePatterns validates the patterns and anchors them at any depth.
func recursivePatterns(exclude []string) ([]string, error) {
	patterns := make([]string, 0, len(exclude))

	for _, raw := range exclude {
		pattern := strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(raw)), "./")
		if pattern == "" {
			continue
		}

		if !strings.HasPrefix(pattern, "**/") {
			pattern = "**/" + strings.TrimPrefix(pattern, "/")
		}

		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, raw)
		}

		patterns = append(patterns, pattern)
	}

	return patterns, nil
}

// matchExclude returns the first pattern matching rel.
func matchExclude(patterns []string, rel string) (string, bool) {
	for _, pattern := range patterns {
		if doublestar.MatchUnvalidated(pattern, rel) {
			return pattern, true
		}
	}

	return "", false
}

func sortPaths(paths []m.Path) {
	sort.Slice(paths, func(i, j int) bool {
		return paths[i] < paths[j]
	})
}
