package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	m "checklist.dev/pkg/checklist/internal/model"
)

// SourceWatcher reports changes to Python sources under a directory tree.
type SourceWatcher interface {
	// Watch calls onChange after every burst of changes to *.py files under
	// root until ctx is cancelled. Errors from onChange stop the watch.
	Watch(ctx context.Context, root m.Path, onChange func(ctx context.Context) error) error
}

// FSNotifySourceWatcher implements SourceWatcher with fsnotify.
type FSNotifySourceWatcher struct {
	debounce time.Duration
}

// NewFSNotifySourceWatcher returns a watcher that coalesces events arriving
// within debounce of each other.
func NewFSNotifySourceWatcher(debounce time.Duration) *FSNotifySourceWatcher {
	return &FSNotifySourceWatcher{debounce: debounce}
}

// Watch implements SourceWatcher.
func (w *FSNotifySourceWatcher) Watch(ctx context.Context, root m.Path, onChange func(ctx context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	defer func() { _ = watcher.Close() }()

	if err := addDirs(watcher, string(root)); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				if err := addDirs(watcher, event.Name); err != nil {
					slog.Debug("could not watch new path", "path", event.Name, "error", err)
				}
			}

			if strings.HasSuffix(event.Name, m.SourceExt) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			slog.Error("watch error", "root", root, "error", err)

		case <-timer.C:
			if err := onChange(ctx); err != nil {
				return err
			}
		}
	}
}

// addDirs watches path and every directory below it. Files are ignored.
func addDirs(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") && p != path {
			return filepath.SkipDir
		}

		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}

		return nil
	})
}
