// Package watch reruns documentation generation when component templates
// change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gorewood/compdocs/internal/logger"
)

// DefaultDebounce is how long the watcher waits for events to settle
// before calling the change handler.
const DefaultDebounce = 300 * time.Millisecond

var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
}

// ChangeFunc handles a settled batch of changed paths, sorted.
type ChangeFunc func(ctx context.Context, paths []string) error

// Watcher watches a directory tree for template changes.
type Watcher struct {
	roots    []string
	ignore   []string
	debounce time.Duration
	log      *zap.SugaredLogger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithIgnore excludes directories, typically the documentation output,
// from watching.
func WithIgnore(dirs ...string) Option {
	return func(w *Watcher) {
		for _, dir := range dirs {
			if abs, err := filepath.Abs(dir); err == nil {
				w.ignore = append(w.ignore, abs)
			}
		}
	}
}

// WithDebounce sets the settle interval.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(w *Watcher) { w.log = log }
}

// New creates a Watcher over roots. Roots that do not exist are skipped
// when Run starts.
func New(roots []string, opts ...Option) *Watcher {
	w := &Watcher{
		debounce: DefaultDebounce,
		log:      logger.Nop(),
	}
	for _, root := range roots {
		if abs, err := filepath.Abs(root); err == nil {
			w.roots = append(w.roots, abs)
		}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is canceled, calling onChange once per settled
// batch of events. Handler errors are logged and watching continues; calls
// never overlap.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fsw.Close()

	watched := 0
	for _, root := range w.roots {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			w.log.Debugw("skipping missing watch root", logger.FieldPath, root)
			continue
		}
		if err := w.addTree(fsw, root); err != nil {
			return err
		}
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("no directories to watch")
	}

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(fsw, event.Name); err != nil {
						w.log.Warnw("watching new directory", logger.FieldPath, event.Name, logger.FieldError, err)
					}
				}
			}
			w.log.Debugw("change detected", logger.FieldPath, event.Name, logger.FieldOp, event.Op.String())
			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("file watcher error", logger.FieldError, err)

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)
			slices.Sort(paths)

			if err := onChange(ctx, paths); err != nil {
				w.log.Errorw("regeneration failed", logger.FieldError, err)
			}
		}
	}
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.log.Debugw("skipping unreadable path", logger.FieldPath, path, logger.FieldError, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if (path != dir && skipDir(d.Name())) || w.ignored(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// relevant reports whether an event should trigger regeneration.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if editorTemp(filepath.Base(event.Name)) {
		return false
	}
	return !w.ignored(event.Name)
}

// ignored reports whether path is inside an ignored directory.
func (w *Watcher) ignored(path string) bool {
	for _, dir := range w.ignore {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func skipDir(name string) bool {
	_, ok := skipDirs[name]
	return ok
}

// editorTemp matches swap, backup, and lock files editors write next to the
// file being edited.
func editorTemp(name string) bool {
	switch {
	case strings.HasPrefix(name, ".#"),
		strings.HasSuffix(name, "~"),
		strings.HasSuffix(name, ".swp"),
		strings.HasSuffix(name, ".swx"),
		strings.HasSuffix(name, ".tmp"),
		name == "4913":
		return true
	}
	return false
}
