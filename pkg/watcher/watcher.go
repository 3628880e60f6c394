package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/olimci/mdpages/pkg/utils/fileutils"
	"github.com/olimci/mdpages/pkg/utils/set"
)

// Event is a debounced batch of changed paths
type Event struct {
	Reason string
	Paths  []string
}

func New(debounce time.Duration, paths ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		watcher:  w,
		debounce: debounce,
		roots:    slices.Clone(paths),
		watched:  set.New[string](),
		Events:   make(chan Event, 64),
		Errors:   make(chan error, 64),
	}, nil
}

// Watcher watches files and directory trees, reporting changes in debounced batches.
// Directories created below a watched tree are picked up as they appear.
type Watcher struct {
	Events chan Event
	Errors chan error

	watcher  *fsnotify.Watcher
	debounce time.Duration

	roots   []string
	watched *set.Set[string]

	// Filter, when set, drops changes to files it returns false for. Directory changes
	// are always reported. Set it before Start.
	Filter func(path string) bool
}

// Start adds the watches, then delivers events in the background until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	for _, root := range w.roots {
		if err := w.addPath(root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	go w.loop(ctx)

	return nil
}

// Roots returns the paths passed to New
func (w *Watcher) Roots() []string {
	return slices.Clone(w.roots)
}

func (w *Watcher) loop(ctx context.Context) {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending = set.New[string]()
	)

	resetTimer := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
			timerCh = timer.C
			return
		}
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(w.debounce)
	}

	flush := func() {
		if pending.Len() == 0 {
			return
		}
		paths := pending.Values()
		slices.Sort(paths)
		pending.Clear()

		lazySend(w.Events, Event{
			Reason: fmt.Sprintf("file change (%s quiet)", w.debounce),
			Paths:  paths,
		})
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create {
				w.addDirectoryIfNeeded(ev.Name)
			}
			isDir := w.isDir(ev.Name)
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.watched.Delete(filepath.Clean(ev.Name))
			}
			if w.Filter != nil && !isDir && !w.Filter(ev.Name) {
				continue
			}
			pending.Add(ev.Name)
			resetTimer()

		case <-timerCh:
			timer = nil
			timerCh = nil
			flush()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			lazySend(w.Errors, fmt.Errorf("watch error: %w", err))
		}
	}
}

func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

func (w *Watcher) addPath(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.addWatch(root)
	}

	dirs, err := fileutils.WalkDirs(root)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.addWatch(dir); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) addWatch(path string) error {
	normalized := filepath.Clean(path)
	if w.watched.Has(normalized) {
		return nil
	}
	if err := w.watcher.Add(normalized); err != nil {
		return err
	}
	w.watched.Add(normalized)
	return nil
}

// isDir reports whether path is, or was until it went away, a watched directory
func (w *Watcher) isDir(path string) bool {
	if w.watched.Has(filepath.Clean(path)) {
		info, err := os.Stat(path)
		return err != nil || info.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (w *Watcher) addDirectoryIfNeeded(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addPath(path); err != nil {
		lazySend(w.Errors, fmt.Errorf("failed to watch new directory: %w", err))
	}
}
