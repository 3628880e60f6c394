package watcher

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events:
		return ev
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a watch event")
	}
	return Event{}
}

func TestWatcher(t *testing.T) {
	root := t.TempDir()

	w, err := New(20*time.Millisecond, root)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()
	w.Filter = func(path string) bool { return strings.HasSuffix(path, ".md") }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	page := filepath.Join(root, "page.md")
	if err := os.WriteFile(page, []byte("# hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitEvent(t, w)
	if !slices.Contains(ev.Paths, page) {
		t.Errorf("event paths = %v, want %s", ev.Paths, page)
	}
	for _, p := range ev.Paths {
		if !strings.HasSuffix(p, ".md") {
			t.Errorf("filtered path %s reported", p)
		}
	}
}

func TestWatcherNewDirectory(t *testing.T) {
	root := t.TempDir()

	w, err := New(20*time.Millisecond, root)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()
	w.Filter = func(path string) bool { return strings.HasSuffix(path, ".md") }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	sub := filepath.Join(root, "posts")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	// the new directory is watched asynchronously, keep writing until a change shows up
	nested := filepath.Join(sub, "nested.md")
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if err := os.WriteFile(nested, []byte(time.Now().String()), 0o644); err != nil {
			t.Fatal(err)
		}
		select {
		case ev := <-w.Events:
			if slices.Contains(ev.Paths, nested) {
				return
			}
		case <-time.After(100 * time.Millisecond):
		}
	}
	t.Fatal("change in a newly created directory was not reported")
}

func TestWatcherReportsDirectoryMoves(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	src := filepath.Join(outside, "posts")
	if err := os.Mkdir(src, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "a.md"), []byte("# A"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(20*time.Millisecond, root)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()
	w.Filter = func(path string) bool { return strings.HasSuffix(path, ".md") }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	dst := filepath.Join(root, "posts")
	if err := os.Rename(src, dst); err != nil {
		t.Fatal(err)
	}
	if ev := waitEvent(t, w); !slices.Contains(ev.Paths, dst) {
		t.Errorf("move in: event paths = %v, want %s", ev.Paths, dst)
	}

	if err := os.Rename(dst, src); err != nil {
		t.Fatal(err)
	}
	if ev := waitEvent(t, w); !slices.Contains(ev.Paths, dst) {
		t.Errorf("move out: event paths = %v, want %s", ev.Paths, dst)
	}
}

func TestWatcherMissingRoot(t *testing.T) {
	w, err := New(time.Millisecond, filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	if err := w.Start(context.Background()); err == nil {
		t.Fatal("Start() watched a missing path")
	}
}
