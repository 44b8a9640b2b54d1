package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"portfolio/internal/logging"
	"portfolio/internal/testsupport"
	"portfolio/internal/watch"
)

type recorder struct {
	mu    sync.Mutex
	runs  [][]string
	ready chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ready: make(chan struct{}, 16)}
}

func (r *recorder) run(_ context.Context, changed []string) error {
	r.mu.Lock()
	r.runs = append(r.runs, changed)
	r.mu.Unlock()
	r.ready <- struct{}{}
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}

func startWatcher(t *testing.T, root string, rec *recorder) {
	t.Helper()
	w, err := watch.New(root, 100*time.Millisecond, rec.run, logging.NewNop())
	if err != nil {
		t.Fatalf("watch.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func waitForRun(t *testing.T, rec *recorder) {
	t.Helper()
	select {
	case <-rec.ready:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a triggered run")
	}
}

func TestBurstOfImagesTriggersOneRun(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "wildlife")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	rec := newRecorder()
	startWatcher(t, root, rec)

	for _, name := range []string{"a.jpg", "b.jpg", "c.png"} {
		testsupport.WriteJPEG(t, filepath.Join(dir, name), 16, 16)
	}
	waitForRun(t, rec)
	time.Sleep(300 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Fatalf("expected one debounced run, got %d", got)
	}
	rec.mu.Lock()
	changed := len(rec.runs[0])
	rec.mu.Unlock()
	if changed != 3 {
		t.Fatalf("expected 3 changed paths, got %d", changed)
	}
}

func TestNonImageChangesAreIgnored(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	startWatcher(t, root, rec)

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".hidden.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(400 * time.Millisecond)
	if got := rec.count(); got != 0 {
		t.Fatalf("expected no runs, got %d", got)
	}
}

func TestNewCategoryDirectoryIsWatched(t *testing.T) {
	root := t.TempDir()
	rec := newRecorder()
	startWatcher(t, root, rec)

	dir := filepath.Join(root, "Hampi")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	// Give the watcher a moment to register the new directory.
	time.Sleep(200 * time.Millisecond)
	testsupport.WriteJPEG(t, filepath.Join(dir, "temple.jpg"), 16, 16)
	waitForRun(t, rec)
}

func TestNewValidatesArguments(t *testing.T) {
	root := t.TempDir()
	if _, err := watch.New(root, time.Second, nil, nil); err == nil {
		t.Fatal("expected error for nil run func")
	}
	noop := func(context.Context, []string) error { return nil }
	if _, err := watch.New(root, 0, noop, nil); err == nil {
		t.Fatal("expected error for zero debounce")
	}
	if _, err := watch.New(filepath.Join(root, "absent"), time.Second, noop, nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}
