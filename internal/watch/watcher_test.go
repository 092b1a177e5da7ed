// File path: internal/watch/watcher_test.go
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherRebuildsOnWrite(t *testing.T) {
	if testing.Short() {
		t.Skip("debounce makes this test slow")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write kb: %v", err)
	}

	var rebuilds int32
	w, err := New(path, func(context.Context) error {
		atomic.AddInt32(&rebuilds, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Several quick writes should collapse into one rebuild.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(`[{"id":"kb_001","title":"t","content":"c"}]`), 0o644); err != nil {
			t.Fatalf("rewrite kb: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	deadline := time.After(10 * time.Second)
	for atomic.LoadInt32(&rebuilds) == 0 {
		select {
		case <-deadline:
			t.Fatal("rebuild never triggered")
		case <-time.After(100 * time.Millisecond):
		}
	}
	if got := atomic.LoadInt32(&rebuilds); got != 1 {
		t.Fatalf("expected one debounced rebuild, got %d", got)
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	if testing.Short() {
		t.Skip("debounce makes this test slow")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write kb: %v", err)
	}

	var rebuilds int32
	w, err := New(path, func(context.Context) error {
		atomic.AddInt32(&rebuilds, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write other file: %v", err)
	}
	time.Sleep(3 * time.Second)
	if got := atomic.LoadInt32(&rebuilds); got != 0 {
		t.Fatalf("rebuild triggered by unrelated file: %d", got)
	}
}
