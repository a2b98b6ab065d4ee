package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/rulekit/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")

	if err := fsutil.WriteAtomic(context.Background(), path, []byte("{}"), 0); err != nil {
		t.Fatalf("WriteAtomic returned error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("content = %q", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != fsutil.DefaultFileMode {
		t.Errorf("mode = %v, want %v", info.Mode().Perm(), fsutil.DefaultFileMode)
	}
}

func TestWriteAtomic_OverwritesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0); err != nil {
		t.Fatalf("WriteAtomic returned error: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("content = %q", got)
	}
}

func TestWriteAtomic_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "settings.json")
	if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); err == nil {
		t.Error("cancelled context should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be created on cancellation")
	}
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")

	wrote, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("a"), 0)
	if err != nil || !wrote {
		t.Fatalf("first write: wrote=%v err=%v", wrote, err)
	}

	wrote, err = fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("a"), 0)
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if wrote {
		t.Error("unchanged content should not be rewritten")
	}

	wrote, err = fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("b"), 0)
	if err != nil || !wrote {
		t.Fatalf("changed content: wrote=%v err=%v", wrote, err)
	}
}
