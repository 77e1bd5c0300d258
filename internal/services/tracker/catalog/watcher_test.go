package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/gwtrack/internal/services/tracker/content"
	"go.uber.org/goleak"
)

type reloadResult struct {
	reg *Registry
	err error
}

func TestWatcherReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "quests", "ascalon.yaml"), ascalonQuests)

	results := make(chan reloadResult, 8)
	w := &Watcher{
		Dir:      dir,
		Loader:   &Loader{FS: os.DirFS(dir), Policy: CollectErrors},
		Debounce: 20 * time.Millisecond,
		OnReload: func(reg *Registry, err error) {
			results <- reloadResult{reg: reg, err: err}
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	first := awaitReload(t, results)
	if first.err != nil {
		t.Fatalf("initial load: %v", first.err)
	}
	if first.reg.Count(content.KindSkill) != 0 {
		t.Fatal("expected no skills before change")
	}

	writeFile(t, filepath.Join(dir, "skills", "core.yaml"), "Name: Core\nSkills:\n  Resurrection Signet: {}\n")

	deadline := time.After(5 * time.Second)
	for {
		var got reloadResult
		select {
		case got = <-results:
		case <-deadline:
			t.Fatal("timed out waiting for reload with new skills")
		}
		if got.reg != nil && got.reg.Count(content.KindSkill) == 1 {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcherRequiresCallback(t *testing.T) {
	w := &Watcher{Dir: t.TempDir(), Loader: &Loader{FS: os.DirFS(".")}}
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error without reload callback")
	}
}

func TestWatcherRequiresExistingDir(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w := &Watcher{
		Dir:      filepath.Join(t.TempDir(), "missing"),
		Loader:   &Loader{FS: os.DirFS(".")},
		OnReload: func(*Registry, error) {},
	}
	if err := w.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func awaitReload(t *testing.T, results <-chan reloadResult) reloadResult {
	t.Helper()
	select {
	case got := <-results:
		return got
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return reloadResult{}
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
