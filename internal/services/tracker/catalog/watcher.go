package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/louisbranch/gwtrack/internal/platform/logging"
	"github.com/louisbranch/gwtrack/internal/services/tracker/content"
	"go.uber.org/zap"
)

const defaultDebounce = 250 * time.Millisecond

// ReloadFunc receives the outcome of every load the watcher runs.
type ReloadFunc func(reg *Registry, err error)

// Watcher reloads a content directory whenever one of its YAML files changes.
// It is a tool for content authors; normal commands load once.
type Watcher struct {
	// Dir is the content root on disk. Loader.FS should read the same tree.
	Dir      string
	Loader   *Loader
	Logger   *zap.Logger
	Debounce time.Duration
	OnReload ReloadFunc
}

// Run loads once, then reloads after each burst of content changes until ctx
// is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Loader == nil || w.OnReload == nil {
		return errors.New("watcher needs a loader and a reload callback")
	}
	logger := logging.OrNop(w.Logger)
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fs watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.Dir, err)
	}
	for _, kind := range content.Kinds {
		w.watchKindDir(fsw, logger, filepath.Join(w.Dir, kind.Dir()))
	}

	w.reload(ctx, logger)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("content watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(fsw, logger, event) {
				continue
			}
			logger.Debug("content changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("content watcher error", zap.Error(err))

		case <-timer.C:
			w.reload(ctx, logger)
		}
	}
}

// relevant reports whether event should trigger a reload. A kind directory
// created after startup is added to the watch list.
func (w *Watcher) relevant(fsw *fsnotify.Watcher, logger *zap.Logger, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if filepath.Dir(event.Name) == filepath.Clean(w.Dir) {
		if !isKindDir(filepath.Base(event.Name)) {
			return false
		}
		if event.Has(fsnotify.Create) {
			w.watchKindDir(fsw, logger, event.Name)
		}
		return true
	}
	return isContentFile(event.Name)
}

func (w *Watcher) watchKindDir(fsw *fsnotify.Watcher, logger *zap.Logger, dir string) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	if err := fsw.Add(dir); err != nil {
		logger.Warn("cannot watch content directory", zap.String("dir", dir), zap.Error(err))
	}
}

func (w *Watcher) reload(ctx context.Context, logger *zap.Logger) {
	reg, err := w.Loader.Load(ctx)
	if err != nil {
		logger.Warn("content reload failed", zap.Error(err))
	} else {
		logger.Info("content reloaded")
	}
	w.OnReload(reg, err)
}

func isKindDir(name string) bool {
	for _, kind := range content.Kinds {
		if kind.Dir() == name {
			return true
		}
	}
	return false
}
