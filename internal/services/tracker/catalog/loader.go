package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/louisbranch/gwtrack/internal/platform/logging"
	"github.com/louisbranch/gwtrack/internal/services/tracker/content"
	"go.uber.org/zap"
)

// ErrorPolicy decides what the loader does with a file that fails to load.
type ErrorPolicy int

const (
	// FailFast stops at the first failing file.
	FailFast ErrorPolicy = iota
	// CollectErrors skips failing files and reports them together at the end.
	CollectErrors
)

func (p ErrorPolicy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case CollectErrors:
		return "collect-errors"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// Loader reads content files from the four kind directories of a content root.
type Loader struct {
	// FS is the content root, usually os.DirFS of the content directory.
	FS     fs.FS
	Policy ErrorPolicy
	Logger *zap.Logger
}

// Load builds a registry from every content file under FS. Kinds load in
// content.Kinds order and files in name order.
//
// Under CollectErrors the returned registry holds every area that loaded and
// the error joins every failure. Under FailFast the registry is nil on error.
func (l *Loader) Load(ctx context.Context) (*Registry, error) {
	if l == nil || l.FS == nil {
		return nil, errors.New("content filesystem is required")
	}
	logger := logging.OrNop(l.Logger)

	reg := NewRegistry()
	var errs []error
	for _, kind := range content.Kinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		files, err := contentFiles(l.FS, kind)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("content directory missing, skipping", zap.String("dir", kind.Dir()))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", kind.Dir(), err)
		}

		for _, file := range files {
			area, err := l.loadFile(kind, file)
			if err == nil {
				if err = reg.Register(area); err != nil {
					err = fmt.Errorf("%s: %w", file, err)
				}
			}
			if err == nil {
				continue
			}
			if l.Policy == FailFast {
				return nil, err
			}
			logger.Warn("skipping content file", zap.String("file", file), zap.Error(err))
			errs = append(errs, err)
		}
		logger.Debug("content kind loaded",
			zap.Stringer("kind", kind),
			zap.Int("files", len(files)),
			zap.Int("areas", reg.Count(kind)),
		)
	}
	if len(errs) > 0 {
		return reg, errors.Join(errs...)
	}
	return reg, nil
}

func (l *Loader) loadFile(kind content.Kind, file string) (content.Area, error) {
	fallback := strings.TrimSuffix(path.Base(file), path.Ext(file))

	data, err := fs.ReadFile(l.FS, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	rec, err := content.DecodeRecord(data)
	if err != nil {
		return nil, &content.ValidationError{Kind: kind, File: file, Area: fallback, Reason: err.Error()}
	}

	name := fallback
	if value, ok, err := rec.Text("Name"); err != nil {
		return nil, annotate(err, kind, file, fallback)
	} else if ok {
		name = value
	}

	area, err := content.ParseArea(kind, name, rec)
	if err != nil {
		return nil, annotate(err, kind, file, name)
	}
	return area, nil
}

// contentFiles lists the YAML files of a kind directory, sorted by name.
func contentFiles(fsys fs.FS, kind content.Kind) ([]string, error) {
	entries, err := fs.ReadDir(fsys, kind.Dir())
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isContentFile(entry.Name()) {
			continue
		}
		files = append(files, path.Join(kind.Dir(), entry.Name()))
	}
	return files, nil
}

func isContentFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func annotate(err error, kind content.Kind, file, area string) error {
	var verr *content.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%s: %w", file, err)
	}
	if verr.File == "" {
		verr.File = file
	}
	if !verr.Kind.Valid() {
		verr.Kind = kind
	}
	if verr.Area == "" {
		verr.Area = area
	}
	return err
}
