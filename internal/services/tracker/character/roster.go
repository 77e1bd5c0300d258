// Package character manages the per-character stores kept in the data directory.
package character

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/louisbranch/gwtrack/internal/platform/logging"
	"github.com/louisbranch/gwtrack/internal/services/tracker/content"
	"github.com/louisbranch/gwtrack/internal/services/tracker/storage"
	"github.com/louisbranch/gwtrack/internal/services/tracker/storage/sqlite"
	"go.uber.org/zap"
)

const storeExt = ".db"

// Entry describes one character store found in the data directory.
type Entry struct {
	Name string
	Type string
	// File is the store's base name inside the data directory.
	File string
	// UnsupportedVersion is the version found in a store this build cannot
	// open. Name is then derived from File and Type is empty.
	UnsupportedVersion string
}

// Unsupported reports whether the store was written by another schema version.
func (e Entry) Unsupported() bool {
	return e.UnsupportedVersion != ""
}

// FileName derives the store file name for a character name.
func FileName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_") + storeExt
}

// Roster owns the data directory and at most one open character store.
type Roster struct {
	dir     string
	logger  *zap.Logger
	opts    []sqlite.Option
	current *sqlite.Store
}

// NewRoster returns a roster over dir. Store options apply to every store
// the roster opens.
func NewRoster(dir string, logger *zap.Logger, opts ...sqlite.Option) *Roster {
	return &Roster{dir: dir, logger: logging.OrNop(logger), opts: opts}
}

// Dir returns the data directory.
func (r *Roster) Dir() string {
	return r.dir
}

// List returns the characters in the data directory sorted by name, ignoring
// case. Stores with an unsupported version are listed and flagged; other files
// that cannot be read as character stores are logged and skipped.
func (r *Roster) List(ctx context.Context) ([]Entry, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	dirEntries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || filepath.Ext(de.Name()) != storeExt {
			continue
		}
		profile, err := sqlite.ReadProfile(ctx, filepath.Join(r.dir, de.Name()))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			var mismatch *storage.VersionMismatchError
			if errors.As(err, &mismatch) {
				r.logger.Warn("character store has an unsupported version",
					zap.String("file", de.Name()), zap.String("version", mismatch.Found))
				entries = append(entries, Entry{
					Name:               strings.TrimSuffix(de.Name(), storeExt),
					File:               de.Name(),
					UnsupportedVersion: versionLabel(mismatch.Found),
				})
				continue
			}
			r.logger.Warn("skipping unreadable character store", zap.String("file", de.Name()), zap.Error(err))
			continue
		}
		entries = append(entries, Entry{Name: profile.Name, Type: profile.Type, File: de.Name()})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// Create validates profile, writes a new store for it, and makes that store
// current.
func (r *Roster) Create(ctx context.Context, profile storage.Profile) (*sqlite.Store, error) {
	profile, err := normalizeProfile(profile)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(r.dir, FileName(profile.Name))
	store, err := sqlite.Create(ctx, path, profile, r.opts...)
	if err != nil {
		return nil, err
	}
	if err := r.closeCurrent(); err != nil {
		_ = store.Close()
		return nil, err
	}
	r.current = store
	r.logger.Info("character created", zap.String("name", profile.Name), zap.String("file", filepath.Base(path)))
	return store, nil
}

// Switch closes the current store, if any, and opens the store for name.
// Nothing is left open when opening fails.
func (r *Roster) Switch(ctx context.Context, name string) (*sqlite.Store, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("character name is required")
	}
	if err := r.closeCurrent(); err != nil {
		return nil, err
	}
	path := filepath.Join(r.dir, FileName(name))
	store, err := sqlite.Open(ctx, path, r.opts...)
	if err != nil {
		return nil, fmt.Errorf("open character %q: %w", name, err)
	}
	r.current = store
	r.logger.Debug("character selected", zap.String("file", filepath.Base(path)))
	return store, nil
}

// Close closes the current store.
func (r *Roster) Close() error {
	return r.closeCurrent()
}

func (r *Roster) closeCurrent() error {
	if r.current == nil {
		return nil
	}
	err := r.current.Close()
	r.current = nil
	if err != nil {
		return fmt.Errorf("close character store: %w", err)
	}
	return nil
}

// versionLabel keeps a store without any version row distinguishable from a
// supported one.
func versionLabel(found string) string {
	if found == "" {
		return "none"
	}
	return found
}

func normalizeProfile(profile storage.Profile) (storage.Profile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Type = strings.TrimSpace(profile.Type)
	if profile.Name == "" {
		return storage.Profile{}, errors.New("character name is required")
	}
	if strings.ContainsAny(profile.Name, `/\`) {
		return storage.Profile{}, fmt.Errorf("character name %q must not contain path separators", profile.Name)
	}

	primary, err := content.ParseProfession(strings.TrimSpace(profile.Profession1))
	if err != nil {
		return storage.Profile{}, fmt.Errorf("primary profession: %w", err)
	}
	profile.Profession1 = string(primary)

	if second := strings.TrimSpace(profile.Profession2); second != "" {
		secondary, err := content.ParseProfession(second)
		if err != nil {
			return storage.Profile{}, fmt.Errorf("secondary profession: %w", err)
		}
		if secondary == primary {
			return storage.Profile{}, fmt.Errorf("secondary profession must differ from %s", primary)
		}
		profile.Profession2 = string(secondary)
	} else {
		profile.Profession2 = ""
	}
	return profile, nil
}
