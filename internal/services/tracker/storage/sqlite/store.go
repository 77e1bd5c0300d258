// Package sqlite stores a character's progress in a single SQLite file.
//
// The file layout is shared with stores written by earlier versions of the
// tracker: a config key/value table carrying the schema version and the
// character profile, and a status table keyed by quest_name.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	sqlitemigrate "github.com/louisbranch/gwtrack/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/gwtrack/internal/services/tracker/status"
	"github.com/louisbranch/gwtrack/internal/services/tracker/storage"
	"github.com/louisbranch/gwtrack/internal/services/tracker/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SupportedVersion is the only config.Version this package reads or writes.
const SupportedVersion = "1"

const (
	configVersion     = "Version"
	configName        = "Name"
	configType        = "Type"
	configProfession1 = "Profession1"
	configProfession2 = "Profession2"
)

// ErrInvalidStore indicates the file is not a character store.
var ErrInvalidStore = errors.New("not a character store")

var _ storage.StatusStore = (*Store)(nil)

// Store persists one character's status rows in SQLite.
type Store struct {
	sqlDB       *sql.DB
	path        string
	validStates bool
}

// Option configures a Store.
type Option func(*Store)

// WithStateValidation toggles rejection of states that are not valid for a
// key's kind. Validation is on by default.
func WithStateValidation(enabled bool) Option {
	return func(s *Store) {
		s.validStates = enabled
	}
}

// Open opens an existing character store. The schema version is checked
// before anything else is read; a mismatch returns *storage.VersionMismatchError.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	sqlDB, cleanPath, err := openExisting(ctx, path)
	if err != nil {
		return nil, err
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return newStore(sqlDB, cleanPath, opts), nil
}

// ReadProfile returns the profile of the store at path without migrating or
// keeping it open.
func ReadProfile(ctx context.Context, path string) (storage.Profile, error) {
	sqlDB, cleanPath, err := openExisting(ctx, path)
	if err != nil {
		return storage.Profile{}, err
	}
	s := newStore(sqlDB, cleanPath, nil)
	defer s.Close()
	return s.Profile(ctx)
}

// openExisting opens a store file that must already exist and carry the
// supported version.
func openExisting(ctx context.Context, path string) (*sql.DB, string, error) {
	cleanPath, err := cleanStorePath(path)
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(cleanPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("open character store %s: %w", cleanPath, storage.ErrNotFound)
		}
		return nil, "", fmt.Errorf("stat character store: %w", err)
	}

	sqlDB, err := openDB(ctx, cleanPath)
	if err != nil {
		return nil, "", err
	}
	version, err := readVersion(ctx, sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, "", err
	}
	if version != SupportedVersion {
		_ = sqlDB.Close()
		return nil, "", &storage.VersionMismatchError{Found: version, Supported: SupportedVersion}
	}
	return sqlDB, cleanPath, nil
}

// Create initialises a new character store at path and records the profile.
// It fails with storage.ErrAlreadyExists when the file is already present.
func Create(ctx context.Context, path string, profile storage.Profile, opts ...Option) (*Store, error) {
	cleanPath, err := cleanStorePath(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(profile.Name) == "" {
		return nil, fmt.Errorf("character name is required")
	}
	if _, err := os.Stat(cleanPath); err == nil {
		return nil, fmt.Errorf("create character store %s: %w", cleanPath, storage.ErrAlreadyExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat character store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	sqlDB, err := openDB(ctx, cleanPath)
	if err != nil {
		return nil, err
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		_ = os.Remove(cleanPath)
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	if err := writeProfile(ctx, sqlDB, profile); err != nil {
		_ = sqlDB.Close()
		_ = os.Remove(cleanPath)
		return nil, err
	}
	return newStore(sqlDB, cleanPath, opts), nil
}

func newStore(sqlDB *sql.DB, path string, opts []Option) *Store {
	s := &Store{sqlDB: sqlDB, path: path, validStates: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cleanStorePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("storage path is required")
	}
	return filepath.Clean(path), nil
}

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return sqlDB, nil
}

func readVersion(ctx context.Context, sqlDB *sql.DB) (string, error) {
	var version sql.NullString
	err := sqlDB.QueryRowContext(ctx,
		"SELECT value FROM config WHERE key = ? LIMIT 1", configVersion,
	).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", nil
	case isMissingTable(err), isNotADatabase(err):
		return "", fmt.Errorf("read store version: %w", ErrInvalidStore)
	case err != nil:
		return "", fmt.Errorf("read store version: %w", err)
	}
	return strings.TrimSpace(version.String), nil
}

func writeProfile(ctx context.Context, sqlDB *sql.DB, profile storage.Profile) error {
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin profile write: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows := [][2]string{
		{configVersion, SupportedVersion},
		{configName, profile.Name},
		{configType, profile.Type},
		{configProfession1, profile.Profession1},
		{configProfession2, profile.Profession2},
	}
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, "INSERT INTO config (key, value) VALUES (?, ?)", row[0], row[1]); err != nil {
			return fmt.Errorf("write config %s: %w", row[0], err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit profile write: %w", err)
	}
	return nil
}

// Path returns the cleaned file path the store was opened from.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns the state stored for key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.sqlDB == nil {
		return "", fmt.Errorf("storage is not configured")
	}
	var state sql.NullString
	err := s.sqlDB.QueryRowContext(ctx, "SELECT state FROM status WHERE quest_name = ?", key).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get status %q: %w", key, err)
	}
	return state.String, nil
}

// Set upserts the state for key.
func (s *Store) Set(ctx context.Context, key, state string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if s.validStates {
		if err := status.ValidateState(key, state); err != nil {
			return err
		}
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO status (quest_name, state) VALUES (?, ?)
		 ON CONFLICT(quest_name) DO UPDATE SET state = excluded.state`,
		key, state,
	)
	if err != nil {
		return fmt.Errorf("set status %q: %w", key, err)
	}
	return nil
}

// Clear writes the empty state for key. The row is kept.
func (s *Store) Clear(ctx context.Context, key string) error {
	return s.Set(ctx, key, status.Clear)
}

// List returns all status rows ordered by key.
func (s *Store) List(ctx context.Context) ([]storage.StatusRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT quest_name, state FROM status ORDER BY quest_name")
	if err != nil {
		return nil, fmt.Errorf("list status: %w", err)
	}
	defer rows.Close()

	var records []storage.StatusRecord
	for rows.Next() {
		var key, state sql.NullString
		if err := rows.Scan(&key, &state); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		records = append(records, storage.StatusRecord{Key: key.String, State: state.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status: %w", err)
	}
	return records, nil
}

// Profile reads the character description from the config table.
func (s *Store) Profile(ctx context.Context) (storage.Profile, error) {
	if err := ctx.Err(); err != nil {
		return storage.Profile{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Profile{}, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, "SELECT key, value FROM config")
	if err != nil {
		return storage.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	defer rows.Close()

	var profile storage.Profile
	for rows.Next() {
		var key, value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return storage.Profile{}, fmt.Errorf("scan profile: %w", err)
		}
		switch key.String {
		case configName:
			profile.Name = value.String
		case configType:
			profile.Type = value.String
		case configProfession1:
			profile.Profession1 = value.String
		case configProfession2:
			profile.Profession2 = value.String
		}
	}
	if err := rows.Err(); err != nil {
		return storage.Profile{}, fmt.Errorf("iterate profile: %w", err)
	}
	return profile, nil
}

func isMissingTable(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such table")
}

func isNotADatabase(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_NOTADB
	}
	return false
}
