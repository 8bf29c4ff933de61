package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/autopropelidos/portal/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/autopropelidos/portal/internal/core/domain"
	"github.com/autopropelidos/portal/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "portal.db"

// Store holds the records of every content domain in one SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.autopropelidos/data/portal.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".autopropelidos", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations and records their versions.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Version returns the highest applied migration.
func (s *Store) Version(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// Seed replaces every record of type t with records, keeping their order.
func Seed[T domain.Record](ctx context.Context, s *Store, t domain.ContentType, records []T) error {
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedType, t)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed of %s: %w", t, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE content_type = ?", string(t)); err != nil {
		return fmt.Errorf("clearing %s: %w", t, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (content_type, id, position, payload)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshalling %s %s: %w", t, r.GetID(), err)
		}
		if _, err := stmt.ExecContext(ctx, string(t), r.GetID(), i, string(payload)); err != nil {
			return fmt.Errorf("inserting %s %s: %w", t, r.GetID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed of %s: %w", t, err)
	}
	return nil
}

// Count returns the number of stored records of type t.
func (s *Store) Count(ctx context.Context, t domain.ContentType) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE content_type = ?", string(t)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", t, err)
	}
	return n, nil
}

// RecordSource implements driven.RecordSource over one content type.
type RecordSource[T any] struct {
	store *Store
	typ   domain.ContentType
}

var _ driven.RecordSource[domain.NewsItem] = (*RecordSource[domain.NewsItem])(nil)

// NewRecordSource returns a record source for type t backed by store.
func NewRecordSource[T any](store *Store, t domain.ContentType) *RecordSource[T] {
	return &RecordSource[T]{store: store, typ: t}
}

// ListAll returns all records of the source type in seed order.
func (r *RecordSource[T]) ListAll(ctx context.Context) ([]T, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, payload FROM records
		WHERE content_type = ?
		ORDER BY position, id
	`, string(r.typ))
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s: %w", domain.ErrSourceUnavailable, r.typ, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", r.typ, err)
		}
		var rec T
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("decoding %s %s: %w", r.typ, id, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", r.typ, err)
	}
	return out, nil
}
