package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/bestiary/internal/ir"
)

//go:embed schema.sql
var schemaSQL string

// Store provides access to the monster database.
type Store struct {
	db *sql.DB
}

// Open creates or opens a writable SQLite database at the given path and
// applies the schema.
//
// The database is configured with:
//   - rollback journal (DELETE) so read-only connections need no -shm file
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := openDB(fileDSN(path, "rwc"))
	if err != nil {
		return nil, err
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db, writablePragmas); err != nil {
		db.Close()
		return nil, ir.NewStorageError("apply pragmas", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, ir.NewStorageError("apply schema", err)
	}

	return &Store{db: db}, nil
}

// OpenReadOnly opens an existing database for the duration of one request.
// The file must exist; the schema is not touched.
func OpenReadOnly(path string) (*Store, error) {
	db, err := openDB(fileDSN(path, "ro"))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db, readOnlyPragmas); err != nil {
		db.Close()
		return nil, ir.NewStorageError("apply pragmas", err)
	}

	return &Store{db: db}, nil
}

// fileDSN builds a SQLite URI for path. The path is percent-encoded so '#',
// '?' and '%' in file names survive URI parsing.
func fileDSN(path, mode string) string {
	u := url.URL{
		Scheme:   "file",
		OmitHost: true,
		Path:     path,
		RawQuery: "mode=" + mode,
	}
	return u.String()
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, ir.NewStorageError("open database", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, ir.NewStorageError("connect to database", err)
	}

	return db, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var writablePragmas = []string{
	"PRAGMA journal_mode = DELETE",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 5000",
}

var readOnlyPragmas = []string{
	"PRAGMA busy_timeout = 5000",
}

func applyPragmas(db *sql.DB, pragmas []string) error {
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// ResolveSourceHash returns the hash token registered for a source name.
// The name is normalized before lookup.
func (s *Store) ResolveSourceHash(ctx context.Context, name string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT hash FROM sources WHERE name = ?`, ir.NormalizeName(name),
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", ir.NewUnknownSourceError(name)
	}
	if err != nil {
		return "", ir.NewStorageError("resolve source hash", err)
	}
	return hash, nil
}
