package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/roach88/bestiary/internal/fixture"
)

// createTestStore creates a new empty writable store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createSeededPath seeds the sample dataset into a fresh database file and
// returns its path. The writable store is closed before returning.
func createSeededPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bestiary.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	ds := fixture.Sample()
	if err := s.Seed(context.Background(), ds.Sources, ds.Monsters); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	return path
}

// createSeededStore opens the seeded sample database read-only.
func createSeededStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenReadOnly(createSeededPath(t))
	if err != nil {
		t.Fatalf("OpenReadOnly() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// verifyPragma checks that a pragma is set to the expected value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
