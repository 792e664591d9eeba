// Package storagetest opens throwaway migrated databases for tests.
package storagetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/storage"
)

// New returns a fully migrated SQLite database in t's temp dir. It is
// closed when the test ends.
func New(t testing.TB) *sql.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, storage.Migrate(context.Background(), db))
	return db
}
