package storage

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "app.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 2, applied)

	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrateFS_OrderAndSelfManaged(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/b.sql":     {Data: []byte(`INSERT INTO t(v) VALUES ('second');`)},
		"m/a.sql":     {Data: []byte(`CREATE TABLE t (v TEXT);`)},
		"m/c.sql":     {Data: []byte("BEGIN TRANSACTION;\nINSERT INTO t(v) VALUES ('third');\nCOMMIT;")},
		"m/readme.md": {Data: []byte(`ignored`)},
	}
	require.NoError(t, migrateFS(ctx, db, fsys, "m"))

	rows, err := db.Query(`SELECT v FROM t ORDER BY rowid`)
	require.NoError(t, err)
	defer rows.Close()
	var got []string
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		got = append(got, v)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"second", "third"}, got)
}

func TestMigrateFS_FailureRollsBack(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/a.sql": {Data: []byte(`CREATE TABLE ok (v TEXT); INSERT INTO missing VALUES (1);`)},
	}
	assert.Error(t, migrateFS(ctx, db, fsys, "m"))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Zero(t, n)
}
