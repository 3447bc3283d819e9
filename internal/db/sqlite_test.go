package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesKVTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "local.db")

	database, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, database.Close()) })

	var tableName string
	err = database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&tableName)
	require.NoError(t, err)
	assert.Equal(t, "kv", tableName)
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, database.Close()) })

	require.NoError(t, runSQLiteMigrations(database))

	var count int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}
