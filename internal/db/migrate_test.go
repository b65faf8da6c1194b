package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Not parallel: goose keeps package-level state.
func TestMigrations_UpDown(t *testing.T) {
	ctx := context.Background()

	database, err := Init("sqlite", filepath.Join(t.TempDir(), "nested", "dir", "migrate.db")+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	require.NoError(t, RunMigrations(ctx, database.DB, "sqlite"))
	require.NoError(t, RunMigrations(ctx, database.DB, "sqlite"), "re-running is a no-op")

	for _, table := range []string{"moving_requests", "upload_tokens", "request_media"} {
		var n int
		require.NoError(t, database.Get(&n, `SELECT COUNT(*) FROM `+table))
		assert.Zero(t, n, table)
	}

	require.NoError(t, MigrateDown(ctx, database.DB, "sqlite"))
	var n int
	err = database.Get(&n, `SELECT COUNT(*) FROM request_media`)
	assert.Error(t, err, "last migration rolled back")

	require.NoError(t, Ping(ctx, database))
}

func TestGetDialect(t *testing.T) {
	assert.Equal(t, "sqlite3", getDialect("sqlite"))
	assert.Equal(t, "postgres", getDialect("pgx"))
}
