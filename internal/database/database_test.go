package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")

	db, err := Open(path)
	require.NoError(t, err)

	assert.NoError(t, HealthCheck(db))

	version, err := SchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM holding`).Scan(&count))
	assert.Zero(t, count)
	require.NoError(t, db.Close())

	// Reopening a migrated database is a no-op
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	version, err = SchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}
