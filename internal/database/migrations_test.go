package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableNames(t *testing.T, dbPath string) []string {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name != 'schema_migrations' ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	return names
}

func TestMigrationRunner_UpDown(t *testing.T) {
	ctx := context.Background()
	logger, hook := test.NewNullLogger()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	mr, err := NewMigrationRunner(dbPath, logger)
	require.NoError(t, err)
	defer mr.Close()

	require.NoError(t, mr.Up(ctx))
	version, dirty, err := mr.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)
	assert.Equal(t, "Catalog migrations completed successfully", hook.LastEntry().Message)
	assert.Equal(t, []string{"antibiotics", "atypical_coverage", "effectiveness", "pathogens"}, tableNames(t, dbPath))

	// A second run has nothing to do
	require.NoError(t, mr.Up(ctx))

	require.NoError(t, mr.Down(ctx))
	version, _, err = mr.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	require.NoError(t, mr.Down(ctx))
	_, _, err = mr.Version()
	assert.ErrorIs(t, err, migrate.ErrNilVersion)
	assert.Empty(t, tableNames(t, dbPath))
}

func TestMigrate_Idempotent(t *testing.T) {
	logger, _ := test.NewNullLogger()
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	require.NoError(t, Migrate(context.Background(), dbPath, logger))
	require.NoError(t, Migrate(context.Background(), dbPath, logger))
	assert.Len(t, tableNames(t, dbPath), 4)
}
