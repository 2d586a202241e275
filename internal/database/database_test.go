package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsInMemory(t *testing.T) {
	conn, err := Open(Config{Path: MemoryPath})
	require.NoError(t, err)
	defer conn.Close()

	m := NewMigrationManager(conn)
	require.NoError(t, m.RunMigrations())

	applied, err := m.GetAppliedMigrations()
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true, 2: true}, applied)

	// Second run is a no-op
	require.NoError(t, m.RunMigrations())

	_, err = conn.Exec(`INSERT INTO occurrences (id, observed_at_ms, longitude, latitude, scientific_name, source)
		VALUES ('a', 1, -123.0, 48.5, 'Orcinus orca', 'manual')`)
	require.NoError(t, err)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sightings.db")
	conn, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, NewMigrationManager(conn).RunMigrations())
	assert.FileExists(t, path)
}

func TestTransactionRollback(t *testing.T) {
	conn, err := Open(Config{Path: MemoryPath})
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, NewMigrationManager(conn).RunMigrations())

	err = Transaction(conn, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO occurrences (id, observed_at_ms, longitude, latitude, scientific_name)
			VALUES ('a', 1, -123.0, 48.5, 'Orcinus orca')`); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM occurrences").Scan(&n))
	assert.Zero(t, n)
}
