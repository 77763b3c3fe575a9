package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestOpenSqlite(t *testing.T) {
	conn, err := OpenSqlite(filepath.Join(t.TempDir(), "rides.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)

	var one int
	require.NoError(t, conn.QueryRow(`SELECT 1`).Scan(&one))
	assert.Equal(t, 1, one)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := open("no-such-driver", "", "test", poolConfig{maxOpen: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openDB: open test database")
}
