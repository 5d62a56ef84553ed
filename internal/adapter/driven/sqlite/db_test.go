package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesRestrictedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "marketpro.db")

	db, err := NewDB(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, db.Path())
	assert.Equal(t, 1, db.Writer.Stats().MaxOpenConnections)
	assert.Equal(t, 4, db.Reader.Stats().MaxOpenConnections)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	var mode string
	require.NoError(t, db.Reader.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	require.NoError(t, db.Close())
}
