package db

import (
	"path/filepath"
	"testing"

	"github.com/skillmastery/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteFile(t *testing.T) {
	gdb, err := Open(config.DatabaseConfig{
		Mode:       ModeSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	var one int
	require.NoError(t, gdb.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	var fk int
	require.NoError(t, gdb.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestOpen_UnknownMode(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Mode: "oracle"})
	assert.Error(t, err)
}

func TestOpen_MissingDSN(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Mode: ModeMySQL})
	assert.Error(t, err)

	_, err = Open(config.DatabaseConfig{Mode: ModePostgres})
	assert.Error(t, err)
}
