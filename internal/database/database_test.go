package database

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hotmech/simulator/internal/model"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	m := NewManager(zerolog.New(&buf))
	t.Cleanup(func() { m.Close() })
	return m, &buf
}

func TestConnectSqlite_File(t *testing.T) {
	m, logs := newTestManager(t)
	path := filepath.Join(t.TempDir(), "results.db")

	require.NoError(t, m.ConnectSqlite(path))
	assert.True(t, m.ShouldSaveLocal)
	assert.Equal(t, path, m.SqliteFilePath)
	assert.Equal(t, "sqlite", m.DB.Name())
	assert.Contains(t, logs.String(), "Using local SQLite DB")

	require.NoError(t, m.Setup())
	for _, table := range []string{"batches", "matches", "match_players"} {
		assert.True(t, m.DB.Migrator().HasTable(table), table)
	}
}

func TestSetup_NotConnected(t *testing.T) {
	m, _ := newTestManager(t)
	assert.Error(t, m.Setup())
}

func TestDumpToDisk(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.ConnectSqlite("file:dumptest?mode=memory&cache=shared"))
	require.NoError(t, m.Setup())
	require.NoError(t, m.DB.Create(&model.Batch{UUID: "b-dump", Tag: "dump", StartTime: time.Now()}).Error)

	dump := filepath.Join(t.TempDir(), "dump.db")
	require.NoError(t, os.WriteFile(dump, []byte("stale"), 0o644))
	require.NoError(t, m.DumpToDisk(dump))

	copied, err := GetSqliteDB(dump)
	require.NoError(t, err)
	sqlDB, err := copied.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	var b model.Batch
	require.NoError(t, copied.Where("uuid = ?", "b-dump").First(&b).Error)
	assert.Equal(t, "dump", b.Tag)
}

func TestDumpMemoryDBToDisk_NoPath(t *testing.T) {
	assert.ErrorIs(t, DumpMemoryDBToDisk(nil, ""), ErrNoDumpPath)
}

func TestConnectPostgres_Unreachable(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("db.host", "127.0.0.1")
	viper.Set("db.port", "1")
	viper.Set("db.username", "postgres")
	viper.Set("db.password", "postgres")
	viper.Set("db.database", "hotmech")

	m, _ := newTestManager(t)
	assert.Error(t, m.ConnectPostgres())
	assert.Nil(t, m.DB)
}

func TestClose_Unconnected(t *testing.T) {
	m := NewManager(zerolog.Nop())
	assert.NoError(t, m.Close())
}
