package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/hotmech/simulator/internal/config"
	"github.com/hotmech/simulator/internal/storage"
	"github.com/hotmech/simulator/internal/storage/memory"
	"github.com/hotmech/simulator/internal/storage/postgres"
	"github.com/hotmech/simulator/internal/storage/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ storage.Backend  = (*memory.Backend)(nil)
	_ storage.Backend  = (*sqlite.Backend)(nil)
	_ storage.Backend  = (*postgres.Backend)(nil)
	_ storage.Exporter = (*memory.Backend)(nil)
	_ storage.Exporter = (*sqlite.Backend)(nil)
)

func TestNewBackend(t *testing.T) {
	tests := []struct {
		typ  string
		want any
	}{
		{"memory", &memory.Backend{}},
		{"", &memory.Backend{}},
		{"sqlite", &sqlite.Backend{}},
		{"postgres", &postgres.Backend{}},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			b, err := storage.NewBackend(config.StorageConfig{
				Type:   tt.typ,
				Memory: config.MemoryConfig{OutputDir: t.TempDir()},
				SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "f.db")},
			}, nil, zerolog.Nop())
			require.NoError(t, err)
			assert.IsType(t, tt.want, b)
		})
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	_, err := storage.NewBackend(config.StorageConfig{Type: "mongo"}, nil, zerolog.Nop())
	assert.ErrorContains(t, err, "unknown storage type: mongo")
}
