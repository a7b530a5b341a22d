package storage

import (
	"fmt"
	"log/slog"

	"github.com/hotmech/simulator/internal/config"
	"github.com/hotmech/simulator/internal/storage/memory"
	"github.com/hotmech/simulator/internal/storage/postgres"
	"github.com/hotmech/simulator/internal/storage/sqlite"
	"github.com/rs/zerolog"
)

// NewBackend creates a storage backend based on configuration. dbLog reports on the
// database connection for the sqlite and postgres backends.
func NewBackend(cfg config.StorageConfig, logger *slog.Logger, dbLog zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return postgres.New(logger, dbLog), nil
	case "sqlite":
		return sqlite.New(cfg.SQLite, logger, dbLog), nil
	case "memory", "":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
