// Package postgres stores batches in the postgres database configured under db.*.
package postgres

import (
	"log/slog"

	"github.com/hotmech/simulator/internal/database"
	gormstorage "github.com/hotmech/simulator/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Backend writes through the GORM backend and owns the postgres connection.
type Backend struct {
	*gormstorage.Backend

	logger  *slog.Logger
	manager *database.Manager
}

func New(logger *slog.Logger, dbLog zerolog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{
		logger:  logger,
		manager: database.NewManager(dbLog),
	}
}

// Init connects, migrates, then starts the writer.
func (b *Backend) Init() error {
	if err := b.manager.ConnectPostgres(); err != nil {
		return err
	}
	if err := b.manager.Setup(); err != nil {
		return err
	}
	b.Backend = gormstorage.New(gormstorage.Dependencies{DB: b.manager.DB, Logger: b.logger})
	return b.Backend.Init()
}

func (b *Backend) Close() error {
	if b.Backend != nil {
		if err := b.Backend.Close(); err != nil {
			return err
		}
	}
	return b.manager.Close()
}
