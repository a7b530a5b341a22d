// Package sqlite stores batches in a sqlite database, optionally dumping it to a file
// after every batch.
package sqlite

import (
	"fmt"
	"log/slog"

	"github.com/hotmech/simulator/internal/config"
	"github.com/hotmech/simulator/internal/database"
	gormstorage "github.com/hotmech/simulator/internal/storage/gorm"
	"github.com/rs/zerolog"
)

// Backend writes through the GORM backend and owns the sqlite connection.
type Backend struct {
	*gormstorage.Backend

	cfg     config.SQLiteConfig
	logger  *slog.Logger
	manager *database.Manager
}

func New(cfg config.SQLiteConfig, logger *slog.Logger, dbLog zerolog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{
		cfg:     cfg,
		logger:  logger,
		manager: database.NewManager(dbLog),
	}
}

// Init opens and migrates the database, then starts the writer.
func (b *Backend) Init() error {
	if err := b.manager.ConnectSqlite(b.cfg.Path); err != nil {
		return err
	}
	if err := b.manager.Setup(); err != nil {
		return err
	}
	b.Backend = gormstorage.New(gormstorage.Dependencies{DB: b.manager.DB, Logger: b.logger})
	return b.Backend.Init()
}

// EndBatch closes the batch and, if a dump path is set, copies the database there.
func (b *Backend) EndBatch() error {
	if err := b.Backend.EndBatch(); err != nil {
		return err
	}
	if b.cfg.DumpPath == "" {
		return nil
	}
	if err := b.manager.DumpToDisk(b.cfg.DumpPath); err != nil {
		return fmt.Errorf("failed to dump sqlite DB: %w", err)
	}
	return nil
}

func (b *Backend) Close() error {
	if b.Backend != nil {
		if err := b.Backend.Close(); err != nil {
			return err
		}
	}
	return b.manager.Close()
}

// GetExportedFilePath returns the dump file, or "" when none is configured.
func (b *Backend) GetExportedFilePath() string {
	return b.cfg.DumpPath
}
