package main

import (
	"errors"
	"fmt"

	"github.com/hotmech/simulator/internal/config"
	"github.com/hotmech/simulator/internal/database"
	gormstorage "github.com/hotmech/simulator/internal/storage/gorm"
	"github.com/hotmech/simulator/internal/stats"
)

var ErrNoReportStore = errors.New("report needs a sqlite file or postgres storage")

// report summarizes a stored batch: the one named in args, or the latest.
func (a *app) report(args []string) error {
	storageCfg := config.GetStorageConfig()
	manager := database.NewManager(a.dbLog)

	var err error
	switch storageCfg.Type {
	case "sqlite":
		if storageCfg.SQLite.Path == "" {
			return ErrNoReportStore
		}
		err = manager.ConnectSqlite(storageCfg.SQLite.Path)
	case "postgres":
		err = manager.ConnectPostgres()
	default:
		return fmt.Errorf("%w, not %q", ErrNoReportStore, storageCfg.Type)
	}
	if err != nil {
		return err
	}
	defer manager.Close()

	var batchID string
	if len(args) > 0 {
		batchID = args[0]
	} else if batchID, err = gormstorage.LatestBatchID(manager.DB); err != nil {
		return err
	}

	b, results, err := gormstorage.LoadBatch(manager.DB, batchID)
	if err != nil {
		return err
	}
	a.logger.Info("Loaded batch", "batch", b.ID, "results", len(results))

	fmt.Fprintf(a.out, "Batch %s (%s): %s vs %s, seed %d, started %s\n",
		b.ID, b.Tag, b.White, b.Black, b.Seed, b.StartTime.Format("2006-01-02 15:04:05"))
	return stats.Summarize(results).Write(a.out)
}
