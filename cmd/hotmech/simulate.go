package main

import (
	"context"
	"fmt"

	"github.com/hotmech/simulator/internal/batch"
	"github.com/hotmech/simulator/internal/catalog"
	"github.com/hotmech/simulator/internal/config"
	"github.com/hotmech/simulator/internal/influx"
	"github.com/hotmech/simulator/internal/logging"
	"github.com/hotmech/simulator/internal/stats"
	"github.com/hotmech/simulator/internal/storage"
	"github.com/hotmech/simulator/pkg/core"
)

// batchStamp tags every log record with the ID of the running batch.
type batchStamp struct {
	ctx *logging.BatchContext
}

func (s batchStamp) StartBatch(b *core.Batch) error {
	s.ctx.Set(b.ID)
	return nil
}

func (s batchStamp) EndBatch() error {
	s.ctx.Set("")
	return nil
}

func (batchStamp) RecordMatch(*core.MatchResult) error { return nil }

func loadCatalog(path string) (*catalog.Registry, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func choiceOf(side config.SideConfig) catalog.Choice {
	return catalog.Choice{Mech: side.Mech, Pilot: side.Pilot, Upgrades: side.Upgrades}
}

// simulate plays one batch with the configured sinks and prints its summary.
func (a *app) simulate(ctx context.Context) error {
	simCfg := config.GetSimulationConfig()

	reg, err := loadCatalog(simCfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	storageCfg := config.GetStorageConfig()
	backend, err := storage.NewBackend(storageCfg, a.logger, a.dbLog)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", storageCfg.Type, err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			a.logger.Error("Failed to close storage", "error", err)
		}
	}()
	a.logger.Info("Storage backend initialized", "type", storageCfg.Type)

	sinks := []batch.Sink{batchStamp{ctx: a.batchCtx}, backend}

	influxCfg := config.GetInfluxConfig()
	if influxCfg.Enabled {
		m := influx.NewManager(influxCfg, logging.NewZerolog(a.logOut, config.GetLoggingConfig().Level, "influx"))
		if err := m.Connect(ctx); err != nil {
			a.logger.Error("Failed to connect to InfluxDB", "error", err)
		} else {
			sinks = append(sinks, m)
		}
		defer m.Close()
	}

	runner, err := batch.New(batch.Dependencies{
		Logger:  a.logger,
		Catalog: reg,
		Sinks:   sinks,
	},
		batch.Workers(simCfg.Workers),
		batch.Seed(simCfg.Seed),
		batch.MaxTurns(simCfg.MaxTurns),
		batch.TurnCardCap(simCfg.TurnCardCap),
		batch.Tag(simCfg.Tag),
	)
	if err != nil {
		return err
	}

	b, results, runErr := runner.Run(ctx, batch.Plan{
		Matches: simCfg.Matches,
		White:   choiceOf(simCfg.White),
		Black:   choiceOf(simCfg.Black),
	})
	if b == nil {
		return runErr
	}

	fmt.Fprintf(a.out, "Batch %s: %s vs %s, seed %d\n", b.ID, b.White, b.Black, b.Seed)
	if err := stats.Summarize(results).Write(a.out); err != nil {
		return err
	}
	if exp, ok := backend.(storage.Exporter); ok && exp.GetExportedFilePath() != "" {
		fmt.Fprintf(a.out, "Results written to %s\n", exp.GetExportedFilePath())
	}
	return runErr
}
