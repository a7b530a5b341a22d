package main

import (
	"fmt"

	"github.com/hotmech/simulator/internal/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps each flag onto the config key it overrides.
var flagKeys = map[string]string{
	"matches":        "sim.matches",
	"seed":           "sim.seed",
	"workers":        "sim.workers",
	"max-turns":      "sim.maxTurns",
	"turn-card-cap":  "sim.turnCardCap",
	"tag":            "sim.tag",
	"catalog":        "catalog.path",
	"white-mech":     "sim.white.mech",
	"white-pilot":    "sim.white.pilot",
	"white-upgrades": "sim.white.upgrades",
	"black-mech":     "sim.black.mech",
	"black-pilot":    "sim.black.pilot",
	"black-upgrades": "sim.black.upgrades",
	"storage":        "storage.type",
	"output-dir":     "storage.memory.outputDir",
	"sqlite-path":    "storage.sqlite.path",
	"log-level":      "logLevel",
	"logs-dir":       "logsDir",
	"influx":         "influx.enabled",
	"otel":           "otel.enabled",
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	fs.SortFlags = false

	fs.String("config", ".", "directory holding "+config.FileName)
	fs.IntP("matches", "n", 0, "matches to play")
	fs.Uint64("seed", 0, "batch seed; match i plays on stream (seed, i)")
	fs.IntP("workers", "w", 0, "matches played at once")
	fs.Int("max-turns", 0, "turns before a match is declared unresolved")
	fs.Int("turn-card-cap", 0, "cards in one turn before a match is declared a runaway")
	fs.String("tag", "", "batch label used in storage and export file names")
	fs.String("catalog", "", "YAML catalogue to load instead of the built-in one")

	fs.String("white-mech", "", "white mech ID, random if empty")
	fs.String("white-pilot", "", "white pilot ID, random if empty")
	fs.StringSlice("white-upgrades", nil, "white upgrade IDs, random if empty")
	fs.String("black-mech", "", "black mech ID, random if empty")
	fs.String("black-pilot", "", "black pilot ID, random if empty")
	fs.StringSlice("black-upgrades", nil, "black upgrade IDs, random if empty")

	fs.String("storage", "", "result store: memory, sqlite or postgres")
	fs.String("output-dir", "", "directory for memory store exports")
	fs.String("sqlite-path", "", "sqlite database file, in memory if empty")
	fs.String("log-level", "", "DEBUG, INFO, WARN or ERROR")
	fs.String("logs-dir", "", "directory for the session log file")
	fs.Bool("influx", false, "write a point per match to InfluxDB")
	fs.Bool("otel", false, "export batch metrics")

	fs.Int("tolerance", 1, "cards: flag cards whose balance cost is off by more than this")
	return fs
}

// bindFlags binds every flag in flagKeys into viper. A flag only wins over the config
// file when it was set on the command line.
func bindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}
