// Command hotmech plays batches of simulated mech duels and reports how each loadout fares.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/hotmech/simulator/internal/config"
	"github.com/hotmech/simulator/internal/logging"
	intOtel "github.com/hotmech/simulator/internal/otel"
	"github.com/rs/zerolog"
)

const AppName = "hotmech"

var ErrUnknownCommand = errors.New("unknown command")

// app carries the process-wide logging and telemetry state for one invocation.
type app struct {
	out   io.Writer
	start time.Time

	slogManager *logging.SlogManager
	logger      *slog.Logger
	batchCtx    *logging.BatchContext
	logFile     *os.File
	logFilePath string
	logOut      io.Writer // log file, or stderr without one
	dbLog       zerolog.Logger

	otelProvider *intOtel.Provider
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "hotmech:", err)
		os.Exit(1)
	}
}

// run parses args, loads config and dispatches to the subcommand. No subcommand means
// "simulate".
func run(ctx context.Context, args []string, out io.Writer) error {
	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := bindFlags(flags); err != nil {
		return err
	}

	configDir, _ := flags.GetString("config")
	if err := config.Load(configDir); err != nil {
		return err
	}

	command := "simulate"
	if flags.NArg() > 0 {
		command = strings.ToLower(flags.Arg(0))
	}

	switch command {
	case "cards":
		tolerance, _ := flags.GetInt("tolerance")
		return listCards(out, tolerance)
	case "simulate", "report":
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}

	a := &app{out: out, start: time.Now()}
	if err := a.setupLogging(); err != nil {
		return err
	}
	defer a.close()

	if command == "report" {
		return a.report(flags.Args()[1:])
	}
	return a.simulate(ctx)
}

// setupLogging opens the session log file in logsDir, or logs to stdout when logsDir is
// empty, and attaches Graylog and the OTel meter provider when configured.
func (a *app) setupLogging() error {
	logCfg := config.GetLoggingConfig()
	a.batchCtx = &logging.BatchContext{}
	a.slogManager = logging.NewSlogManager()

	logOut := io.Writer(os.Stderr)
	if logCfg.Dir != "" {
		if err := os.MkdirAll(logCfg.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs dir: %w", err)
		}
		a.logFilePath = logging.LogFilePath(logCfg.Dir, AppName, a.start)
		if _, err := os.Stat(a.logFilePath); err == nil {
			os.Rename(a.logFilePath, a.logFilePath+".old")
		}
		f, err := os.OpenFile(a.logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.logFile = f
		logOut = f
	}

	var extra []slog.Handler
	graylogCfg := config.GetGraylogConfig()
	if graylogCfg.Enabled {
		h, err := logging.NewGelfHandler(graylogCfg.Address, logCfg.Level)
		if err != nil {
			fmt.Fprintln(os.Stderr, "graylog disabled:", err)
		} else {
			extra = append(extra, h)
		}
	}

	var file io.Writer
	if a.logFile != nil {
		file = a.logFile
	}
	a.slogManager.Setup(file, logCfg.Level, a.batchCtx.Provider(), extra...)
	a.logger = a.slogManager.Logger()
	a.logOut = logOut
	a.dbLog = logging.NewZerolog(logOut, logCfg.Level, "database")
	if a.logFilePath != "" {
		a.logger.Info("Logging to file", "path", a.logFilePath)
	}

	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		p, err := intOtel.New(intOtel.Config{
			Enabled:        true,
			ServiceName:    otelCfg.ServiceName,
			ExportInterval: otelCfg.ExportInterval,
			MetricWriter:   logOut,
		})
		if err != nil {
			a.logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			a.otelProvider = p
			a.logger.Info("OTel provider initialized", "interval", otelCfg.ExportInterval)
		}
	}
	return nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.otelProvider != nil {
		if err := a.otelProvider.Shutdown(ctx); err != nil {
			a.logger.Warn("Failed to shut down OTel provider", "error", err)
		}
	}
	if err := a.slogManager.Flush(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to flush log:", err)
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}
