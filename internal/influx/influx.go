// Package influx writes one point per finished match to InfluxDB, or to a gzipped
// line-protocol backup file when the server cannot be reached.
package influx

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hotmech/simulator/internal/config"
	"github.com/hotmech/simulator/pkg/core"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"
)

// Measurement is the name of the per-match point.
const Measurement = "match"

var ErrDisabled = errors.New("influx is disabled")

// Manager handles the InfluxDB connection and writes.
type Manager struct {
	Client       influxdb2.Client
	Writer       influxdb2_api.WriteAPI
	BackupWriter *gzip.Writer
	IsValid      bool
	Logger       zerolog.Logger

	cfg        config.InfluxConfig
	backupFile *os.File
	mu         sync.Mutex
}

// NewManager creates a new InfluxDB manager.
func NewManager(cfg config.InfluxConfig, log zerolog.Logger) *Manager {
	return &Manager{
		cfg:    cfg,
		Logger: log,
	}
}

// Connect pings the server and prepares the org, bucket and writer. If the server is
// down, points go to the backup file instead and Connect still succeeds.
func (m *Manager) Connect(ctx context.Context) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	m.Client = influxdb2.NewClientWithOptions(
		m.cfg.URL(),
		m.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(2500).
			SetFlushInterval(1000),
	)

	running, err := m.Client.Ping(ctx)
	if err != nil || !running {
		m.IsValid = false
		if err := m.openBackup(); err != nil {
			return err
		}
		m.Logger.Warn().Str("backupPath", m.cfg.BackupPath).
			Msg("InfluxDB unreachable, writing to backup file")
		return nil
	}

	m.IsValid = true
	if err := m.setupOrganizationAndBucket(ctx); err != nil {
		return err
	}
	m.createWriter()
	m.Logger.Info().Str("url", m.cfg.URL()).Str("bucket", m.cfg.Bucket).Msg("InfluxDB client initialized")
	return nil
}

func (m *Manager) openBackup() error {
	if m.BackupWriter != nil {
		return nil
	}
	file, err := os.OpenFile(m.cfg.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}
	m.backupFile = file
	m.BackupWriter = gzip.NewWriter(file)
	return nil
}

func (m *Manager) setupOrganizationAndBucket(ctx context.Context) error {
	orgs := m.Client.OrganizationsAPI()
	org, err := orgs.FindOrganizationByName(ctx, m.cfg.Org)
	if err != nil {
		m.Logger.Info().Str("org", m.cfg.Org).Msg("Organization not found, creating")
		org, err = orgs.CreateOrganizationWithName(ctx, m.cfg.Org)
		if err != nil {
			m.Logger.Error().Err(err).Str("org", m.cfg.Org).Msg("Error creating organization")
			return err
		}
	}

	buckets := m.Client.BucketsAPI()
	if _, err := buckets.FindBucketByName(ctx, m.cfg.Bucket); err == nil {
		return nil
	}
	m.Logger.Info().Str("bucket", m.cfg.Bucket).Msg("Bucket not found, creating")

	rule := domain.RetentionRuleTypeExpire
	_, err = buckets.CreateBucketWithName(ctx, org, m.cfg.Bucket, domain.RetentionRule{
		Type:         &rule,
		EverySeconds: 60 * 60 * 24 * 90, // 90 days
	})
	if err != nil {
		m.Logger.Error().Err(err).Str("bucket", m.cfg.Bucket).Msg("Error creating bucket")
		return err
	}
	return nil
}

func (m *Manager) createWriter() {
	m.Writer = m.Client.WriteAPI(m.cfg.Org, m.cfg.Bucket)
	go func(errorsCh <-chan error) {
		for writeErr := range errorsCh {
			m.Logger.Error().Err(writeErr).Str("bucket", m.cfg.Bucket).Msg("Error sending data to InfluxDB")
		}
	}(m.Writer.Errors())
}

// WritePoint writes a point to InfluxDB or the backup file.
func (m *Manager) WritePoint(point *influxdb2_write.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.IsValid {
		m.Writer.WritePoint(point)
		return nil
	}
	if m.BackupWriter == nil {
		return errors.New("influxDB client not initialized and backup writer not available")
	}

	line := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
	if _, err := m.BackupWriter.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// RecordMatch writes the match point for r.
func (m *Manager) RecordMatch(r *core.MatchResult) error {
	return m.WritePoint(MatchPoint(r, time.Now()))
}

// MatchPoint builds the point for one match. The side and outcome labels are tags so
// dashboards can group by them.
func MatchPoint(r *core.MatchResult, ts time.Time) *influxdb2_write.Point {
	tags := map[string]string{
		"batch":      r.BatchID,
		"white_mech": r.White.Mech,
		"black_mech": r.Black.Mech,
		"outcome":    r.Outcome,
	}
	if r.Winner != "" {
		tags["winner"] = r.Winner
	}
	if r.White.Pilot != "" {
		tags["white_pilot"] = r.White.Pilot
	}
	if r.Black.Pilot != "" {
		tags["black_pilot"] = r.Black.Pilot
	}

	fields := map[string]any{
		"index":         r.Index,
		"turns":         r.Turns,
		"melt_damage":   r.MeltDamage,
		"weapon_damage": r.WeaponDamage,
		"white_hp":      r.White.HP,
		"black_hp":      r.Black.HP,
	}
	if r.FirstBlood != nil {
		fields["first_blood"] = *r.FirstBlood
	}
	return influxdb2_write.NewPoint(Measurement, tags, fields, ts)
}

// Close flushes pending writes and releases the client and backup file.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Writer != nil {
		m.Writer.Flush()
	}
	if m.Client != nil {
		m.Client.Close()
	}

	var errs []error
	if m.BackupWriter != nil {
		errs = append(errs, m.BackupWriter.Close())
		m.BackupWriter = nil
	}
	if m.backupFile != nil {
		errs = append(errs, m.backupFile.Close())
		m.backupFile = nil
	}
	return errors.Join(errs...)
}
