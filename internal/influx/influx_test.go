package influx

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hotmech/simulator/internal/config"
	"github.com/hotmech/simulator/pkg/core"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *core.MatchResult {
	fb := 4
	return &core.MatchResult{
		BatchID:      "b-9",
		Index:        3,
		Outcome:      "win",
		Winner:       "black",
		Turns:        11,
		FirstBlood:   &fb,
		MeltDamage:   2,
		WeaponDamage: 17,
		White:        core.PlayerResult{Mech: "sandpiper", Pilot: "crazy-ivan", HP: -2},
		Black:        core.PlayerResult{Mech: "hauler", HP: 5},
	}
}

func TestMatchPoint(t *testing.T) {
	ts := time.Unix(1_700_000_000, 0)
	line := influxdb2_write.PointToLineProtocol(MatchPoint(sampleResult(), ts), time.Nanosecond)

	assert.True(t, strings.HasPrefix(line, "match,"))
	for _, part := range []string{
		"batch=b-9", "white_mech=sandpiper", "black_mech=hauler", "outcome=win",
		"winner=black", "white_pilot=crazy-ivan",
		"turns=11i", "first_blood=4i", "melt_damage=2i", "weapon_damage=17i", "white_hp=-2i",
	} {
		assert.Contains(t, line, part)
	}
	assert.NotContains(t, line, "black_pilot")
	assert.True(t, strings.HasSuffix(line, " 1700000000000000000"))
}

func TestMatchPoint_NoWinnerNoBlood(t *testing.T) {
	r := sampleResult()
	r.Winner, r.FirstBlood, r.Outcome = "", nil, "tie"
	line := influxdb2_write.PointToLineProtocol(MatchPoint(r, time.Now()), time.Nanosecond)

	assert.NotContains(t, line, "winner=")
	assert.NotContains(t, line, "first_blood")
	assert.Contains(t, line, "outcome=tie")
}

func TestConnect_Disabled(t *testing.T) {
	m := NewManager(config.InfluxConfig{}, zerolog.Nop())
	assert.ErrorIs(t, m.Connect(context.Background()), ErrDisabled)
	assert.NoError(t, m.Close())
}

func TestWritePoint_NotConnected(t *testing.T) {
	m := NewManager(config.InfluxConfig{}, zerolog.Nop())
	assert.ErrorContains(t, m.RecordMatch(sampleResult()), "backup writer not available")
}

func TestConnect_FallsBackToBackup(t *testing.T) {
	backup := filepath.Join(t.TempDir(), "influx_backup.lp.gz")
	m := NewManager(config.InfluxConfig{
		Enabled:    true,
		Protocol:   "http",
		Host:       "127.0.0.1",
		Port:       "1",
		Org:        "hotmech",
		Bucket:     "matches",
		BackupPath: backup,
	}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Connect(ctx))
	assert.False(t, m.IsValid)

	require.NoError(t, m.RecordMatch(sampleResult()))
	second := sampleResult()
	second.Index = 4
	require.NoError(t, m.RecordMatch(second))
	require.NoError(t, m.Close())

	f, err := os.Open(backup)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "index=3i")
	assert.Contains(t, lines[1], "index=4i")
}

func TestConnect_BackupUnwritable(t *testing.T) {
	m := NewManager(config.InfluxConfig{
		Enabled:    true,
		Protocol:   "http",
		Host:       "127.0.0.1",
		Port:       "1",
		BackupPath: filepath.Join(t.TempDir(), "missing", "backup.lp.gz"),
	}, zerolog.Nop())

	assert.ErrorContains(t, m.Connect(context.Background()), "error creating backup file")
	assert.NoError(t, m.Close())
}
