// Package gormstorage implements the storage.Backend interface on any GORM database,
// with an internal queue drained by a background writer goroutine.
package gormstorage

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hotmech/simulator/internal/model"
	"github.com/hotmech/simulator/internal/model/convert"
	"github.com/hotmech/simulator/internal/queue"
	"github.com/hotmech/simulator/pkg/core"
	"gorm.io/gorm"
)

var (
	ErrNoDatabase = errors.New("gorm backend has no database")
	ErrNoBatch    = errors.New("no batch started")
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger *slog.Logger
}

// Backend implements storage.Backend with queue-based batch writes.
type Backend struct {
	deps    Dependencies
	matches *queue.Queue[model.Match]
	flush   chan chan struct{}
	done    chan struct{}

	batchRowID atomic.Uint64
	recorded   atomic.Int64
	failed     atomic.Int64

	mu    sync.Mutex
	batch *model.Batch
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{
		deps: deps,
	}
}

// Init creates the write queue and starts the DB writer goroutine. The schema must
// already be migrated.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return ErrNoDatabase
	}
	b.matches = queue.New[model.Match]()
	b.flush = make(chan chan struct{})
	b.done = make(chan struct{})
	go b.writer()
	return nil
}

// Close writes whatever is still queued and stops the writer.
func (b *Backend) Close() error {
	if b.matches == nil {
		return nil
	}
	b.matches.Close()
	<-b.done
	return nil
}

// DB exposes the underlying connection for queries.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// StartBatch inserts the batch row synchronously so every match can reference it.
func (b *Backend) StartBatch(cb *core.Batch) error {
	row := convert.CoreToBatch(*cb)
	if err := b.deps.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}

	b.mu.Lock()
	b.batch = &row
	b.mu.Unlock()
	b.batchRowID.Store(uint64(row.ID))
	b.recorded.Store(0)
	b.failed.Store(0)

	b.deps.Logger.Debug("Batch row created", "batch", cb.ID, "row", row.ID)
	return nil
}

// RecordMatch converts the result and pushes it to the write queue.
func (b *Backend) RecordMatch(r *core.MatchResult) error {
	if b.batchRowID.Load() == 0 {
		return ErrNoBatch
	}
	return b.matches.Push(convert.CoreToMatch(*r))
}

// EndBatch waits for every queued match to be written, then stamps the batch row with
// its end time and the number of matches stored.
func (b *Backend) EndBatch() error {
	b.mu.Lock()
	row := b.batch
	b.batch = nil
	b.mu.Unlock()
	if row == nil {
		return ErrNoBatch
	}

	b.Flush()

	end := time.Now().UTC()
	recorded := int(b.recorded.Load())
	err := b.deps.DB.Model(row).Updates(map[string]any{
		"end_time": end,
		"recorded": recorded,
	}).Error
	b.batchRowID.Store(0)
	if err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if failed := b.failed.Load(); failed > 0 {
		return fmt.Errorf("%d of %d matches could not be written", failed, failed+int64(recorded))
	}
	return nil
}

// Flush blocks until everything queued so far is written.
func (b *Backend) Flush() {
	ack := make(chan struct{})
	select {
	case b.flush <- ack:
		<-ack
	case <-b.done:
	}
}

// writeQueue writes all items from a queue to the database in a transaction and
// returns how many it took. Rows that fail are dropped and reported, never requeued.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string, log *slog.Logger, prepare func([]T)) (int, error) {
	items := q.Drain()
	if len(items) == 0 {
		return 0, nil
	}
	if prepare != nil {
		prepare(items)
	}

	tx := db.Begin()
	if err := tx.Create(&items).Error; err != nil {
		log.Error("Error creating "+name, "count", len(items), "error", err)
		tx.Rollback()
		return len(items), err
	}
	if err := tx.Commit().Error; err != nil {
		log.Error("Error committing "+name, "count", len(items), "error", err)
		return len(items), err
	}
	return len(items), nil
}

// writer drains the queue whenever it signals, and on every flush request, until the
// queue is closed.
func (b *Backend) writer() {
	defer close(b.done)

	write := func() {
		// Read the batch row once per write cycle
		batchRowID := uint(b.batchRowID.Load())
		stampMatches := func(items []model.Match) {
			for i := range items {
				items[i].BatchID = batchRowID
			}
		}

		start := time.Now()
		n, err := writeQueue(b.deps.DB, b.matches, "matches", b.deps.Logger, stampMatches)
		if err != nil {
			b.failed.Add(int64(n))
			return
		}
		if n > 0 {
			b.recorded.Add(int64(n))
			b.deps.Logger.Debug("Wrote matches", "count", n, "duration", time.Since(start))
		}
	}

	for {
		select {
		case _, open := <-b.matches.Ready():
			write()
			if !open {
				return
			}
		case ack := <-b.flush:
			write()
			close(ack)
		}
	}
}

// LoadBatch reads a stored batch and its matches, in index order, back into core types.
func LoadBatch(db *gorm.DB, batchUUID string) (core.Batch, []core.MatchResult, error) {
	var row model.Batch
	if err := db.Where("uuid = ?", batchUUID).First(&row).Error; err != nil {
		return core.Batch{}, nil, fmt.Errorf("failed to find batch %s: %w", batchUUID, err)
	}

	var rows []model.Match
	if err := db.Preload("Players").Where("batch_id = ?", row.ID).Order("match_index").Find(&rows).Error; err != nil {
		return core.Batch{}, nil, fmt.Errorf("failed to load matches: %w", err)
	}

	results := make([]core.MatchResult, 0, len(rows))
	for _, m := range rows {
		r, err := convert.MatchToCore(m, batchUUID)
		if err != nil {
			return core.Batch{}, nil, err
		}
		results = append(results, r)
	}
	return convert.BatchToCore(row), results, nil
}

// LatestBatchID returns the UUID of the most recently started batch.
func LatestBatchID(db *gorm.DB) (string, error) {
	var row model.Batch
	if err := db.Order("start_time DESC").First(&row).Error; err != nil {
		return "", fmt.Errorf("failed to find latest batch: %w", err)
	}
	return row.UUID, nil
}
