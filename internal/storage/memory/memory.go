// Package memory keeps a batch's results in memory and writes them to one JSON file
// when the batch ends.
package memory

import (
	"errors"
	"slices"
	"sync"

	"github.com/hotmech/simulator/internal/config"
	"github.com/hotmech/simulator/pkg/core"
)

var ErrNoBatch = errors.New("no batch started")

// Backend stores batch results in memory and exports them to JSON
type Backend struct {
	cfg config.MemoryConfig

	batch   *core.Batch
	results []core.MatchResult

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

func (b *Backend) Init() error {
	return nil
}

func (b *Backend) Close() error {
	return nil
}

// StartBatch begins recording a new batch, dropping anything kept from the last one.
func (b *Backend) StartBatch(batch *core.Batch) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.batch = batch
	b.results = nil
	b.lastExportPath = ""
	return nil
}

// RecordMatch keeps a copy of r.
func (b *Backend) RecordMatch(r *core.MatchResult) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.batch == nil {
		return ErrNoBatch
	}
	b.results = append(b.results, *r)
	return nil
}

// EndBatch finalizes and exports the batch.
func (b *Backend) EndBatch() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.batch == nil {
		return ErrNoBatch
	}
	return b.exportJSON()
}

// Results returns the kept results in index order.
func (b *Backend) Results() []core.MatchResult {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := slices.Clone(b.results)
	slices.SortFunc(out, func(x, y core.MatchResult) int { return x.Index - y.Index })
	return out
}

// GetExportedFilePath returns the file written by the last EndBatch, or "".
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
