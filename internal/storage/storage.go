// Package storage defines where finished matches are kept.
package storage

import "github.com/hotmech/simulator/pkg/core"

// Backend is the interface all storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Batch management
	StartBatch(batch *core.Batch) error
	EndBatch() error

	RecordMatch(result *core.MatchResult) error
}

// Exporter is an optional interface for backends that write a file per batch.
type Exporter interface {
	GetExportedFilePath() string
}
