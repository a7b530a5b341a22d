// pkg/core/batch.go
package core

import "time"

// Batch is one run of many matches under the same settings.
type Batch struct {
	ID          string    `json:"id"`
	Tag         string    `json:"tag"`
	Seed        uint64    `json:"seed"`
	Matches     int       `json:"matches"`
	Workers     int       `json:"workers"`
	MaxTurns    int       `json:"maxTurns"`
	TurnCardCap int       `json:"turnCardCap"`
	White       string    `json:"white"` // requested loadout, "?" where random
	Black       string    `json:"black"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}
