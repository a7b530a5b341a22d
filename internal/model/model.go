package model

import (
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels lists every table, in migration order.
var DatabaseModels = []any{
	&Batch{},
	&Match{},
	&MatchPlayer{},
}

////////////////////////
// BATCH MODELS
////////////////////////

// Batch is one simulator run
type Batch struct {
	gorm.Model
	UUID        string     `json:"uuid" gorm:"size:36;uniqueIndex"`
	Tag         string     `json:"tag" gorm:"size:127;index:idx_batch_tag"`
	Seed        uint64     `json:"seed"`
	MatchCount  int        `json:"matches"`
	Workers     int        `json:"workers"`
	MaxTurns    int        `json:"maxTurns"`
	TurnCardCap int        `json:"turnCardCap"`
	White       string     `json:"white" gorm:"size:200"` // requested loadout, "?" where random
	Black       string     `json:"black" gorm:"size:200"`
	StartTime   time.Time  `json:"startTime" gorm:"index:idx_batch_start"`
	EndTime     *time.Time `json:"endTime"`
	Recorded    int        `json:"recorded"` // matches written before the batch ended
	Results     []Match    `json:"-" gorm:"foreignKey:BatchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*Batch) TableName() string {
	return "batches"
}

////////////////////////
// MATCH MODELS
////////////////////////

// Match is the summary of one played match
type Match struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	BatchID        uint           `json:"batchId" gorm:"index:idx_match_batch_index,priority:1"`
	MatchIndex     int            `json:"index" gorm:"index:idx_match_batch_index,priority:2"` // position in the batch, also the random stream
	Outcome        string         `json:"outcome" gorm:"size:16;index:idx_match_outcome"`
	Winner         string         `json:"winner" gorm:"size:8"`
	WinnerMech     string         `json:"winnerMech" gorm:"size:64;index:idx_match_winner_mech"`
	Turns          int            `json:"turns"`
	TurnLengths    datatypes.JSON `json:"turnLengths"`
	FirstBlood     *int           `json:"firstBlood"`
	MeltDamage     int            `json:"meltDamage"`
	WeaponDamage   int            `json:"weaponDamage"`
	Error          string         `json:"error" gorm:"size:500"`
	DurationMicros int64          `json:"durationMicros"`
	Players        []MatchPlayer  `json:"players" gorm:"foreignKey:MatchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*Match) TableName() string {
	return "matches"
}

// MatchPlayer is one side's loadout and end state
type MatchPlayer struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	MatchID         uint           `json:"matchId" gorm:"index:idx_match_player_match"`
	Side            string         `json:"side" gorm:"size:8"`
	Mech            string         `json:"mech" gorm:"size:64;index:idx_match_player_mech"`
	Pilot           string         `json:"pilot" gorm:"size:64"`
	Upgrades        datatypes.JSON `json:"upgrades"`
	DroppedUpgrades datatypes.JSON `json:"droppedUpgrades"`
	HP              int            `json:"hp"`
	Heat            int            `json:"heat"`
	MeltDamage      int            `json:"meltDamage"`
	CardsPlayed     int            `json:"cardsPlayed"`
	LargestHand     int            `json:"largestHand"`
	EmptyHands      int            `json:"emptyHands"`
	PlayedCards     datatypes.JSON `json:"playedCards"`
	Heading         float64        `json:"heading"`
	Position        geom.Point     `json:"position"` // where the mech ended the match
	Distance        float64        `json:"distance"`
}

func (*MatchPlayer) TableName() string {
	return "match_players"
}
