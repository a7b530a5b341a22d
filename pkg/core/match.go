// pkg/core/match.go
package core

import "time"

// Position is a point on the table.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MatchResult is the summary of one finished match.
// Index is the match's place in its batch and also its random stream.
type MatchResult struct {
	BatchID      string        `json:"batchId"`
	Index        int           `json:"index"`
	Outcome      string        `json:"outcome"`
	Winner       string        `json:"winner,omitempty"` // "white" or "black", empty without a winner
	Turns        int           `json:"turns"`
	TurnLengths  []int         `json:"turnLengths"`
	FirstBlood   *int          `json:"firstBlood,omitempty"` // turn of the first damage, nil if none landed
	MeltDamage   int           `json:"meltDamage"`
	WeaponDamage int           `json:"weaponDamage"`
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration"`
	White        PlayerResult  `json:"white"`
	Black        PlayerResult  `json:"black"`
}

// WinnerMech returns the mech ID of the winning side, or "" without a winner.
func (r *MatchResult) WinnerMech() string {
	switch r.Winner {
	case "white":
		return r.White.Mech
	case "black":
		return r.Black.Mech
	}
	return ""
}

// PlayerResult is one side's loadout and end state.
type PlayerResult struct {
	Side            string     `json:"side"`
	Mech            string     `json:"mech"`
	Pilot           string     `json:"pilot,omitempty"`
	Upgrades        []string   `json:"upgrades"`
	DroppedUpgrades []string   `json:"droppedUpgrades,omitempty"`
	HP              int        `json:"hp"`
	Heat            int        `json:"heat"`
	MeltDamage      int        `json:"meltDamage"`
	CardsPlayed     int        `json:"cardsPlayed"`
	LargestHand     int        `json:"largestHand"`
	EmptyHands      int        `json:"emptyHands"`
	PlayedCards     []string   `json:"playedCards"`
	Heading         float64    `json:"heading"`
	Position        Position   `json:"position"`
	Distance        float64    `json:"distance"` // length of the track
	Track           []Position `json:"track,omitempty"`
}
