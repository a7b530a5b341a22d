// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"encoding/json"
	"time"

	"github.com/hotmech/simulator/internal/geo"
	"github.com/hotmech/simulator/internal/model"
	"github.com/hotmech/simulator/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// positionToPoint converts a core.Position to a geom.Point
func positionToPoint(p core.Position) geom.Point {
	return geo.Point(geom.XY{X: p.X, Y: p.Y})
}

// toJSON marshals a slice for a JSON column. Nil slices are stored as [].
func toJSON[T any](items []T) datatypes.JSON {
	if len(items) == 0 {
		return datatypes.JSON("[]")
	}
	data, _ := json.Marshal(items)
	return datatypes.JSON(data)
}

// CoreToBatch converts a core.Batch to a GORM model.Batch.
// core.Batch.ID maps to GORM Batch.UUID; the row ID is assigned on insert.
func CoreToBatch(b core.Batch) model.Batch {
	out := model.Batch{
		UUID:        b.ID,
		Tag:         b.Tag,
		Seed:        b.Seed,
		MatchCount:  b.Matches,
		Workers:     b.Workers,
		MaxTurns:    b.MaxTurns,
		TurnCardCap: b.TurnCardCap,
		White:       b.White,
		Black:       b.Black,
		StartTime:   b.StartTime,
	}
	if !b.EndTime.IsZero() {
		end := b.EndTime
		out.EndTime = &end
	}
	return out
}

// CoreToMatch converts a core.MatchResult to a GORM model.Match with both players.
// BatchID is left for the writer to stamp.
func CoreToMatch(r core.MatchResult) model.Match {
	var firstBlood *int
	if r.FirstBlood != nil {
		fb := *r.FirstBlood
		firstBlood = &fb
	}

	return model.Match{
		MatchIndex:     r.Index,
		Outcome:        r.Outcome,
		Winner:         r.Winner,
		WinnerMech:     r.WinnerMech(),
		Turns:          r.Turns,
		TurnLengths:    toJSON(r.TurnLengths),
		FirstBlood:     firstBlood,
		MeltDamage:     r.MeltDamage,
		WeaponDamage:   r.WeaponDamage,
		Error:          r.Error,
		DurationMicros: r.Duration.Microseconds(),
		Players: []model.MatchPlayer{
			CoreToMatchPlayer(r.White),
			CoreToMatchPlayer(r.Black),
		},
	}
}

// CoreToMatchPlayer converts a core.PlayerResult to a GORM model.MatchPlayer.
// The track is not stored; only the final position is.
func CoreToMatchPlayer(p core.PlayerResult) model.MatchPlayer {
	return model.MatchPlayer{
		Side:            p.Side,
		Mech:            p.Mech,
		Pilot:           p.Pilot,
		Upgrades:        toJSON(p.Upgrades),
		DroppedUpgrades: toJSON(p.DroppedUpgrades),
		HP:              p.HP,
		Heat:            p.Heat,
		MeltDamage:      p.MeltDamage,
		CardsPlayed:     p.CardsPlayed,
		LargestHand:     p.LargestHand,
		EmptyHands:      p.EmptyHands,
		PlayedCards:     toJSON(p.PlayedCards),
		Heading:         p.Heading,
		Position:        positionToPoint(p.Position),
		Distance:        p.Distance,
	}
}

func durationFromMicros(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}
