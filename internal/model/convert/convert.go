package convert

import (
	"encoding/json"
	"fmt"

	"github.com/hotmech/simulator/internal/model"
	"github.com/hotmech/simulator/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
)

// pointToPosition converts a geom.Point back to a core.Position. An empty point is the origin.
func pointToPosition(p geom.Point) core.Position {
	coords, ok := p.Coordinates()
	if !ok {
		return core.Position{}
	}
	return core.Position{X: coords.X, Y: coords.Y}
}

func fromJSON[T any](data datatypes.JSON, field string) ([]T, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", field, err)
	}
	return out, nil
}

// BatchToCore converts a GORM model.Batch to a core.Batch.
func BatchToCore(b model.Batch) core.Batch {
	out := core.Batch{
		ID:          b.UUID,
		Tag:         b.Tag,
		Seed:        b.Seed,
		Matches:     b.MatchCount,
		Workers:     b.Workers,
		MaxTurns:    b.MaxTurns,
		TurnCardCap: b.TurnCardCap,
		White:       b.White,
		Black:       b.Black,
		StartTime:   b.StartTime,
	}
	if b.EndTime != nil {
		out.EndTime = *b.EndTime
	}
	return out
}

// MatchToCore converts a GORM model.Match, with its players preloaded, to a core.MatchResult.
// batchID is the batch UUID the row belongs to.
func MatchToCore(m model.Match, batchID string) (core.MatchResult, error) {
	turnLengths, err := fromJSON[int](m.TurnLengths, "turn lengths")
	if err != nil {
		return core.MatchResult{}, err
	}

	out := core.MatchResult{
		BatchID:      batchID,
		Index:        m.MatchIndex,
		Outcome:      m.Outcome,
		Winner:       m.Winner,
		Turns:        m.Turns,
		TurnLengths:  turnLengths,
		FirstBlood:   m.FirstBlood,
		MeltDamage:   m.MeltDamage,
		WeaponDamage: m.WeaponDamage,
		Error:        m.Error,
		Duration:     durationFromMicros(m.DurationMicros),
	}

	for _, p := range m.Players {
		player, err := MatchPlayerToCore(p)
		if err != nil {
			return core.MatchResult{}, err
		}
		switch p.Side {
		case "white":
			out.White = player
		case "black":
			out.Black = player
		default:
			return core.MatchResult{}, fmt.Errorf("match %d: unknown side %q", m.ID, p.Side)
		}
	}
	return out, nil
}

// MatchPlayerToCore converts a GORM model.MatchPlayer to a core.PlayerResult.
func MatchPlayerToCore(p model.MatchPlayer) (core.PlayerResult, error) {
	upgrades, err := fromJSON[string](p.Upgrades, "upgrades")
	if err != nil {
		return core.PlayerResult{}, err
	}
	dropped, err := fromJSON[string](p.DroppedUpgrades, "dropped upgrades")
	if err != nil {
		return core.PlayerResult{}, err
	}
	played, err := fromJSON[string](p.PlayedCards, "played cards")
	if err != nil {
		return core.PlayerResult{}, err
	}

	return core.PlayerResult{
		Side:            p.Side,
		Mech:            p.Mech,
		Pilot:           p.Pilot,
		Upgrades:        upgrades,
		DroppedUpgrades: dropped,
		HP:              p.HP,
		Heat:            p.Heat,
		MeltDamage:      p.MeltDamage,
		CardsPlayed:     p.CardsPlayed,
		LargestHand:     p.LargestHand,
		EmptyHands:      p.EmptyHands,
		PlayedCards:     played,
		Heading:         p.Heading,
		Position:        pointToPosition(p.Position),
		Distance:        p.Distance,
	}, nil
}
