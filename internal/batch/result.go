package batch

import (
	"slices"

	"github.com/hotmech/simulator/internal/engine"
	"github.com/hotmech/simulator/internal/geo"
	"github.com/hotmech/simulator/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// resultOf summarizes a finished game.
func resultOf(batchID string, index int, g *engine.Game) core.MatchResult {
	res := core.MatchResult{
		BatchID:      batchID,
		Index:        index,
		Outcome:      string(g.Outcome()),
		Turns:        g.Turns(),
		TurnLengths:  slices.Clone(g.TurnLengths()),
		MeltDamage:   g.TotalMeltDamage(),
		WeaponDamage: g.TotalWeaponDamage(),
		White:        playerResult(g.White),
		Black:        playerResult(g.Black),
	}
	if w := g.Winner(); w != nil {
		res.Winner = string(w.Side)
	}
	if turn, ok := g.FirstBloodTurn(); ok {
		res.FirstBlood = &turn
	}
	if err := g.Err(); err != nil {
		res.Error = err.Error()
	}
	return res
}

func playerResult(p *engine.Player) core.PlayerResult {
	dropped := make([]string, 0, len(p.DroppedUpgrades()))
	for _, u := range p.DroppedUpgrades() {
		dropped = append(dropped, u.ID)
	}
	track := make([]core.Position, 0, len(p.Track()))
	for _, xy := range p.Track() {
		track = append(track, position(xy))
	}

	res := core.PlayerResult{
		Side:            string(p.Side),
		Mech:            p.Loadout.Mech.ID,
		Pilot:           p.Loadout.PilotID(),
		Upgrades:        p.Loadout.UpgradeIDs(),
		DroppedUpgrades: dropped,
		HP:              p.Mech.HP,
		Heat:            p.Mech.Heat,
		MeltDamage:      p.Mech.MeltDamage,
		CardsPlayed:     p.PlayedCount(),
		LargestHand:     p.LargestHand(),
		EmptyHands:      p.EmptyHands(),
		PlayedCards:     slices.Clone(p.PlayedCards()),
		Heading:         p.Heading,
		Position:        position(p.Position),
		Track:           track,
	}
	// a mech that never left its start has no track line
	if line, err := geo.Track(p.Track()); err == nil {
		res.Distance = line.Length()
	}
	return res
}

func position(xy geom.XY) core.Position {
	return core.Position{X: xy.X, Y: xy.Y}
}
