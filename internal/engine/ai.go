package engine

import (
	"cmp"
	"slices"
)

const (
	// overheatOdds is the one-in-N chance the selector plays a card that will overheat.
	overheatOdds = 6

	// lowHP is the HP at or below which the selector never risks an overheat.
	lowHP = 5
)

type rankKey struct {
	should      bool
	satisfiable int
	heat        int
	damage      int
}

// rank orders cards best first: playable without overheating, then most steps in
// effect, then cheapest, then hardest hitting. Ties keep their zone order.
func (p *Player) rank(cards []*Card) []*Card {
	keys := make(map[*Card]rankKey, len(cards))
	for _, c := range cards {
		keys[c] = rankKey{
			should:      c.ShouldPlay(),
			satisfiable: c.SatisfiableSteps(),
			heat:        c.Def.Heat,
			damage:      c.Def.MaxDamage(),
		}
	}

	ranked := slices.Clone(cards)
	slices.SortStableFunc(ranked, func(a, b *Card) int {
		ka, kb := keys[a], keys[b]
		if ka.should != kb.should {
			if ka.should {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(kb.satisfiable, ka.satisfiable); c != 0 {
			return c
		}
		if c := cmp.Compare(ka.heat, kb.heat); c != 0 {
			return c
		}
		return cmp.Compare(kb.damage, ka.damage)
	})
	return ranked
}

// ChooseCard picks the next card to play, or nil to pass. A top pick that would
// overheat is gambled on one time in overheatOdds unless HP is already low.
func (p *Player) ChooseCard() *Card {
	if len(p.hand) == 0 {
		p.emptyHands++
		return nil
	}

	top := p.rank(p.hand)[0]
	switch {
	case top.ShouldPlay():
		return top
	case !top.CanPlay():
		return nil
	case p.Mech.HP <= lowHP:
		return nil
	case p.game.rng.IntN(overheatOdds) != 0:
		return nil
	}
	p.log.Debug("Gambling on an overheating card", "card", top.Def.ID, "heat", p.Mech.Heat)
	return top
}
