package engine

import "github.com/hotmech/simulator/internal/geo"

// DamageEnemy resolves a hit from attacker and returns the damage that landed.
// Hits from behind deal double. A defender pushed to half HP or lower blocks with
// the best-fitting non-attack card in hand, retiring it and soaking its heat in damage.
func (g *Game) DamageEnemy(attacker *Player, amount int) int {
	defender := g.Enemy(attacker)

	if geo.FacingAway(defender.Heading, geo.AngleTo(defender.Position, attacker.Position), geo.DefaultTolerance) {
		amount *= 2
	}

	if defender.Mech.HP-amount <= defender.Mech.MaxHP()/2 {
		if blocker := defender.blocker(amount); blocker != nil {
			defender.retire(blocker)
			amount = max(0, amount-blocker.Def.Heat)
			defender.log.Debug("Blocked with card", "card", blocker.Def.ID, "remaining", amount)
		}
	}

	defender.Mech.HP -= amount
	g.weaponDamage += amount
	if amount > 0 && !g.bloodied {
		g.bloodied = true
		g.firstBlood = g.turns
	}
	return amount
}

// blocker picks the hand card that best absorbs damage: an exact heat match, else the
// smallest card that covers it, else the largest that does not.
func (p *Player) blocker(damage int) *Card {
	var exact, over, under *Card
	for _, c := range p.hand {
		heat := c.Def.Heat
		if heat <= 0 || c.Def.IsAttack() {
			continue
		}
		switch {
		case heat == damage:
			if exact == nil {
				exact = c
			}
		case heat > damage:
			if over == nil || heat < over.Def.Heat {
				over = c
			}
		default:
			if under == nil || heat > under.Def.Heat {
				under = c
			}
		}
	}

	switch {
	case exact != nil:
		return exact
	case over != nil:
		return over
	default:
		return under
	}
}
