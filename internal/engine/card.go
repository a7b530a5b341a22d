package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CardDef is the shared, read-only description of a card. Every instance of a card in
// every match points at the same definition.
type CardDef struct {
	ID     string
	Name   string
	Heat   int
	Steps  []Step
	Flavor string
}

var idSeparators = strings.NewReplacer("-", " ", "_", " ")

// HumanizeID turns a catalogue identifier such as "cook-cabin" into "Cook Cabin".
// A cases.Caser keeps state between calls, so each call builds its own.
func HumanizeID(id string) string {
	return cases.Title(language.English).String(idSeparators.Replace(id))
}

// HumanName returns the display name, derived from the ID when none was given.
func (d *CardDef) HumanName() string {
	if d.Name != "" {
		return d.Name
	}
	return HumanizeID(d.ID)
}

// BalanceCost sums the step costs and charges one for the deck slot the card occupies.
func (d *CardDef) BalanceCost() int {
	cost := -1
	for _, s := range d.Steps {
		cost += s.BalanceCost()
	}
	return cost
}

// Explain joins the rules text of every step.
func (d *CardDef) Explain() string {
	parts := make([]string, 0, len(d.Steps))
	for _, s := range d.Steps {
		parts = append(parts, s.Explain())
	}
	return strings.Join(parts, " ")
}

func (d *CardDef) hasKind(kinds ...StepKind) bool {
	for _, s := range d.Steps {
		for _, k := range kinds {
			if s.Kind == k || (s.Inner != nil && s.Inner.Kind == k) {
				return true
			}
		}
	}
	return false
}

func (d *CardDef) IsAttack() bool { return d.hasKind(StepAttack) }

func (d *CardDef) IsMove() bool {
	return d.hasKind(StepMoveForward, StepMoveAway, StepRotate, StepFaceAway)
}

func (d *CardDef) IsControl() bool {
	return d.hasKind(StepForceRotate, StepEnemyDiscard, StepHeatEnemy)
}

// MaxDamage is the largest damage of any attack step, zero for non-attacks.
func (d *CardDef) MaxDamage() int {
	best := 0
	for _, s := range d.Steps {
		if s.Kind == StepAttack {
			best = max(best, s.Amount)
		}
		if s.Inner != nil && s.Inner.Kind == StepAttack {
			best = max(best, s.Inner.Amount)
		}
	}
	return best
}

// Card is one copy of a definition inside a match, bound to the player that owns it.
type Card struct {
	Def *CardDef

	owner      *Player
	rangeBonus int
}

func (c *Card) Owner() *Player { return c.owner }

// RangeBonus is the extra attack range granted by boost steps while the card has sat in
// hand. It is cleared whenever the card leaves the hand.
func (c *Card) RangeBonus() int { return c.rangeBonus }

func (c *Card) String() string { return c.Def.ID }

// Play charges the card's heat and then applies every step in order.
func (c *Card) Play() {
	c.owner.Mech.Heat += c.Def.Heat
	for _, s := range c.Def.Steps {
		s.apply(c)
	}
	c.rangeBonus = 0
}

// CanPlay requires every mandatory step and at least one other step to be satisfiable.
func (c *Card) CanPlay() bool {
	satisfied := false
	for _, s := range c.Def.Steps {
		ok := s.CanPlay(c)
		if s.Mandatory {
			if !ok {
				return false
			}
			continue
		}
		satisfied = satisfied || ok
	}
	return satisfied
}

// ShouldPlay is CanPlay, refused when the heat cost would overheat the mech.
func (c *Card) ShouldPlay() bool {
	if c.owner.Mech.Heat+c.Def.Heat > MaxHeat {
		return false
	}
	return c.CanPlay()
}

// SatisfiableSteps counts the steps that would currently take effect.
func (c *Card) SatisfiableSteps() int {
	n := 0
	for _, s := range c.Def.Steps {
		if s.CanPlay(c) {
			n++
		}
	}
	return n
}

func (c *Card) mandatoryHolds() bool {
	for _, s := range c.Def.Steps {
		if s.Mandatory && !s.CanPlay(c) {
			return false
		}
	}
	return true
}

func (c *Card) boostable() bool { return c.Def.IsAttack() }
