package engine

import (
	"fmt"

	"github.com/hotmech/simulator/internal/geo"
)

// StepKind identifies a step variant. The values double as catalogue identifiers.
type StepKind string

const (
	StepMoveForward  StepKind = "move-forward"
	StepMoveAway     StepKind = "move-away"
	StepRotate       StepKind = "rotate"
	StepForceRotate  StepKind = "force-rotate"
	StepAttack       StepKind = "attack"
	StepRetire       StepKind = "retire"
	StepUnretire     StepKind = "unretire"
	StepDraw         StepKind = "draw"
	StepDiscard      StepKind = "discard"
	StepEnemyDiscard StepKind = "enemy-discard"
	StepHeatEnemy    StepKind = "heat-enemy"
	StepDamageSelf   StepKind = "damage-self"
	StepRangeCheck   StepKind = "range-check"
	StepRangeGate    StepKind = "range-gate"
	StepFaceAway     StepKind = "face-away"
	StepBoostRange   StepKind = "boost-range"
	StepEndTurn      StepKind = "end-turn"
)

// StepKinds lists every variant in declaration order.
var StepKinds = []StepKind{
	StepMoveForward, StepMoveAway, StepRotate, StepForceRotate, StepAttack,
	StepRetire, StepUnretire, StepDraw, StepDiscard, StepEnemyDiscard,
	StepHeatEnemy, StepDamageSelf, StepRangeCheck, StepRangeGate,
	StepFaceAway, StepBoostRange, StepEndTurn,
}

// bandReference is the widest range band a gate is measured against when
// discounting its cost.
const bandReference = 18

// Step is one effect on a card. Only the fields a kind reads are set:
//
//	Min, Max   range band, move distance or rotation window
//	Amount     damage, heat, degrees, card count or range bonus
//	Inner      the gated step of a range check
//
// Steps are values and never change once built, so card definitions share them freely.
type Step struct {
	Kind          StepKind
	Min           int
	Max           int
	Amount        int
	IgnoreTerrain bool
	Mandatory     bool
	Inner         *Step
}

func MoveForward(lo, hi int) Step {
	return Step{Kind: StepMoveForward, Min: lo, Max: hi}
}

// MoveForwardIgnoringTerrain moves like MoveForward but costs double.
func MoveForwardIgnoringTerrain(lo, hi int) Step {
	return Step{Kind: StepMoveForward, Min: lo, Max: hi, IgnoreTerrain: true}
}

func MoveAway(lo, hi int) Step {
	return Step{Kind: StepMoveAway, Min: lo, Max: hi}
}

// Rotate turns toward the enemy. Windows wider than 180 degrees are clamped.
func Rotate(lo, hi int) Step {
	return Step{Kind: StepRotate, Min: lo, Max: min(hi, 180)}
}

func ForceRotate(degrees int) Step {
	return Step{Kind: StepForceRotate, Amount: degrees}
}

func Attack(damage, lo, hi int) Step {
	return Step{Kind: StepAttack, Amount: damage, Min: lo, Max: hi}
}

func Retire() Step { return Step{Kind: StepRetire} }

func Unretire(count int) Step { return Step{Kind: StepUnretire, Amount: count} }

func Draw(count int) Step { return Step{Kind: StepDraw, Amount: count} }

func Discard(count int) Step { return Step{Kind: StepDiscard, Amount: count} }

func EnemyDiscard(count int) Step { return Step{Kind: StepEnemyDiscard, Amount: count} }

func HeatEnemy(heat int) Step { return Step{Kind: StepHeatEnemy, Amount: heat} }

func DamageSelf(damage int) Step { return Step{Kind: StepDamageSelf, Amount: damage} }

// RangeCheck applies inner only while the enemy sits inside [lo,hi].
func RangeCheck(lo, hi int, inner Step) Step {
	return Step{Kind: StepRangeCheck, Min: lo, Max: hi, Inner: &inner}
}

// RangeGate makes its whole card unplayable unless the enemy sits inside [lo,hi].
func RangeGate(lo, hi int) Step {
	return Step{Kind: StepRangeGate, Min: lo, Max: hi, Mandatory: true}
}

func FaceAway() Step { return Step{Kind: StepFaceAway} }

func BoostRange(amount int) Step { return Step{Kind: StepBoostRange, Amount: amount} }

func EndTurn() Step { return Step{Kind: StepEndTurn} }

// CanPlay reports whether the step would have an effect if c were played now.
func (s Step) CanPlay(c *Card) bool {
	p := c.owner
	switch s.Kind {
	case StepAttack:
		return p.FacingEnemy() && p.EnemyWithin(s.Min, s.Max+c.rangeBonus)
	case StepUnretire:
		return p.hasOtherRetired(c)
	case StepEnemyDiscard:
		return len(p.Enemy().hand) > 0
	case StepDamageSelf:
		return p.Mech.HP-s.Amount >= 0
	case StepRangeCheck:
		return p.EnemyWithin(s.Min, s.Max) && s.Inner.CanPlay(c)
	case StepRangeGate:
		return p.EnemyWithin(s.Min, s.Max)
	case StepBoostRange:
		return p.boostTarget(c) != nil
	default:
		return true
	}
}

// apply resolves the step for card c. Unsatisfied steps do nothing.
func (s Step) apply(c *Card) {
	p := c.owner
	enemy := p.Enemy()

	switch s.Kind {
	case StepMoveForward:
		p.moveTo(geo.MoveToward(p.Position, p.Heading, enemy.Position, float64(s.Max), float64(s.Min)))
	case StepMoveAway:
		p.moveTo(geo.MoveAway(p.Position, enemy.Position, float64(s.Min)))
	case StepRotate:
		p.Heading = geo.RotateToward(p.Heading, p.BearingToEnemy(), float64(s.Max), float64(s.Min))
	case StepForceRotate:
		enemy.Heading = geo.Normalize(enemy.Heading + float64(s.Amount))
	case StepAttack:
		if s.CanPlay(c) {
			p.game.DamageEnemy(p, s.Amount)
		}
	case StepRetire:
		p.retire(c)
	case StepUnretire:
		for range s.Amount {
			if !p.hasOtherRetired(c) {
				break
			}
			p.unretire(c)
		}
	case StepDraw:
		for range s.Amount {
			p.draw()
		}
	case StepDiscard:
		p.throwAway(s.Amount)
	case StepEnemyDiscard:
		enemy.throwAway(s.Amount)
	case StepHeatEnemy:
		enemy.Mech.Heat += s.Amount
	case StepDamageSelf:
		if s.CanPlay(c) {
			p.Mech.HP -= s.Amount
		}
	case StepRangeCheck:
		if p.EnemyWithin(s.Min, s.Max) {
			s.Inner.apply(c)
		}
	case StepRangeGate:
	case StepFaceAway:
		p.Heading = geo.Normalize(p.BearingToEnemy() + 180)
	case StepBoostRange:
		if target := p.boostTarget(c); target != nil {
			target.rangeBonus += s.Amount
		}
	case StepEndTurn:
		p.EndTurn()
	}
}

// BalanceCost estimates what the step is worth in heat. It is a design aid only.
func (s Step) BalanceCost() int {
	switch s.Kind {
	case StepMoveForward:
		if s.IgnoreTerrain {
			return (s.Max - s.Min) * 2 / 6
		}
		return (s.Max - s.Min) / 6
	case StepMoveAway:
		return s.Max/6 - s.Min/6 - 1
	case StepRotate:
		return s.Max/90 - s.Min/90
	case StepForceRotate:
		return abs(s.Amount) / 90
	case StepAttack:
		reach := max(1, float64(s.Max)/3-float64(s.Min)/3)
		punch := max(1, float64(s.Amount)/3)
		return int(reach * punch)
	case StepRetire:
		return -3
	case StepUnretire:
		return 3 * s.Amount
	case StepDraw:
		return 2 * s.Amount
	case StepDiscard:
		return -s.Amount
	case StepEnemyDiscard:
		return 2 * s.Amount
	case StepHeatEnemy:
		return s.Amount
	case StepDamageSelf:
		return floorDiv(-s.Amount, 2)
	case StepRangeCheck:
		return s.Inner.BalanceCost() * min(s.Max-s.Min, bandReference) / bandReference
	case StepRangeGate:
		return -(bandReference - min(s.Max-s.Min, bandReference)) / 6
	case StepFaceAway:
		return -2
	case StepBoostRange:
		return max(1, s.Amount/6)
	case StepEndTurn:
		return -3
	}
	panic(fmt.Sprintf("engine: step kind %q has no balance cost", s.Kind))
}

// Explain renders the step as rules text.
func (s Step) Explain() string {
	switch s.Kind {
	case StepMoveForward:
		text := fmt.Sprintf("Move forward up to %d units", s.Max)
		if s.Min > 0 {
			text += fmt.Sprintf(", at least %d", s.Min)
		}
		if s.IgnoreTerrain {
			text += ", ignoring terrain"
		}
		return text + "."
	case StepMoveAway:
		return fmt.Sprintf("Move %d units directly away from the enemy.", s.Min)
	case StepRotate:
		if s.Min > 0 {
			return fmt.Sprintf("Rotate %d to %d degrees toward the enemy.", s.Min, s.Max)
		}
		return fmt.Sprintf("Rotate up to %d degrees toward the enemy.", s.Max)
	case StepForceRotate:
		return fmt.Sprintf("Rotate the enemy %d degrees.", s.Amount)
	case StepAttack:
		return fmt.Sprintf("If facing the enemy at range %d-%d, deal %d damage.", s.Min, s.Max, s.Amount)
	case StepRetire:
		return "Retire this card."
	case StepUnretire:
		return fmt.Sprintf("Return %s from retirement to your hand.", plural(s.Amount, "other card"))
	case StepDraw:
		return fmt.Sprintf("Draw %s.", plural(s.Amount, "card"))
	case StepDiscard:
		return fmt.Sprintf("Discard %s.", plural(s.Amount, "card"))
	case StepEnemyDiscard:
		return fmt.Sprintf("The enemy discards %s.", plural(s.Amount, "card"))
	case StepHeatEnemy:
		return fmt.Sprintf("The enemy gains %d heat.", s.Amount)
	case StepDamageSelf:
		return fmt.Sprintf("Take %d damage.", s.Amount)
	case StepRangeCheck:
		return fmt.Sprintf("If the enemy is at range %d-%d: %s", s.Min, s.Max, s.Inner.Explain())
	case StepRangeGate:
		return fmt.Sprintf("Play only with the enemy at range %d-%d.", s.Min, s.Max)
	case StepFaceAway:
		return "Turn to face directly away from the enemy."
	case StepBoostRange:
		return fmt.Sprintf("The next attack card in your hand gains %d range.", s.Amount)
	case StepEndTurn:
		return "End your turn."
	}
	return string(s.Kind)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
