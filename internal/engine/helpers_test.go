package engine

import (
	"testing"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed IntN results and never reorders on Shuffle.
type scriptedRand struct {
	ints  []int
	calls int
}

func (r *scriptedRand) IntN(n int) int {
	r.calls++
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Shuffle(int, func(i, j int)) {}

var skeleton = &MechDef{ID: "skeleton", MaxHP: 10, HardPoints: 2}

// Cards from the stock catalogue, redeclared so engine tests do not depend on it.
var (
	standardMove   = &CardDef{ID: "standard-move", Heat: 1, Steps: []Step{Rotate(0, 90), MoveForward(0, 6)}}
	standingSwivel = &CardDef{ID: "standing-swivel", Heat: 1, Steps: []Step{Rotate(0, 180)}}
	combatWit      = &CardDef{ID: "combat-wit", Heat: 1, Steps: []Step{Draw(1)}}
	coolOff        = &CardDef{ID: "cool-off", Heat: -4, Steps: []Step{EndTurn()}}
	cookCabin      = &CardDef{ID: "cook-cabin", Heat: 3, Steps: []Step{Attack(5, 0, 6), EnemyDiscard(1)}}
	meltSensors    = &CardDef{ID: "melt-sensors", Heat: 3, Steps: []Step{EnemyDiscard(2)}}
	torchEm        = &CardDef{ID: "torch-em", Heat: 3, Steps: []Step{Attack(2, 0, 12), HeatEnemy(2)}}
	looseMissile   = &CardDef{ID: "loose-missile", Heat: 1, Steps: []Step{Attack(2, 0, 12)}}
	missileHail    = &CardDef{ID: "missile-hail", Heat: 3, Steps: []Step{Attack(4, 0, 18), Retire()}}
	pushOff        = &CardDef{ID: "push-off", Heat: 1, Steps: []Step{Attack(6, 0, 2), MoveAway(6, 12)}}
	laserSnapfire  = &CardDef{ID: "laser-snapfire", Heat: 2, Steps: []Step{Attack(3, 0, 12), MoveForward(0, 2)}}
	blindingBurst  = &CardDef{ID: "blinding-burst", Heat: 3, Steps: []Step{Attack(5, 0, 6), ForceRotate(90)}}
	trackingShot   = &CardDef{ID: "tracking-shot", Heat: 2, Steps: []Step{Rotate(0, 90), Attack(2, 0, 12), Rotate(0, 90)}}
	rememberTrain  = &CardDef{ID: "remember-training", Heat: 0, Steps: []Step{Unretire(1), EndTurn()}}
	mechanicalFuse = &CardDef{ID: "mechanical-fuse", Heat: -3, Steps: []Step{DamageSelf(2)}}
	giddyRetreat   = &CardDef{ID: "giddy-retreat", Heat: -2, Steps: []Step{Rotate(0, 180), MoveForward(0, 12), FaceAway()}}
	hatefulGlare   = &CardDef{ID: "hateful-glare", Heat: -1, Steps: []Step{RangeCheck(0, 12, Rotate(0, 180))}}
	rangeFinder    = &CardDef{ID: "range-finder", Heat: 0, Steps: []Step{BoostRange(6)}}
	grapple        = &CardDef{ID: "grapple", Heat: 2, Steps: []Step{RangeGate(0, 3), Attack(3, 0, 3), ForceRotate(90)}}
	padding        = &CardDef{ID: "padding", Heat: 4, Steps: []Step{Rotate(0, 90)}}
)

// newDuel seats two skeletons ten units apart on the X axis, facing each other.
func newDuel(t *testing.T, rng Rand, opts ...Option) *Game {
	t.Helper()
	opts = append([]Option{WithRand(rng)}, opts...)
	g, err := NewGame(Loadout{Mech: skeleton}, Loadout{Mech: skeleton}, opts...)
	require.NoError(t, err)

	place(g.White, geom.XY{X: 0, Y: 0}, 0)
	place(g.Black, geom.XY{X: 10, Y: 0}, 180)
	return g
}

func place(p *Player, pos geom.XY, heading float64) {
	p.Position, p.Heading = pos, heading
	p.track = []geom.XY{pos}
}

// give puts a fresh copy of def into p's hand and counts it toward the starting deck.
func give(p *Player, def *CardDef) *Card {
	c := &Card{Def: def, owner: p}
	p.cards = append(p.cards, c)
	p.hand = append(p.hand, c)
	return c
}

// stock puts a fresh copy of def on top of p's deck.
func stock(p *Player, def *CardDef) *Card {
	c := &Card{Def: def, owner: p}
	p.cards = append(p.cards, c)
	p.deck = append(p.deck, c)
	return c
}

func play(t *testing.T, p *Player, c *Card) {
	t.Helper()
	require.NoError(t, p.PlayCard(c))
}
