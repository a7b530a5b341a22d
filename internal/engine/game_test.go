package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brawler = &MechDef{
	ID:         "brawler",
	MaxHP:      12,
	HardPoints: 1,
	Cards: []*CardDef{
		standardMove, standardMove, standingSwivel, combatWit, coolOff,
		cookCabin, cookCabin, looseMissile, looseMissile, torchEm,
		trackingShot, pushOff, missileHail, laserSnapfire, blindingBurst,
	},
}

var tinkerer = &PilotDef{
	ID:    "tinkerer",
	Cards: []*CardDef{rememberTrain, mechanicalFuse, giddyRetreat, hatefulGlare},
}

var kit = &UpgradeDef{ID: "kit", Cards: []*CardDef{rangeFinder, grapple}}

func TestNewGame_RequiresMech(t *testing.T) {
	_, err := NewGame(Loadout{Mech: skeleton}, Loadout{})
	assert.ErrorIs(t, err, ErrNoMech)
}

func TestNewGame_StartingPositions(t *testing.T) {
	g, err := NewGame(Loadout{Mech: skeleton}, Loadout{Mech: skeleton}, WithRand(&scriptedRand{}))
	require.NoError(t, err)

	assert.Equal(t, WhiteStart, g.White.Position)
	assert.Equal(t, BlackStart, g.Black.Position)
	assert.Equal(t, BlackStartHeading, g.Black.Heading)
	assert.Same(t, g.Black, g.White.Enemy())
	assert.Same(t, g.White, g.Black.Enemy())
}

func TestNewGame_TruncatesUpgrades(t *testing.T) {
	extra := &UpgradeDef{ID: "extra", Cards: []*CardDef{padding}}
	g, err := NewGame(
		Loadout{Pilot: tinkerer, Mech: brawler, Upgrades: []*UpgradeDef{kit, extra}},
		Loadout{Mech: skeleton},
		WithRand(NewRand(1, 1)),
	)
	require.NoError(t, err)

	assert.Equal(t, []*UpgradeDef{extra}, g.White.DroppedUpgrades())
	assert.Equal(t, []string{"kit"}, g.White.Loadout.UpgradeIDs())
	assert.Equal(t, len(tinkerer.Cards)+len(brawler.Cards)+len(kit.Cards), g.White.DeckSize())
	assert.Len(t, g.White.Deck(), g.White.DeckSize())
}

func TestPlay_RunawayEndsAsAnomalousDraw(t *testing.T) {
	looper := &PilotDef{ID: "looper", Cards: []*CardDef{{ID: "loop", Heat: 0, Steps: []Step{Draw(1)}}}}
	g, err := NewGame(
		Loadout{Pilot: looper, Mech: skeleton},
		Loadout{Mech: skeleton},
		WithRand(&scriptedRand{}), WithTurnCardCap(10),
	)
	require.NoError(t, err)

	assert.Equal(t, OutcomeRunaway, g.Play())
	assert.ErrorIs(t, g.Err(), ErrRunawayTurn)
	assert.Nil(t, g.Winner())
	assert.Equal(t, 1, g.Turns())
	assert.Equal(t, []int{10}, g.TurnLengths())
}

func TestPlay_TurnCapIsUnresolved(t *testing.T) {
	g, err := NewGame(Loadout{Mech: skeleton}, Loadout{Mech: skeleton},
		WithRand(&scriptedRand{}), WithMaxTurns(6))
	require.NoError(t, err)

	assert.Equal(t, OutcomeUnresolved, g.Play())
	assert.Equal(t, 6, g.Turns())
	assert.Nil(t, g.Winner())
	assert.NoError(t, g.Err())
	assert.Equal(t, 3, g.White.EmptyHands())
	assert.Equal(t, 3, g.Black.EmptyHands())
}

func TestPlayTurn_Alternates(t *testing.T) {
	g := newDuel(t, &scriptedRand{})

	require.NoError(t, g.PlayTurn())
	assert.Equal(t, 1, g.White.EmptyHands())
	assert.Zero(t, g.Black.EmptyHands())

	require.NoError(t, g.PlayTurn())
	assert.Equal(t, 1, g.Black.EmptyHands())
	assert.Equal(t, []int{0, 0}, g.TurnLengths())
}

func TestPlayTurn_DecidesWinnerAndTie(t *testing.T) {
	g := newDuel(t, &scriptedRand{})
	g.Black.Mech.HP = 0
	require.NoError(t, g.PlayTurn())
	assert.Equal(t, OutcomeWin, g.Outcome())
	assert.Same(t, g.White, g.Winner())

	// finished matches stay put
	require.NoError(t, g.PlayTurn())
	assert.Equal(t, 1, g.Turns())

	g = newDuel(t, &scriptedRand{})
	g.White.Mech.HP = -1
	g.Black.Mech.HP = 0
	require.NoError(t, g.PlayTurn())
	assert.Equal(t, OutcomeTie, g.Outcome())
	assert.Nil(t, g.Winner())
}

func seededMatch(t *testing.T, seed uint64) *Game {
	t.Helper()
	g, err := NewGame(
		Loadout{Pilot: tinkerer, Mech: brawler, Upgrades: []*UpgradeDef{kit}},
		Loadout{Mech: brawler},
		WithRand(NewRand(seed, 0)),
	)
	require.NoError(t, err)
	return g
}

func TestPlay_InvariantsHoldEveryTurn(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		g := seededMatch(t, seed)
		for !g.Finished() && g.Turns() < DefaultMaxTurns {
			_ = g.PlayTurn()
			for _, p := range []*Player{g.White, g.Black} {
				assert.NotPanics(t, p.assertConservation)
				assert.GreaterOrEqual(t, p.Mech.Heat, MinHeat, "seed %d", seed)
				assert.LessOrEqual(t, p.Mech.Heat, MaxHeat, "seed %d", seed)
				assert.Len(t, p.PlayedCards(), p.PlayedCount())
			}
		}
		if g.Outcome() == OutcomeWin {
			assert.True(t, g.Enemy(g.Winner()).Mech.Destroyed())
			assert.False(t, g.Winner().Mech.Destroyed())
		}
	}
}

func TestPlay_SameSeedSameMatch(t *testing.T) {
	a, b := seededMatch(t, 42), seededMatch(t, 42)
	a.Play()
	b.Play()

	assert.Equal(t, a.Outcome(), b.Outcome())
	assert.Equal(t, a.Turns(), b.Turns())
	assert.Equal(t, a.TurnLengths(), b.TurnLengths())
	assert.Equal(t, a.White.PlayedCards(), b.White.PlayedCards())
	assert.Equal(t, a.Black.PlayedCards(), b.Black.PlayedCards())
	assert.Equal(t, a.TotalMeltDamage(), b.TotalMeltDamage())
	assert.Equal(t, a.TotalWeaponDamage(), b.TotalWeaponDamage())
}
