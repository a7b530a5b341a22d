package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStep_BalanceCost(t *testing.T) {
	tests := []struct {
		step Step
		want int
	}{
		{MoveForward(0, 6), 1},
		{MoveForwardIgnoringTerrain(6, 12), 2},
		{MoveForward(0, 9), 1},
		{MoveForwardIgnoringTerrain(0, 9), 3},
		{MoveAway(2, 6), 0},
		{MoveAway(6, 12), 0},
		{Rotate(0, 90), 1},
		{Rotate(90, 360), 1},
		{ForceRotate(90), 1},
		{Attack(5, 0, 6), 3},
		{Attack(2, 0, 12), 4},
		{Attack(1, 0, 1), 1},
		{Retire(), -3},
		{Unretire(1), 3},
		{Draw(2), 4},
		{Discard(2), -2},
		{EnemyDiscard(1), 2},
		{HeatEnemy(2), 2},
		{DamageSelf(2), -1},
		{DamageSelf(3), -2},
		{RangeCheck(0, 12, Rotate(0, 180)), 1},
		{RangeCheck(0, 6, EndTurn()), -1},
		{RangeGate(0, 3), -2},
		{RangeGate(0, 18), 0},
		{FaceAway(), -2},
		{BoostRange(6), 1},
		{BoostRange(2), 1},
		{EndTurn(), -3},
	}
	for _, tt := range tests {
		t.Run(tt.step.Explain(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.step.BalanceCost())
		})
	}
}

func TestStep_UnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() { Step{Kind: "teleport"}.BalanceCost() })
}

func TestStep_RotateClampsTo180(t *testing.T) {
	assert.Equal(t, 180, Rotate(0, 270).Max)
}

func TestStep_OnlyRangeGateIsMandatory(t *testing.T) {
	for _, s := range []Step{MoveForward(0, 6), Attack(1, 0, 2), Retire(), RangeCheck(0, 6, Draw(1)), BoostRange(3)} {
		assert.False(t, s.Mandatory, s.Kind)
	}
	assert.True(t, RangeGate(0, 3).Mandatory)
}

func TestCardDef_Queries(t *testing.T) {
	assert.Equal(t, 1, standardMove.BalanceCost())
	assert.Equal(t, 4, cookCabin.BalanceCost())
	assert.Equal(t, -2, mechanicalFuse.BalanceCost())

	assert.Equal(t, "Cook Cabin", cookCabin.HumanName())
	named := &CardDef{ID: "torch-em", Name: "Torch 'Em"}
	assert.Equal(t, "Torch 'Em", named.HumanName())

	assert.True(t, cookCabin.IsAttack())
	assert.True(t, cookCabin.IsControl())
	assert.False(t, cookCabin.IsMove())
	assert.True(t, hatefulGlare.IsMove())
	assert.False(t, coolOff.IsAttack() || coolOff.IsMove() || coolOff.IsControl())

	assert.Equal(t, 5, cookCabin.MaxDamage())
	assert.Zero(t, standardMove.MaxDamage())

	assert.Equal(t,
		"Rotate up to 90 degrees toward the enemy. Move forward up to 6 units.",
		standardMove.Explain())
	assert.Equal(t, "If the enemy is at range 0-12: Rotate up to 180 degrees toward the enemy.",
		hatefulGlare.Explain())
}

func TestHumanizeID(t *testing.T) {
	assert.Equal(t, "Standard Move", HumanizeID("standard-move"))
	assert.Equal(t, "Valorant Strider", HumanizeID("valorant_strider"))
}
