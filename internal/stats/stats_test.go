package stats

import (
	"bytes"
	"testing"

	"github.com/hotmech/simulator/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func match(outcome, winner string, turns int, lengths []int, firstBlood *int, melt, weapon int) core.MatchResult {
	return core.MatchResult{
		Outcome:      outcome,
		Winner:       winner,
		Turns:        turns,
		TurnLengths:  lengths,
		FirstBlood:   firstBlood,
		MeltDamage:   melt,
		WeaponDamage: weapon,
		White:        core.PlayerResult{Side: "white", Mech: "thermo", Pilot: "crazy-ivan", HP: 4, EmptyHands: 1},
		Black:        core.PlayerResult{Side: "black", Mech: "hauler", HP: 7},
	}
}

func sample() []core.MatchResult {
	return []core.MatchResult{
		match("win", "white", 10, []int{2, 3, 1}, intp(3), 4, 20),
		match("win", "black", 6, []int{1, 1}, intp(2), 0, 10),
		match("win", "white", 12, []int{4}, nil, 6, 10),
		match("tie", "", 8, []int{2, 2}, intp(5), 0, 0),
		match("unresolved", "", 100, []int{9}, nil, 0, 0),
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{}, s)
	assert.Zero(t, s.MeltShare())
}

func TestSummarize_WinRates(t *testing.T) {
	s := Summarize(sample())
	require.Equal(t, 5, s.Games)

	labels := make([]string, 0, len(s.MechWins))
	for _, r := range s.MechWins {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{"thermo", "hauler", "tie", "unresolved"}, labels)
	assert.Equal(t, 2, s.MechWins[0].Count)
	assert.Equal(t, "40% (2/5)", s.MechWins[0].String())
	assert.Equal(t, "20% (1/5)", s.MechWins[1].String())

	require.Len(t, s.PilotWins, 1)
	assert.Equal(t, Rate{Label: "crazy-ivan", Count: 2, Games: 5}, s.PilotWins[0])
}

func TestSummarize_Lengths(t *testing.T) {
	s := Summarize(sample())

	assert.Equal(t, 10.0, s.MedianGameLength)
	assert.Equal(t, 100, s.MaxGameLength)
	// 1 1 1 2 2 2 3 4 9
	assert.Equal(t, 2.0, s.MedianTurnLength)
	assert.Equal(t, 9, s.MaxTurnLength)
}

func TestSummarize_FirstBloodAndDamage(t *testing.T) {
	s := Summarize(sample())

	assert.Equal(t, 3.0, s.MedianFirstBlood)
	assert.Equal(t, 2, s.Bloodless)
	assert.Equal(t, 10, s.MeltDamage)
	assert.Equal(t, 40, s.WeaponDamage)
	assert.InDelta(t, 0.2, s.MeltShare(), 1e-9)
	// winners' HP: 4, 7, 4
	assert.Equal(t, 4.0, s.MedianWinnerHP)
	assert.Equal(t, 5, s.EmptyHands)
}

func TestMedian(t *testing.T) {
	assert.Zero(t, median(nil))
	assert.Equal(t, 3.0, median([]int{5, 1, 3}))
	assert.Equal(t, 2.5, median([]int{4, 1, 3, 2}))

	xs := []int{3, 1, 2}
	median(xs)
	assert.Equal(t, []int{3, 1, 2}, xs, "input must not be reordered")
}

func TestRate(t *testing.T) {
	assert.Zero(t, Rate{}.Percent())
	assert.Equal(t, "33% (1/3)", Rate{Label: "x", Count: 1, Games: 3}.String())
}

func TestSummary_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summarize(sample()).Write(&buf))

	out := buf.String()
	assert.Contains(t, out, "Played 5 games:\n")
	assert.Contains(t, out, "thermo wins: 40% (2/5)\n")
	assert.Contains(t, out, "crazy-ivan (pilot) wins: 40% (2/5)\n")
	assert.Contains(t, out, "Median Game Length: 10 turns\n")
	assert.Contains(t, out, "Max Turn Length: 9 cards per turn\n")
	assert.Contains(t, out, "Melt Damage: 20% (10 of 50)\n")
}
