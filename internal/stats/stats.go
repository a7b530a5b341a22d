// Package stats reduces a batch of match results to the numbers a designer reads:
// who wins, how long games and turns run, and how much damage came from heat.
package stats

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/hotmech/simulator/pkg/core"
)

// Rate is how often something happened across the batch.
type Rate struct {
	Label string
	Count int
	Games int
}

// Percent is the share of games, 0 to 100.
func (r Rate) Percent() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Count) / float64(r.Games) * 100
}

func (r Rate) String() string {
	return fmt.Sprintf("%.0f%% (%d/%d)", math.Round(r.Percent()), r.Count, r.Games)
}

// Summary is the digest of a batch.
type Summary struct {
	Games int

	// MechWins has one entry per mech that took part, then one per non-win outcome
	// that occurred.
	MechWins  []Rate
	PilotWins []Rate

	MedianGameLength float64
	MaxGameLength    int
	MedianTurnLength float64 // cards per turn
	MaxTurnLength    int

	// MedianFirstBlood is over the games where damage landed; Bloodless counts the rest.
	MedianFirstBlood float64
	Bloodless        int

	MedianWinnerHP float64
	EmptyHands     int

	MeltDamage   int
	WeaponDamage int
}

// MeltShare is the fraction of all damage dealt by overheating.
func (s Summary) MeltShare() float64 {
	total := s.MeltDamage + s.WeaponDamage
	if total == 0 {
		return 0
	}
	return float64(s.MeltDamage) / float64(total)
}

// Summarize digests results. An empty batch gives the zero Summary.
func Summarize(results []core.MatchResult) Summary {
	s := Summary{Games: len(results)}
	if len(results) == 0 {
		return s
	}

	mechWins := map[string]int{}
	pilotWins := map[string]int{}
	otherOutcomes := map[string]int{}

	var gameLengths, turnLengths, firstBlood, winnerHP []int
	for _, r := range results {
		for _, p := range []core.PlayerResult{r.White, r.Black} {
			if _, ok := mechWins[p.Mech]; !ok {
				mechWins[p.Mech] = 0
			}
			if _, ok := pilotWins[p.Pilot]; !ok && p.Pilot != "" {
				pilotWins[p.Pilot] = 0
			}
			s.EmptyHands += p.EmptyHands
		}

		switch winner := winnerOf(r); {
		case winner != nil:
			mechWins[winner.Mech]++
			if winner.Pilot != "" {
				pilotWins[winner.Pilot]++
			}
			winnerHP = append(winnerHP, winner.HP)
		default:
			otherOutcomes[r.Outcome]++
		}

		gameLengths = append(gameLengths, r.Turns)
		turnLengths = append(turnLengths, r.TurnLengths...)
		if r.FirstBlood != nil {
			firstBlood = append(firstBlood, *r.FirstBlood)
		} else {
			s.Bloodless++
		}
		s.MeltDamage += r.MeltDamage
		s.WeaponDamage += r.WeaponDamage
	}

	s.MechWins = append(rates(mechWins, s.Games), rates(otherOutcomes, s.Games)...)
	s.PilotWins = rates(pilotWins, s.Games)
	s.MedianGameLength, s.MaxGameLength = median(gameLengths), maxOf(gameLengths)
	s.MedianTurnLength, s.MaxTurnLength = median(turnLengths), maxOf(turnLengths)
	s.MedianFirstBlood = median(firstBlood)
	s.MedianWinnerHP = median(winnerHP)
	return s
}

func winnerOf(r core.MatchResult) *core.PlayerResult {
	switch r.Winner {
	case "white":
		return &r.White
	case "black":
		return &r.Black
	}
	return nil
}

// rates orders by count, most first, then by label.
func rates(counts map[string]int, games int) []Rate {
	out := make([]Rate, 0, len(counts))
	for label, n := range counts {
		out = append(out, Rate{Label: label, Count: n, Games: games})
	}
	slices.SortFunc(out, func(a, b Rate) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

// median averages the two middle values of an even-length sample. It is 0 when empty.
func median(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

func maxOf(xs []int) int {
	if len(xs) == 0 {
		return 0
	}
	return slices.Max(xs)
}

// Write prints the summary as "key: value" lines.
func (s Summary) Write(w io.Writer) error {
	lines := []string{fmt.Sprintf("Played %d games:", s.Games)}
	for _, r := range s.MechWins {
		lines = append(lines, fmt.Sprintf("%s wins: %s", r.Label, r))
	}
	for _, r := range s.PilotWins {
		lines = append(lines, fmt.Sprintf("%s (pilot) wins: %s", r.Label, r))
	}
	lines = append(lines,
		fmt.Sprintf("Median Game Length: %g turns", s.MedianGameLength),
		fmt.Sprintf("Max Game Length: %d turns", s.MaxGameLength),
		fmt.Sprintf("Median Turn Length: %g cards per turn", s.MedianTurnLength),
		fmt.Sprintf("Max Turn Length: %d cards per turn", s.MaxTurnLength),
		fmt.Sprintf("Median First Blood: turn %g (%d games without damage)", s.MedianFirstBlood, s.Bloodless),
		fmt.Sprintf("Median Winner HP: %g", s.MedianWinnerHP),
		fmt.Sprintf("Empty Hands: %d", s.EmptyHands),
		fmt.Sprintf("Melt Damage: %.0f%% (%d of %d)", s.MeltShare()*100, s.MeltDamage, s.MeltDamage+s.WeaponDamage),
	)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
