// Package engine runs a single HotMech match: two players alternating turns, playing
// cards whose steps move, turn, attack and manage heat until a mech is destroyed.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	geom "github.com/peterstace/simplefeatures/geom"
)

const (
	// DefaultMaxTurns ends a match as unresolved once this many turns have been played.
	DefaultMaxTurns = 100

	// DefaultTurnCardCap is how many cards a single turn may play before it is a runaway.
	DefaultTurnCardCap = 100
)

// Starting positions. The players open out of each other's weapon range.
var (
	WhiteStart        = geom.XY{X: 0, Y: 0}
	BlackStart        = geom.XY{X: 30, Y: 10}
	WhiteStartHeading = 0.0
	BlackStartHeading = 180.0
)

// Outcome classifies how a match ended.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWin        Outcome = "win"
	OutcomeTie        Outcome = "tie"
	OutcomeUnresolved Outcome = "unresolved"
	OutcomeRunaway    Outcome = "runaway"
)

// Game is one match between a white and a black player.
type Game struct {
	White *Player
	Black *Player

	rng         Rand
	log         *slog.Logger
	maxTurns    int
	turnCardCap int

	turns        int
	turnLengths  []int
	firstBlood   int
	bloodied     bool
	weaponDamage int
	outcome      Outcome
	winner       *Player
	err          error
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the match's random source. Without it the match is not reproducible.
func WithRand(r Rand) Option {
	return func(g *Game) { g.rng = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.log = l }
}

func WithMaxTurns(n int) Option {
	return func(g *Game) { g.maxTurns = n }
}

func WithTurnCardCap(n int) Option {
	return func(g *Game) { g.turnCardCap = n }
}

// NewGame seats two players. Each deck is shuffled with the match's random source.
func NewGame(white, black Loadout, opts ...Option) (*Game, error) {
	if white.Mech == nil || black.Mech == nil {
		return nil, ErrNoMech
	}

	g := &Game{
		log:         slog.New(slog.DiscardHandler),
		maxTurns:    DefaultMaxTurns,
		turnCardCap: DefaultTurnCardCap,
		outcome:     OutcomeInProgress,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	g.White = newPlayer(g, White, white, WhiteStart, WhiteStartHeading)
	g.Black = newPlayer(g, Black, black, BlackStart, BlackStartHeading)
	return g, nil
}

// Enemy returns the opponent of p.
func (g *Game) Enemy(p *Player) *Player {
	if p == g.White {
		return g.Black
	}
	return g.White
}

// Play runs turns until the match is decided or the turn limit is reached.
func (g *Game) Play() Outcome {
	for g.outcome == OutcomeInProgress {
		if g.turns >= g.maxTurns {
			g.outcome = OutcomeUnresolved
			g.log.Warn("Long game, stopping without a winner", "turns", g.turns)
			break
		}
		if err := g.PlayTurn(); err != nil {
			g.log.Error("Match ended by a runaway turn", "error", err)
		}
	}
	return g.outcome
}

// PlayTurn advances the match by one turn. White acts on odd turns and black on even.
// A runaway turn ends the match with OutcomeRunaway and is returned.
func (g *Game) PlayTurn() error {
	if g.Finished() {
		return nil
	}

	g.turns++
	p := g.Black
	if g.turns%2 == 1 {
		p = g.White
	}

	err := p.TakeTurn()
	g.turnLengths = append(g.turnLengths, p.turnCards)
	if err != nil {
		if !errors.Is(err, ErrRunawayTurn) {
			panic(fmt.Sprintf("engine: turn %d: %v", g.turns, err))
		}
		g.outcome = OutcomeRunaway
		g.err = err
		return err
	}

	g.settle()
	return nil
}

func (g *Game) settle() {
	whiteDown, blackDown := g.White.Mech.Destroyed(), g.Black.Mech.Destroyed()
	switch {
	case whiteDown && blackDown:
		g.outcome = OutcomeTie
	case whiteDown:
		g.outcome, g.winner = OutcomeWin, g.Black
	case blackDown:
		g.outcome, g.winner = OutcomeWin, g.White
	default:
		return
	}
	g.log.Debug("Match decided", "outcome", string(g.outcome), "turns", g.turns)
}

func (g *Game) Finished() bool { return g.outcome != OutcomeInProgress }

func (g *Game) Outcome() Outcome { return g.outcome }

// Winner is nil unless the outcome is OutcomeWin.
func (g *Game) Winner() *Player { return g.winner }

// Err holds the runaway error of a match that ended with OutcomeRunaway.
func (g *Game) Err() error { return g.err }

func (g *Game) Turns() int { return g.turns }

// TurnLengths is the number of cards played on each turn, in order.
func (g *Game) TurnLengths() []int { return g.turnLengths }

// FirstBloodTurn is the turn the first damage landed on, if any has.
func (g *Game) FirstBloodTurn() (int, bool) { return g.firstBlood, g.bloodied }

func (g *Game) TotalWeaponDamage() int { return g.weaponDamage }

func (g *Game) TotalMeltDamage() int {
	return g.White.Mech.MeltDamage + g.Black.Mech.MeltDamage
}
