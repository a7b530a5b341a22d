package engine

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/hotmech/simulator/internal/geo"
	geom "github.com/peterstace/simplefeatures/geom"
)

const (
	// StartingHand is the hand size a player draws up to at the start of each turn.
	StartingHand = 5

	// handTrimThreshold is the hand size above which a player discards before drawing.
	handTrimThreshold = 4
)

// Side names one of the two seats at the table.
type Side string

const (
	White Side = "white"
	Black Side = "black"
)

// Player is one side of a match: a mech, its four card zones and its place on the table.
type Player struct {
	Side     Side
	Mech     *Mech
	Loadout  Loadout
	Position geom.XY
	Heading  float64

	game    *Game
	log     *slog.Logger
	cards   []*Card
	dropped []*UpgradeDef

	deck    []*Card
	hand    []*Card
	discard []*Card
	retired []*Card

	turnEnded   bool
	turnCards   int
	playedCount int
	largestHand int
	emptyHands  int
	played      []string
	track       []geom.XY
}

func newPlayer(g *Game, side Side, loadout Loadout, pos geom.XY, heading float64) *Player {
	p := &Player{
		Side:     side,
		Mech:     newMech(loadout.Mech),
		Position: pos,
		Heading:  heading,
		game:     g,
		log:      g.log.With("side", string(side)),
		track:    []geom.XY{pos},
	}

	if hp := loadout.Mech.HardPoints; len(loadout.Upgrades) > hp {
		p.dropped = slices.Clone(loadout.Upgrades[hp:])
		loadout.Upgrades = slices.Clone(loadout.Upgrades[:hp])
		p.log.Warn("More upgrades than hard points, dropping the rest",
			"mech", loadout.Mech.ID, "hardPoints", hp, "dropped", len(p.dropped))
	}
	p.Loadout = loadout

	for _, def := range loadout.deck() {
		p.cards = append(p.cards, &Card{Def: def, owner: p})
	}
	p.deck = slices.Clone(p.cards)
	g.rng.Shuffle(len(p.deck), func(i, j int) { p.deck[i], p.deck[j] = p.deck[j], p.deck[i] })

	return p
}

// Enemy returns the player across the table.
func (p *Player) Enemy() *Player { return p.game.Enemy(p) }

func (p *Player) Game() *Game { return p.game }

// Deck, Hand, DiscardPile and Retired expose the zones. Callers must not modify them.
func (p *Player) Deck() []*Card        { return p.deck }
func (p *Player) Hand() []*Card        { return p.hand }
func (p *Player) DiscardPile() []*Card { return p.discard }
func (p *Player) Retired() []*Card     { return p.retired }

// DeckSize is the number of cards the player started the match with.
func (p *Player) DeckSize() int { return len(p.cards) }

// DroppedUpgrades lists upgrades cut because the mech lacked hard points for them.
func (p *Player) DroppedUpgrades() []*UpgradeDef { return p.dropped }

func (p *Player) PlayedCount() int { return p.playedCount }

func (p *Player) LargestHand() int { return p.largestHand }

func (p *Player) EmptyHands() int { return p.emptyHands }

// PlayedCards is the ordered history of card IDs this player has played.
func (p *Player) PlayedCards() []string { return p.played }

// Track is every distinct position the player has occupied, starting position first.
func (p *Player) Track() []geom.XY { return p.track }

func (p *Player) TurnEnded() bool { return p.turnEnded }

// EndTurn stops the current turn after the card being resolved.
func (p *Player) EndTurn() { p.turnEnded = true }

func (p *Player) BearingToEnemy() float64 {
	return geo.AngleTo(p.Position, p.Enemy().Position)
}

func (p *Player) DistanceToEnemy() float64 {
	return geo.Distance(p.Position, p.Enemy().Position)
}

func (p *Player) FacingEnemy() bool {
	return geo.Facing(p.Heading, p.BearingToEnemy(), geo.DefaultTolerance)
}

// EnemyWithin reports whether the enemy stands in the inclusive band [lo,hi].
func (p *Player) EnemyWithin(lo, hi int) bool {
	d := p.DistanceToEnemy()
	return float64(lo) <= d && d <= float64(hi)
}

func (p *Player) moveTo(pos geom.XY) {
	if pos == p.Position {
		return
	}
	p.Position = pos
	p.track = append(p.track, pos)
}

// TakeTurn runs one full turn: trim and refill the hand, cool down, then play the
// selector's picks until it passes or the turn is ended.
func (p *Player) TakeTurn() error {
	if len(p.hand) > handTrimThreshold {
		p.throwAway(len(p.hand) - StartingHand)
	}
	for len(p.hand) < StartingHand {
		if p.draw() == nil {
			break
		}
	}
	p.Mech.cool()

	p.turnEnded = false
	p.turnCards = 0
	for !p.turnEnded {
		if p.turnCards >= p.game.turnCardCap {
			p.log.Error("Turn exceeded card cap", "cards", p.turnCards, "turn", p.game.turns)
			return fmt.Errorf("%w: %s played %d cards on turn %d", ErrRunawayTurn, p.Side, p.turnCards, p.game.turns)
		}
		c := p.ChooseCard()
		if c == nil {
			break
		}
		if err := p.PlayCard(c); err != nil {
			return err
		}
	}
	return nil
}

// PlayCard moves c from hand to discard, resolves it and settles heat on both mechs,
// the enemy's first.
func (p *Player) PlayCard(c *Card) error {
	if c.owner != p || !slices.Contains(p.hand, c) {
		return fmt.Errorf("%w: %s", ErrCardNotInHand, c)
	}
	if !c.mandatoryHolds() {
		return fmt.Errorf("%w: %s has an unmet requirement", ErrIllegalPlay, c)
	}

	p.transfer(c, &p.hand, &p.discard)
	c.Play()
	p.Enemy().checkHeat()
	p.checkHeat()

	p.turnCards++
	p.playedCount++
	p.played = append(p.played, c.Def.ID)
	p.log.Debug("Played card", "card", c.Def.ID, "heat", p.Mech.Heat, "hp", p.Mech.HP)

	p.assertConservation()
	return nil
}

func (p *Player) checkHeat() {
	if melt := p.Mech.checkHeat(p.game.rng); melt > 0 {
		p.EndTurn()
		p.log.Debug("Mech melted", "melt", melt, "hp", p.Mech.HP)
	}
}

// draw moves the top of the deck into the hand, reshuffling the discard pile into a
// fresh deck when the deck runs out. It returns nil when both are empty.
func (p *Player) draw() *Card {
	if len(p.deck) == 0 {
		if len(p.discard) == 0 {
			return nil
		}
		p.deck, p.discard = p.discard, nil
		p.game.rng.Shuffle(len(p.deck), func(i, j int) { p.deck[i], p.deck[j] = p.deck[j], p.deck[i] })
	}

	top := p.deck[len(p.deck)-1]
	p.deck = p.deck[:len(p.deck)-1]
	p.hand = append(p.hand, top)
	p.largestHand = max(p.largestHand, len(p.hand))
	return top
}

// throwAway discards the n lowest ranked cards in hand. A discarded card loses any
// range bonus, as it would if played or retired.
func (p *Player) throwAway(n int) {
	for range n {
		if len(p.hand) == 0 {
			return
		}
		ranked := p.rank(p.hand)
		worst := ranked[len(ranked)-1]
		p.transfer(worst, &p.hand, &p.discard)
		worst.rangeBonus = 0
	}
}

// retire pulls c out of whichever zone holds it and sets it aside for the rest of the match.
func (p *Player) retire(c *Card) {
	for _, zone := range []*[]*Card{&p.hand, &p.deck, &p.discard} {
		if slices.Contains(*zone, c) {
			p.transfer(c, zone, &p.retired)
			c.rangeBonus = 0
			return
		}
	}
}

func (p *Player) hasOtherRetired(c *Card) bool {
	return slices.ContainsFunc(p.retired, func(r *Card) bool { return r != c })
}

// unretire returns the best ranked retired card other than except to the hand.
func (p *Player) unretire(except *Card) {
	candidates := slices.DeleteFunc(slices.Clone(p.retired), func(r *Card) bool { return r == except })
	if len(candidates) == 0 {
		return
	}
	p.transfer(p.rank(candidates)[0], &p.retired, &p.hand)
	p.largestHand = max(p.largestHand, len(p.hand))
}

// boostTarget is the first attack card in hand other than c.
func (p *Player) boostTarget(c *Card) *Card {
	for _, h := range p.hand {
		if h != c && h.boostable() {
			return h
		}
	}
	return nil
}

func (p *Player) transfer(c *Card, from, to *[]*Card) {
	i := slices.Index(*from, c)
	if i < 0 {
		panic(fmt.Sprintf("engine: %s is not in the source zone", c))
	}
	*from = slices.Delete(*from, i, i+1)
	*to = append(*to, c)
}

// assertConservation panics unless every starting card sits in exactly one zone.
func (p *Player) assertConservation() {
	seen := make(map[*Card]int, len(p.cards))
	for _, zone := range [][]*Card{p.deck, p.hand, p.discard, p.retired} {
		for _, c := range zone {
			seen[c]++
		}
	}
	total := len(p.deck) + len(p.hand) + len(p.discard) + len(p.retired)
	if total != len(p.cards) || len(seen) != len(p.cards) {
		panic(fmt.Sprintf("engine: %s zones hold %d cards (%d distinct), started with %d",
			p.Side, total, len(seen), len(p.cards)))
	}
	for _, c := range p.cards {
		if seen[c] != 1 {
			panic(fmt.Sprintf("engine: %s card %s appears in %d zones", p.Side, c, seen[c]))
		}
	}
}
