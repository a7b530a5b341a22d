package engine

import "errors"

var (
	// ErrRunawayTurn is returned when a single turn plays more cards than the turn cap allows.
	// It usually means a deck can cycle zero-heat cards forever.
	ErrRunawayTurn = errors.New("runaway turn")

	// ErrIllegalPlay is returned when a card is played while one of its mandatory steps fails.
	ErrIllegalPlay = errors.New("illegal play")

	// ErrCardNotInHand is returned when a card is played from outside the owner's hand.
	ErrCardNotInHand = errors.New("card not in hand")

	// ErrNoMech is returned when a loadout is built without a mech.
	ErrNoMech = errors.New("loadout has no mech")
)
