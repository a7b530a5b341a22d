package catalog

import "github.com/hotmech/simulator/internal/engine"

// Finding is a card whose estimated worth strays from the heat it charges.
type Finding struct {
	Card  *engine.CardDef
	Cost  int
	Delta int // Cost minus heat; positive means the card is cheap for what it does
}

// Audit returns every card whose balance cost differs from its heat by more than
// tolerance, ordered by ID.
func (r *Registry) Audit(tolerance int) []Finding {
	var out []Finding
	for _, def := range r.Cards() {
		cost := def.BalanceCost()
		delta := cost - def.Heat
		if delta > tolerance || -delta > tolerance {
			out = append(out, Finding{Card: def, Cost: cost, Delta: delta})
		}
	}
	return out
}
