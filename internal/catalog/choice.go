package catalog

import (
	"fmt"
	"strings"

	"github.com/hotmech/simulator/internal/engine"
)

// Choice is what a player asked to field. Empty fields are filled at random.
type Choice struct {
	Mech     string   `json:"mech" mapstructure:"mech"`
	Pilot    string   `json:"pilot" mapstructure:"pilot"`
	Upgrades []string `json:"upgrades" mapstructure:"upgrades"`
}

func (c Choice) String() string {
	pick := func(s string) string {
		if s == "" {
			return "?"
		}
		return s
	}
	ups := "?"
	if len(c.Upgrades) > 0 {
		ups = strings.Join(c.Upgrades, "+")
	}
	return fmt.Sprintf("%s/%s/%s", pick(c.Pilot), pick(c.Mech), ups)
}

// Resolve builds a loadout from c. A missing pilot or mech is drawn from the catalogue,
// never a hidden mech, and missing upgrades are drawn one per hard point, repeats allowed.
// Explicit upgrades are passed through untruncated; the engine drops the overflow.
func (r *Registry) Resolve(c Choice, rng engine.Rand) (engine.Loadout, error) {
	var (
		l   engine.Loadout
		err error
	)

	pilot := c.Pilot
	if pilot == "" && len(r.pilotIDs) > 0 {
		pilot = r.pilotIDs[rng.IntN(len(r.pilotIDs))]
	}
	if pilot != "" {
		if l.Pilot, err = r.Pilot(pilot); err != nil {
			return engine.Loadout{}, err
		}
	}

	mech := c.Mech
	if mech == "" {
		if len(r.pickable) == 0 {
			return engine.Loadout{}, fmt.Errorf("%w: catalog has no mech to pick", ErrUnknownMech)
		}
		mech = r.pickable[rng.IntN(len(r.pickable))]
	}
	if l.Mech, err = r.Mech(mech); err != nil {
		return engine.Loadout{}, err
	}

	upgrades := c.Upgrades
	if len(upgrades) == 0 && len(r.upgradeIDs) > 0 {
		for range l.Mech.HardPoints {
			upgrades = append(upgrades, r.upgradeIDs[rng.IntN(len(r.upgradeIDs))])
		}
	}
	for _, id := range upgrades {
		u, err := r.Upgrade(id)
		if err != nil {
			return engine.Loadout{}, err
		}
		l.Upgrades = append(l.Upgrades, u)
	}
	return l, nil
}
