// Package catalog loads card, mech, pilot and upgrade definitions and turns a player's
// choices into an engine loadout.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/hotmech/simulator/internal/engine"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

var (
	ErrUnknownStep    = errors.New("unknown step kind")
	ErrUnknownCard    = errors.New("unknown card")
	ErrUnknownMech    = errors.New("unknown mech")
	ErrUnknownPilot   = errors.New("unknown pilot")
	ErrUnknownUpgrade = errors.New("unknown upgrade")
	ErrInvalidStep    = errors.New("invalid step")
	ErrDuplicateID    = errors.New("duplicate id")
)

type cardSpec struct {
	ID     string     `yaml:"id"`
	Name   string     `yaml:"name"`
	Heat   int        `yaml:"heat"`
	Steps  []stepSpec `yaml:"steps"`
	Flavor string     `yaml:"flavor"`
}

type mechSpec struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	HP         int      `yaml:"hp"`
	HardPoints int      `yaml:"hard_points"`
	Hidden     bool     `yaml:"hidden"` // never picked at random
	Cards      []string `yaml:"cards"`
}

// deckSpec is a pilot or an upgrade: a name and the cards it adds.
type deckSpec struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Cards []string `yaml:"cards"`
}

type document struct {
	Cards    []cardSpec `yaml:"cards"`
	Mechs    []mechSpec `yaml:"mechs"`
	Pilots   []deckSpec `yaml:"pilots"`
	Upgrades []deckSpec `yaml:"upgrades"`
}

// Registry is a loaded catalogue. It is immutable once built and safe to share between
// goroutines.
type Registry struct {
	cards    map[string]*engine.CardDef
	mechs    map[string]*engine.MechDef
	pilots   map[string]*engine.PilotDef
	upgrades map[string]*engine.UpgradeDef

	cardIDs    []string
	mechIDs    []string
	pickable   []string
	pilotIDs   []string
	upgradeIDs []string
}

// Default returns the catalogue compiled into the binary.
func Default() (*Registry, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads a catalogue from a YAML file on disk.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a YAML catalogue. Unknown fields are rejected.
func Load(r io.Reader) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	reg := &Registry{
		cards:    make(map[string]*engine.CardDef, len(doc.Cards)),
		mechs:    make(map[string]*engine.MechDef, len(doc.Mechs)),
		pilots:   make(map[string]*engine.PilotDef, len(doc.Pilots)),
		upgrades: make(map[string]*engine.UpgradeDef, len(doc.Upgrades)),
	}

	for _, cs := range doc.Cards {
		if _, dup := reg.cards[cs.ID]; dup {
			return nil, fmt.Errorf("%w: card %s", ErrDuplicateID, cs.ID)
		}
		def := &engine.CardDef{ID: cs.ID, Name: cs.Name, Heat: cs.Heat, Flavor: cs.Flavor}
		for i, ss := range cs.Steps {
			st, err := buildStep(ss)
			if err != nil {
				return nil, fmt.Errorf("card %s step %d: %w", cs.ID, i, err)
			}
			def.Steps = append(def.Steps, st)
		}
		reg.cards[cs.ID] = def
	}

	for _, ms := range doc.Mechs {
		if _, dup := reg.mechs[ms.ID]; dup {
			return nil, fmt.Errorf("%w: mech %s", ErrDuplicateID, ms.ID)
		}
		if ms.HP < 1 || ms.HardPoints < 0 {
			return nil, fmt.Errorf("mech %s: hp must be positive and hard points not negative", ms.ID)
		}
		cards, err := reg.lookupCards(ms.Cards)
		if err != nil {
			return nil, fmt.Errorf("mech %s: %w", ms.ID, err)
		}
		reg.mechs[ms.ID] = &engine.MechDef{
			ID: ms.ID, Name: ms.Name, MaxHP: ms.HP, HardPoints: ms.HardPoints, Cards: cards,
		}
		if !ms.Hidden {
			reg.pickable = append(reg.pickable, ms.ID)
		}
	}

	for _, ps := range doc.Pilots {
		if _, dup := reg.pilots[ps.ID]; dup {
			return nil, fmt.Errorf("%w: pilot %s", ErrDuplicateID, ps.ID)
		}
		cards, err := reg.lookupCards(ps.Cards)
		if err != nil {
			return nil, fmt.Errorf("pilot %s: %w", ps.ID, err)
		}
		reg.pilots[ps.ID] = &engine.PilotDef{ID: ps.ID, Name: ps.Name, Cards: cards}
	}

	for _, us := range doc.Upgrades {
		if _, dup := reg.upgrades[us.ID]; dup {
			return nil, fmt.Errorf("%w: upgrade %s", ErrDuplicateID, us.ID)
		}
		cards, err := reg.lookupCards(us.Cards)
		if err != nil {
			return nil, fmt.Errorf("upgrade %s: %w", us.ID, err)
		}
		reg.upgrades[us.ID] = &engine.UpgradeDef{ID: us.ID, Name: us.Name, Cards: cards}
	}

	reg.cardIDs = sortedKeys(reg.cards)
	reg.mechIDs = sortedKeys(reg.mechs)
	reg.pilotIDs = sortedKeys(reg.pilots)
	reg.upgradeIDs = sortedKeys(reg.upgrades)
	slices.Sort(reg.pickable)
	return reg, nil
}

func (r *Registry) lookupCards(ids []string) ([]*engine.CardDef, error) {
	defs := make([]*engine.CardDef, 0, len(ids))
	for _, id := range ids {
		def, err := r.Card(id)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (r *Registry) Card(id string) (*engine.CardDef, error) {
	if def, ok := r.cards[id]; ok {
		return def, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCard, id)
}

func (r *Registry) Mech(id string) (*engine.MechDef, error) {
	if def, ok := r.mechs[id]; ok {
		return def, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMech, id)
}

func (r *Registry) Pilot(id string) (*engine.PilotDef, error) {
	if def, ok := r.pilots[id]; ok {
		return def, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownPilot, id)
}

func (r *Registry) Upgrade(id string) (*engine.UpgradeDef, error) {
	if def, ok := r.upgrades[id]; ok {
		return def, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownUpgrade, id)
}

// CardIDs, MechIDs, PilotIDs and UpgradeIDs return sorted identifiers. Callers must
// not modify them.
func (r *Registry) CardIDs() []string    { return r.cardIDs }
func (r *Registry) MechIDs() []string    { return r.mechIDs }
func (r *Registry) PilotIDs() []string   { return r.pilotIDs }
func (r *Registry) UpgradeIDs() []string { return r.upgradeIDs }

// Cards returns every card definition ordered by ID.
func (r *Registry) Cards() []*engine.CardDef {
	defs := make([]*engine.CardDef, 0, len(r.cardIDs))
	for _, id := range r.cardIDs {
		defs = append(defs, r.cards[id])
	}
	return defs
}
