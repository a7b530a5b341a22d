package engine

// PilotDef is a pilot and the cards they bring to every deck.
type PilotDef struct {
	ID    string
	Name  string
	Cards []*CardDef
}

// UpgradeDef is a bolt-on that occupies one hard point.
type UpgradeDef struct {
	ID    string
	Name  string
	Cards []*CardDef
}

// Loadout is everything a player is built from. Pilot may be nil.
type Loadout struct {
	Pilot    *PilotDef
	Mech     *MechDef
	Upgrades []*UpgradeDef
}

// deck lists the starting cards, pilot first, then mech, then upgrades.
func (l Loadout) deck() []*CardDef {
	var defs []*CardDef
	if l.Pilot != nil {
		defs = append(defs, l.Pilot.Cards...)
	}
	defs = append(defs, l.Mech.Cards...)
	for _, u := range l.Upgrades {
		defs = append(defs, u.Cards...)
	}
	return defs
}

// PilotID returns the pilot identifier, or "" without a pilot.
func (l Loadout) PilotID() string {
	if l.Pilot == nil {
		return ""
	}
	return l.Pilot.ID
}

// UpgradeIDs lists the upgrade identifiers in fitting order.
func (l Loadout) UpgradeIDs() []string {
	ids := make([]string, 0, len(l.Upgrades))
	for _, u := range l.Upgrades {
		ids = append(ids, u.ID)
	}
	return ids
}
