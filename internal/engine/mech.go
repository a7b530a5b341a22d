package engine

const (
	// MinHeat and MaxHeat bound a mech's heat after every check.
	MinHeat = 1
	MaxHeat = 6

	// MaxMelt is the largest melt roll taken when a mech overheats.
	MaxMelt = 6
)

// MechDef describes a chassis: its durability, upgrade capacity and built-in cards.
type MechDef struct {
	ID         string
	Name       string
	MaxHP      int
	HardPoints int
	Cards      []*CardDef
}

func (d *MechDef) HumanName() string {
	if d.Name != "" {
		return d.Name
	}
	return HumanizeID(d.ID)
}

// Mech is the live chassis a player pilots during one match.
type Mech struct {
	Def        *MechDef
	HP         int
	Heat       int
	MeltDamage int
}

func newMech(def *MechDef) *Mech {
	return &Mech{Def: def, HP: def.MaxHP, Heat: MinHeat}
}

func (m *Mech) MaxHP() int { return m.Def.MaxHP }

func (m *Mech) Destroyed() bool { return m.HP <= 0 }

// checkHeat settles heat back into [MinHeat, MaxHeat]. Heat above the ceiling melts:
// a roll of 1..MaxMelt comes off both heat and HP. The roll is returned, zero if none.
func (m *Mech) checkHeat(rng Rand) int {
	melt := 0
	if m.Heat > MaxHeat {
		m.Heat = MaxHeat
		melt = rng.IntN(MaxMelt) + 1
		m.Heat -= melt
		m.HP -= melt
		m.MeltDamage += melt
	}
	if m.Heat < MinHeat {
		m.Heat = MinHeat
	}
	return melt
}

// cool sheds one point of heat at the start of a turn.
func (m *Mech) cool() {
	m.Heat = max(m.Heat-1, MinHeat)
}
