package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hotmech/simulator/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always picks the same index.
type fixedRand int

func (r fixedRand) IntN(n int) int           { return int(r) % n }
func (fixedRand) Shuffle(int, func(i, j int)) {}

func mustDefault(t *testing.T) *Registry {
	t.Helper()
	reg, err := Default()
	require.NoError(t, err)
	return reg
}

func TestStepBuilders_CoverEveryKind(t *testing.T) {
	for _, k := range engine.StepKinds {
		assert.Contains(t, stepBuilders, string(k))
	}
	assert.Len(t, stepBuilders, len(engine.StepKinds))
}

func TestDefault_Mechs(t *testing.T) {
	reg := mustDefault(t)
	assert.Equal(t, []string{"hauler", "sandpiper", "skeleton", "thermo"}, reg.MechIDs())

	tests := []struct {
		id         string
		hp, points int
		deck       int
	}{
		{"sandpiper", 8, 3, 16},
		{"thermo", 10, 2, 16},
		{"hauler", 14, 2, 16},
		{"skeleton", 10, 2, 0},
	}
	for _, tt := range tests {
		m, err := reg.Mech(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.hp, m.MaxHP, tt.id)
		assert.Equal(t, tt.points, m.HardPoints, tt.id)
		assert.Len(t, m.Cards, tt.deck, tt.id)
	}
}

func TestDefault_PilotsAndUpgrades(t *testing.T) {
	reg := mustDefault(t)
	assert.Len(t, reg.PilotIDs(), 6)
	for _, id := range reg.PilotIDs() {
		p, err := reg.Pilot(id)
		require.NoError(t, err)
		if id == "nameless-degenerate" {
			assert.Empty(t, p.Cards)
			continue
		}
		assert.Len(t, p.Cards, 4, id)
	}
	assert.Equal(t, []string{"grapple-arms", "heat-sink", "range-finder", "tassles"}, reg.UpgradeIDs())
}

func TestDefault_Cards(t *testing.T) {
	reg := mustDefault(t)
	assert.Len(t, reg.Cards(), len(reg.CardIDs()))

	torch, err := reg.Card("torch-em")
	require.NoError(t, err)
	assert.Equal(t, "Torch 'Em", torch.HumanName())
	assert.Equal(t, 3, torch.Heat)
	assert.Equal(t, []engine.Step{engine.Attack(2, 0, 12), engine.HeatEnemy(2)}, torch.Steps)
	assert.True(t, strings.HasPrefix(torch.Flavor, `"Light them up.`))

	heavy, err := reg.Card("heavy-lead")
	require.NoError(t, err)
	assert.Equal(t, engine.Attack(6, 6, 12), heavy.Steps[0])

	glare, err := reg.Card("hateful-glare")
	require.NoError(t, err)
	assert.Equal(t, engine.RangeCheck(0, 12, engine.Rotate(0, 180)), glare.Steps[0])

	grapple, err := reg.Card("grapple")
	require.NoError(t, err)
	assert.True(t, grapple.Steps[0].Mandatory)

	for _, def := range reg.Cards() {
		assert.NotPanics(t, func() { def.BalanceCost() }, def.ID)
		assert.NotEmpty(t, def.Explain(), def.ID)
	}

	_, err = reg.Card("moonbeam")
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"unknown step", "cards:\n  - id: a\n    steps: [{kind: teleport}]\n", ErrUnknownStep},
		{"bad band", "cards:\n  - id: a\n    steps: [{kind: attack, amount: 2, min: 6, max: 3}]\n", ErrInvalidStep},
		{"zero draw", "cards:\n  - id: a\n    steps: [{kind: draw}]\n", ErrInvalidStep},
		{"bare range check", "cards:\n  - id: a\n    steps: [{kind: range-check, max: 6}]\n", ErrInvalidStep},
		{"gated gate", "cards:\n  - id: a\n    steps: [{kind: range-check, max: 6, inner: {kind: range-gate, max: 3}}]\n", ErrInvalidStep},
		{"unknown inner", "cards:\n  - id: a\n    steps: [{kind: range-check, max: 6, inner: {kind: nap}}]\n", ErrUnknownStep},
		{"duplicate card", "cards:\n  - id: a\n  - id: a\n", ErrDuplicateID},
		{"missing card", "mechs:\n  - id: m\n    hp: 5\n    cards: [ghost]\n", ErrUnknownCard},
		{"duplicate upgrade", "upgrades:\n  - id: u\n  - id: u\n", ErrDuplicateID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader("cards:\n  - id: a\n    hot: 3\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini.yaml")
	doc := `
cards:
  - id: poke
    heat: 1
    steps: [{kind: attack, amount: 1, max: 3}]
mechs:
  - id: stub
    hp: 3
    hard_points: 1
    cards: [poke, poke]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	reg, err := LoadFile(path)
	require.NoError(t, err)
	m, err := reg.Mech("stub")
	require.NoError(t, err)
	assert.Len(t, m.Cards, 2)
	assert.Same(t, m.Cards[0], m.Cards[1])
	assert.Equal(t, "Stub", m.HumanName())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolve_Explicit(t *testing.T) {
	reg := mustDefault(t)
	l, err := reg.Resolve(Choice{
		Mech: "thermo", Pilot: "veteran-of-wrath", Upgrades: []string{"grapple-arms"},
	}, fixedRand(0))
	require.NoError(t, err)

	assert.Equal(t, "thermo", l.Mech.ID)
	assert.Equal(t, "veteran-of-wrath", l.PilotID())
	assert.Equal(t, []string{"grapple-arms"}, l.UpgradeIDs())
}

func TestResolve_Random(t *testing.T) {
	reg := mustDefault(t)
	l, err := reg.Resolve(Choice{}, fixedRand(0))
	require.NoError(t, err)

	assert.Equal(t, "beguiled-zealot", l.PilotID())
	assert.Equal(t, "hauler", l.Mech.ID)
	assert.Equal(t, []string{"grapple-arms", "grapple-arms"}, l.UpgradeIDs())
}

func TestResolve_NeverPicksHiddenMech(t *testing.T) {
	reg := mustDefault(t)
	for seed := uint64(0); seed < 50; seed++ {
		l, err := reg.Resolve(Choice{Pilot: "nameless-degenerate"}, engine.NewRand(seed, 0))
		require.NoError(t, err)
		assert.NotEqual(t, "skeleton", l.Mech.ID)
		assert.Len(t, l.Upgrades, l.Mech.HardPoints)
	}
}

func TestResolve_UnknownIDs(t *testing.T) {
	reg := mustDefault(t)

	_, err := reg.Resolve(Choice{Mech: "titan"}, fixedRand(0))
	assert.ErrorIs(t, err, ErrUnknownMech)
	_, err = reg.Resolve(Choice{Pilot: "nobody"}, fixedRand(0))
	assert.ErrorIs(t, err, ErrUnknownPilot)
	_, err = reg.Resolve(Choice{Mech: "thermo", Upgrades: []string{"wings"}}, fixedRand(0))
	assert.ErrorIs(t, err, ErrUnknownUpgrade)
}

func TestChoice_String(t *testing.T) {
	assert.Equal(t, "?/thermo/?", Choice{Mech: "thermo"}.String())
	assert.Equal(t, "zealot/hauler/a+b", Choice{Pilot: "zealot", Mech: "hauler", Upgrades: []string{"a", "b"}}.String())
}

func TestAudit(t *testing.T) {
	reg := mustDefault(t)

	findings := reg.Audit(0)
	ids := make([]string, 0, len(findings))
	for _, f := range findings {
		ids = append(ids, f.Card.ID)
		assert.Equal(t, f.Cost-f.Card.Heat, f.Delta)
	}
	assert.Contains(t, ids, "cook-cabin")
	assert.NotContains(t, ids, "standard-move")

	assert.Empty(t, reg.Audit(100))
}
