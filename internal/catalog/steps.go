package catalog

import (
	"fmt"

	"github.com/hotmech/simulator/internal/engine"
)

// stepSpec is one step as written in a catalogue file.
type stepSpec struct {
	Kind          string    `yaml:"kind"`
	Min           int       `yaml:"min"`
	Max           int       `yaml:"max"`
	Amount        int       `yaml:"amount"`
	IgnoreTerrain bool      `yaml:"ignore_terrain"`
	Inner         *stepSpec `yaml:"inner"`
}

// stepBuilder validates a spec and returns the engine step. inner is the already built
// nested step, nil when the spec has none.
type stepBuilder func(s stepSpec, inner *engine.Step) (engine.Step, error)

var stepBuilders = map[string]stepBuilder{
	string(engine.StepMoveForward): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		if err := band(s); err != nil {
			return engine.Step{}, err
		}
		if s.IgnoreTerrain {
			return engine.MoveForwardIgnoringTerrain(s.Min, s.Max), nil
		}
		return engine.MoveForward(s.Min, s.Max), nil
	},
	string(engine.StepMoveAway): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		return engine.MoveAway(s.Min, s.Max), band(s)
	},
	string(engine.StepRotate): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		if err := band(s); err != nil {
			return engine.Step{}, err
		}
		if s.Max > 360 {
			return engine.Step{}, fmt.Errorf("%w: rotation window %d exceeds 360", ErrInvalidStep, s.Max)
		}
		return engine.Rotate(s.Min, s.Max), nil
	},
	string(engine.StepForceRotate): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		if s.Amount == 0 {
			return engine.Step{}, fmt.Errorf("%w: force-rotate needs a non-zero amount", ErrInvalidStep)
		}
		return engine.ForceRotate(s.Amount), nil
	},
	string(engine.StepAttack): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		if err := band(s); err != nil {
			return engine.Step{}, err
		}
		return engine.Attack(s.Amount, s.Min, s.Max), positive(s)
	},
	string(engine.StepRetire): func(stepSpec, *engine.Step) (engine.Step, error) {
		return engine.Retire(), nil
	},
	string(engine.StepUnretire): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		return engine.Unretire(s.Amount), positive(s)
	},
	string(engine.StepDraw): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		return engine.Draw(s.Amount), positive(s)
	},
	string(engine.StepDiscard): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		return engine.Discard(s.Amount), positive(s)
	},
	string(engine.StepEnemyDiscard): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		return engine.EnemyDiscard(s.Amount), positive(s)
	},
	string(engine.StepHeatEnemy): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		return engine.HeatEnemy(s.Amount), positive(s)
	},
	string(engine.StepDamageSelf): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		return engine.DamageSelf(s.Amount), positive(s)
	},
	string(engine.StepRangeCheck): func(s stepSpec, inner *engine.Step) (engine.Step, error) {
		if err := band(s); err != nil {
			return engine.Step{}, err
		}
		if inner == nil {
			return engine.Step{}, fmt.Errorf("%w: range-check needs an inner step", ErrInvalidStep)
		}
		if inner.Mandatory || inner.Kind == engine.StepRangeCheck {
			return engine.Step{}, fmt.Errorf("%w: range-check cannot wrap %s", ErrInvalidStep, inner.Kind)
		}
		return engine.RangeCheck(s.Min, s.Max, *inner), nil
	},
	string(engine.StepRangeGate): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		return engine.RangeGate(s.Min, s.Max), band(s)
	},
	string(engine.StepFaceAway): func(stepSpec, *engine.Step) (engine.Step, error) {
		return engine.FaceAway(), nil
	},
	string(engine.StepBoostRange): func(s stepSpec, _ *engine.Step) (engine.Step, error) {
		return engine.BoostRange(s.Amount), positive(s)
	},
	string(engine.StepEndTurn): func(stepSpec, *engine.Step) (engine.Step, error) {
		return engine.EndTurn(), nil
	},
}

func buildStep(s stepSpec) (engine.Step, error) {
	build, ok := stepBuilders[s.Kind]
	if !ok {
		return engine.Step{}, fmt.Errorf("%w: %q", ErrUnknownStep, s.Kind)
	}

	var inner *engine.Step
	if s.Inner != nil {
		st, err := buildStep(*s.Inner)
		if err != nil {
			return engine.Step{}, fmt.Errorf("inner: %w", err)
		}
		inner = &st
	}

	st, err := build(s, inner)
	if err != nil {
		return engine.Step{}, err
	}
	return st, nil
}

func band(s stepSpec) error {
	if s.Min < 0 || s.Max < s.Min {
		return fmt.Errorf("%w: %s band %d-%d", ErrInvalidStep, s.Kind, s.Min, s.Max)
	}
	return nil
}

func positive(s stepSpec) error {
	if s.Amount < 1 {
		return fmt.Errorf("%w: %s amount must be at least 1, got %d", ErrInvalidStep, s.Kind, s.Amount)
	}
	return nil
}
