package cli

import (
	"github.com/spf13/viper"

	"github.com/katalvlaran/scv/core"
	"github.com/katalvlaran/scv/planner"
)

// axisConfig mirrors a core.Vec3 in scenario-file form.
type axisConfig struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
	Z float64 `mapstructure:"z"`
}

func (a axisConfig) vec() core.Vec3 { return core.Vec3{X: a.X, Y: a.Y, Z: a.Z} }

// moveConfig is one move entry in a scenario file.
type moveConfig struct {
	Dst            axisConfig `mapstructure:"dst"`
	Vel            float64    `mapstructure:"vel"`
	Acc            float64    `mapstructure:"acc"`
	Jerk           float64    `mapstructure:"jerk"`
	BlendType      string     `mapstructure:"blend_type"`
	BlendClearance float64    `mapstructure:"blend_clearance"`
	Scaler         float64    `mapstructure:"scaler"`
}

// scenarioConfig is the top-level shape of a scenario file (spec.md §6
// configuration knobs, plus the move chain itself).
type scenarioConfig struct {
	PosLower           axisConfig   `mapstructure:"pos_lower"`
	PosUpper           axisConfig   `mapstructure:"pos_upper"`
	Vel                axisConfig   `mapstructure:"vel"`
	Acc                axisConfig   `mapstructure:"acc"`
	Jerk               axisConfig   `mapstructure:"jerk"`
	BlendMethod        string       `mapstructure:"blend_method"`
	MaxOverlapFraction float64      `mapstructure:"max_overlap_fraction"`
	Start              axisConfig   `mapstructure:"start"`
	Moves              []moveConfig `mapstructure:"moves"`
}

func loadScenario(path string) (scenarioConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("max_overlap_fraction", 0.28)

	var cfg scenarioConfig
	if err := v.ReadInConfig(); err != nil {
		return cfg, err
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func blendTypeFromString(s string) core.BlendType {
	switch s {
	case "MinJerk":
		return core.BlendMinJerk
	case "MaxJerk":
		return core.BlendMaxJerk
	default:
		return core.BlendNone
	}
}

func blendMethodFromString(s string) core.BlendMethod {
	switch s {
	case "ConstantJerkSegments":
		return core.BlendMethodConstantJerkSegments
	case "InterpolatedMoves":
		return core.BlendMethodInterpolatedMoves
	default:
		return core.BlendMethodNone
	}
}

// buildPlanner constructs a *planner.Planner from a scenario file, chaining
// moves from the configured starting point (spec.md §6 appendMove).
func buildPlanner(cfg scenarioConfig) (*planner.Planner, error) {
	p := planner.New(planner.WithMaxOverlapFraction(cfg.MaxOverlapFraction))
	p.SetPositionLimits(cfg.PosLower.X, cfg.PosLower.Y, cfg.PosLower.Z, cfg.PosUpper.X, cfg.PosUpper.Y, cfg.PosUpper.Z)
	p.SetVelocityLimits(cfg.Vel.X, cfg.Vel.Y, cfg.Vel.Z)
	p.SetAccelerationLimits(cfg.Acc.X, cfg.Acc.Y, cfg.Acc.Z)
	p.SetJerkLimits(cfg.Jerk.X, cfg.Jerk.Y, cfg.Jerk.Z)
	p.SetCornerBlendMethod(blendMethodFromString(cfg.BlendMethod))

	src := cfg.Start.vec()
	for _, mc := range cfg.Moves {
		m := core.NewMove(src, mc.Dst.vec(), mc.Vel, mc.Acc, mc.Jerk)
		m.BlendType = blendTypeFromString(mc.BlendType)
		m.BlendClearance = mc.BlendClearance
		m.Scaler = mc.Scaler
		if err := p.AppendMove(m); err != nil {
			return nil, err
		}
		src = mc.Dst.vec()
	}

	return p, nil
}
