package main

import (
	"github.com/lizTheDeveloper/ai-village-sub004/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters: the need
// decay rates and the recovery strengths that balance them.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "hunger_decay", Min: 0.1, Max: 1.5, Default: 0.35},
			{Name: "fatigue_decay", Min: 0.05, Max: 1.0, Default: 0.25},
			{Name: "social_decay", Min: 0.02, Max: 0.6, Default: 0.15},
			{Name: "eat_restores_hunger", Min: 10, Max: 60, Default: 30},
			{Name: "sleep_recovery_rate", Min: 2, Max: 20, Default: 8},
			{Name: "gather_amount", Min: 1, Max: 8, Default: 3},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes parameter values into a Config. Order must match Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Needs.HungerDecay = clamped[0]
	cfg.Needs.FatigueDecay = clamped[1]
	cfg.Needs.SocialDecay = clamped[2]
	cfg.Behavior.EatRestoresHunger = clamped[3]
	cfg.Behavior.SleepRecoveryRate = clamped[4]
	cfg.Behavior.GatherAmount = int(clamped[5])
}
