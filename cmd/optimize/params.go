package main

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/starfield/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of streak shape parameters.
// Defaults are taken from cfg so a run starts from the loaded config.
func NewParamVector(cfg *config.Config) *ParamVector {
	s := cfg.Streak.FullShape
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "base_speed_min", Path: "streak.full_shape.base_speed_min", Min: 0.05, Max: 2.0, Default: s.BaseSpeedMin},
			{Name: "base_speed_max", Path: "streak.full_shape.base_speed_max", Min: 0.1, Max: 4.0, Default: s.BaseSpeedMax},
			{Name: "length_ramp", Path: "streak.full_shape.length_ramp", Min: 0.001, Max: 0.2, Default: s.LengthRamp},
			{Name: "max_length", Path: "streak.full_shape.max_length", Min: 5, Max: 120, Default: s.MaxLength},
			{Name: "bounds_multiplier", Path: "streak.bounds_multiplier", Min: 1, Max: 4, Default: cfg.Streak.BoundsMultiplier},
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
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	s := &cfg.Streak.FullShape
	s.BaseSpeedMin = clamped[0]
	s.BaseSpeedMax = max(clamped[1], clamped[0])
	s.LengthRamp = clamped[2]
	s.MaxLength = max(clamped[3], s.Length)
	cfg.Streak.BoundsMultiplier = clamped[4]
}

// Format renders values as name=value pairs in Specs order.
func (pv *ParamVector) Format(values []float64) string {
	parts := make([]string, len(pv.Specs))
	for i, spec := range pv.Specs {
		parts[i] = fmt.Sprintf("%s=%.6f", spec.Name, values[i])
	}
	return strings.Join(parts, " ")
}
