package main

import (
	"testing"

	"github.com/pthm-cable/starfield/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector(config.Defaults())
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if d := back[i] - raw[i]; d > 1e-9 || d < -1e-9 {
			t.Errorf("%s: got %f, want %f", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestApplyToConfigKeepsRangesOrdered(t *testing.T) {
	cfg := config.Defaults()
	pv := NewParamVector(cfg)
	pv.ApplyToConfig(cfg, []float64{1.5, 0.2, 0.05, 1, 9})

	s := cfg.Streak.FullShape
	if s.BaseSpeedMax < s.BaseSpeedMin {
		t.Errorf("speed range inverted: [%f, %f]", s.BaseSpeedMin, s.BaseSpeedMax)
	}
	if s.MaxLength < s.Length {
		t.Errorf("max length %f below start length %f", s.MaxLength, s.Length)
	}
	if cfg.Streak.BoundsMultiplier != 4 {
		t.Errorf("expected bounds multiplier clamped to 4, got %f", cfg.Streak.BoundsMultiplier)
	}
}

func TestEvaluateReportsLifetime(t *testing.T) {
	cfg := config.Defaults()
	pv := NewParamVector(cfg)
	fe := NewFitnessEvaluator(pv, 600, []int64{7}, cfg, 2.5)

	fitness := fe.Evaluate(pv.DefaultVector())
	if fitness < 0 {
		t.Errorf("fitness should be non-negative, got %f", fitness)
	}
	if lt := fe.LastLifetime(); lt <= 0 {
		t.Errorf("expected positive lifetime, got %f", lt)
	}
}
