package systems

import (
	"math"
	"testing"
)

func TestSpeedRampMonotonicAndCapped(t *testing.T) {
	r := NewSpeedRamp()
	r.Retune(0.05, 1.2, 0.002)

	if r.Value() != 0.05 {
		t.Fatalf("expected first retune to start at floor 0.05, got %f", r.Value())
	}

	prev := r.Value()
	for i := 0; i < 2000; i++ {
		r.Advance()
		if r.Value() < prev {
			t.Fatalf("ramp decreased from %f to %f", prev, r.Value())
		}
		if r.Value() > 1.2 {
			t.Fatalf("ramp %f exceeded ceiling", r.Value())
		}
		prev = r.Value()
	}
	if math.Abs(r.Value()-1.2) > 1e-12 {
		t.Errorf("expected ramp to reach the ceiling, got %f", r.Value())
	}
}

func TestSpeedRampSurvivesRetune(t *testing.T) {
	r := NewSpeedRamp()
	r.Retune(0.05, 1.2, 0.002)
	for i := 0; i < 100; i++ {
		r.Advance()
	}
	v := r.Value()

	// A floor below the current value leaves it untouched
	r.Retune(0.15, 1.5, 0.003)
	if r.Value() != v {
		t.Errorf("expected value %f kept when above the new floor, got %f", v, r.Value())
	}

	r.Retune(0.5, 1.5, 0.003)
	if r.Value() != 0.5 {
		t.Errorf("expected value raised to floor 0.5, got %f", r.Value())
	}

	// A lower ceiling never pulls the value down
	for i := 0; i < 1000; i++ {
		r.Advance()
	}
	r.Retune(0.05, 1.2, 0.002)
	if r.Value() != 1.5 {
		t.Errorf("expected value 1.5 kept after lowering ceiling, got %f", r.Value())
	}
	r.Advance()
	if r.Value() != 1.5 {
		t.Errorf("expected no growth above ceiling, got %f", r.Value())
	}
}

func TestUntunedRampIsOne(t *testing.T) {
	r := NewSpeedRamp()
	r.Advance()
	if r.Value() != 1 {
		t.Errorf("expected untuned multiplier 1, got %f", r.Value())
	}
}
