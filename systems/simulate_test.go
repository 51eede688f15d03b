package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/device"
)

func newStreakField(t *testing.T, seed int64, count int) (*Pool, *SpeedRamp, *Simulation, Bounds) {
	t.Helper()
	cfg := config.Cfg()
	b := testBounds()

	budget := device.BudgetFor(device.Full, cfg.Streak.Tiers, b.Width)
	ramp := NewSpeedRamp()
	ramp.Retune(budget.SpeedFloor, budget.SpeedCeiling, budget.SpeedRamp)

	pool := NewPool(NewSpawner(seed, cfg))
	pool.Regenerate(count, Streak, b)
	return pool, ramp, NewSimulation(seed, cfg.Stars), b
}

func TestMeteorsStayInBounds(t *testing.T) {
	cfg := config.Cfg()
	b := testBounds()
	pool := NewPool(NewSpawner(21, cfg))
	pool.Regenerate(40, Meteor, b)
	sim := NewSimulation(21, cfg.Stars)
	ramp := NewSpeedRamp()

	resets := 0
	for tick := 0; tick < 2000; tick++ {
		resets += sim.Step(pool, ramp, b, 1, float64(tick)/60).Resets

		pool.ForEach(func(p Particle) {
			if p.X > b.Width+b.Margin || p.Y > b.Height+b.Margin {
				t.Fatalf("tick %d: meteor persisted out of bounds at (%f, %f)", tick, p.X, p.Y)
			}
			if len(p.Trail) > p.MaxTrail {
				t.Fatalf("tick %d: trail length %d exceeds cap %d", tick, len(p.Trail), p.MaxTrail)
			}
		})
	}

	if resets == 0 {
		t.Error("expected meteors to cross the field and respawn within 2000 ticks")
	}
}

func TestMeteorTrailNewestFirst(t *testing.T) {
	cfg := config.Cfg()
	b := testBounds()
	pool := NewPool(NewSpawner(2, cfg))
	pool.Regenerate(1, Meteor, b)
	sim := NewSimulation(2, cfg.Stars)

	sim.Step(pool, NewSpeedRamp(), b, 3, 0)

	pool.ForEach(func(p Particle) {
		if len(p.Trail) == 0 {
			t.Fatal("expected trail history after 3 ticks")
		}
		if p.Trail[0].X != p.X || p.Trail[0].Y != p.Y {
			t.Errorf("expected newest trail point at current position, got (%f, %f) vs (%f, %f)",
				p.Trail[0].X, p.Trail[0].Y, p.X, p.Y)
		}
		if len(p.Trail) > 1 && p.Trail[1].Y >= p.Trail[0].Y {
			t.Errorf("expected older points above newer ones for a falling meteor")
		}
	})
}

func TestStreaksStayWithinRadius(t *testing.T) {
	pool, ramp, sim, b := newStreakField(t, 5, 80)
	limit := b.StreakLimit()

	for tick := 0; tick < 1500; tick++ {
		sim.Step(pool, ramp, b, 1, 0)
		pool.ForEach(func(p Particle) {
			if math.Hypot(p.X, p.Y) > limit {
				t.Fatalf("tick %d: streak beyond reset radius %f at (%f, %f)", tick, limit, p.X, p.Y)
			}
		})
	}
}

func TestStreakDisplacementIsSuperLinear(t *testing.T) {
	pool, ramp, sim, b := newStreakField(t, 8, 1)

	// Freeze the ramp so only the growing length accelerates the streak
	ramp.Retune(1, 1, 0)
	b.BoundsMultiplier = 100

	var dists []float64
	for i := 0; i < 20; i++ {
		sim.Step(pool, ramp, b, 1, 0)
		pool.ForEach(func(p Particle) { dists = append(dists, math.Hypot(p.X, p.Y)) })
	}

	first := dists[1] - dists[0]
	last := dists[19] - dists[18]
	if last <= first {
		t.Errorf("expected per-tick displacement to grow, first=%f last=%f", first, last)
	}
}

func TestStepTicksParameter(t *testing.T) {
	pool, ramp, sim, b := newStreakField(t, 13, 10)
	before := ramp.Value()

	stats := sim.Step(pool, ramp, b, 5, 0)
	if stats.Ticks != 5 {
		t.Errorf("expected 5 ticks, got %d", stats.Ticks)
	}
	want := before + 5*config.Cfg().Streak.Tiers.Full.SpeedRamp
	if math.Abs(ramp.Value()-want) > 1e-9 {
		t.Errorf("expected ramp %f after 5 ticks, got %f", want, ramp.Value())
	}

	if s := sim.Step(pool, ramp, b, 0, 0); s.Ticks != 1 {
		t.Errorf("expected non-positive ticks to run one tick, got %d", s.Ticks)
	}
}

// Full tier, 120 particles, 500 seeded ticks: positions stay finite and the
// number of respawns stays within what the speed and length ranges allow.
func TestFullTierSmoke(t *testing.T) {
	pool, ramp, sim, b := newStreakField(t, 2024, 120)

	resets := 0
	for tick := 0; tick < 500; tick++ {
		resets += sim.Step(pool, ramp, b, 1, float64(tick)/60).Resets
		pool.ForEach(func(p Particle) {
			if !finite(p.X, p.Y) || math.IsNaN(p.Length) || math.IsNaN(p.Size) {
				t.Fatalf("tick %d: non-finite particle state %+v", tick, p)
			}
		})
	}

	// The slowest streak needs a bit over 300 ticks to leave a 1280x720 field
	// and the fastest well over 100 per crossing after ramp-up.
	if resets < 120 {
		t.Errorf("expected every streak to respawn at least once, got %d resets", resets)
	}
	if resets > 120*10 {
		t.Errorf("too many resets for configured speeds: %d", resets)
	}
	if ramp.Value() > ramp.Ceiling() {
		t.Errorf("ramp %f exceeded ceiling %f", ramp.Value(), ramp.Ceiling())
	}
}

func TestNaNPositionIsReset(t *testing.T) {
	pool, ramp, sim, b := newStreakField(t, 3, 1)

	query := pool.streakFilter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		pos.X = math.NaN()
	}

	stats := sim.Step(pool, ramp, b, 1, 0)
	if stats.Resets != 1 {
		t.Errorf("expected NaN streak to be reset, got %d resets", stats.Resets)
	}
	pool.ForEach(func(p Particle) {
		if !finite(p.X, p.Y) {
			t.Errorf("expected finite position after reset, got (%f, %f)", p.X, p.Y)
		}
	})
}

func TestStarTwinkleInRange(t *testing.T) {
	cfg := config.Cfg()
	b := testBounds()
	pool := NewPool(NewSpawner(17, cfg))
	pool.RegenerateStars(50, b)
	pool.Regenerate(2, Meteor, b)
	sim := NewSimulation(17, cfg.Stars)

	changed := false
	var first []float64
	for step := 0; step < 30; step++ {
		sim.Step(pool, NewSpeedRamp(), b, 1, float64(step)*0.25)
		i := 0
		pool.ForEachStar(func(s Star) {
			if s.Glow < 0 || s.Glow > 1 {
				t.Fatalf("glow %f outside [0, 1]", s.Glow)
			}
			if step == 0 {
				first = append(first, s.Glow)
			} else if s.Glow != first[i] {
				changed = true
			}
			i++
		})
	}
	if !changed {
		t.Error("expected star glow to vary over time")
	}
}

func TestEmptyPoolStep(t *testing.T) {
	cfg := config.Cfg()
	pool := NewPool(NewSpawner(1, cfg))
	sim := NewSimulation(1, cfg.Stars)

	stats := sim.Step(pool, NewSpeedRamp(), Bounds{}, 1, 0)
	if stats.Resets != 0 || pool.Len() != 0 {
		t.Errorf("expected nothing to happen on an empty pool, got %+v", stats)
	}
}
