package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/starfield/components"
	"github.com/pthm-cable/starfield/config"
)

// StepStats reports what one Step did.
type StepStats struct {
	Ticks  int
	Resets int // Particles respawned after leaving the field
}

// Simulation advances particle kinematics. It is the only code that mutates
// particle state after spawning.
type Simulation struct {
	noise       opensimplex.Noise
	twinkleRate float64
	noiseScale  float64
}

// NewSimulation creates a simulation whose star twinkle is driven by a
// seeded OpenSimplex field.
func NewSimulation(seed int64, stars config.StarsConfig) *Simulation {
	return &Simulation{
		noise:       opensimplex.New(seed),
		twinkleRate: stars.TwinkleRate,
		noiseScale:  stars.NoiseScale,
	}
}

// Step advances every particle by ticks simulation ticks (at least one).
// t is the field time in seconds, used for star twinkle.
// Any particle that leaves the field is respawned within the same tick.
func (s *Simulation) Step(pool *Pool, ramp *SpeedRamp, b Bounds, ticks int, t float64) StepStats {
	if ticks < 1 {
		ticks = 1
	}

	stats := StepStats{Ticks: ticks}
	for i := 0; i < ticks; i++ {
		ramp.Advance()
		switch pool.variant {
		case Meteor:
			stats.Resets += s.stepMeteors(pool, ramp.Value(), b)
		default:
			stats.Resets += s.stepStreaks(pool, ramp.Value(), b)
		}
	}

	s.twinkle(pool, t)
	return stats
}

func (s *Simulation) stepMeteors(pool *Pool, mult float64, b Bounds) int {
	resets := 0
	query := pool.meteorFilter.Query()
	for query.Next() {
		pos, mot, body, trail := query.Get()

		speed := mot.Speed * mult
		pos.X += math.Cos(mot.Angle) * speed
		pos.Y += math.Sin(mot.Angle) * speed
		body.Size += body.Growth

		// History is recorded before the bounds check; a reset clears it
		trail.Push(components.Point{X: pos.X, Y: pos.Y})

		if !b.MeteorInBounds(pos.X, pos.Y) {
			pool.spawner.Meteor(pos, mot, body, trail, b, false)
			resets++
		}
	}
	return resets
}

func (s *Simulation) stepStreaks(pool *Pool, mult float64, b Bounds) int {
	resets := 0
	query := pool.streakFilter.Query()
	for query.Next() {
		pos, mot, body := query.Get()

		body.Size += body.Growth
		if mot.Length < mot.MaxLength {
			mot.Length = min(mot.Length+mot.LengthRamp, mot.MaxLength)
		}

		speed := mot.Speed * mult
		pos.X += math.Cos(mot.Angle) * speed * mot.Length
		pos.Y += math.Sin(mot.Angle) * speed * mot.Length

		if !b.StreakInBounds(pos.X, pos.Y) {
			pool.spawner.Streak(pos, mot, body)
			resets++
		}
	}
	return resets
}

// twinkle samples the noise field at each star's position over time.
func (s *Simulation) twinkle(pool *Pool, t float64) {
	query := pool.starFilter.Query()
	for query.Next() {
		pos, tw := query.Get()
		v := s.noise.Eval3(pos.X*s.noiseScale, pos.Y*s.noiseScale, t*s.twinkleRate)
		tw.Glow = clamp01(0.5 + 0.5*v)
	}
}
