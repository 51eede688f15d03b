package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/starfield/components"
	"github.com/pthm-cable/starfield/config"
)

// Spawner assigns fresh spawn state to particles and stars.
// All randomness flows through one seeded source so pools are reproducible.
type Spawner struct {
	rng     *rand.Rand
	meteor  config.MeteorConfig
	stars   config.StarsConfig
	compact config.StreakShape
	full    config.StreakShape

	useCompact bool
}

// NewSpawner creates a spawner with its own seeded random source.
func NewSpawner(seed int64, cfg *config.Config) *Spawner {
	return NewSpawnerWithRand(rand.New(rand.NewSource(seed)), cfg)
}

// NewSpawnerWithRand creates a spawner over an existing random source.
func NewSpawnerWithRand(rng *rand.Rand, cfg *config.Config) *Spawner {
	return &Spawner{
		rng:     rng,
		meteor:  cfg.Meteor,
		stars:   cfg.Stars,
		compact: cfg.Streak.CompactShape,
		full:    cfg.Streak.FullShape,
	}
}

// SetCompact selects the compact streak shape for subsequent spawns.
func (s *Spawner) SetCompact(compact bool) {
	s.useCompact = compact
}

// StreakShape returns the shape used for new streaks.
func (s *Spawner) StreakShape() config.StreakShape {
	if s.useCompact {
		return s.compact
	}
	return s.full
}

// uniform returns a value in [lo, hi).
func (s *Spawner) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Meteor places a meteor at a random x just above the top edge, or anywhere
// in the field when initial is set (first-frame population).
func (s *Spawner) Meteor(pos *components.Position, mot *components.Motion, body *components.Body, trail *components.Trail, b Bounds, initial bool) {
	m := &s.meteor

	pos.X = s.rng.Float64() * b.Width
	if initial {
		pos.Y = s.rng.Float64() * b.Height
	} else {
		pos.Y = m.SpawnY
	}

	body.Size = s.uniform(m.SizeMin, m.SizeMax)
	body.Growth = 0

	mot.Speed = s.uniform(m.SpeedMin, m.SpeedMax)
	mot.Angle = math.Pi / s.uniform(m.AngleDivisorMin, m.AngleDivisorMax)
	mot.Length = 1
	mot.MaxLength = 1
	mot.LengthRamp = 0

	maxTrail := m.TrailMin
	if span := m.TrailMax - m.TrailMin; span > 0 {
		maxTrail += s.rng.Intn(span)
	}
	trail.Reset(maxTrail)
}

// Streak places a streak at the field center with a random heading.
func (s *Spawner) Streak(pos *components.Position, mot *components.Motion, body *components.Body) {
	shape := s.StreakShape()

	pos.X, pos.Y = 0, 0

	body.Size = shape.Size
	body.Growth = shape.SizeGrowth

	mot.Length = shape.Length
	mot.MaxLength = shape.MaxLength
	mot.LengthRamp = shape.LengthRamp
	mot.Speed = s.uniform(shape.BaseSpeedMin, shape.BaseSpeedMax)
	mot.Angle = s.rng.Float64() * 2 * math.Pi
}

// Star places a background star anywhere in the field.
func (s *Spawner) Star(pos *components.Position, tw *components.Twinkle, b Bounds) {
	pos.X = s.rng.Float64() * b.Width
	pos.Y = s.rng.Float64() * b.Height

	size := max(s.stars.SizeMin, 1)
	if span := s.stars.SizeMax - size; span > 0 {
		size += s.rng.Intn(span + 1)
	}
	tw.Size = float64(size)
	tw.Glow = s.rng.Float64()*0.5 + 0.5
}
