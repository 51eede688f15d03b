package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/starfield/components"
)

// Particle is a read-only view of one particle, handed to renderers.
type Particle struct {
	Variant  Variant
	X, Y     float64
	Angle    float64
	Speed    float64
	Length   float64
	Size     float64
	Trail    []components.Point // Newest first; meteors only
	MaxTrail int
}

// Star is a read-only view of one background star.
type Star struct {
	X, Y float64
	Size float64
	Glow float64
}

// Pool owns the live particles and stars of a field.
// Particles are pooled: the simulation resets them in place, and only
// Regenerate creates or destroys them.
type Pool struct {
	world   *ecs.World
	spawner *Spawner
	variant Variant

	meteorMap    *ecs.Map4[components.Position, components.Motion, components.Body, components.Trail]
	meteorFilter *ecs.Filter4[components.Position, components.Motion, components.Body, components.Trail]

	// Matches meteors too; a pool only ever holds one variant at a time.
	streakMap    *ecs.Map3[components.Position, components.Motion, components.Body]
	streakFilter *ecs.Filter3[components.Position, components.Motion, components.Body]

	starMap    *ecs.Map2[components.Position, components.Twinkle]
	starFilter *ecs.Filter2[components.Position, components.Twinkle]

	particles []ecs.Entity
	stars     []ecs.Entity
}

// NewPool creates an empty pool that spawns through the given spawner.
func NewPool(spawner *Spawner) *Pool {
	world := ecs.NewWorld()

	return &Pool{
		world:   world,
		spawner: spawner,
		meteorMap: ecs.NewMap4[
			components.Position,
			components.Motion,
			components.Body,
			components.Trail,
		](world),
		meteorFilter: ecs.NewFilter4[
			components.Position,
			components.Motion,
			components.Body,
			components.Trail,
		](world),
		streakMap: ecs.NewMap3[
			components.Position,
			components.Motion,
			components.Body,
		](world),
		streakFilter: ecs.NewFilter3[
			components.Position,
			components.Motion,
			components.Body,
		](world),
		starMap:    ecs.NewMap2[components.Position, components.Twinkle](world),
		starFilter: ecs.NewFilter2[components.Position, components.Twinkle](world),
	}
}

// Spawner returns the pool's spawner.
func (p *Pool) Spawner() *Spawner {
	return p.spawner
}

// Variant returns the variant of the live particles.
func (p *Pool) Variant() Variant {
	return p.variant
}

// Len returns the number of live particles.
func (p *Pool) Len() int {
	return len(p.particles)
}

// StarLen returns the number of background stars.
func (p *Pool) StarLen() int {
	return len(p.stars)
}

// Regenerate replaces the entire particle set with count particles of the
// given variant. Meteors are populated across the whole field.
// A non-positive count leaves the pool empty.
func (p *Pool) Regenerate(count int, variant Variant, b Bounds) {
	for _, e := range p.particles {
		p.world.RemoveEntity(e)
	}
	p.particles = p.particles[:0]
	p.variant = variant

	for i := 0; i < count; i++ {
		var (
			pos  components.Position
			mot  components.Motion
			body components.Body
		)

		var e ecs.Entity
		switch variant {
		case Meteor:
			var trail components.Trail
			p.spawner.Meteor(&pos, &mot, &body, &trail, b, true)
			e = p.meteorMap.NewEntity(&pos, &mot, &body, &trail)
		default:
			p.spawner.Streak(&pos, &mot, &body)
			e = p.streakMap.NewEntity(&pos, &mot, &body)
		}
		p.particles = append(p.particles, e)
	}
}

// RegenerateStars replaces the background stars.
func (p *Pool) RegenerateStars(count int, b Bounds) {
	for _, e := range p.stars {
		p.world.RemoveEntity(e)
	}
	p.stars = p.stars[:0]

	for i := 0; i < count; i++ {
		var (
			pos components.Position
			tw  components.Twinkle
		)
		p.spawner.Star(&pos, &tw, b)
		p.stars = append(p.stars, p.starMap.NewEntity(&pos, &tw))
	}
}

// ForEach calls fn for every particle in insertion order.
func (p *Pool) ForEach(fn func(Particle)) {
	if p.variant == Meteor {
		query := p.meteorFilter.Query()
		for query.Next() {
			pos, mot, body, trail := query.Get()
			fn(Particle{
				Variant:  Meteor,
				X:        pos.X,
				Y:        pos.Y,
				Angle:    mot.Angle,
				Speed:    mot.Speed,
				Length:   mot.Length,
				Size:     body.Size,
				Trail:    trail.Points,
				MaxTrail: trail.Max,
			})
		}
		return
	}

	query := p.streakFilter.Query()
	for query.Next() {
		pos, mot, body := query.Get()
		fn(Particle{
			Variant: Streak,
			X:       pos.X,
			Y:       pos.Y,
			Angle:   mot.Angle,
			Speed:   mot.Speed,
			Length:  mot.Length,
			Size:    body.Size,
		})
	}
}

// ForEachStar calls fn for every background star in insertion order.
func (p *Pool) ForEachStar(fn func(Star)) {
	query := p.starFilter.Query()
	for query.Next() {
		pos, tw := query.Get()
		fn(Star{X: pos.X, Y: pos.Y, Size: tw.Size, Glow: tw.Glow})
	}
}
