// Package systems provides the particle pool and the per-frame simulation
// shared by the meteor and streak effects.
package systems

import (
	"fmt"
	"math"
)

// Variant selects the particle behavior of a pool.
type Variant uint8

const (
	Meteor Variant = iota // Falling meteor with a fading trail
	Streak                // Warp streak radiating from the center
)

// String returns the variant name.
func (v Variant) String() string {
	if v == Streak {
		return "streak"
	}
	return "meteor"
}

// Effect returns the user-facing effect name drawn by this variant.
func (v Variant) Effect() string {
	if v == Streak {
		return "warp"
	}
	return "space"
}

// ParseEffect maps an effect name ("space" or "warp") to its variant.
func ParseEffect(name string) (Variant, error) {
	switch name {
	case "space", "meteor":
		return Meteor, nil
	case "warp", "streak":
		return Streak, nil
	default:
		return Meteor, fmt.Errorf("unknown effect %q", name)
	}
}

// Bounds describes the field area used for spawning and bounds checks.
type Bounds struct {
	Width, Height float64

	Margin           float64 // Meteor: reset past width/height + margin
	SpawnY           float64 // Meteor: respawn height
	BoundsMultiplier float64 // Streak: reset radius = max(cx, cy) * multiplier
}

// Center returns the field center.
func (b Bounds) Center() (cx, cy float64) {
	return b.Width / 2, b.Height / 2
}

// StreakLimit returns the radial distance from the center past which a
// streak is reset.
func (b Bounds) StreakLimit() float64 {
	cx, cy := b.Center()
	return math.Max(cx, cy) * b.BoundsMultiplier
}

// MeteorInBounds reports whether a meteor position is inside the field
// extended by the margin.
func (b Bounds) MeteorInBounds(x, y float64) bool {
	if !finite(x, y) {
		return false
	}
	return x >= -b.Margin && x <= b.Width+b.Margin &&
		y >= b.SpawnY-b.Margin && y <= b.Height+b.Margin
}

// StreakInBounds reports whether a center-relative streak position is within
// the reset radius.
func (b Bounds) StreakInBounds(x, y float64) bool {
	if !finite(x, y) {
		return false
	}
	return math.Hypot(x, y) <= b.StreakLimit()
}
