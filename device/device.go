// Package device classifies the host into a tier that sets the particle
// and speed budget of a field.
package device

import (
	"math"
	"time"

	"github.com/pthm-cable/starfield/config"
)

// Tier is a discrete device/viewport class.
type Tier uint8

const (
	Full Tier = iota
	CompactPortrait
	CompactLandscape
)

// String returns the tier name used in logs and telemetry.
func (t Tier) String() string {
	switch t {
	case CompactPortrait:
		return "compact_portrait"
	case CompactLandscape:
		return "compact_landscape"
	default:
		return "full"
	}
}

// Compact reports whether the tier belongs to a constrained touch device.
func (t Tier) Compact() bool {
	return t == CompactPortrait || t == CompactLandscape
}

// Signals provides the host capabilities the classifier consumes.
// Hosts implement it instead of the core sniffing user agents or media queries.
type Signals interface {
	CoarsePointer() bool
	Portrait() bool
}

// Classify maps the viewport and pointer signals to a tier.
// viewportWidth does not affect the tier itself; it scales the full tier's
// budget in BudgetFor.
func Classify(viewportWidth float64, coarsePointer, portrait bool) Tier {
	switch {
	case coarsePointer && portrait:
		return CompactPortrait
	case coarsePointer:
		return CompactLandscape
	default:
		return Full
	}
}

// Budget is the field configuration derived from one classification.
// It stays fixed until the next reclassification.
type Budget struct {
	Tier          Tier
	Particles     int
	Stars         int
	SpeedFloor    float64
	SpeedCeiling  float64
	SpeedRamp     float64
	FrameInterval time.Duration
}

// TierConfig returns the table row for a tier.
func TierConfig(tier Tier, table config.TierTable) config.TierConfig {
	switch tier {
	case CompactPortrait:
		return table.CompactPortrait
	case CompactLandscape:
		return table.CompactLandscape
	default:
		return table.Full
	}
}

// BudgetFor derives the budget of a tier at the given viewport width.
// The full tier's particle count grows with width when WidthPerParticle is
// set; compact tiers never exceed the full tier's counts.
func BudgetFor(tier Tier, table config.TierTable, width float64) Budget {
	full := fullBudget(table.Full, width)
	if !tier.Compact() {
		return full
	}

	tc := TierConfig(tier, table)
	b := budgetOf(tc)
	b.Tier = tier
	b.Particles = min(b.Particles, full.Particles)
	b.Stars = min(b.Stars, full.Stars)
	return b
}

func fullBudget(tc config.TierConfig, width float64) Budget {
	b := budgetOf(tc)
	b.Tier = Full
	if tc.WidthPerParticle > 0 && width > 0 {
		scaled := int(math.Floor(width / tc.WidthPerParticle))
		b.Particles = max(b.Particles, scaled)
	}
	return b
}

func budgetOf(tc config.TierConfig) Budget {
	fps := tc.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	ceiling := tc.SpeedCeiling
	if ceiling < tc.SpeedFloor {
		ceiling = tc.SpeedFloor
	}
	return Budget{
		Particles:     max(tc.Particles, 0),
		Stars:         max(tc.Stars, 0),
		SpeedFloor:    tc.SpeedFloor,
		SpeedCeiling:  ceiling,
		SpeedRamp:     math.Max(tc.SpeedRamp, 0),
		FrameInterval: time.Second / time.Duration(fps),
	}
}
