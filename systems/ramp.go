package systems

// SpeedRamp is the field-wide speed multiplier. It survives pool rebuilds
// and never decreases; it grows by a fixed step per simulation tick until it
// reaches the ceiling.
type SpeedRamp struct {
	value   float64
	ceiling float64
	step    float64
	tuned   bool
}

// NewSpeedRamp creates an untuned ramp with a multiplier of 1.
func NewSpeedRamp() *SpeedRamp {
	return &SpeedRamp{value: 1, ceiling: 1}
}

// Retune applies a new tier's floor, ceiling and step. The first call sets
// the value to the floor; later calls only raise it to a higher floor.
func (r *SpeedRamp) Retune(floor, ceiling, step float64) {
	if ceiling < floor {
		ceiling = floor
	}
	if step < 0 {
		step = 0
	}
	if !r.tuned {
		r.value = floor
		r.tuned = true
	} else if r.value < floor {
		r.value = floor
	}
	r.ceiling = ceiling
	r.step = step
}

// Advance grows the multiplier by one step, capped at the ceiling.
// A value already above a lowered ceiling is kept as is.
func (r *SpeedRamp) Advance() {
	if r.value >= r.ceiling {
		return
	}
	r.value = min(r.value+r.step, r.ceiling)
}

// Value returns the current multiplier.
func (r *SpeedRamp) Value() float64 {
	return r.value
}

// Ceiling returns the current cap.
func (r *SpeedRamp) Ceiling() float64 {
	return r.ceiling
}
