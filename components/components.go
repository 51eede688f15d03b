// Package components defines ECS components for the particle field.
package components

// Point is a 2D position sample.
type Point struct {
	X, Y float64
}

// Position represents a particle's position.
// Meteors are viewport-relative; streaks are relative to the field center.
type Position struct {
	X, Y float64
}

// Motion holds a particle's polar velocity.
type Motion struct {
	Angle float64 // Heading in radians
	Speed float64 // Base speed, scaled by the global speed ramp

	// Streak trail length; grows by LengthRamp per tick up to MaxLength.
	// Streak displacement is scaled by Length, so it accelerates over its lifetime.
	Length     float64
	MaxLength  float64
	LengthRamp float64
}

// Body holds a particle's visual size.
type Body struct {
	Size   float64
	Growth float64 // Added to Size every tick
}

// Trail holds recent positions for fading-tail rendering, newest first.
type Trail struct {
	Points []Point
	Max    int
}

// Push inserts p at the front and evicts the oldest point beyond Max.
func (t *Trail) Push(p Point) {
	if t.Max <= 0 {
		t.Points = t.Points[:0]
		return
	}
	if len(t.Points) < t.Max {
		t.Points = append(t.Points, Point{})
	}
	copy(t.Points[1:], t.Points[:len(t.Points)-1])
	t.Points[0] = p
}

// Reset clears the history and sets a new cap.
func (t *Trail) Reset(max int) {
	t.Max = max
	if cap(t.Points) < max {
		t.Points = make([]Point, 0, max)
	} else {
		t.Points = t.Points[:0]
	}
}

// Twinkle holds a background star's appearance.
type Twinkle struct {
	Size float64
	Glow float64 // Brightness in [0, 1]
}
