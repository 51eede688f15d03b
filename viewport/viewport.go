// Package viewport tracks the logical size of a drawing surface and applies
// resize and orientation changes once the platform has settled.
package viewport

import (
	"errors"
	"math"
	"sync"
	"time"
)

// ErrNoSurface is returned when a tracker is built without a drawing surface.
var ErrNoSurface = errors.New("viewport: no drawing surface")

// Surface is the host-provided drawing surface.
type Surface interface {
	// LogicalSize returns the size in device-independent pixels.
	LogicalSize() (w, h float64)
	// PixelRatio returns device pixels per logical pixel.
	PixelRatio() float64
	// SetBufferSize sets the backing pixel buffer size in device pixels.
	SetBufferSize(w, h int)
	// SetTransform scales drawing so callers keep using logical pixels.
	SetTransform(scale float64)
}

// Tracker observes a Surface and notifies listeners of settled size changes.
type Tracker struct {
	surface Surface
	settle  time.Duration

	mu       sync.Mutex
	pending  bool
	deadline time.Time

	width, height float64
	ratio         float64
	listeners     []func(w, h float64)
}

// New creates a tracker and applies the surface's current size.
func New(surface Surface, settle time.Duration) (*Tracker, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if settle < 0 {
		settle = 0
	}
	t := &Tracker{surface: surface, settle: settle}
	t.apply()
	return t, nil
}

// Size returns the current logical size.
func (t *Tracker) Size() (w, h float64) {
	return t.width, t.height
}

// PixelRatio returns the ratio applied on the last change.
func (t *Tracker) PixelRatio() float64 {
	return t.ratio
}

// Center returns the logical center of the surface.
func (t *Tracker) Center() (cx, cy float64) {
	return t.width / 2, t.height / 2
}

// OnChange registers a listener for settled size changes.
func (t *Tracker) OnChange(fn func(w, h float64)) {
	t.listeners = append(t.listeners, fn)
}

// Notify records a resize or orientation signal. It may be called from any
// goroutine; repeated signals push the deadline back.
func (t *Tracker) Notify(now time.Time) {
	t.mu.Lock()
	t.pending = true
	t.deadline = now.Add(t.settle)
	t.mu.Unlock()
}

// Pending reports whether a change is waiting to settle.
func (t *Tracker) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Poll applies a settled change and fires listeners. It returns true when
// a change was applied. Call it from the frame loop.
func (t *Tracker) Poll(now time.Time) bool {
	t.mu.Lock()
	due := t.pending && !now.Before(t.deadline)
	if due {
		t.pending = false
	}
	t.mu.Unlock()

	if !due {
		return false
	}

	t.apply()
	for _, fn := range t.listeners {
		fn(t.width, t.height)
	}
	return true
}

// apply reads the surface and sizes its buffer for the pixel ratio.
func (t *Tracker) apply() {
	w, h := t.surface.LogicalSize()
	w = math.Max(w, 0)
	h = math.Max(h, 0)

	ratio := t.surface.PixelRatio()
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = 1
	}

	t.surface.SetBufferSize(int(math.Ceil(w*ratio)), int(math.Ceil(h*ratio)))
	t.surface.SetTransform(ratio)

	t.width, t.height, t.ratio = w, h, ratio
}
