package telemetry

import "time"

// Collector accumulates frame events within step windows and produces
// WindowStats.
type Collector struct {
	windowSteps int
	windowStart uint64

	frames        int
	steps         int
	resets        int
	regenerations int

	lastStep  time.Time
	intervals []float64 // ms between consecutive steps
}

// NewCollector creates a collector that flushes every windowSteps executed
// steps.
func NewCollector(windowSteps int) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{
		windowSteps: windowSteps,
		intervals:   make([]float64, 0, windowSteps),
	}
}

// RecordFrame records a display refresh, whether or not it stepped.
func (c *Collector) RecordFrame() {
	c.frames++
}

// RecordStep records an executed step at now and the particles it reset.
func (c *Collector) RecordStep(now time.Time, resets int) {
	if !c.lastStep.IsZero() {
		c.intervals = append(c.intervals, float64(now.Sub(c.lastStep))/float64(time.Millisecond))
	}
	c.lastStep = now
	c.steps++
	c.resets += resets
}

// RecordRegeneration records a wholesale pool rebuild.
func (c *Collector) RecordRegeneration() {
	c.regenerations++
}

// RestartPacing forgets the last step time so a hidden period is not counted
// as one long interval.
func (c *Collector) RestartPacing() {
	c.lastStep = time.Time{}
}

// ShouldFlush returns true once the window holds enough steps.
func (c *Collector) ShouldFlush() bool {
	return c.steps >= c.windowSteps
}

// FieldState is the field snapshot taken at window end.
type FieldState struct {
	TotalSteps uint64
	Particles  int
	Stars      int
	Tier       string
	Speed      float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(state FieldState) WindowStats {
	mean, std, p50, p90 := ComputeIntervalStats(c.intervals)

	stats := WindowStats{
		WindowStart:   c.windowStart,
		WindowEnd:     state.TotalSteps,
		Frames:        c.frames,
		Steps:         c.steps,
		Resets:        c.resets,
		Regenerations: c.regenerations,
		Particles:     state.Particles,
		Stars:         state.Stars,
		Tier:          state.Tier,
		Speed:         state.Speed,
		StepMeanMs:    mean,
		StepStdMs:     std,
		StepP50Ms:     p50,
		StepP90Ms:     p90,
	}

	c.windowStart = state.TotalSteps
	c.frames = 0
	c.steps = 0
	c.resets = 0
	c.regenerations = 0
	c.intervals = c.intervals[:0]

	return stats
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() int {
	return c.windowSteps
}
