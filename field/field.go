// Package field runs an animated particle field: it tracks the viewport,
// classifies the device, owns the particle pool and drives the
// simulate-then-render step under the frame scheduler.
package field

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/starfield/clock"
	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/device"
	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/scheduler"
	"github.com/pthm-cable/starfield/systems"
	"github.com/pthm-cable/starfield/telemetry"
	"github.com/pthm-cable/starfield/viewport"
)

// Options configures a Field. Canvas and Surface are required.
type Options struct {
	Effect  systems.Variant
	Canvas  renderer.Canvas
	Surface viewport.Surface

	// Signals reports pointer and orientation capabilities. Defaults to a
	// fine-pointer device whose orientation follows the viewport.
	Signals device.Signals

	Config *config.Config // Defaults to config.Cfg()
	Seed   int64
	Logger *slog.Logger // Defaults to slog.Default()
	Clock  clock.Clock  // Defaults to the system clock

	// OnWindow receives each completed telemetry window.
	OnWindow func(telemetry.WindowStats, telemetry.PerfStats)
}

// Field is one running particle animation bound to a canvas.
type Field struct {
	effect  systems.Variant
	canvas  renderer.Canvas
	signals device.Signals
	cfg     *config.Config
	logger  *slog.Logger
	start   time.Time

	tracker *viewport.Tracker
	sched   *scheduler.Scheduler
	pool    *systems.Pool
	sim     *systems.Simulation
	ramp    *systems.SpeedRamp

	budget device.Budget
	bounds systems.Bounds
	view   renderer.View

	regen atomic.Bool

	steps     uint64
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	onWindow  func(telemetry.WindowStats, telemetry.PerfStats)
	last      telemetry.WindowStats
}

// New builds a field and populates it for the current viewport.
func New(opts Options) (*Field, error) {
	if opts.Canvas == nil {
		return nil, &ConfigError{Option: "canvas", Err: errors.New("no canvas")}
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.NewReal()
	}

	tracker, err := viewport.New(opts.Surface, cfg.Derived.Settle)
	if err != nil {
		return nil, &ConfigError{Option: "surface", Err: err}
	}

	signals := opts.Signals
	if signals == nil {
		signals = device.Window{Size: tracker.Size}
	}

	f := &Field{
		effect:    opts.Effect,
		canvas:    opts.Canvas,
		signals:   signals,
		cfg:       cfg,
		logger:    logger.With("effect", opts.Effect.Effect()),
		start:     clk.Now(),
		tracker:   tracker,
		sched:     scheduler.New(0),
		pool:      systems.NewPool(systems.NewSpawner(opts.Seed, cfg)),
		sim:       systems.NewSimulation(opts.Seed, cfg.Stars),
		ramp:      systems.NewSpeedRamp(),
		collector: telemetry.NewCollector(cfg.Telemetry.WindowFrames),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow, nil),
		onWindow:  opts.OnWindow,
	}

	// A settled resize or rotation rebuilds the pool at the next frame start
	tracker.OnChange(func(w, h float64) {
		f.regen.Store(true)
	})

	f.regenerate()
	return f, nil
}

// Frame is called on every display refresh. It applies settled viewport
// changes and pending regenerations, then runs one simulate-then-render step
// if the scheduler grants it. It reports whether a step ran.
func (f *Field) Frame(now time.Time) bool {
	f.collector.RecordFrame()
	f.perf.RecordFrame(now)

	f.tracker.Poll(now)
	if f.regen.Swap(false) {
		f.regenerate()
	}

	if !f.sched.Due(now) {
		return false
	}

	f.perf.StartStep()
	f.perf.StartPhase(telemetry.PhaseSimulate)
	stats := f.sim.Step(f.pool, f.ramp, f.bounds, 1, now.Sub(f.start).Seconds())

	f.perf.StartPhase(telemetry.PhaseRender)
	renderer.Draw(f.canvas, f.pool, f.view)
	f.perf.EndStep()

	f.steps++
	f.collector.RecordStep(now, stats.Resets)
	if f.collector.ShouldFlush() {
		f.flush()
	}
	return true
}

func (f *Field) flush() {
	w := f.collector.Flush(telemetry.FieldState{
		TotalSteps: f.steps,
		Particles:  f.pool.Len(),
		Stars:      f.pool.StarLen(),
		Tier:       f.budget.Tier.String(),
		Speed:      f.ramp.Value(),
	})
	f.last = w
	if f.onWindow != nil {
		f.onWindow(w, f.perf.Stats())
	}
}

// regenerate reclassifies the device and rebuilds the pool wholesale.
// It runs only at frame start, never mid-step.
func (f *Field) regenerate() {
	w, h := f.tracker.Size()
	tier := device.Classify(w, f.signals.CoarsePointer(), f.signals.Portrait())

	table := f.cfg.Meteor.Tiers
	if f.effect == systems.Streak {
		table = f.cfg.Streak.Tiers
	}
	budget := device.BudgetFor(tier, table, w)

	f.ramp.Retune(budget.SpeedFloor, budget.SpeedCeiling, budget.SpeedRamp)
	f.sched.SetInterval(budget.FrameInterval)
	f.pool.Spawner().SetCompact(tier.Compact())

	f.bounds = systems.Bounds{
		Width:            w,
		Height:           h,
		Margin:           f.cfg.Meteor.Margin,
		SpawnY:           f.cfg.Meteor.SpawnY,
		BoundsMultiplier: f.cfg.Streak.BoundsMultiplier,
	}
	f.view = renderer.NewView(w, h, f.effect, f.cfg)

	f.pool.Regenerate(budget.Particles, f.effect, f.bounds)
	stars := 0
	if f.effect == systems.Meteor {
		stars = budget.Stars
	}
	f.pool.RegenerateStars(stars, f.bounds)

	f.budget = budget
	f.collector.RecordRegeneration()

	f.logger.Info("field regenerated",
		"tier", tier.String(),
		"width", w,
		"height", h,
		"particles", f.pool.Len(),
		"stars", f.pool.StarLen(),
		"frame_interval", budget.FrameInterval,
		"speed", f.ramp.Value(),
	)
}

// RequestRegeneration asks for a wholesale rebuild at the next frame start.
// Safe to call from any goroutine.
func (f *Field) RequestRegeneration() {
	f.regen.Store(true)
}

// NotifyViewport forwards a resize or orientation signal. Safe to call from
// any goroutine.
func (f *Field) NotifyViewport(now time.Time) {
	f.tracker.Notify(now)
}

// SetVisible pauses or resumes stepping. Resuming never replays the time
// spent hidden.
func (f *Field) SetVisible(visible bool, now time.Time) {
	if visible == f.sched.Visible() {
		return
	}
	if visible {
		f.sched.Show(now)
		f.collector.RestartPacing()
		f.logger.Debug("field resumed")
		return
	}
	f.sched.Hide()
	f.logger.Debug("field hidden")
}

// Visible reports whether the field is stepping.
func (f *Field) Visible() bool {
	return f.sched.Visible()
}

// Effect returns the field's particle variant.
func (f *Field) Effect() systems.Variant {
	return f.effect
}

// Tier returns the current device tier.
func (f *Field) Tier() device.Tier {
	return f.budget.Tier
}

// Budget returns the current field configuration.
func (f *Field) Budget() device.Budget {
	return f.budget
}

// Speed returns the global speed multiplier.
func (f *Field) Speed() float64 {
	return f.ramp.Value()
}

// Size returns the current logical viewport size.
func (f *Field) Size() (w, h float64) {
	return f.tracker.Size()
}

// Steps returns the number of executed steps.
func (f *Field) Steps() uint64 {
	return f.steps
}

// Pool returns the particle pool for read-only inspection.
func (f *Field) Pool() *systems.Pool {
	return f.pool
}

// Stats returns the most recently completed telemetry window.
func (f *Field) Stats() telemetry.WindowStats {
	return f.last
}

// Perf returns step timing over the rolling perf window.
func (f *Field) Perf() telemetry.PerfStats {
	return f.perf.Stats()
}
