package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/starfield/clock"
)

// Phase is one part of an executed step.
type Phase uint8

const (
	PhaseSimulate Phase = iota
	PhaseRender
	numPhases
)

func (p Phase) String() string {
	switch p {
	case PhaseSimulate:
		return "simulate"
	case PhaseRender:
		return "render"
	}
	return "unknown"
}

// stepTiming is the cost of one executed step.
type stepTiming struct {
	total time.Duration
	phase [numPhases]time.Duration
}

// PerfCollector measures what executed steps cost, over a ring of the most
// recent steps. Step cost is read from its own clock, so a field running on
// a synthetic clock still reports real compute time.
type PerfCollector struct {
	clk  clock.Clock
	ring []stepTiming
	next int
	n    int

	cur       stepTiming
	stepStart time.Time
	markStart time.Time
	open      bool
	phase     Phase

	lastFrame time.Time
	frameGap  time.Duration
}

// NewPerfCollector creates a collector averaging over window steps.
// A nil clock measures wall time.
func NewPerfCollector(window int, clk clock.Clock) *PerfCollector {
	if window < 1 {
		window = 60
	}
	if clk == nil {
		clk = clock.NewReal()
	}
	return &PerfCollector{clk: clk, ring: make([]stepTiming, window)}
}

// StartStep begins timing a step.
func (p *PerfCollector) StartStep() {
	p.stepStart = p.clk.Now()
	p.cur = stepTiming{}
	p.open = false
}

// StartPhase closes the running phase, if any, and opens ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := p.clk.Now()
	p.closePhase(now)
	p.markStart = now
	p.phase = ph
	p.open = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.open && p.phase < numPhases {
		p.cur.phase[p.phase] += now.Sub(p.markStart)
	}
	p.open = false
}

// EndStep closes the step and pushes it into the ring.
func (p *PerfCollector) EndStep() {
	now := p.clk.Now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.stepStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.n = min(p.n+1, len(p.ring))
}

// RecordFrame notes a display refresh at now, the host's refresh time.
func (p *PerfCollector) RecordFrame(now time.Time) {
	if !p.lastFrame.IsZero() {
		p.frameGap = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats is step cost over the ring plus the latest refresh rate.
type PerfStats struct {
	MeanStep  time.Duration
	PhaseMean [numPhases]time.Duration
	PhasePct  [numPhases]float64 // Share of MeanStep, in percent
	FrameGap  time.Duration
	FPS       float64
}

// Stats summarizes the ring.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameGap: p.frameGap}
	if p.frameGap > 0 {
		s.FPS = float64(time.Second) / float64(p.frameGap)
	}
	if p.n == 0 {
		return s
	}

	var sum stepTiming
	for _, st := range p.ring[:p.n] {
		sum.total += st.total
		for i, d := range st.phase {
			sum.phase[i] += d
		}
	}
	n := time.Duration(p.n)
	s.MeanStep = sum.total / n
	for i, d := range sum.phase {
		s.PhaseMean[i] = d / n
		if sum.total > 0 {
			s.PhasePct[i] = float64(d) / float64(sum.total) * 100
		}
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int64("step_us", s.MeanStep.Microseconds())}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// PerfRecord is one perf.csv row.
type PerfRecord struct {
	WindowEnd   uint64  `csv:"window_end"`
	StepUS      int64   `csv:"step_us"`
	FPS         float64 `csv:"fps"`
	SimulatePct float64 `csv:"simulate_pct"`
	RenderPct   float64 `csv:"render_pct"`
}

// Record flattens s into a CSV row for the window ending at windowEnd.
func (s PerfStats) Record(windowEnd uint64) PerfRecord {
	return PerfRecord{
		WindowEnd:   windowEnd,
		StepUS:      s.MeanStep.Microseconds(),
		FPS:         s.FPS,
		SimulatePct: s.PhasePct[PhaseSimulate],
		RenderPct:   s.PhasePct[PhaseRender],
	}
}
