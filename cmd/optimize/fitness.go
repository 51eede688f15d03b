package main

import (
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/starfield/clock"
	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/device"
	"github.com/pthm-cable/starfield/field"
	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/systems"
	"github.com/pthm-cable/starfield/telemetry"
)

// Weight of window-to-window reset variation against the lifetime error.
const steadinessWeight = 0.5

// surface is a fixed desktop-sized viewport.
type surface struct{ w, h float64 }

func (s surface) LogicalSize() (w, h float64) { return s.w, s.h }
func (s surface) PixelRatio() float64         { return 1 }
func (s surface) SetBufferSize(w, h int)      {}
func (s surface) SetTransform(scale float64)  {}

// FitnessEvaluator runs headless warp fields and scores how close the mean
// streak lifetime is to a target.
type FitnessEvaluator struct {
	params     *ParamVector
	steps      uint64
	seeds      []int64
	baseConfig *config.Config
	target     float64 // Target streak lifetime in seconds

	mu           sync.Mutex
	lastLifetime float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, steps uint64, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		steps:      steps,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// LastLifetime returns the mean lifetime from the most recent evaluation.
func (fe *FitnessEvaluator) LastLifetime() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastLifetime
}

// runResult holds the windows collected from one run.
type runResult struct {
	windows  []telemetry.WindowStats
	interval time.Duration
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runField(x, s)
		}(i, seed)
	}
	wg.Wait()

	var fitness, lifetime float64
	for _, r := range results {
		lt := meanLifetime(r)
		lifetime += lt
		fitness += fe.computeFitness(lt, r.windows)
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastLifetime = lifetime / n
	fe.mu.Unlock()

	return fitness / n
}

// runField executes a single headless warp field for fe.steps steps.
func (fe *FitnessEvaluator) runField(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	clk := clock.NewMock(time.Unix(0, 0))
	f, err := field.New(field.Options{
		Effect:  systems.Streak,
		Canvas:  renderer.NewRecorder(),
		Surface: surface{w: float64(cfg.Screen.Width), h: float64(cfg.Screen.Height)},
		Signals: device.Fixed{},
		Config:  cfg,
		Seed:    seed,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:   clk,
		OnWindow: func(w telemetry.WindowStats, _ telemetry.PerfStats) {
			result.windows = append(result.windows, w)
		},
	})
	if err != nil {
		return result
	}
	result.interval = f.Budget().FrameInterval

	// Refresh at the budget's own rate so every refresh steps
	for f.Steps() < fe.steps {
		f.Frame(clk.Advance(result.interval))
	}
	return result
}

// copyConfig returns a copy of the base config. Config holds only values.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness combines the squared relative lifetime error with the
// variation of resets across windows.
func (fe *FitnessEvaluator) computeFitness(lifetime float64, windows []telemetry.WindowStats) float64 {
	if lifetime <= 0 || math.IsInf(lifetime, 0) {
		return 1e6
	}
	rel := (lifetime - fe.target) / fe.target
	return rel*rel + steadinessWeight*cv(resetRates(windows))
}

// meanLifetime estimates the mean streak lifetime in seconds from the reset
// rate: a pool of n particles resetting r times per step lives n/r steps.
func meanLifetime(r *runResult) float64 {
	var steps, resets, particles float64
	for _, w := range r.windows {
		steps += float64(w.Steps)
		resets += float64(w.Resets)
		particles = float64(w.Particles)
	}
	if steps == 0 || resets == 0 {
		return math.Inf(1)
	}
	return particles / (resets / steps) * r.interval.Seconds()
}

func resetRates(windows []telemetry.WindowStats) []float64 {
	rates := make([]float64, 0, len(windows))
	for _, w := range windows {
		if w.Steps > 0 {
			rates = append(rates, float64(w.Resets)/float64(w.Steps))
		}
	}
	return rates
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
