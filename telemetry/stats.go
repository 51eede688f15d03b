// Package telemetry tracks frame pacing and field activity over step windows.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one window of executed steps.
type WindowStats struct {
	WindowStart uint64 `csv:"-"`
	WindowEnd   uint64 `csv:"window_end"`

	// Refreshes observed and steps executed during the window
	Frames int `csv:"frames"`
	Steps  int `csv:"steps"`

	// Field activity
	Resets        int     `csv:"resets"`
	Regenerations int     `csv:"regenerations"`
	Particles     int     `csv:"particles"`
	Stars         int     `csv:"stars"`
	Tier          string  `csv:"tier"`
	Speed         float64 `csv:"speed"`

	// Time between executed steps, in milliseconds
	StepMeanMs float64 `csv:"step_mean_ms"`
	StepStdMs  float64 `csv:"step_std_ms"`
	StepP50Ms  float64 `csv:"step_p50_ms"`
	StepP90Ms  float64 `csv:"step_p90_ms"`
}

// ComputeIntervalStats returns the mean, sample standard deviation and
// empirical 50th and 90th percentiles of values. It does not modify values.
func ComputeIntervalStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStart),
		slog.Uint64("window_end", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.Int("steps", s.Steps),
		slog.Int("resets", s.Resets),
		slog.Int("regenerations", s.Regenerations),
		slog.Int("particles", s.Particles),
		slog.Int("stars", s.Stars),
		slog.String("tier", s.Tier),
		slog.Float64("speed", s.Speed),
		slog.Float64("step_mean_ms", s.StepMeanMs),
		slog.Float64("step_std_ms", s.StepStdMs),
		slog.Float64("step_p50_ms", s.StepP50Ms),
		slog.Float64("step_p90_ms", s.StepP90Ms),
	)
}

// LogStats logs the window stats using the given logger.
func (s WindowStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("stats", "window", s)
}
