package telemetry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"testing"
)

func TestComputeIntervalStats(t *testing.T) {
	values := []float64{10, 2, 9, 1, 8, 3, 7, 4, 6, 5}
	mean, std, p50, p90 := ComputeIntervalStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Sample standard deviation of 1..10
	if math.Abs(std-3.02765) > 1e-4 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}

	// Input order is preserved
	if values[0] != 10 || values[1] != 2 {
		t.Error("ComputeIntervalStats modified its input")
	}
}

func TestComputeIntervalStatsSmall(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		mean   float64
		p90    float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{16.7}, 16.7, 16.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, _, p90 := ComputeIntervalStats(tt.values)
			if mean != tt.mean || p90 != tt.p90 {
				t.Errorf("got mean=%v p90=%v, want mean=%v p90=%v", mean, p90, tt.mean, tt.p90)
			}
			if std != 0 {
				t.Errorf("expected zero std for fewer than 2 values, got %v", std)
			}
		})
	}
}

func TestWindowStatsLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	WindowStats{WindowEnd: 120, Steps: 120, Tier: "full", Particles: 160}.LogStats(logger)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON log line: %v", err)
	}
	window, ok := entry["window"].(map[string]any)
	if !ok {
		t.Fatalf("expected grouped window attrs, got %v", entry)
	}
	if window["tier"] != "full" || window["particles"] != float64(160) {
		t.Errorf("unexpected window attrs %v", window)
	}
}
