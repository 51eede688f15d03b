package telemetry

import (
	"testing"
	"time"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(3)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		c.RecordFrame()
		if i%2 == 0 {
			c.RecordStep(start.Add(time.Duration(i)*10*time.Millisecond), 2)
		}
	}
	c.RecordRegeneration()

	if !c.ShouldFlush() {
		t.Fatal("expected flush after 3 steps")
	}

	stats := c.Flush(FieldState{TotalSteps: 3, Particles: 160, Tier: "full", Speed: 0.4})
	if stats.Frames != 6 || stats.Steps != 3 {
		t.Errorf("expected 6 frames and 3 steps, got %d and %d", stats.Frames, stats.Steps)
	}
	if stats.Resets != 6 {
		t.Errorf("expected 6 resets, got %d", stats.Resets)
	}
	if stats.Regenerations != 1 {
		t.Errorf("expected 1 regeneration, got %d", stats.Regenerations)
	}
	if stats.StepMeanMs != 20 || stats.StepStdMs != 0 {
		t.Errorf("expected steady 20ms pacing, got mean=%v std=%v", stats.StepMeanMs, stats.StepStdMs)
	}
	if stats.WindowStart != 0 || stats.WindowEnd != 3 {
		t.Errorf("unexpected window [%d, %d]", stats.WindowStart, stats.WindowEnd)
	}

	// Counters reset, window advances
	if c.ShouldFlush() {
		t.Error("expected counters to reset after flush")
	}
	next := c.Flush(FieldState{TotalSteps: 5})
	if next.WindowStart != 3 || next.Steps != 0 || next.Frames != 0 {
		t.Errorf("unexpected second window %+v", next)
	}
}

func TestCollectorPacingAcrossWindows(t *testing.T) {
	c := NewCollector(2)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	c.RecordStep(start, 0)
	c.RecordStep(start.Add(30*time.Millisecond), 0)
	c.Flush(FieldState{TotalSteps: 2})

	// The first step of a window is measured against the last of the previous one
	c.RecordStep(start.Add(60*time.Millisecond), 0)
	stats := c.Flush(FieldState{TotalSteps: 3})
	if stats.StepMeanMs != 30 {
		t.Errorf("expected 30ms interval carried across windows, got %v", stats.StepMeanMs)
	}
}

func TestCollectorRestartPacing(t *testing.T) {
	c := NewCollector(10)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	c.RecordStep(start, 0)
	c.RestartPacing()
	c.RecordStep(start.Add(time.Minute), 0)
	c.RecordStep(start.Add(time.Minute+16*time.Millisecond), 0)

	stats := c.Flush(FieldState{})
	if stats.StepP90Ms != 16 {
		t.Errorf("expected hidden period excluded from pacing, got p90 %v", stats.StepP90Ms)
	}
}
