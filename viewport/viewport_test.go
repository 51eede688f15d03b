package viewport

import (
	"errors"
	"testing"
	"time"
)

type fakeSurface struct {
	w, h       float64
	ratio      float64
	bufW, bufH int
	scale      float64
}

func (s *fakeSurface) LogicalSize() (float64, float64) { return s.w, s.h }
func (s *fakeSurface) PixelRatio() float64             { return s.ratio }
func (s *fakeSurface) SetBufferSize(w, h int)          { s.bufW, s.bufH = w, h }
func (s *fakeSurface) SetTransform(scale float64)      { s.scale = scale }

func TestNewWithoutSurface(t *testing.T) {
	_, err := New(nil, 100*time.Millisecond)
	if !errors.Is(err, ErrNoSurface) {
		t.Fatalf("expected ErrNoSurface, got %v", err)
	}
}

func TestNewAppliesPixelRatio(t *testing.T) {
	s := &fakeSurface{w: 390, h: 844, ratio: 3}
	tr, err := New(s, 100*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	if w, h := tr.Size(); w != 390 || h != 844 {
		t.Errorf("expected logical 390x844, got %.0fx%.0f", w, h)
	}
	if s.bufW != 1170 || s.bufH != 2532 {
		t.Errorf("expected buffer 1170x2532, got %dx%d", s.bufW, s.bufH)
	}
	if s.scale != 3 {
		t.Errorf("expected transform 3, got %f", s.scale)
	}
}

func TestInvalidPixelRatioFallsBackToOne(t *testing.T) {
	s := &fakeSurface{w: 100, h: 50, ratio: 0}
	tr, _ := New(s, 0)
	if tr.PixelRatio() != 1 || s.bufW != 100 || s.bufH != 50 {
		t.Errorf("expected ratio 1 and buffer 100x50, got %f and %dx%d", tr.PixelRatio(), s.bufW, s.bufH)
	}
}

func TestNotifyIsDebounced(t *testing.T) {
	s := &fakeSurface{w: 800, h: 600, ratio: 1}
	tr, _ := New(s, 150*time.Millisecond)

	var changes int
	tr.OnChange(func(w, h float64) { changes++ })

	start := time.Unix(0, 0)
	s.w, s.h = 600, 800
	tr.Notify(start)

	if tr.Poll(start.Add(100 * time.Millisecond)) {
		t.Fatal("change applied before settle delay")
	}
	if w, _ := tr.Size(); w != 800 {
		t.Errorf("size changed before settle: %f", w)
	}

	// A second signal pushes the deadline back
	tr.Notify(start.Add(120 * time.Millisecond))
	if tr.Poll(start.Add(200 * time.Millisecond)) {
		t.Fatal("change applied before the re-armed deadline")
	}

	if !tr.Poll(start.Add(270 * time.Millisecond)) {
		t.Fatal("expected change after settle delay")
	}
	if changes != 1 {
		t.Errorf("expected exactly 1 change notification, got %d", changes)
	}
	if w, h := tr.Size(); w != 600 || h != 800 {
		t.Errorf("expected 600x800 after change, got %.0fx%.0f", w, h)
	}
	if tr.Pending() {
		t.Error("expected no pending change after apply")
	}
	if tr.Poll(start.Add(time.Second)) {
		t.Error("expected no further changes")
	}
}

func TestCenter(t *testing.T) {
	tr, _ := New(&fakeSurface{w: 1280, h: 720, ratio: 2}, 0)
	if cx, cy := tr.Center(); cx != 640 || cy != 360 {
		t.Errorf("expected center (640, 360), got (%f, %f)", cx, cy)
	}
}
