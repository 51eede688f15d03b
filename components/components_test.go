package components

import "testing"

func TestTrailPushNewestFirst(t *testing.T) {
	var tr Trail
	tr.Reset(3)

	for i := 1; i <= 5; i++ {
		tr.Push(Point{X: float64(i)})
		if len(tr.Points) > tr.Max {
			t.Fatalf("trail length %d exceeds cap %d", len(tr.Points), tr.Max)
		}
	}

	if len(tr.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(tr.Points))
	}
	want := []float64{5, 4, 3}
	for i, w := range want {
		if tr.Points[i].X != w {
			t.Errorf("point %d: got %f, want %f", i, tr.Points[i].X, w)
		}
	}
}

func TestTrailResetReusesStorage(t *testing.T) {
	var tr Trail
	tr.Reset(8)
	for i := 0; i < 8; i++ {
		tr.Push(Point{X: float64(i)})
	}

	tr.Reset(4)
	if len(tr.Points) != 0 {
		t.Errorf("expected empty trail after reset, got %d points", len(tr.Points))
	}
	if cap(tr.Points) < 8 {
		t.Errorf("expected storage reuse, cap=%d", cap(tr.Points))
	}
	for i := 0; i < 10; i++ {
		tr.Push(Point{X: float64(i)})
	}
	if len(tr.Points) != 4 {
		t.Errorf("expected 4 points after reset to cap 4, got %d", len(tr.Points))
	}
}

func TestTrailZeroCap(t *testing.T) {
	var tr Trail
	tr.Push(Point{X: 1})
	if len(tr.Points) != 0 {
		t.Errorf("expected no points with zero cap, got %d", len(tr.Points))
	}
}
