package renderer

import (
	"image/color"
	"testing"
)

func TestAppendHalos(t *testing.T) {
	halos := AppendHalos(nil, Style{Shadow: color.NRGBA{255, 0, 0, 255}, Blur: 24})
	if len(halos) != haloRings {
		t.Fatalf("expected %d rings, got %d", haloRings, len(halos))
	}
	if halos[0].Pad != 24 || halos[len(halos)-1].Pad != 8 {
		t.Errorf("expected pads from 24 down to 8, got %f..%f", halos[0].Pad, halos[len(halos)-1].Pad)
	}
	for i := 1; i < len(halos); i++ {
		if halos[i].Pad >= halos[i-1].Pad {
			t.Error("expected rings ordered outermost first")
		}
		if halos[i].Color.A <= halos[i-1].Color.A {
			t.Error("expected inner rings to be denser")
		}
		if halos[i].Color.R != 255 || halos[i].Color.G != 0 {
			t.Error("expected ring color to follow the shadow")
		}
	}
}

func TestAppendHalosNoShadow(t *testing.T) {
	tests := []struct {
		name  string
		style Style
	}{
		{"zero blur", Style{Shadow: white}},
		{"negative blur", Style{Shadow: white, Blur: -3}},
		{"transparent shadow", Style{Blur: 10}},
	}
	for _, tt := range tests {
		if got := AppendHalos(nil, tt.style); len(got) != 0 {
			t.Errorf("%s: expected no rings, got %d", tt.name, len(got))
		}
	}
}

func TestAppendHalosReusesBuffer(t *testing.T) {
	buf := make([]Halo, 0, 8)
	buf = AppendHalos(buf[:0], Style{Shadow: orange, Blur: 8})
	first := &buf[0]
	buf = AppendHalos(buf[:0], Style{Shadow: orange, Blur: 4})
	if &buf[0] != first {
		t.Error("expected backing storage to be reused")
	}
}
