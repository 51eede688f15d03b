package termcanvas

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/viewport"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func newTerminal(t *testing.T, cols, rows int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := newScreen(t, cols, rows)
	term := New(screen)
	if _, err := viewport.New(term, 0); err != nil {
		t.Fatal(err)
	}
	return term, screen
}

var red = renderer.Style{Color: color.NRGBA{255, 0, 0, 255}}

func TestSurfaceGeometry(t *testing.T) {
	term, _ := newTerminal(t, 80, 24)

	w, h := term.LogicalSize()
	if w != 640 || h != 384 {
		t.Errorf("expected 640x384 logical pixels, got %fx%f", w, h)
	}
	bw, bh := term.BufferSize()
	if bw != 80 || bh != 48 {
		t.Errorf("expected 80x48 half-block buffer, got %dx%d", bw, bh)
	}
}

func TestFillRectCoversTouchedPixels(t *testing.T) {
	term, _ := newTerminal(t, 10, 5)

	// A 2px star inside pixel (3, 2) still lights one pixel
	term.FillRect(25, 17, 2, 2, red)
	if term.Pixel(3, 2) != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("expected pixel (3,2) to be red, got %v", term.Pixel(3, 2))
	}
	if term.Pixel(4, 2) != (color.RGBA{}) {
		t.Errorf("expected neighbor untouched, got %v", term.Pixel(4, 2))
	}

	term.ClearRect(0, 0, 80, 80)
	if term.Pixel(3, 2) != (color.RGBA{}) {
		t.Error("expected clear to reset pixels")
	}
}

func TestFillRectBlends(t *testing.T) {
	term, _ := newTerminal(t, 4, 2)

	half := renderer.Style{Color: color.NRGBA{200, 100, 0, 128}}
	term.FillRect(0, 0, 8, 8, half)
	got := term.Pixel(0, 0)
	if got.R != 100 || got.G != 50 || got.B != 0 {
		t.Errorf("expected half-blend over black, got %v", got)
	}
}

func TestOutOfRangeDrawingIsClipped(t *testing.T) {
	term, _ := newTerminal(t, 4, 2)

	term.FillRect(-100, -100, 20, 20, red)
	term.FillRect(1000, 1000, 20, 20, red)
	term.ClearRect(500, 500, 10, 10)
	term.StrokeLine(-1000, -1000, 5000, 5000, red)
	term.FillRect(0, 0, 1e9, 1e9, renderer.Style{Color: color.NRGBA{0, 0, 255, 255}})

	if term.Pixel(3, 3) != (color.RGBA{0, 0, 255, 255}) {
		t.Error("expected full fill to reach the last pixel")
	}
}

func TestStrokeLine(t *testing.T) {
	term, _ := newTerminal(t, 20, 10)

	// Horizontal line across pixel row 5 from x=1 to x=10
	term.StrokeLine(8, 44, 88, 44, red)
	for x := 1; x <= 10; x++ {
		if term.Pixel(x, 5).R != 255 {
			t.Errorf("expected pixel (%d,5) on the line", x)
		}
	}
	if term.Pixel(0, 5).R != 0 || term.Pixel(12, 5).R != 0 {
		t.Error("expected pixels beyond the endpoints untouched")
	}

	// Transparent strokes draw nothing
	term.StrokeLine(0, 0, 160, 0, renderer.Style{Color: color.NRGBA{255, 255, 255, 0}})
	if term.Pixel(5, 0) != (color.RGBA{}) {
		t.Error("expected transparent stroke to be skipped")
	}
}

func TestPresentHalfBlocks(t *testing.T) {
	term, screen := newTerminal(t, 4, 2)

	// Light the top half of cell (1, 0) only
	term.FillRect(8, 0, 8, 8, red)
	term.Present()

	r, _, _, _ := screen.GetContent(1, 0)
	if r != upperHalf {
		t.Errorf("expected half block in lit cell, got %q", r)
	}
	r, _, _, _ = screen.GetContent(0, 0)
	if r != ' ' {
		t.Errorf("expected blank in unlit cell, got %q", r)
	}
}

func TestResizeReallocatesBuffer(t *testing.T) {
	term, screen := newTerminal(t, 10, 5)
	tracker, err := viewport.New(term, 0)
	if err != nil {
		t.Fatal(err)
	}

	term.FillRect(0, 0, 8, 8, red)
	screen.SetSize(20, 8)
	tracker.Notify(epochNow())
	tracker.Poll(epochNow())

	bw, bh := term.BufferSize()
	if bw != 20 || bh != 16 {
		t.Errorf("expected 20x16 buffer after resize, got %dx%d", bw, bh)
	}
	if term.Pixel(0, 0) != (color.RGBA{}) {
		t.Error("expected resize to clear the buffer")
	}
}
