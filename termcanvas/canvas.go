// Package termcanvas hosts a field in a terminal. Each character cell is
// treated as 8x16 logical pixels and rendered as two stacked half-block
// pixels, so the device pixel is 8x8 logical pixels.
package termcanvas

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/starfield/renderer"
)

// Logical pixels per character cell.
const (
	CellWidth  = 8
	CellHeight = 16
)

const upperHalf = '▀'

// Terminal implements viewport.Surface and renderer.Canvas over a tcell
// screen. Drawing goes to an RGB pixel buffer; Present writes it to the
// screen.
type Terminal struct {
	screen tcell.Screen

	scale      float64
	bufW, bufH int
	pix        []color.RGBA // Opaque, composited over black
}

// New creates a terminal canvas on an initialized screen.
func New(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen, scale: 1.0 / CellWidth}
}

// LogicalSize returns the screen size in logical pixels.
func (t *Terminal) LogicalSize() (w, h float64) {
	cols, rows := t.screen.Size()
	return float64(cols * CellWidth), float64(rows * CellHeight)
}

// PixelRatio returns half-block pixels per logical pixel.
func (t *Terminal) PixelRatio() float64 {
	return 1.0 / CellWidth
}

// SetBufferSize resizes the pixel buffer, clearing it.
func (t *Terminal) SetBufferSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	t.bufW, t.bufH = w, h
	if cap(t.pix) >= w*h {
		t.pix = t.pix[:w*h]
		clear(t.pix)
		return
	}
	t.pix = make([]color.RGBA, w*h)
}

// SetTransform sets the logical-to-pixel scale.
func (t *Terminal) SetTransform(scale float64) {
	t.scale = scale
}

// BufferSize returns the pixel buffer size.
func (t *Terminal) BufferSize() (w, h int) {
	return t.bufW, t.bufH
}

// Pixel returns the composited color at a buffer pixel.
func (t *Terminal) Pixel(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= t.bufW || y >= t.bufH {
		return color.RGBA{}
	}
	return t.pix[y*t.bufW+x]
}

// span converts a logical interval to the pixel range it touches.
// Every non-empty interval covers at least one pixel.
func (t *Terminal) span(pos, size float64, limit int) (lo, hi int) {
	lo = int(math.Floor(pos * t.scale))
	hi = int(math.Ceil((pos + size) * t.scale))
	if hi <= lo {
		hi = lo + 1
	}
	lo = min(max(lo, 0), limit)
	hi = max(min(hi, limit), lo)
	return lo, hi
}

// ClearRect resets a region to black.
func (t *Terminal) ClearRect(x, y, w, h float64) {
	x0, x1 := t.span(x, w, t.bufW)
	y0, y1 := t.span(y, h, t.bufH)
	for py := y0; py < y1; py++ {
		row := t.pix[py*t.bufW : (py+1)*t.bufW]
		clear(row[x0:x1])
	}
}

// FillRect blends a rectangle into every pixel it touches. Shadow blur has
// no cell-sized equivalent and is ignored.
func (t *Terminal) FillRect(x, y, w, h float64, style renderer.Style) {
	if style.Color.A == 0 {
		return
	}
	x0, x1 := t.span(x, w, t.bufW)
	y0, y1 := t.span(y, h, t.bufH)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			t.blend(px, py, style.Color)
		}
	}
}

// StrokeLine rasterizes a one-pixel line between the endpoints.
func (t *Terminal) StrokeLine(x1, y1, x2, y2 float64, style renderer.Style) {
	if style.Color.A == 0 {
		return
	}
	ax, ay := x1*t.scale, y1*t.scale
	bx, by := x2*t.scale, y2*t.scale
	if !finite(ax, ay) || !finite(bx, by) {
		return
	}

	steps := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	if steps > t.bufW+t.bufH {
		steps = t.bufW + t.bufH
	}
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		f := 0.0
		if steps > 0 {
			f = float64(i) / float64(steps)
		}
		px := int(math.Floor(ax + (bx-ax)*f))
		py := int(math.Floor(ay + (by-ay)*f))
		if px == lastX && py == lastY {
			continue
		}
		lastX, lastY = px, py
		if px >= 0 && py >= 0 && px < t.bufW && py < t.bufH {
			t.blend(px, py, style.Color)
		}
	}
}

func (t *Terminal) blend(x, y int, c color.NRGBA) {
	p := &t.pix[y*t.bufW+x]
	a := uint32(c.A)
	p.R = uint8((uint32(c.R)*a + uint32(p.R)*(255-a)) / 255)
	p.G = uint8((uint32(c.G)*a + uint32(p.G)*(255-a)) / 255)
	p.B = uint8((uint32(c.B)*a + uint32(p.B)*(255-a)) / 255)
	p.A = 255
}

// Present writes the pixel buffer to the screen as half-block cells and
// shows it.
func (t *Terminal) Present() {
	cols, rows := t.screen.Size()
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := t.Pixel(cx, cy*2)
			bottom := t.Pixel(cx, cy*2+1)
			if isBlack(top) && isBlack(bottom) {
				t.screen.SetContent(cx, cy, ' ', nil, tcell.StyleDefault.Background(tcell.ColorBlack))
				continue
			}
			style := tcell.StyleDefault.
				Foreground(rgb(top)).
				Background(rgb(bottom))
			t.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}
	t.screen.Show()
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func isBlack(c color.RGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

func finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}
