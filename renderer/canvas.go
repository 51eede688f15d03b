// Package renderer draws the particle field onto a 2D canvas.
package renderer

import "image/color"

// LineCap selects how stroked line ends are drawn.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// Style describes how a shape is painted. Colors use straight alpha.
type Style struct {
	Color  color.NRGBA
	Shadow color.NRGBA // Glow color; ignored when Blur is 0
	Blur   float64     // Glow radius in logical pixels
	Width  float64     // Stroke width
	Cap    LineCap
}

// Canvas is the 2D drawing target. Coordinates are logical pixels; the host
// applies the device pixel ratio.
type Canvas interface {
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64, style Style)
	StrokeLine(x1, y1, x2, y2 float64, style Style)
}

// OpKind identifies a recorded canvas operation.
type OpKind uint8

const (
	OpClear OpKind = iota
	OpFill
	OpStroke
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFill:
		return "fill"
	case OpStroke:
		return "stroke"
	default:
		return "unknown"
	}
}

// Op is one recorded canvas call. Rect operations store x, y, w, h in
// X1, Y1, X2, Y2.
type Op struct {
	Kind           OpKind
	X1, Y1, X2, Y2 float64
	Style          Style
}

// Recorder is a Canvas that records every call. It backs headless runs and
// tests.
type Recorder struct {
	ops []Op
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.ops = append(r.ops, Op{Kind: OpClear, X1: x, Y1: y, X2: w, Y2: h})
}

func (r *Recorder) FillRect(x, y, w, h float64, style Style) {
	r.ops = append(r.ops, Op{Kind: OpFill, X1: x, Y1: y, X2: w, Y2: h, Style: style})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, style Style) {
	r.ops = append(r.ops, Op{Kind: OpStroke, X1: x1, Y1: y1, X2: x2, Y2: y2, Style: style})
}

// Ops returns the recorded operations since the last Reset.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Count returns how many operations of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops recorded operations, keeping the backing storage.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}
