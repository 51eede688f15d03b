package device

// Fixed is a Signals provider with constant answers.
type Fixed struct {
	Coarse     bool
	IsPortrait bool
}

// CoarsePointer implements Signals.
func (f Fixed) CoarsePointer() bool { return f.Coarse }

// Portrait implements Signals.
func (f Fixed) Portrait() bool { return f.IsPortrait }

// Window derives orientation from a live viewport size, for desktop and
// terminal hosts that have no orientation sensor.
type Window struct {
	Coarse bool
	Size   func() (w, h float64)
}

// CoarsePointer implements Signals.
func (w Window) CoarsePointer() bool { return w.Coarse }

// Portrait reports whether the viewport is taller than it is wide.
func (w Window) Portrait() bool {
	if w.Size == nil {
		return false
	}
	width, height := w.Size()
	return height > width
}
