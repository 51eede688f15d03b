package renderer

import "image/color"

// haloRings is the number of translucent rings used to approximate a blur.
const haloRings = 3

// Halo is one translucent ring drawn behind a shape to approximate a shadow
// blur on canvases without native blur.
type Halo struct {
	Pad   float64 // Extent beyond the shape on every side
	Color color.NRGBA
}

// AppendHalos appends the rings for style to dst, outermost first.
// Nothing is appended when the style has no visible shadow.
func AppendHalos(dst []Halo, style Style) []Halo {
	if !(style.Blur > 0) || style.Shadow.A == 0 {
		return dst
	}
	for i := haloRings; i >= 1; i-- {
		c := style.Shadow
		// Inner rings are denser; together they fall off toward the edge
		c.A = uint8(float64(style.Shadow.A) * 0.3 / float64(i))
		if c.A == 0 {
			continue
		}
		dst = append(dst, Halo{
			Pad:   style.Blur * float64(i) / haloRings,
			Color: c,
		})
	}
	return dst
}
