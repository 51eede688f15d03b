package renderer

import (
	"image/color"
	"math"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/systems"
)

// Palette
var (
	black     = color.NRGBA{0, 0, 0, 255}
	white     = color.NRGBA{255, 255, 255, 255}
	orange    = color.NRGBA{255, 165, 0, 255}
	red       = color.NRGBA{255, 0, 0, 255}
	headColor = color.NRGBA{255, 255, 102, 255}
)

// View is the per-frame drawing context.
type View struct {
	Width, Height  float64
	Effect         systems.Variant
	FadeMultiplier float64
	FadeRatio      float64
}

// NewView creates a view for the given logical size and effect.
func NewView(w, h float64, effect systems.Variant, cfg *config.Config) View {
	return View{
		Width:          w,
		Height:         h,
		Effect:         effect,
		FadeMultiplier: cfg.Streak.FadeMultiplier,
		FadeRatio:      cfg.Streak.FadeRatio,
	}
}

// Center returns the field center.
func (v View) Center() (cx, cy float64) {
	return v.Width / 2, v.Height / 2
}

// Draw paints one frame of the pool. It only reads particle state.
func Draw(c Canvas, pool *systems.Pool, v View) {
	if v.Effect == systems.Meteor {
		drawSpace(c, pool, v)
		return
	}
	drawWarp(c, pool, v)
}

func drawSpace(c Canvas, pool *systems.Pool, v View) {
	c.ClearRect(0, 0, v.Width, v.Height)

	pool.ForEachStar(func(s systems.Star) {
		c.FillRect(math.Floor(s.X), math.Floor(s.Y), s.Size, s.Size, Style{
			Color:  white,
			Shadow: white,
			Blur:   6 * s.Glow,
		})
	})

	pool.ForEach(func(p systems.Particle) {
		for i, pt := range p.Trail {
			fade := 1 - float64(i)/float64(max(p.MaxTrail, 1))
			c.FillRect(math.Floor(pt.X), math.Floor(pt.Y), p.Size, p.Size, Style{
				Color:  color.NRGBA{255, uint8(math.Floor(80 + fade*170)), 0, alpha(fade)},
				Shadow: orange,
				Blur:   8 * fade,
			})
		}
		c.FillRect(math.Floor(p.X), math.Floor(p.Y), p.Size, p.Size, Style{
			Color:  headColor,
			Shadow: red,
			Blur:   25,
		})
	})
}

func drawWarp(c Canvas, pool *systems.Pool, v View) {
	c.FillRect(0, 0, v.Width, v.Height, Style{Color: black})

	cx, cy := v.Center()
	fadeDist := math.Max(cx, cy) * v.FadeMultiplier * v.FadeRatio

	pool.ForEach(func(p systems.Particle) {
		opacity := 1.0
		if fadeDist > 0 {
			opacity = math.Min(1, math.Hypot(p.X, p.Y)/fadeDist)
		}

		x2 := p.X - math.Cos(p.Angle)*p.Length
		y2 := p.Y - math.Sin(p.Angle)*p.Length
		c.StrokeLine(p.X+cx, p.Y+cy, x2+cx, y2+cy, Style{
			Color: color.NRGBA{255, 255, 255, alpha(opacity)},
			Width: p.Size,
			Cap:   CapButt,
		})
	})
}

// alpha converts an opacity in [0, 1] to an 8-bit channel.
func alpha(a float64) uint8 {
	if !(a > 0) {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(math.Round(a * 255))
}
