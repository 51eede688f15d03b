// Package rlcanvas hosts a field in a raylib window. The window is both the
// viewport surface and the drawing canvas; drawing goes to an offscreen
// render texture sized in device pixels and is blitted every refresh.
package rlcanvas

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/renderer"
)

// Canvas implements viewport.Surface and renderer.Canvas on the current
// raylib window. Create it after rl.InitWindow.
type Canvas struct {
	scale      float64
	bufW, bufH int

	target  rl.RenderTexture2D
	loaded  bool
	drawing bool

	halos []renderer.Halo
}

// New creates a canvas bound to the open window.
func New() *Canvas {
	return &Canvas{scale: 1, halos: make([]renderer.Halo, 0, 4)}
}

// LogicalSize returns the window size in screen coordinates.
func (c *Canvas) LogicalSize() (w, h float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

// PixelRatio returns framebuffer pixels per screen coordinate.
func (c *Canvas) PixelRatio() float64 {
	sw := rl.GetScreenWidth()
	if sw <= 0 {
		return 1
	}
	return float64(rl.GetRenderWidth()) / float64(sw)
}

// SetBufferSize reallocates the offscreen texture when its size changes.
func (c *Canvas) SetBufferSize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if c.loaded && w == c.bufW && h == c.bufH {
		return
	}
	c.end()
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
	}
	c.target = rl.LoadRenderTexture(int32(w), int32(h))
	c.bufW, c.bufH = w, h
	c.loaded = true

	rl.BeginTextureMode(c.target)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
}

// SetTransform sets the logical-to-device scale used while drawing.
func (c *Canvas) SetTransform(scale float64) {
	c.end()
	c.scale = scale
}

// begin enters texture mode lazily so frames that skip a step keep the
// previous image.
func (c *Canvas) begin() bool {
	if !c.loaded {
		return false
	}
	if !c.drawing {
		rl.BeginTextureMode(c.target)
		rl.BeginMode2D(rl.Camera2D{Zoom: float32(c.scale)})
		c.drawing = true
	}
	return true
}

func (c *Canvas) end() {
	if !c.drawing {
		return
	}
	rl.EndMode2D()
	rl.EndTextureMode()
	c.drawing = false
}

// ClearRect resets a region to transparent.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	if !c.begin() {
		return
	}
	if x <= 0 && y <= 0 && (x+w)*c.scale >= float64(c.bufW) && (y+h)*c.scale >= float64(c.bufH) {
		rl.ClearBackground(rl.Blank)
		return
	}
	rl.BeginScissorMode(
		int32(math.Floor(x*c.scale)), int32(math.Floor(y*c.scale)),
		int32(math.Ceil(w*c.scale)), int32(math.Ceil(h*c.scale)),
	)
	rl.ClearBackground(rl.Blank)
	rl.EndScissorMode()
}

// FillRect fills a rectangle, drawing translucent halos for a shadow blur.
func (c *Canvas) FillRect(x, y, w, h float64, style renderer.Style) {
	if !c.begin() {
		return
	}
	c.halos = renderer.AppendHalos(c.halos[:0], style)
	for _, halo := range c.halos {
		rl.DrawRectangleRec(rl.NewRectangle(
			float32(x-halo.Pad), float32(y-halo.Pad),
			float32(w+2*halo.Pad), float32(h+2*halo.Pad),
		), toColor(halo.Color))
	}
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), toColor(style.Color))
}

// StrokeLine draws a line segment of the style's width.
func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64, style renderer.Style) {
	if !c.begin() || style.Color.A == 0 {
		return
	}
	width := float32(math.Max(style.Width, 0.5))
	start := rl.NewVector2(float32(x1), float32(y1))
	end := rl.NewVector2(float32(x2), float32(y2))
	col := toColor(style.Color)

	rl.DrawLineEx(start, end, width, col)
	if style.Cap == renderer.CapRound {
		rl.DrawCircleV(start, width/2, col)
		rl.DrawCircleV(end, width/2, col)
	}
}

// Present finishes any pending drawing, blits the offscreen image to the
// window and then draws overlay on top in screen coordinates.
func (c *Canvas) Present(overlay func()) {
	c.end()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	if c.loaded {
		w, h := c.LogicalSize()
		// Render textures are stored upside down
		src := rl.NewRectangle(0, 0, float32(c.bufW), -float32(c.bufH))
		dst := rl.NewRectangle(0, 0, float32(w), float32(h))
		rl.DrawTexturePro(c.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
	}
	if overlay != nil {
		overlay()
	}
	rl.EndDrawing()
}

// Unload frees the offscreen texture.
func (c *Canvas) Unload() {
	c.end()
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
		c.loaded = false
	}
}

// Visible reports whether the window can currently be seen.
func Visible() bool {
	return !rl.IsWindowMinimized() && !rl.IsWindowHidden()
}

func toColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
