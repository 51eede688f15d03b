package rlcanvas

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/clock"
)

// Host is the part of a field the window loop drives.
type Host interface {
	Frame(now time.Time) bool
	NotifyViewport(now time.Time)
	SetVisible(visible bool, now time.Time)
}

// WindowOptions configures OpenWindow.
type WindowOptions struct {
	Width, Height int
	Title         string
	RefreshFPS    int
}

// OpenWindow opens a resizable, high-DPI aware window capped at the refresh
// rate. Close it with rl.CloseWindow.
func OpenWindow(opts WindowOptions) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagVsyncHint | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if opts.RefreshFPS > 0 {
		rl.SetTargetFPS(int32(opts.RefreshFPS))
	}
}

// Loop runs the window's refresh loop until the window closes, ctx is
// cancelled or maxFrames executed steps have run (0 = unlimited). overlay is
// drawn after the field every refresh and may be nil.
func Loop(ctx context.Context, clk clock.Clock, host Host, canvas *Canvas, overlay func(), maxFrames uint64) {
	var steps uint64
	visible := true

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return
		}
		now := clk.Now()

		if rl.IsWindowResized() {
			host.NotifyViewport(now)
		}
		if v := Visible(); v != visible {
			visible = v
			host.SetVisible(v, now)
		}

		if host.Frame(now) {
			steps++
		}
		canvas.Present(overlay)

		if maxFrames > 0 && steps >= maxFrames {
			return
		}
	}
}
