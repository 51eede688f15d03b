package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/starfield/clock"
	"github.com/pthm-cable/starfield/device"
	"github.com/pthm-cable/starfield/field"
	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/rlcanvas"
	"github.com/pthm-cable/starfield/scheduler"
	"github.com/pthm-cable/starfield/termcanvas"
	"github.com/pthm-cable/starfield/ui"
)

// fixedSurface is a headless viewport of constant size.
type fixedSurface struct {
	w, h float64
}

func (s fixedSurface) LogicalSize() (w, h float64) { return s.w, s.h }
func (s fixedSurface) PixelRatio() float64         { return 1 }
func (s fixedSurface) SetBufferSize(w, h int)      {}
func (s fixedSurface) SetTransform(scale float64)  {}

// runHeadless steps the field on a mock clock as fast as possible, recording
// draw calls instead of painting them.
func runHeadless(ctx context.Context, o runOptions) error {
	clk := clock.NewMock(time.Unix(0, 0))
	rec := renderer.NewRecorder()

	f, err := field.New(field.Options{
		Effect:   o.effect,
		Canvas:   rec,
		Surface:  fixedSurface{w: float64(o.cfg.Screen.Width), h: float64(o.cfg.Screen.Height)},
		Signals:  device.Fixed{Coarse: o.compact, IsPortrait: o.cfg.Screen.Height > o.cfg.Screen.Width},
		Config:   o.cfg,
		Seed:     o.seed,
		Logger:   o.logger,
		Clock:    clk,
		OnWindow: o.onWindow,
	})
	if err != nil {
		return err
	}

	refresh := time.Second / time.Duration(o.cfg.Screen.RefreshFPS)
	for ctx.Err() == nil {
		rec.Reset()
		f.Frame(clk.Advance(refresh))

		if o.maxFrames > 0 && f.Steps() >= o.maxFrames {
			o.logger.Info("max frames reached", "steps", f.Steps(), "elapsed", clk.Now().Sub(time.Unix(0, 0)))
			return nil
		}
	}
	return nil
}

// runTerminal renders the field with half-block characters until the user
// quits.
func runTerminal(ctx context.Context, o runOptions) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableFocus()
	screen.HideCursor()

	term := termcanvas.New(screen)
	clk := clock.NewReal()

	f, err := field.New(field.Options{
		Effect:   o.effect,
		Canvas:   term,
		Surface:  term,
		Signals:  device.Window{Coarse: o.compact, Size: term.LogicalSize},
		Config:   o.cfg,
		Seed:     o.seed,
		Logger:   o.logger,
		Clock:    clk,
		OnWindow: o.onWindow,
	})
	if err != nil {
		return err
	}

	events := make(chan termcanvas.Event, 16)
	stopPoll := make(chan struct{})
	defer close(stopPoll)
	go termcanvas.Poll(screen, events, stopPoll)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	refresh := time.Second / time.Duration(o.cfg.Screen.RefreshFPS)
	err = scheduler.Run(ctx, clk, refresh, func(now time.Time) {
		for drained := false; !drained; {
			select {
			case ev := <-events:
				switch ev.Kind {
				case termcanvas.EventResize:
					screen.Sync()
					f.NotifyViewport(now)
				case termcanvas.EventVisibility:
					f.SetVisible(ev.Visible, now)
				case termcanvas.EventQuit:
					cancel()
					return
				}
			default:
				drained = true
			}
		}

		if f.Frame(now) {
			term.Present()
		}
		if o.maxFrames > 0 && f.Steps() >= o.maxFrames {
			cancel()
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runWindow opens a raylib window with the HUD overlay.
func runWindow(ctx context.Context, o runOptions) error {
	rlcanvas.OpenWindow(rlcanvas.WindowOptions{
		Width:      o.cfg.Screen.Width,
		Height:     o.cfg.Screen.Height,
		Title:      o.cfg.Screen.Title,
		RefreshFPS: o.cfg.Screen.RefreshFPS,
	})
	defer rl.CloseWindow()

	canvas := rlcanvas.New()
	defer canvas.Unload()

	f, err := field.New(field.Options{
		Effect:   o.effect,
		Canvas:   canvas,
		Surface:  canvas,
		Signals:  device.Window{Coarse: o.compact, Size: canvas.LogicalSize},
		Config:   o.cfg,
		Seed:     o.seed,
		Logger:   o.logger,
		Clock:    clock.NewReal(),
		OnWindow: o.onWindow,
	})
	if err != nil {
		return err
	}

	hud := ui.NewHUD()
	overlay := func() {
		hud.HandleInput()
		if !hud.IsVisible() {
			return
		}
		budget := f.Budget()
		hud.Draw(ui.HUDData{
			Effect:       f.Effect().Effect(),
			Tier:         f.Tier().String(),
			Particles:    f.Pool().Len(),
			Stars:        f.Pool().StarLen(),
			Speed:        f.Speed(),
			SpeedCeiling: budget.SpeedCeiling,
			TargetFPS:    int(time.Second / max(budget.FrameInterval, time.Millisecond)),
			FPS:          rl.GetFPS(),
			Window:       f.Stats(),
			Perf:         f.Perf(),
		})
	}

	rlcanvas.Loop(ctx, clock.NewReal(), f, canvas, overlay, o.maxFrames)
	return nil
}
