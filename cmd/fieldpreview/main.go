// Field preview tool - live field with sliders for the tier budgets.
//
// Usage: go run ./cmd/fieldpreview [-config path] [-out field.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/clock"
	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/device"
	"github.com/pthm-cable/starfield/field"
	"github.com/pthm-cable/starfield/rlcanvas"
	"github.com/pthm-cable/starfield/systems"
)

const (
	windowWidth  = 1200
	windowHeight = 720
	panelWidth   = 300
)

// signals lets the panel override the pointer and orientation classification.
type signals struct {
	coarse   bool
	portrait bool
}

func (s *signals) CoarsePointer() bool { return s.coarse }
func (s *signals) Portrait() bool      { return s.portrait }

// preview owns the field being tuned and rebuilds it when the effect changes.
type preview struct {
	cfg     *config.Config
	canvas  *rlcanvas.Canvas
	signals *signals
	clk     clock.Clock
	effect  systems.Variant
	field   *field.Field
	seed    int64
}

func (p *preview) rebuild() error {
	f, err := field.New(field.Options{
		Effect:  p.effect,
		Canvas:  p.canvas,
		Surface: p.canvas,
		Signals: p.signals,
		Config:  p.cfg,
		Seed:    p.seed,
		Clock:   p.clk,
	})
	if err != nil {
		return err
	}
	p.field = f
	return nil
}

// table returns the tier table of the current effect.
func (p *preview) table() *config.TierTable {
	if p.effect == systems.Streak {
		return &p.cfg.Streak.Tiers
	}
	return &p.cfg.Meteor.Tiers
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "field.yaml", "Where Save writes the tuned config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rlcanvas.OpenWindow(rlcanvas.WindowOptions{
		Width:      windowWidth,
		Height:     windowHeight,
		Title:      "Field Preview",
		RefreshFPS: cfg.Screen.RefreshFPS,
	})
	defer rl.CloseWindow()

	canvas := rlcanvas.New()
	defer canvas.Unload()

	p := &preview{
		cfg:     cfg,
		canvas:  canvas,
		signals: &signals{},
		clk:     clock.NewReal(),
		effect:  systems.Meteor,
		seed:    1,
	}
	if err := p.rebuild(); err != nil {
		slog.Error("failed to create field", "error", err)
		os.Exit(1)
	}

	status := ""
	for !rl.WindowShouldClose() {
		now := p.clk.Now()
		if rl.IsWindowResized() {
			p.field.NotifyViewport(now)
		}
		p.field.SetVisible(rlcanvas.Visible(), now)
		p.field.Frame(now)

		canvas.Present(func() {
			panelX := float32(rl.GetScreenWidth() - panelWidth)
			rl.DrawRectangle(int32(panelX), 0, panelWidth, int32(rl.GetScreenHeight()), rl.Fade(rl.Black, 0.75))
			panelX += 10
			panelY := float32(10)

			rl.DrawText("Field Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
			panelY += 30
			rl.DrawText(fmt.Sprintf("%s | %s | %d particles | %d stars",
				p.effect.Effect(), p.field.Tier(), p.field.Pool().Len(), p.field.Pool().StarLen()),
				int32(panelX), int32(panelY), 12, rl.LightGray)
			panelY += 25

			// Effect and tier overrides
			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 135, Height: 26}, toggleText(p.effect == systems.Meteor, "Switch to warp", "Switch to space")) {
				p.effect = toggleVariant(p.effect)
				if err := p.rebuild(); err != nil {
					status = err.Error()
				}
			}
			if gui.Button(rl.Rectangle{X: panelX + 145, Y: panelY, Width: 135, Height: 26}, toggleText(p.signals.coarse, "Pointer: coarse", "Pointer: fine")) {
				p.signals.coarse = !p.signals.coarse
				p.field.RequestRegeneration()
			}
			panelY += 32
			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 135, Height: 26}, toggleText(p.signals.portrait, "Portrait", "Landscape")) {
				p.signals.portrait = !p.signals.portrait
				p.field.RequestRegeneration()
			}
			if gui.Button(rl.Rectangle{X: panelX + 145, Y: panelY, Width: 135, Height: 26}, "New seed") {
				p.seed++
				if err := p.rebuild(); err != nil {
					status = err.Error()
				}
			}
			panelY += 40

			tier := p.activeTier()
			changed := false

			changed = slider(&panelX, &panelY, "Particles", &tier.Particles, 0, 400) || changed
			if p.effect == systems.Meteor {
				changed = slider(&panelX, &panelY, "Stars", &tier.Stars, 0, 400) || changed
			} else {
				changed = sliderF(&panelX, &panelY, "Bounds multiplier", &p.cfg.Streak.BoundsMultiplier, 1, 4) || changed
				changed = sliderF(&panelX, &panelY, "Fade ratio", &p.cfg.Streak.FadeRatio, 0.05, 1) || changed
			}
			changed = sliderF(&panelX, &panelY, "Speed ceiling", &tier.SpeedCeiling, tier.SpeedFloor, 2) || changed
			changed = slider(&panelX, &panelY, "Target FPS", &tier.TargetFPS, 10, 120) || changed

			if changed {
				clampCompact(p.table())
				p.field.RequestRegeneration()
			}

			panelY += 10
			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 135, Height: 30}, "Save YAML") {
				if err := p.cfg.WriteYAML(*outPath); err != nil {
					status = err.Error()
				} else {
					status = "saved " + *outPath
				}
			}
			if gui.Button(rl.Rectangle{X: panelX + 145, Y: panelY, Width: 135, Height: 30}, "Reset All") {
				p.cfg = config.Defaults()
				if err := p.rebuild(); err != nil {
					status = err.Error()
				}
			}
			panelY += 40

			if status != "" {
				rl.DrawText(status, int32(panelX), int32(panelY), 12, rl.Yellow)
			}
			rl.DrawText(fmt.Sprintf("%d fps", rl.GetFPS()), int32(panelX), int32(rl.GetScreenHeight()-20), 12, rl.Gray)
		})
	}

}

// activeTier returns the budget the field is currently using.
func (p *preview) activeTier() *config.TierConfig {
	t := p.table()
	switch p.field.Tier() {
	case device.CompactPortrait:
		return &t.CompactPortrait
	case device.CompactLandscape:
		return &t.CompactLandscape
	default:
		return &t.Full
	}
}

// clampCompact keeps compact tiers within the full tier's counts.
func clampCompact(t *config.TierTable) {
	for _, tier := range []*config.TierConfig{&t.CompactPortrait, &t.CompactLandscape} {
		tier.Particles = min(tier.Particles, t.Full.Particles)
		tier.Stars = min(tier.Stars, t.Full.Stars)
	}
}

func slider(x, y *float32, label string, v *int, lo, hi int) bool {
	rl.DrawText(label, int32(*x), int32(*y), 14, rl.LightGray)
	*y += 18
	nv := gui.SliderBar(
		rl.Rectangle{X: *x, Y: *y, Width: panelWidth - 80, Height: 20},
		"", "",
		float32(*v), float32(lo), float32(hi),
	)
	rl.DrawText(fmt.Sprintf("%d", *v), int32(*x+panelWidth-70), int32(*y+2), 16, rl.RayWhite)
	*y += 30
	if int(nv) != *v {
		*v = int(nv)
		return true
	}
	return false
}

func sliderF(x, y *float32, label string, v *float64, lo, hi float64) bool {
	rl.DrawText(label, int32(*x), int32(*y), 14, rl.LightGray)
	*y += 18
	nv := gui.SliderBar(
		rl.Rectangle{X: *x, Y: *y, Width: panelWidth - 80, Height: 20},
		"", "",
		float32(*v), float32(lo), float32(hi),
	)
	rl.DrawText(fmt.Sprintf("%.2f", *v), int32(*x+panelWidth-70), int32(*y+2), 16, rl.RayWhite)
	*y += 30
	if float64(nv) != float64(float32(*v)) {
		*v = float64(nv)
		return true
	}
	return false
}

func toggleVariant(v systems.Variant) systems.Variant {
	if v == systems.Meteor {
		return systems.Streak
	}
	return systems.Meteor
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
