package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/telemetry"
)

// HUDData holds all the data needed to render the HUD.
type HUDData struct {
	Effect       string
	Tier         string
	Particles    int
	Stars        int
	Speed        float64
	SpeedCeiling float64
	TargetFPS    int
	FPS          int32
	Window       telemetry.WindowStats
	Perf         telemetry.PerfStats
}

// FieldPanel describes the field status panel.
func FieldPanel() PanelDescriptor {
	text := func(f func(HUDData) string) func(any) string {
		return func(d any) string { return f(d.(HUDData)) }
	}
	return PanelDescriptor{
		ID:    "field",
		Title: "Starfield",
		Width: 260,
		Sections: []SectionDescriptor{
			{
				ID:    "field",
				Title: "Field",
				Fields: []FieldDescriptor{
					{ID: "effect", Label: "Effect", TextGetter: text(func(d HUDData) string { return d.Effect })},
					{ID: "tier", Label: "Tier", TextGetter: text(func(d HUDData) string { return d.Tier })},
					{ID: "particles", Label: "Particles", TextGetter: text(func(d HUDData) string {
						return fmt.Sprintf("%d", d.Particles)
					})},
					{
						ID:    "stars",
						Label: "Stars",
						Visible: func(d any) bool {
							return d.(HUDData).Stars > 0
						},
						TextGetter: text(func(d HUDData) string { return fmt.Sprintf("%d", d.Stars) }),
					},
					{
						ID:     "speed",
						Label:  "Speed",
						Widget: WidgetBar,
						Range:  DefaultRange(),
						Getter: func(d any) float32 {
							h := d.(HUDData)
							if h.SpeedCeiling <= 0 {
								return 0
							}
							return float32(h.Speed / h.SpeedCeiling)
						},
					},
				},
			},
			{
				ID:    "pacing",
				Title: "Pacing",
				Fields: []FieldDescriptor{
					{ID: "fps", Label: "Refresh", TextGetter: text(func(d HUDData) string {
						return fmt.Sprintf("%d fps", d.FPS)
					})},
					{ID: "target", Label: "Target", TextGetter: text(func(d HUDData) string {
						return fmt.Sprintf("%d fps", d.TargetFPS)
					})},
					{
						ID:      "step",
						Label:   "Step",
						Visible: func(d any) bool { return d.(HUDData).Window.Steps > 0 },
						TextGetter: text(func(d HUDData) string {
							return fmt.Sprintf("%.1f ms (p90 %.1f)", d.Window.StepMeanMs, d.Window.StepP90Ms)
						}),
					},
					{
						ID:      "resets",
						Label:   "Resets",
						Visible: func(d any) bool { return d.(HUDData).Window.Steps > 0 },
						TextGetter: text(func(d HUDData) string {
							return fmt.Sprintf("%d / window", d.Window.Resets)
						}),
					},
				},
			},
			{
				ID:      "perf",
				Title:   "Step time",
				Visible: func(d any) bool { return d.(HUDData).Perf.MeanStep > 0 },
				Fields: []FieldDescriptor{
					{ID: "avg", Label: "Average", TextGetter: text(func(d HUDData) string {
						return fmt.Sprintf("%d us", d.Perf.MeanStep.Microseconds())
					})},
					{ID: "simulate", Label: "Simulate", Widget: WidgetBar, Range: FieldRange{Max: 100}, Getter: func(d any) float32 {
						return float32(d.(HUDData).Perf.PhasePct[telemetry.PhaseSimulate])
					}},
					{ID: "render", Label: "Render", Widget: WidgetBar, Range: FieldRange{Max: 100}, Getter: func(d any) float32 {
						return float32(d.(HUDData).Perf.PhasePct[telemetry.PhaseRender])
					}},
				},
			},
		},
	}
}

// HUD renders the status overlay. It starts hidden.
type HUD struct {
	renderer *Renderer
	panel    PanelDescriptor
	visible  bool
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		panel:    FieldPanel(),
	}
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// IsVisible returns whether the HUD is shown.
func (h *HUD) IsVisible() bool {
	return h.visible
}

// HandleInput toggles the HUD on F3.
func (h *HUD) HandleInput() {
	if rl.IsKeyPressed(rl.KeyF3) {
		h.Toggle()
	}
}

// Draw renders the HUD when visible.
func (h *HUD) Draw(data HUDData) {
	if !h.visible {
		return
	}
	h.renderer.DrawPanelDescriptor(10, 10, h.panel, data)
	h.DrawControls(int32(rl.GetScreenHeight()), "F3: toggle HUD | Esc: quit")
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
