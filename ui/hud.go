package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/configcam/camera"
	"github.com/pthm-cable/configcam/systems"
	"github.com/pthm-cable/configcam/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title   string
	Mode    string
	Driver  string
	Scroll  string
	Active  string
	Fovy    float32
	Focus   rl.Vector3
	Grabbed bool
	Tick    int64
	FPS     int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Mode: %s | Driver: %s | Camera: %s", data.Mode, data.Driver, data.Active),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Scroll: %s | FOV: %.0f | Focus: (%.1f, %.1f, %.1f)",
			data.Scroll, data.Fovy, data.Focus.X, data.Focus.Y, data.Focus.Z),
		10, 55, 16, rl.LightGray,
	)
	rl.DrawText(fmt.Sprintf("Tick: %d | FPS: %d", data.Tick, data.FPS), 10, 75, 16, rl.LightGray)

	if !data.Grabbed {
		rl.DrawText("Cursor free", 10, 95, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel in registry order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	x, y := p.x, p.y

	rl.DrawText("Camera Tick", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, info := range registry.All() {
		pct := stats.PhasePct[info.ID]
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", info.Name, stats.PhaseAvg[info.ID].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// SettingsPanel shows sliders for the movement settings and a button per mode.
type SettingsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	fields   []camera.FieldDescriptor
}

// NewSettingsPanel creates a settings panel for the movement fields.
func NewSettingsPanel(x, y, width int32) *SettingsPanel {
	return &SettingsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		fields:   camera.MovementFieldDescriptors(),
	}
}

// SetPosition updates the panel position.
func (s *SettingsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the panel. It returns the mode name whose button was
// clicked, or "" when none was.
func (s *SettingsPanel) Draw(mv *camera.MovementSettings, allowed []camera.Mode, current camera.Mode) string {
	r := s.renderer
	pad := r.Theme.Padding
	height := pad*2 + r.Theme.LineHeight*2 + int32(len(s.fields))*(r.Theme.LineHeight+4) + int32(len(allowed))*24
	r.DrawPanel(s.x, s.y, s.width, height)

	x := s.x + pad
	y := r.DrawSectionHeader(x, s.y+pad, "Movement")
	for _, f := range s.fields {
		if v := mv.Field(f.ID); v != nil {
			y = r.DrawSlider(x, y, s.width-pad*2, f, v)
		}
	}
	mv.SetLerp(mv.Lerp)

	y = r.DrawSectionHeader(x, y+4, "Mode")
	clicked := ""
	for _, m := range allowed {
		label := m.String()
		if m == current {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(s.width - pad*2), Height: 20}, label) {
			clicked = m.String()
		}
		y += 24
	}
	return clicked
}
