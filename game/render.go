package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/configcam/ui"
)

const controlsText = "WASD/Space/Shift: fly | C: mode | T: driver | E: scroll target | P: pin | Z/X: orbit | Esc: cursor | F1: HUD"

// Draw renders the scene from the active camera, then the HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 30, G: 34, B: 40, A: 255})

	if cam, ok := g.cam.Camera3D(); ok {
		rl.BeginMode3D(cam)
		g.scene.Draw()
		g.drawFocus()
		rl.EndMode3D()
	}

	if g.showHUD {
		g.drawHUD()
	}
	rl.EndDrawing()
}

// drawFocus marks the desired and smoothed focus points.
func (g *Game) drawFocus() {
	cfg := g.cam.Config()
	rl.DrawSphereWires(cfg.ShouldFocus, 0.15, 6, 6, rl.Red)
	rl.DrawSphere(cfg.IsFocus, 0.1, rl.Green)
}

func (g *Game) drawHUD() {
	rec := g.cam.Trace()
	g.hud.Draw(ui.HUDData{
		Title:   g.cfg.Screen.Title,
		Mode:    rec.Mode,
		Driver:  rec.Driver,
		Scroll:  g.cam.Scroll().Type.String(),
		Active:  rec.Active,
		Fovy:    g.cam.Fovy(),
		Focus:   rec.IsFocus(),
		Grabbed: g.cam.CursorGrabbed(),
		Tick:    rec.Tick,
		FPS:     rl.GetFPS(),
	})
	g.perfPanel.Draw(g.cam.Perf().Stats(), g.cam.Systems())

	// Sliders need a free cursor
	if !g.cam.CursorGrabbed() {
		cams := g.cam.Cameras()
		if clicked := g.settings.Draw(g.cam.Movement(), cams.Allowed(), cams.Current()); clicked != "" {
			if err := cams.SetByName(clicked); err != nil {
				slog.Warn("hud_mode", "mode", clicked, "error", err)
			}
		}
	}
	g.hud.DrawControls(int32(g.screenHeight), controlsText)
}
