package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes the host keys the camera plugin does not own.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.showHUD = !g.showHUD
	}

	g.syncCursor()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight && !rl.IsWindowResized() {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	// Mouse look scales with the smaller window side
	g.cam.SetWindowScale(min(w, h))
	if g.perfPanel != nil {
		g.perfPanel.SetPosition(int32(w)-260, 10)
	}
}

// syncCursor captures or releases the OS cursor to match the plugin's grab state.
func (g *Game) syncCursor() {
	grabbed := g.cam.CursorGrabbed()
	if grabbed == rl.IsCursorHidden() {
		return
	}
	if grabbed {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
}
