package input

import rl "github.com/gen2brain/raylib-go/raylib"

// State is the raw input for one tick.
type State interface {
	Down(k Key) bool
	Pressed(k Key) bool
	MouseDelta() rl.Vector2
	Wheel() float32
}

// RaylibState polls the raylib window.
type RaylibState struct{}

func (RaylibState) Down(k Key) bool        { return rl.IsKeyDown(int32(k)) }
func (RaylibState) Pressed(k Key) bool     { return rl.IsKeyPressed(int32(k)) }
func (RaylibState) MouseDelta() rl.Vector2 { return rl.GetMouseDelta() }
func (RaylibState) Wheel() float32         { return rl.GetMouseWheelMove() }

// Frame is a scripted tick of input for tests and headless replays.
type Frame struct {
	down    map[Key]bool
	pressed map[Key]bool
	Mouse   rl.Vector2
	Scroll  float32
}

// NewFrame returns a frame with nothing held.
func NewFrame() *Frame {
	return &Frame{down: make(map[Key]bool), pressed: make(map[Key]bool)}
}

// Hold marks keys as down without a press edge.
func (f *Frame) Hold(keys ...Key) *Frame {
	for _, k := range keys {
		f.down[k] = true
	}
	return f
}

// Press marks keys as pressed this tick (and down).
func (f *Frame) Press(keys ...Key) *Frame {
	for _, k := range keys {
		f.down[k] = true
		f.pressed[k] = true
	}
	return f
}

func (f *Frame) Down(k Key) bool        { return f.down[k] }
func (f *Frame) Pressed(k Key) bool     { return f.pressed[k] }
func (f *Frame) MouseDelta() rl.Vector2 { return f.Mouse }
func (f *Frame) Wheel() float32         { return f.Scroll }
