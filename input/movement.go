package input

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fullTurn  = 4 * math.Pi / 2
	wrapGuard = 0.05
)

// Velocity sums a unit contribution per held direction and normalizes the
// result. Opposing keys cancel; nothing held gives the zero vector.
func Velocity(s State, km KeyMap, forward, right rl.Vector3) rl.Vector3 {
	var v rl.Vector3
	up := rl.Vector3{Y: 1}
	if km.Held(s, Forward) {
		v = rl.Vector3Add(v, forward)
	}
	if km.Held(s, Backward) {
		v = rl.Vector3Subtract(v, forward)
	}
	if km.Held(s, Right) {
		v = rl.Vector3Add(v, right)
	}
	if km.Held(s, Left) {
		v = rl.Vector3Subtract(v, right)
	}
	if km.Held(s, Up) {
		v = rl.Vector3Add(v, up)
	}
	if km.Held(s, Down) {
		v = rl.Vector3Subtract(v, up)
	}
	if rl.Vector3Length(v) < 1e-6 {
		return rl.Vector3{}
	}
	return rl.Vector3Normalize(v)
}

// RotateLeftBy increases angle by step, resetting to 0 once it is within
// wrapGuard of a full turn.
func RotateLeftBy(angle, step float32) float32 {
	if angle > fullTurn-wrapGuard {
		angle = 0
	}
	return angle + step
}

// RotateRightBy decreases angle by step, resetting to a full turn first
// when the step would go below 0.
func RotateRightBy(angle, step float32) float32 {
	if angle < wrapGuard || angle-step < 0 {
		angle = fullTurn
	}
	return angle - step
}

// Rotation returns the angle after applying the held rotate keys.
func Rotation(s State, km KeyMap, angle, step float32) float32 {
	if km.Held(s, RotateLeft) {
		angle = RotateLeftBy(angle, step)
	}
	if km.Held(s, RotateRight) {
		angle = RotateRightBy(angle, step)
	}
	return angle
}

// Triggers are the discrete actions fired this tick.
type Triggers struct {
	NextMode    bool
	NextSetting bool
	NextDriver  bool
	TogglePin   bool
	GrabCursor  bool
}

// Any reports whether any trigger fired.
func (t Triggers) Any() bool {
	return t.NextMode || t.NextSetting || t.NextDriver || t.TogglePin || t.GrabCursor
}

// ReadTriggers collects the just-pressed actions.
func ReadTriggers(s State, km KeyMap) Triggers {
	return Triggers{
		NextMode:    km.Pressed(s, NextMode),
		NextSetting: km.Pressed(s, NextSetting),
		NextDriver:  km.Pressed(s, NextDriver),
		TogglePin:   km.Pressed(s, TogglePin),
		GrabCursor:  km.Pressed(s, GrabCursor),
	}
}
