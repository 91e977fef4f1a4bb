package rig

import rl "github.com/gen2brain/raylib-go/raylib"

// Presets holds the tunables for the built-in rigs.
type Presets struct {
	OrbitArm    float32 // Arm length behind the subject
	OrbitYaw    float32 // Degrees
	OrbitPitch  float32 // Degrees
	SmoothTime  float32 // Seconds
	PinnedPitch float32 // Degrees
}

// DefaultPresets returns the stock orbit and pinned settings.
func DefaultPresets() Presets {
	return Presets{
		OrbitArm:    4,
		OrbitYaw:    45,
		OrbitPitch:  -30,
		SmoothTime:  0.3,
		PinnedPitch: -20,
	}
}

// Orbit builds a third-person orbit rig around a movable position.
func (p Presets) Orbit() *Rig {
	yp := &YawPitch{}
	yp.SetYawPitch(p.OrbitYaw, p.OrbitPitch)
	return New(
		&Position{},
		yp,
		&Arm{Offset: rl.Vector3{Z: p.OrbitArm}},
		&Smooth{PositionTime: p.SmoothTime, RotationTime: p.SmoothTime},
	)
}

// Fpv builds a first-person rig starting at pos.
func (p Presets) Fpv(pos rl.Vector3) *Rig {
	return New(
		&Fpv{Position: pos},
		&Smooth{RotationTime: 0.1},
	)
}

// Pinned builds a rig that hangs behind and above its position and keeps
// looking at a supplied point.
func (p Presets) Pinned(dist float32) *Rig {
	yp := &YawPitch{}
	yp.SetYawPitch(0, p.PinnedPitch)
	return New(
		&Position{},
		yp,
		&Arm{Offset: rl.Vector3{Y: 1, Z: dist}},
		&LookAt{},
		&Smooth{PositionTime: 0.2, RotationTime: 0.2},
	)
}

// OrbitRig is DefaultPresets().Orbit().
func OrbitRig() *Rig { return DefaultPresets().Orbit() }

// FpvRig is DefaultPresets().Fpv(pos).
func FpvRig(pos rl.Vector3) *Rig { return DefaultPresets().Fpv(pos) }

// PinnedRig is DefaultPresets().Pinned(dist).
func PinnedRig(dist float32) *Rig { return DefaultPresets().Pinned(dist) }
