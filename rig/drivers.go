package rig

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/configcam/components"
)

// MaxPitch is the pitch limit in degrees; exactly ±90 would flip the basis.
const MaxPitch = 88.0

// Position overrides the translation with an absolute world position.
type Position struct {
	Position rl.Vector3
	// Pinned stops the position from following its subject.
	Pinned bool
}

func (p *Position) Kind() string { return "Position" }

// SetPosition moves the driver unless it is pinned.
func (p *Position) SetPosition(pos rl.Vector3) {
	if p.Pinned {
		return
	}
	p.Position = pos
}

// Translate offsets the position.
func (p *Position) Translate(delta rl.Vector3) {
	p.Position = rl.Vector3Add(p.Position, delta)
}

// TogglePin flips the pinned state and returns the new value.
func (p *Position) TogglePin() bool {
	p.Pinned = !p.Pinned
	return p.Pinned
}

func (p *Position) Update(ctx Context) components.Transform {
	return components.Transform{Translation: p.Position, Rotation: ctx.Parent.Rotation}
}

// Rotation overrides the rotation with an absolute orientation.
type Rotation struct {
	Rotation rl.Quaternion
}

func (r *Rotation) Kind() string { return "Rotation" }

func (r *Rotation) Update(ctx Context) components.Transform {
	return components.Transform{Translation: ctx.Parent.Translation, Rotation: r.Rotation}
}

// YawPitch holds yaw and pitch in degrees. Yaw turns about world up,
// pitch about the yawed right axis, so no roll is introduced.
type YawPitch struct {
	Yaw   float32
	Pitch float32
}

func (y *YawPitch) Kind() string { return "YawPitch" }

// Rotate adds to yaw and pitch. Yaw wraps into [0,360), pitch is clamped.
func (y *YawPitch) Rotate(yawDeg, pitchDeg float32) {
	y.SetYawPitch(y.Yaw+yawDeg, y.Pitch+pitchDeg)
}

// SetYawPitch replaces both angles.
func (y *YawPitch) SetYawPitch(yawDeg, pitchDeg float32) {
	y.Yaw = wrapDegrees(yawDeg)
	y.Pitch = clampPitch(pitchDeg)
}

// Quaternion returns the rotation for the current angles.
func (y *YawPitch) Quaternion() rl.Quaternion {
	return yawPitchQuat(y.Yaw, y.Pitch)
}

func (y *YawPitch) Update(ctx Context) components.Transform {
	return components.Transform{Translation: ctx.Parent.Translation, Rotation: y.Quaternion()}
}

// Arm offsets the translation by a vector expressed in the parent's frame.
type Arm struct {
	Offset rl.Vector3
}

func (a *Arm) Kind() string { return "Arm" }

func (a *Arm) Update(ctx Context) components.Transform {
	return ctx.Parent.Mul(components.Transform{Translation: a.Offset, Rotation: rl.QuaternionIdentity()})
}

// Smooth eases toward the parent transform. A zero duration disables
// smoothing for that channel.
type Smooth struct {
	PositionTime float32 // Seconds
	RotationTime float32 // Seconds

	current components.Transform
	primed  bool
}

func (s *Smooth) Kind() string { return "Smooth" }

// Reset makes the next update snap to its parent.
func (s *Smooth) Reset() {
	s.primed = false
}

func (s *Smooth) Update(ctx Context) components.Transform {
	if !s.primed {
		s.current = ctx.Parent
		s.primed = true
		return s.current
	}
	pf := smoothFactor(ctx.DeltaTime, s.PositionTime)
	rf := smoothFactor(ctx.DeltaTime, s.RotationTime)
	s.current.Translation = rl.Vector3Add(s.current.Translation,
		rl.Vector3Scale(rl.Vector3Subtract(ctx.Parent.Translation, s.current.Translation), pf))
	s.current.Rotation = rl.QuaternionSlerp(s.current.Rotation, ctx.Parent.Rotation, rf)
	return s.current
}

// smoothFactor never exceeds 1, so a dt spike lands on the target instead of overshooting.
func smoothFactor(dt, duration float32) float32 {
	if duration <= 0 {
		return 1
	}
	return min(1, dt/duration)
}

// LookAt rotates toward a point supplied each tick by the focus resolver.
type LookAt struct {
	Target rl.Vector3
}

func (l *LookAt) Kind() string { return "LookAt" }

// SetTarget sets the point to look at.
func (l *LookAt) SetTarget(p rl.Vector3) {
	l.Target = p
}

func (l *LookAt) Update(ctx Context) components.Transform {
	return ctx.Parent.LookingAt(l.Target, components.AxisY)
}

// Fpv is a first-person driver carrying its own position and angles.
type Fpv struct {
	Position rl.Vector3
	Yaw      float32 // Degrees
	Pitch    float32 // Degrees
}

func (f *Fpv) Kind() string { return "Fpv" }

// Move translates by moveVec given in the camera frame (x right, y up, -z forward).
// Planar movement ignores pitch so forward stays level.
func (f *Fpv) Move(moveVec rl.Vector3, boost bool, boostMult float32, planar bool) {
	rot := yawPitchQuat(f.Yaw, f.Pitch)
	if planar {
		rot = components.RotationY(deg2rad(f.Yaw))
	}
	delta := rl.Vector3RotateByQuaternion(moveVec, rot)
	if boost {
		delta = rl.Vector3Scale(delta, boostMult)
	}
	f.Position = rl.Vector3Add(f.Position, delta)
}

// Look turns by a mouse delta scaled by sensitivity (degrees per unit).
func (f *Fpv) Look(delta rl.Vector2, sensitivity float32) {
	f.Yaw = wrapDegrees(f.Yaw - delta.X*sensitivity)
	f.Pitch = clampPitch(f.Pitch - delta.Y*sensitivity)
}

func (f *Fpv) Update(ctx Context) components.Transform {
	return components.Transform{Translation: f.Position, Rotation: yawPitchQuat(f.Yaw, f.Pitch)}
}

func yawPitchQuat(yawDeg, pitchDeg float32) rl.Quaternion {
	return rl.QuaternionNormalize(rl.QuaternionMultiply(
		components.RotationY(deg2rad(yawDeg)),
		components.RotationX(deg2rad(pitchDeg)),
	))
}

func wrapDegrees(d float32) float32 {
	w := float32(math.Mod(float64(d), 360))
	if w < 0 {
		w += 360
	}
	return w
}

func clampPitch(d float32) float32 {
	return max(-MaxPitch, min(MaxPitch, d))
}

func deg2rad(d float32) float32 {
	return d * math.Pi / 180
}
