package components

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// World axes (right-handed, Y up, cameras look down -Z).
var (
	AxisX = rl.Vector3{X: 1}
	AxisY = rl.Vector3{Y: 1}
	AxisZ = rl.Vector3{Z: 1}
)

// Transform is an entity's world placement.
type Transform struct {
	Translation rl.Vector3
	Rotation    rl.Quaternion
}

// Identity returns the transform with no translation and no rotation.
func Identity() Transform {
	return Transform{Rotation: rl.QuaternionIdentity()}
}

// FromXYZ returns an unrotated transform at the given position.
func FromXYZ(x, y, z float32) Transform {
	return Transform{Translation: rl.Vector3{X: x, Y: y, Z: z}, Rotation: rl.QuaternionIdentity()}
}

// IsIdentity reports whether t has no translation and no rotation.
func (t Transform) IsIdentity() bool {
	id := rl.QuaternionIdentity()
	return t.Translation == (rl.Vector3{}) && t.Rotation == id
}

// Mul composes t with a child transform expressed in t's local frame.
func (t Transform) Mul(child Transform) Transform {
	return Transform{
		Translation: rl.Vector3Add(t.Translation, rl.Vector3RotateByQuaternion(child.Translation, t.Rotation)),
		Rotation:    rl.QuaternionNormalize(rl.QuaternionMultiply(t.Rotation, child.Rotation)),
	}
}

// LocalX returns the rotated +X axis.
func (t Transform) LocalX() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(AxisX, t.Rotation)
}

// LocalY returns the rotated +Y axis.
func (t Transform) LocalY() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(AxisY, t.Rotation)
}

// LocalZ returns the rotated +Z axis.
func (t Transform) LocalZ() rl.Vector3 {
	return rl.Vector3RotateByQuaternion(AxisZ, t.Rotation)
}

// Forward returns the direction the transform faces (-Z).
func (t Transform) Forward() rl.Vector3 {
	return rl.Vector3Negate(t.LocalZ())
}

// LookingAt returns t rotated so that Forward points at target.
func (t Transform) LookingAt(target, up rl.Vector3) Transform {
	dir := rl.Vector3Subtract(target, t.Translation)
	if rl.Vector3Length(dir) < 1e-6 {
		return t
	}
	t.Rotation = LookRotation(dir, up)
	return t
}

// Camera3D converts t into a raylib camera with the given vertical field of view.
func (t Transform) Camera3D(fovy float32) rl.Camera3D {
	return rl.Camera3D{
		Position:   t.Translation,
		Target:     rl.Vector3Add(t.Translation, t.Forward()),
		Up:         t.LocalY(),
		Fovy:       fovy,
		Projection: rl.CameraPerspective,
	}
}

// LookRotation builds the rotation whose -Z axis points along forward.
// When forward is parallel to up a fallback up axis is used to avoid a degenerate basis.
func LookRotation(forward, up rl.Vector3) rl.Quaternion {
	back := rl.Vector3Normalize(rl.Vector3Negate(forward))
	right := rl.Vector3CrossProduct(up, back)
	if rl.Vector3Length(right) < 1e-6 {
		// Looking straight up or down
		right = rl.Vector3CrossProduct(AxisZ, back)
		if rl.Vector3Length(right) < 1e-6 {
			right = AxisX
		}
	}
	right = rl.Vector3Normalize(right)
	newUp := rl.Vector3CrossProduct(back, right)

	// Column-major basis: right, up, back. M15 stays zero because
	// QuaternionFromMatrix sums it into the trace.
	m := rl.Matrix{
		M0: right.X, M4: newUp.X, M8: back.X,
		M1: right.Y, M5: newUp.Y, M9: back.Y,
		M2: right.Z, M6: newUp.Z, M10: back.Z,
	}
	return rl.QuaternionNormalize(rl.QuaternionFromMatrix(m))
}

// RotationY returns a rotation of angle radians about world up.
func RotationY(angle float32) rl.Quaternion {
	return rl.QuaternionFromAxisAngle(AxisY, angle)
}

// RotationX returns a rotation of angle radians about world right.
func RotationX(angle float32) rl.Quaternion {
	return rl.QuaternionFromAxisAngle(AxisX, angle)
}

// YawAngle returns the rotation angle about world up in [0, 2π).
// Only meaningful for rotations built purely about Y.
func YawAngle(q rl.Quaternion) float32 {
	f := rl.Vector3RotateByQuaternion(AxisZ, q)
	a := float32(math.Atan2(float64(f.X), float64(f.Z)))
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
