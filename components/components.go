// Package components defines ECS components for the camera plugin.
package components

// Target marks an entity as a camera focus candidate.
// Game code attaches and removes it; the camera systems only read it.
type Target struct{}

// PlayerMove marks the entity steered by the player key map.
type PlayerMove struct {
	Yaw float32 // Radians about world up, kept in [0, 2π]
}

// Camera is a renderable camera. Exactly one camera is active at a time.
type Camera struct {
	Name   string
	Active bool
	Fovy   float32 // Vertical field of view (degrees)
}

// FlyCam marks the free camera moved by the camera key map.
type FlyCam struct {
	Yaw   float32 // Radians
	Pitch float32 // Radians, clamped to ±MaxFlyPitch
}

// MaxFlyPitch keeps the fly cam just short of looking straight up or down.
const MaxFlyPitch = 1.54

// PlayerCam marks the camera attached to the player for the follow modes.
type PlayerCam struct{}

// Driver marker tags. A camera carrying one of these is driven by the
// rig entity that carries the same tag.
type (
	Orbit  struct{}
	Fpv    struct{}
	Pinned struct{}
)
