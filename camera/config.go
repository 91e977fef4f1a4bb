package camera

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
)

// FocusStrategy selects how LookAt resolves its focus point.
type FocusStrategy string

const (
	// FocusPrimary blends the primary target with the external target.
	FocusPrimary FocusStrategy = "primary"
	// FocusTargets uses the centroid of every Target-tagged entity.
	FocusTargets FocusStrategy = "targets"
)

// CameraConfig is the focus state shared between game code and the camera systems.
// Writes from game code take effect on the next tick.
type CameraConfig struct {
	Target      ecs.Entity
	HasTarget   bool
	External    ecs.Entity
	HasExternal bool

	// ShouldFocus is where the camera wants to look; IsFocus trails it.
	ShouldFocus rl.Vector3
	IsFocus     rl.Vector3

	Strategy FocusStrategy
	DeadZone float32 // Focus only moves when further than this
	Speed    float32 // Approach rate per second
}

// NewCameraConfig returns a config with the stock dead zone and speed.
func NewCameraConfig() *CameraConfig {
	return &CameraConfig{
		Strategy: FocusPrimary,
		DeadZone: 0.2,
		Speed:    2.0,
	}
}

// SetTarget sets the primary followed entity.
func (c *CameraConfig) SetTarget(e ecs.Entity) {
	c.Target, c.HasTarget = e, true
}

// ClearTarget removes the primary target.
func (c *CameraConfig) ClearTarget() {
	c.Target, c.HasTarget = ecs.Entity{}, false
}

// SetExternal sets the secondary focus entity.
func (c *CameraConfig) SetExternal(e ecs.Entity) {
	c.External, c.HasExternal = e, true
}

// ClearExternal removes the secondary focus entity.
func (c *CameraConfig) ClearExternal() {
	c.External, c.HasExternal = ecs.Entity{}, false
}

// MovementSettings are the tunables adjusted by the scroll wheel and the
// per-mode flags recomputed every tick.
type MovementSettings struct {
	Sensitivity float32
	Speed       float32
	Dist        float32 // Follow distance for the top-down modes
	Lerp        float32 // 0 = target, 1 = external target

	DisableMove    bool
	DisableLook    bool
	LockedToPlayer bool
}

// NewMovementSettings returns the stock movement settings.
func NewMovementSettings() *MovementSettings {
	return &MovementSettings{
		Sensitivity: 0.00012,
		Speed:       12,
		Dist:        10,
		Lerp:        0.5,
	}
}

// SetLerp stores l clamped to [0,1].
func (m *MovementSettings) SetLerp(l float32) {
	m.Lerp = max(0, min(1, l))
}
