package systems

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/configcam/components"
	"github.com/pthm-cable/configcam/input"
)

// PlayerSettings drives the player controller.
type PlayerSettings struct {
	Keys       input.KeyMap
	Speed      float32 // Units per second
	RotateStep float32 // Radians per tick while a rotate key is held
	CamForward bool    // Forward is local +Z instead of -Z
	// DisableMove freezes the player. Camera modes do not touch it.
	DisableMove bool
}

// PlayerSystem moves every PlayerMove entity from the player key map.
type PlayerSystem struct {
	filter *ecs.Filter2[components.Transform, components.PlayerMove]
}

// NewPlayerSystem creates a new player system.
func NewPlayerSystem(w *ecs.World) *PlayerSystem {
	return &PlayerSystem{
		filter: ecs.NewFilter2[components.Transform, components.PlayerMove](w),
	}
}

// Update turns and moves players for one tick.
func (s *PlayerSystem) Update(in input.State, ps *PlayerSettings, dt float32) {
	if ps.DisableMove {
		return
	}
	query := s.filter.Query()
	for query.Next() {
		t, pm := query.Get()

		localZ := t.LocalZ()
		forward := rl.Vector3{X: -localZ.X, Z: -localZ.Z}
		if ps.CamForward {
			forward = rl.Vector3{X: localZ.X, Z: localZ.Z}
		}
		right := rl.Vector3{X: localZ.Z, Z: -localZ.X}

		velocity := input.Velocity(in, ps.Keys, forward, right)

		pm.Yaw = input.Rotation(in, ps.Keys, pm.Yaw, ps.RotateStep)
		t.Rotation = components.RotationY(pm.Yaw)
		t.Translation = rl.Vector3Add(t.Translation, rl.Vector3Scale(velocity, dt*ps.Speed))
	}
}
