package systems

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/configcam/camera"
	"github.com/pthm-cable/configcam/components"
	"github.com/pthm-cable/configcam/input"
)

// FlyCamSystem applies raw key movement and mouse look to fly cams.
type FlyCamSystem struct {
	filter *ecs.Filter2[components.Transform, components.FlyCam]
}

// NewFlyCamSystem creates a new fly cam system.
func NewFlyCamSystem(w *ecs.World) *FlyCamSystem {
	return &FlyCamSystem{
		filter: ecs.NewFilter2[components.Transform, components.FlyCam](w),
	}
}

// Update moves and turns fly cams. Movement honors DisableMove, look honors
// DisableLook and only applies while the cursor is grabbed. windowScale
// converts mouse pixels so look speed does not depend on window size.
func (s *FlyCamSystem) Update(in input.State, keys input.KeyMap, mv *camera.MovementSettings, grabbed bool, windowScale, dt float32) {
	delta := in.MouseDelta()
	query := s.filter.Query()
	for query.Next() {
		t, fc := query.Get()

		if !mv.DisableLook && grabbed && (delta.X != 0 || delta.Y != 0) {
			fc.Yaw -= deg2rad(mv.Sensitivity * delta.X * windowScale)
			fc.Pitch -= deg2rad(mv.Sensitivity * delta.Y * windowScale)
			fc.Pitch = max(-components.MaxFlyPitch, min(components.MaxFlyPitch, fc.Pitch))
			t.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(
				components.RotationY(fc.Yaw),
				components.RotationX(fc.Pitch),
			))
		}

		if !mv.DisableMove {
			localZ := t.LocalZ()
			forward := rl.Vector3{X: -localZ.X, Z: -localZ.Z}
			right := rl.Vector3{X: localZ.Z, Z: -localZ.X}
			velocity := input.Velocity(in, keys, forward, right)
			t.Translation = rl.Vector3Add(t.Translation, rl.Vector3Scale(velocity, dt*mv.Speed))
		}
	}
}

func deg2rad(d float32) float32 {
	return d * math.Pi / 180
}
