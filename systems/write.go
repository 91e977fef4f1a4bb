package systems

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/configcam/camera"
	"github.com/pthm-cable/configcam/components"
)

// WriteInput is everything the write phase needs for one tick.
type WriteInput struct {
	Result camera.Result
	Target components.Transform // Snapshot transform of the configured target
	Focus  rl.Vector3           // Smoothed focus point
	Locked bool                 // Write the player cam instead of the fly cam
	Rig    components.Transform // Final transform of the current driver's rig
	HasRig bool
	Fovy   float32
}

// CameraWriteSystem writes the mode result into a camera transform.
type CameraWriteSystem struct {
	transforms *ecs.Map[components.Transform]
	flyCams    *ecs.Map[components.FlyCam]
	cameras    *ecs.Filter1[components.Camera]
	fly        *ecs.Filter2[components.Camera, components.FlyCam]
	player     *ecs.Filter2[components.Camera, components.PlayerCam]
}

// NewCameraWriteSystem creates a new camera write system.
func NewCameraWriteSystem(w *ecs.World) *CameraWriteSystem {
	return &CameraWriteSystem{
		transforms: ecs.NewMap[components.Transform](w),
		flyCams:    ecs.NewMap[components.FlyCam](w),
		cameras:    ecs.NewFilter1[components.Camera](w),
		fly:        ecs.NewFilter2[components.Camera, components.FlyCam](w),
		player:     ecs.NewFilter2[components.Camera, components.PlayerCam](w),
	}
}

// Update writes one camera and returns it. ok is false when the camera
// picked by in.Locked does not exist or has no transform.
func (s *CameraWriteSystem) Update(in WriteInput) (ecs.Entity, bool) {
	if in.Fovy > 0 {
		query := s.cameras.Query()
		for query.Next() {
			query.Get().Fovy = in.Fovy
		}
	}

	var e ecs.Entity
	var found bool
	if in.Locked {
		q := s.player.Query()
		if q.Next() {
			e, found = q.Entity(), true
			q.Close()
		}
	} else {
		q := s.fly.Query()
		if q.Next() {
			e, found = q.Entity(), true
			q.Close()
		}
	}
	if !found || !s.transforms.Has(e) {
		return ecs.Entity{}, false
	}

	t := s.transforms.Get(e)
	res := in.Result
	if !res.Override && !res.Look {
		// Free: the current rig drives the camera, else raw fly movement stands
		if in.HasRig {
			*t = in.Rig
			if s.flyCams.Has(e) {
				syncFlyAngles(s.flyCams.Get(e), t.Forward())
			}
		}
		return e, true
	}
	*t = res.Place(*t, in.Target, in.Focus)
	return e, true
}

// syncFlyAngles sets yaw and pitch to match forward, so mouse look resumes
// from the rig's orientation once the rig lets go.
func syncFlyAngles(fc *components.FlyCam, forward rl.Vector3) {
	fc.Yaw = float32(math.Atan2(float64(-forward.X), float64(-forward.Z)))
	pitch := float32(math.Asin(float64(max(-1, min(1, forward.Y)))))
	fc.Pitch = max(-components.MaxFlyPitch, min(components.MaxFlyPitch, pitch))
}
