package systems

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/configcam/components"
	"github.com/pthm-cable/configcam/driver"
	"github.com/pthm-cable/configcam/input"
	"github.com/pthm-cable/configcam/rig"
)

// RigSettings tunes how input steers the rigs.
type RigSettings struct {
	LookSpeed  float32 // Degrees per mouse unit
	KeyYawStep float32 // Degrees per rotate key press
	FpvBoost   float32 // Speed multiplier while boost is held
}

// Steering is the input for the single rig that may be steered this tick.
// A nil Marker steers nothing.
type Steering struct {
	Marker  driver.Marker
	State   input.State
	Keys    input.KeyMap
	Grabbed bool
	Speed   float32 // Units per second for Fpv movement
}

// RigSystem updates every rig entity. Each rig entity carries a rig.Handle
// and the driver tag of the camera it drives.
type RigSystem struct {
	world  *ecs.World
	filter *ecs.Filter1[rig.Handle]
}

// NewRigSystem creates a new rig system.
func NewRigSystem(w *ecs.World) *RigSystem {
	return &RigSystem{
		world:  w,
		filter: ecs.NewFilter1[rig.Handle](w),
	}
}

// Update feeds the subject and focus into every rig, steers the rig tagged
// with steer.Marker, then composes all rigs.
func (s *RigSystem) Update(subject rl.Vector3, hasSubject bool, focus rl.Vector3, steer Steering, rs *RigSettings, dt float32) {
	for _, er := range s.collect() {
		r := er.rig
		if hasSubject {
			if p, ok := rig.Find[*rig.Position](r); ok {
				p.SetPosition(subject)
			}
		}
		if la, ok := rig.Find[*rig.LookAt](r); ok {
			la.SetTarget(focus)
		}
		if steer.Marker != nil && steer.Marker.Has(s.world, er.entity) {
			steerRig(r, steer, rs, dt)
		}
		r.Update(dt)
	}
}

type entityRig struct {
	entity ecs.Entity
	rig    *rig.Rig
}

// collect gathers rigs first so marker lookups never run inside a query.
func (s *RigSystem) collect() []entityRig {
	var rigs []entityRig
	query := s.filter.Query()
	for query.Next() {
		if h := query.Get(); h.Rig != nil {
			rigs = append(rigs, entityRig{entity: query.Entity(), rig: h.Rig})
		}
	}
	return rigs
}

func steerRig(r *rig.Rig, steer Steering, rs *RigSettings, dt float32) {
	in, keys := steer.State, steer.Keys

	if fpv, ok := rig.Find[*rig.Fpv](r); ok {
		var move rl.Vector3
		if keys.Held(in, input.Forward) {
			move.Z--
		}
		if keys.Held(in, input.Backward) {
			move.Z++
		}
		if keys.Held(in, input.Right) {
			move.X++
		}
		if keys.Held(in, input.Left) {
			move.X--
		}
		if keys.Held(in, input.Up) {
			move.Y++
		}
		if keys.Held(in, input.Down) {
			move.Y--
		}
		if rl.Vector3Length(move) > 0 {
			move = rl.Vector3Scale(rl.Vector3Normalize(move), steer.Speed*dt)
			fpv.Move(move, keys.Held(in, input.Boost), rs.FpvBoost, true)
		}
		if steer.Grabbed {
			fpv.Look(in.MouseDelta(), rs.LookSpeed)
		}
		return
	}

	yp, ok := rig.Find[*rig.YawPitch](r)
	if !ok {
		return
	}
	// Pinned rigs hold their angles
	if p, ok := rig.Find[*rig.Position](r); ok && p.Pinned {
		return
	}
	if steer.Grabbed {
		d := in.MouseDelta()
		yp.Rotate(-d.X*rs.LookSpeed, -d.Y*rs.LookSpeed)
	}
	if keys.Pressed(in, input.RotateLeft) {
		yp.Rotate(-rs.KeyYawStep, 0)
	}
	if keys.Pressed(in, input.RotateRight) {
		yp.Rotate(rs.KeyYawStep, 0)
	}
}

// rigFor returns the rig on the entity tagged with m.
func (s *RigSystem) rigFor(m driver.Marker) (*rig.Rig, bool) {
	if m == nil {
		return nil, false
	}
	for _, er := range s.collect() {
		if m.Has(s.world, er.entity) {
			return er.rig, true
		}
	}
	return nil, false
}

// Final returns the last composed transform of the rig tagged with m.
func (s *RigSystem) Final(m driver.Marker) (components.Transform, bool) {
	r, ok := s.rigFor(m)
	if !ok {
		return components.Transform{}, false
	}
	return r.Final(), true
}

// TogglePin flips the pin on the Position driver of the rig tagged with m.
// ok is false when that rig has no Position driver.
func (s *RigSystem) TogglePin(m driver.Marker) (pinned, ok bool) {
	r, ok := s.rigFor(m)
	if !ok {
		return false, false
	}
	p, ok := rig.Find[*rig.Position](r)
	if !ok {
		return false, false
	}
	return p.TogglePin(), true
}
