package camera

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/configcam/components"
)

// Switcher keeps exactly one camera active, toggling between the fly cam
// and the player cam when the locked-to-player flag changes.
type Switcher struct {
	locked  bool
	cameras *ecs.Map[components.Camera]
	fly     *ecs.Filter2[components.Camera, components.FlyCam]
	player  *ecs.Filter2[components.Camera, components.PlayerCam]
	all     *ecs.Filter1[components.Camera]
}

// NewSwitcher creates a switcher for w. The fly cam starts active.
func NewSwitcher(w *ecs.World) *Switcher {
	return &Switcher{
		cameras: ecs.NewMap[components.Camera](w),
		fly:     ecs.NewFilter2[components.Camera, components.FlyCam](w),
		player:  ecs.NewFilter2[components.Camera, components.PlayerCam](w),
		all:     ecs.NewFilter1[components.Camera](w),
	}
}

// Locked returns the last seen locked-to-player value.
func (s *Switcher) Locked() bool {
	return s.locked
}

// Update swaps the active camera when locked differs from the last call.
// It reports whether a swap happened. If either camera is missing nothing
// changes and ErrMissingEntity is returned.
func (s *Switcher) Update(locked bool) (bool, error) {
	if locked == s.locked {
		return false, nil
	}
	var fly, player ecs.Entity
	fq := s.fly.Query()
	if !fq.Next() {
		return false, fmt.Errorf("switch camera: fly cam: %w", ErrMissingEntity)
	}
	fly = fq.Entity()
	fq.Close()

	pq := s.player.Query()
	if !pq.Next() {
		return false, fmt.Errorf("switch camera: player cam: %w", ErrMissingEntity)
	}
	player = pq.Entity()
	pq.Close()

	// Both flags are written together so no frame sees zero or two active cameras
	s.cameras.Get(player).Active = locked
	s.cameras.Get(fly).Active = !locked
	s.locked = locked
	return true, nil
}

// Active returns the single active camera.
func (s *Switcher) Active() (ecs.Entity, bool) {
	var active ecs.Entity
	found := false
	query := s.all.Query()
	for query.Next() {
		if query.Get().Active && !found {
			active, found = query.Entity(), true
		}
	}
	return active, found
}

// Validate returns ErrInvalidState unless exactly one camera is active.
func (s *Switcher) Validate() error {
	n := 0
	query := s.all.Query()
	for query.Next() {
		if query.Get().Active {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("%d active cameras: %w", n, ErrInvalidState)
	}
	return nil
}
