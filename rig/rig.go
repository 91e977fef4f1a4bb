// Package rig composes camera transforms from an ordered stack of drivers.
//
// Each tick the rig starts from the identity transform and hands it to the
// first driver; every driver receives the previous driver's output as its
// parent and returns a new transform. The last output is the rig's final
// transform. Order is fixed at construction: the built-in presets place
// position first, then rotation, then the arm offset, then look-at, and
// smoothing last.
package rig

import "github.com/pthm-cable/configcam/components"

// Context is what a driver sees during one update.
type Context struct {
	Parent    components.Transform
	DeltaTime float32
}

// Driver contributes one step of a rig's transform.
type Driver interface {
	// Kind is a stable identifier used for lookup and logging.
	Kind() string
	// Update returns the transform after this driver has been applied.
	Update(ctx Context) components.Transform
}

// Handle is the ECS component carrying a rig. The rig entity also carries
// the driver tag of the camera it drives.
type Handle struct {
	Name string
	Rig  *Rig
}

// Rig is an ordered sequence of drivers plus its last resolved transform.
type Rig struct {
	drivers []Driver
	final   components.Transform
}

// New creates a rig from drivers in composition order.
func New(drivers ...Driver) *Rig {
	r := &Rig{
		drivers: drivers,
		final:   components.Identity(),
	}
	return r
}

// Update runs every driver once and caches the result.
func (r *Rig) Update(dt float32) components.Transform {
	t := components.Identity()
	for _, d := range r.drivers {
		t = d.Update(Context{Parent: t, DeltaTime: dt})
	}
	r.final = t
	return t
}

// Final returns the transform computed by the last Update.
func (r *Rig) Final() components.Transform {
	return r.final
}

// Drivers returns the rig's drivers in composition order.
func (r *Rig) Drivers() []Driver {
	return r.drivers
}

// Kinds lists driver kinds in composition order.
func (r *Rig) Kinds() []string {
	kinds := make([]string, len(r.drivers))
	for i, d := range r.drivers {
		kinds[i] = d.Kind()
	}
	return kinds
}

// Find returns the first driver of type T in the rig.
func Find[T Driver](r *Rig) (T, bool) {
	for _, d := range r.drivers {
		if typed, ok := d.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}
