// Package driver tracks the rig drivers a camera can carry and which one is current.
package driver

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"
)

var (
	// ErrInvalidState is returned when an operation needs at least one registered driver.
	ErrInvalidState = errors.New("invalid state")
	// ErrDuplicateDriver is returned when a driver name is registered twice.
	ErrDuplicateDriver = errors.New("duplicate driver")
	// ErrUnknownDriver is returned when selecting a name that was never registered.
	ErrUnknownDriver = errors.New("unknown driver")
)

// ID is a driver's position in registration order.
type ID int

// Change records one attach or detach performed by Apply.
type Change struct {
	Driver   string
	Entity   ecs.Entity
	Attached bool
}

// Registry holds drivers in insertion order and a current index.
type Registry struct {
	markers []Marker
	index   int
	dirty   bool
}

// NewRegistry creates a registry with the given markers.
func NewRegistry(markers ...Marker) (*Registry, error) {
	r := &Registry{}
	for _, m := range markers {
		if _, err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a marker and returns its ID.
func (r *Registry) Register(m Marker) (ID, error) {
	for _, existing := range r.markers {
		if existing.Name() == m.Name() {
			return 0, fmt.Errorf("register %q: %w", m.Name(), ErrDuplicateDriver)
		}
	}
	r.markers = append(r.markers, m)
	r.dirty = true
	return ID(len(r.markers) - 1), nil
}

// Len returns the number of registered drivers.
func (r *Registry) Len() int {
	return len(r.markers)
}

// Markers returns the registered markers in order.
func (r *Registry) Markers() []Marker {
	return r.markers
}

// Current returns the current driver ID.
func (r *Registry) Current() (ID, error) {
	if len(r.markers) == 0 {
		return 0, fmt.Errorf("current driver: %w", ErrInvalidState)
	}
	return ID(r.index), nil
}

// CurrentMarker returns the current driver's marker.
func (r *Registry) CurrentMarker() (Marker, error) {
	id, err := r.Current()
	if err != nil {
		return nil, err
	}
	return r.markers[id], nil
}

// Advance moves to the next driver, wrapping to the first after the last.
func (r *Registry) Advance() error {
	if len(r.markers) == 0 {
		return fmt.Errorf("advance driver: %w", ErrInvalidState)
	}
	if r.index >= len(r.markers)-1 {
		r.index = 0
	} else {
		r.index++
	}
	r.dirty = true
	return nil
}

// Select makes the named driver current.
func (r *Registry) Select(name string) error {
	for i, m := range r.markers {
		if m.Name() == name {
			if i != r.index {
				r.index = i
				r.dirty = true
			}
			return nil
		}
	}
	return fmt.Errorf("select %q: %w", name, ErrUnknownDriver)
}

// Dirty reports whether the current driver changed since the last Apply.
func (r *Registry) Dirty() bool {
	return r.dirty
}

// Invalidate forces the next Apply to run even if the index is unchanged,
// e.g. when the set of active cameras changed.
func (r *Registry) Invalidate() {
	r.dirty = true
}

// Apply attaches the current driver's marker to every camera and detaches
// every other registered marker. All drivers are visited, not only the
// previous and new current ones, so one Change is returned per driver per camera.
func (r *Registry) Apply(w *ecs.World, cameras []ecs.Entity) []Change {
	if len(r.markers) == 0 {
		r.dirty = false
		return nil
	}
	changes := make([]Change, 0, len(r.markers)*len(cameras))
	for i, m := range r.markers {
		current := i == r.index
		for _, cam := range cameras {
			if current {
				m.Attach(w, cam)
			} else {
				m.Detach(w, cam)
			}
			changes = append(changes, Change{Driver: m.Name(), Entity: cam, Attached: current})
		}
	}
	r.dirty = false
	return changes
}
