package driver

import "github.com/mlange-42/ark/ecs"

// Marker identifies a driver and can attach or detach its tag component on
// an entity. Host applications add their own drivers by registering a Marker.
type Marker interface {
	Name() string
	Attach(w *ecs.World, e ecs.Entity)
	Detach(w *ecs.World, e ecs.Entity)
	Has(w *ecs.World, e ecs.Entity) bool
}

// tagMarker is a Marker backed by the component type T.
type tagMarker[T any] struct {
	name string
}

// Tag returns a Marker that attaches a zero value of T.
func Tag[T any](name string) Marker {
	return tagMarker[T]{name: name}
}

func (m tagMarker[T]) Name() string { return m.name }

// Attach is a no-op for dead entities or when the tag is already present.
func (m tagMarker[T]) Attach(w *ecs.World, e ecs.Entity) {
	if !w.Alive(e) {
		return
	}
	tags := ecs.NewMap[T](w)
	if tags.Has(e) {
		return
	}
	var zero T
	tags.Add(e, &zero)
}

// Detach is a no-op for dead entities or when the tag is absent.
func (m tagMarker[T]) Detach(w *ecs.World, e ecs.Entity) {
	if !w.Alive(e) {
		return
	}
	tags := ecs.NewMap[T](w)
	if !tags.Has(e) {
		return
	}
	tags.Remove(e)
}

func (m tagMarker[T]) Has(w *ecs.World, e ecs.Entity) bool {
	if !w.Alive(e) {
		return false
	}
	return ecs.NewMap[T](w).Has(e)
}
