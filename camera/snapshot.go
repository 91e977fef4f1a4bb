package camera

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/configcam/components"
)

// Snapshot is a read-only copy of transforms taken before a tick writes any.
// Reads during the tick go through the snapshot so camera writes never
// alias the transforms they were computed from.
type Snapshot struct {
	transforms map[ecs.Entity]components.Transform
	targets    []ecs.Entity // Target-tagged, sorted by entity ID
}

// NewSnapshot copies every transform in w.
func NewSnapshot(w *ecs.World) *Snapshot {
	s := &Snapshot{transforms: make(map[ecs.Entity]components.Transform)}

	all := ecs.NewFilter1[components.Transform](w)
	query := all.Query()
	for query.Next() {
		s.transforms[query.Entity()] = *query.Get()
	}

	targets := ecs.NewFilter2[components.Transform, components.Target](w)
	tq := targets.Query()
	for tq.Next() {
		s.targets = append(s.targets, tq.Entity())
	}
	s.sortTargets()
	return s
}

// EmptySnapshot returns a snapshot with no entities, filled with Put.
func EmptySnapshot() *Snapshot {
	return &Snapshot{transforms: make(map[ecs.Entity]components.Transform)}
}

// Put records a transform, optionally as a focus target.
func (s *Snapshot) Put(e ecs.Entity, t components.Transform, target bool) {
	s.transforms[e] = t
	if target && !slices.Contains(s.targets, e) {
		s.targets = append(s.targets, e)
		s.sortTargets()
	}
}

// Transform looks up an entity's transform. Absent entities are not an error.
func (s *Snapshot) Transform(e ecs.Entity) (components.Transform, bool) {
	t, ok := s.transforms[e]
	return t, ok
}

// TargetPoints returns target translations in entity ID order.
func (s *Snapshot) TargetPoints() []rl.Vector3 {
	points := make([]rl.Vector3, 0, len(s.targets))
	for _, e := range s.targets {
		points = append(points, s.transforms[e].Translation)
	}
	return points
}

func (s *Snapshot) sortTargets() {
	slices.SortFunc(s.targets, func(a, b ecs.Entity) int {
		return int(a.ID()) - int(b.ID())
	})
}
