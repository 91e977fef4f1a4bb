package driver

import (
	"errors"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/configcam/components"
)

func newRegistry(t *testing.T, markers ...Marker) *Registry {
	t.Helper()
	r, err := NewRegistry(markers...)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	return r
}

func TestAdvanceIsPeriodic(t *testing.T) {
	names := []string{"A", "B", "C", "D"}

	for n := 1; n <= len(names); n++ {
		var markers []Marker
		for _, name := range names[:n] {
			markers = append(markers, Tag[components.Orbit](name))
		}
		r := newRegistry(t, markers...)

		for step := 1; step <= 3*n; step++ {
			if err := r.Advance(); err != nil {
				t.Fatalf("n=%d: Advance failed: %v", n, err)
			}
			id, _ := r.Current()
			if want := ID(step % n); id != want {
				t.Errorf("n=%d step=%d: got index %d, want %d", n, step, id, want)
			}
		}
	}
}

func TestEmptyRegistry(t *testing.T) {
	r := newRegistry(t)

	if err := r.Advance(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Advance: got %v, want ErrInvalidState", err)
	}
	if _, err := r.Current(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Current: got %v, want ErrInvalidState", err)
	}
	if changes := r.Apply(ecs.NewWorld(), nil); len(changes) != 0 {
		t.Errorf("expected no changes, got %d", len(changes))
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := newRegistry(t, Tag[components.Orbit]("Orbit"))
	if _, err := r.Register(Tag[components.Fpv]("Orbit")); !errors.Is(err, ErrDuplicateDriver) {
		t.Errorf("got %v, want ErrDuplicateDriver", err)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 driver, got %d", r.Len())
	}
}

func TestSelect(t *testing.T) {
	r := newRegistry(t, Tag[components.Orbit]("Orbit"), Tag[components.Fpv]("Fpv"))

	if err := r.Select("Fpv"); err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	m, _ := r.CurrentMarker()
	if m.Name() != "Fpv" {
		t.Errorf("got current %s, want Fpv", m.Name())
	}
	if err := r.Select("Nope"); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("got %v, want ErrUnknownDriver", err)
	}
}

func TestApplySwapsRolesAfterAdvance(t *testing.T) {
	w := ecs.NewWorld()
	cams := ecs.NewMap[components.Camera](w)
	c1 := cams.NewEntity(&components.Camera{Name: "fly", Active: true})
	c2 := cams.NewEntity(&components.Camera{Name: "player", Active: true})
	active := []ecs.Entity{c1, c2}

	a := Tag[components.Orbit]("A")
	b := Tag[components.Fpv]("B")
	r := newRegistry(t, a, b)

	changes := r.Apply(w, active)
	if len(changes) != 4 {
		t.Errorf("expected one change per driver per camera (4), got %d", len(changes))
	}
	for _, cam := range active {
		if !a.Has(w, cam) {
			t.Errorf("expected A attached to %v", cam)
		}
		if b.Has(w, cam) {
			t.Errorf("expected B detached from %v", cam)
		}
	}
	if r.Dirty() {
		t.Error("expected registry clean after Apply")
	}

	if err := r.Advance(); err != nil {
		t.Fatal(err)
	}
	r.Apply(w, active)
	for _, cam := range active {
		if a.Has(w, cam) {
			t.Errorf("expected A detached from %v", cam)
		}
		if !b.Has(w, cam) {
			t.Errorf("expected B attached to %v", cam)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	w := ecs.NewWorld()
	cam := ecs.NewMap[components.Camera](w).NewEntity(&components.Camera{Active: true})
	m := Tag[components.Pinned]("Pinned")
	r := newRegistry(t, m)

	// Attaching twice must not panic on a duplicate component
	r.Apply(w, []ecs.Entity{cam})
	r.Invalidate()
	r.Apply(w, []ecs.Entity{cam})

	if !m.Has(w, cam) {
		t.Error("expected Pinned attached")
	}
}

func TestMarkerIgnoresDeadEntity(t *testing.T) {
	w := ecs.NewWorld()
	cams := ecs.NewMap[components.Camera](w)
	cam := cams.NewEntity(&components.Camera{})
	w.RemoveEntity(cam)

	m := Tag[components.Orbit]("Orbit")
	m.Attach(w, cam)
	if m.Has(w, cam) {
		t.Error("dead entity reported as tagged")
	}
}
