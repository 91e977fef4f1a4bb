package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/configcam/components"
)

// Beacon circles the origin and serves as the external focus target.
type Beacon struct {
	Radius float32
	Speed  float32 // Radians per second
	Angle  float32
	Height float32
}

// Scene holds the demo props the camera can look at.
type Scene struct {
	beacon  ecs.Entity
	beacons *ecs.Filter2[components.Transform, Beacon]
	players *ecs.Filter2[components.Transform, components.PlayerMove]
	targets *ecs.Filter2[components.Transform, components.Target]
	moves   *ecs.Map[components.PlayerMove]
}

// propPositions are the static Target-tagged crates.
var propPositions = []rl.Vector3{
	{X: 6, Z: -4},
	{X: -5, Z: -6},
	{X: -3, Z: 7},
}

// NewScene spawns the props and the beacon.
func NewScene(w *ecs.World) *Scene {
	props := ecs.NewMap2[components.Transform, components.Target](w)
	for _, p := range propPositions {
		t := components.Transform{Translation: p, Rotation: rl.QuaternionIdentity()}
		props.NewEntity(&t, &components.Target{})
	}

	beacons := ecs.NewMap2[components.Transform, Beacon](w)
	bt := components.Identity()
	b := Beacon{Radius: 10, Speed: 0.5, Height: 2}
	beacon := beacons.NewEntity(&bt, &b)

	s := &Scene{
		beacon:  beacon,
		beacons: ecs.NewFilter2[components.Transform, Beacon](w),
		players: ecs.NewFilter2[components.Transform, components.PlayerMove](w),
		targets: ecs.NewFilter2[components.Transform, components.Target](w),
		moves:   ecs.NewMap[components.PlayerMove](w),
	}
	s.Update(0)
	return s
}

// Beacon returns the beacon entity.
func (s *Scene) Beacon() ecs.Entity {
	return s.beacon
}

// Update moves the beacon along its circle.
func (s *Scene) Update(dt float32) {
	query := s.beacons.Query()
	for query.Next() {
		t, b := query.Get()
		b.Angle = float32(math.Mod(float64(b.Angle+b.Speed*dt), 2*math.Pi))
		sin, cos := math.Sincos(float64(b.Angle))
		t.Translation = rl.Vector3{X: b.Radius * float32(cos), Y: b.Height, Z: b.Radius * float32(sin)}
	}
}

// Draw renders the ground grid, props, beacon and player. Call between
// BeginMode3D and EndMode3D.
func (s *Scene) Draw() {
	rl.DrawGrid(40, 1)

	tq := s.targets.Query()
	for tq.Next() {
		if s.moves.Has(tq.Entity()) {
			continue
		}
		t, _ := tq.Get()
		rl.DrawCube(rl.Vector3Add(t.Translation, rl.Vector3{Y: 0.5}), 1, 1, 1, rl.Brown)
	}

	bq := s.beacons.Query()
	for bq.Next() {
		t, _ := bq.Get()
		rl.DrawSphere(t.Translation, 0.4, rl.Gold)
	}

	pq := s.players.Query()
	for pq.Next() {
		t, _ := pq.Get()
		center := rl.Vector3Add(t.Translation, rl.Vector3{Y: 0.5})
		rl.DrawCube(center, 0.8, 1, 0.8, rl.SkyBlue)
		nose := rl.Vector3Add(center, rl.Vector3Scale(t.Forward(), 0.8))
		rl.DrawLine3D(center, nose, rl.Red)
	}
}
