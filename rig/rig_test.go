package rig

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/configcam/components"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func nearVec(a, b rl.Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestEmptyRigIsIdentity(t *testing.T) {
	r := New()
	got := r.Update(0.016)
	if !got.IsIdentity() {
		t.Errorf("expected identity, got %+v", got)
	}
}

func TestYawPitchClampAndWrap(t *testing.T) {
	tests := []struct {
		name               string
		yaw, pitch         float32
		wantYaw, wantPitch float32
	}{
		{"in range", 30, 10, 30, 10},
		{"yaw wraps past 360", 370, 0, 10, 0},
		{"negative yaw wraps", -90, 0, 270, 0},
		{"pitch clamps up", 0, 120, 0, MaxPitch},
		{"pitch clamps down", 0, -95, 0, -MaxPitch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yp := &YawPitch{}
			yp.Rotate(tt.yaw, tt.pitch)
			if !near(yp.Yaw, tt.wantYaw) {
				t.Errorf("yaw: got %f, want %f", yp.Yaw, tt.wantYaw)
			}
			if !near(yp.Pitch, tt.wantPitch) {
				t.Errorf("pitch: got %f, want %f", yp.Pitch, tt.wantPitch)
			}
		})
	}
}

func TestYawPitchHasNoRoll(t *testing.T) {
	yp := &YawPitch{}
	yp.SetYawPitch(135, -40)
	got := yp.Update(Context{Parent: components.Identity()})

	// Local right axis stays horizontal
	if right := got.LocalX(); !near(right.Y, 0) {
		t.Errorf("expected level right axis, got %+v", right)
	}
}

func TestArmRotatesWithParent(t *testing.T) {
	parent := components.Transform{
		Translation: rl.Vector3{X: 1, Y: 2, Z: 3},
		Rotation:    components.RotationY(math.Pi / 2),
	}
	arm := &Arm{Offset: rl.Vector3{Z: 4}}
	got := arm.Update(Context{Parent: parent})

	want := rl.Vector3{X: 5, Y: 2, Z: 3}
	if !nearVec(got.Translation, want) {
		t.Errorf("got %+v, want %+v", got.Translation, want)
	}
}

func TestSmoothFirstUpdateSnaps(t *testing.T) {
	s := &Smooth{PositionTime: 1, RotationTime: 1}
	parent := components.FromXYZ(10, 0, 0)
	got := s.Update(Context{Parent: parent, DeltaTime: 0.1})
	if !nearVec(got.Translation, parent.Translation) {
		t.Errorf("expected snap to %+v, got %+v", parent.Translation, got.Translation)
	}
}

func TestSmoothApproachesWithoutOvershoot(t *testing.T) {
	s := &Smooth{PositionTime: 1}
	s.Update(Context{Parent: components.Identity(), DeltaTime: 0.016})

	target := components.FromXYZ(10, 0, 0)
	got := s.Update(Context{Parent: target, DeltaTime: 0.5})
	if !near(got.Translation.X, 5) {
		t.Errorf("after half duration: got x=%f, want 5", got.Translation.X)
	}

	// A frame spike longer than the duration lands exactly on target
	got = s.Update(Context{Parent: target, DeltaTime: 10})
	if got.Translation.X != 10 {
		t.Errorf("after spike: got x=%f, want 10", got.Translation.X)
	}
}

func TestSmoothZeroDurationSnaps(t *testing.T) {
	s := &Smooth{}
	s.Update(Context{Parent: components.Identity(), DeltaTime: 0.016})
	got := s.Update(Context{Parent: components.FromXYZ(0, 3, 0), DeltaTime: 0.016})
	if got.Translation.Y != 3 {
		t.Errorf("got y=%f, want 3", got.Translation.Y)
	}
}

func TestLookAtFacesTarget(t *testing.T) {
	tests := []struct {
		name   string
		parent components.Transform
		target rl.Vector3
	}{
		{"ahead", components.FromXYZ(0, 0, 0), rl.Vector3{Z: -10}},
		{"behind", components.FromXYZ(0, 0, 0), rl.Vector3{Z: 10}},
		{"right", components.FromXYZ(0, 0, 0), rl.Vector3{X: 10}},
		{"left", components.FromXYZ(0, 0, 0), rl.Vector3{X: -10}},
		{"diagonal from above", components.FromXYZ(3, 5, -2), rl.Vector3{X: -4, Z: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &LookAt{}
			l.SetTarget(tt.target)
			got := l.Update(Context{Parent: tt.parent})

			want := rl.Vector3Normalize(rl.Vector3Subtract(tt.target, tt.parent.Translation))
			if !nearVec(got.Forward(), want) {
				t.Errorf("forward: got %+v, want %+v", got.Forward(), want)
			}
		})
	}
}

func TestLookAtDegenerateKeepsParentRotation(t *testing.T) {
	parent := components.Transform{
		Translation: rl.Vector3{X: 1},
		Rotation:    components.RotationY(1),
	}
	l := &LookAt{Target: parent.Translation}
	got := l.Update(Context{Parent: parent})
	if got.Rotation != parent.Rotation {
		t.Errorf("expected parent rotation kept, got %+v", got.Rotation)
	}
}

func TestOrbitRigComposition(t *testing.T) {
	r := OrbitRig()

	wantKinds := []string{"Position", "YawPitch", "Arm", "Smooth"}
	kinds := r.Kinds()
	if len(kinds) != len(wantKinds) {
		t.Fatalf("got kinds %v, want %v", kinds, wantKinds)
	}
	for i := range wantKinds {
		if kinds[i] != wantKinds[i] {
			t.Errorf("kind %d: got %s, want %s", i, kinds[i], wantKinds[i])
		}
	}

	pos, ok := Find[*Position](r)
	if !ok {
		t.Fatal("orbit rig has no Position driver")
	}
	pos.SetPosition(rl.Vector3{X: 1, Y: 2, Z: 3})

	got := r.Update(0.016)
	offset := rl.Vector3Subtract(got.Translation, pos.Position)

	// Arm of 4 pitched down 30 degrees and yawed 45 degrees
	if !near(rl.Vector3Length(offset), 4) {
		t.Errorf("arm length: got %f, want 4", rl.Vector3Length(offset))
	}
	if !near(offset.Y, 2) {
		t.Errorf("height: got %f, want 2", offset.Y)
	}
	if !near(offset.X, offset.Z) {
		t.Errorf("expected 45 degree yaw, got offset %+v", offset)
	}
	if r.Final() != got {
		t.Error("Final() does not match last Update()")
	}
}

func TestPinnedPositionIgnoresSetPosition(t *testing.T) {
	p := &Position{}
	p.SetPosition(rl.Vector3{X: 1})
	if !p.TogglePin() {
		t.Fatal("expected pinned after toggle")
	}
	p.SetPosition(rl.Vector3{X: 9})
	if p.Position.X != 1 {
		t.Errorf("pinned position moved to %f", p.Position.X)
	}
}

func TestRotationOverridesParent(t *testing.T) {
	q := components.RotationY(math.Pi / 2)
	p := &Position{}
	p.SetPosition(rl.Vector3{X: 1})
	p.Translate(rl.Vector3{Z: 2})
	r := New(p, &Rotation{Rotation: q}, &Arm{Offset: rl.Vector3{Z: 1}})

	got := r.Update(0.016)
	if !nearVec(got.Translation, rl.Vector3{X: 2, Z: 2}) {
		t.Errorf("got translation %+v, want (2,0,2)", got.Translation)
	}
	if !near(got.Rotation.Y, q.Y) || !near(got.Rotation.W, q.W) {
		t.Errorf("got rotation %+v, want %+v", got.Rotation, q)
	}
}

func TestPinnedRigLooksAtTarget(t *testing.T) {
	r := PinnedRig(5)
	look, ok := Find[*LookAt](r)
	if !ok {
		t.Fatal("pinned rig has no LookAt driver")
	}
	look.SetTarget(rl.Vector3{})

	got := r.Update(0.016)
	want := rl.Vector3Normalize(rl.Vector3Negate(got.Translation))
	if !nearVec(got.Forward(), want) {
		t.Errorf("forward: got %+v, want %+v", got.Forward(), want)
	}
}

func TestFpvPlanarMoveStaysLevel(t *testing.T) {
	f := &Fpv{Yaw: 90, Pitch: 45}
	f.Move(rl.Vector3{Z: -1}, false, 5, true)
	want := rl.Vector3{X: -1}
	if !nearVec(f.Position, want) {
		t.Errorf("planar: got %+v, want %+v", f.Position, want)
	}

	f = &Fpv{Yaw: 90, Pitch: 45}
	f.Move(rl.Vector3{Z: -1}, true, 5, false)
	if f.Position.Y <= 0 {
		t.Errorf("expected upward motion when pitched up, got %+v", f.Position)
	}
	if !near(rl.Vector3Length(f.Position), 5) {
		t.Errorf("boost: got length %f, want 5", rl.Vector3Length(f.Position))
	}
}

func TestFpvLook(t *testing.T) {
	f := &Fpv{}
	f.Look(rl.Vector2{X: 10, Y: -200}, 1)
	if !near(f.Yaw, 350) {
		t.Errorf("yaw: got %f, want 350", f.Yaw)
	}
	if f.Pitch != MaxPitch {
		t.Errorf("pitch: got %f, want %f", f.Pitch, float32(MaxPitch))
	}
}

func TestFindMissingDriver(t *testing.T) {
	if _, ok := Find[*Fpv](OrbitRig()); ok {
		t.Error("expected no Fpv driver in orbit rig")
	}
}
