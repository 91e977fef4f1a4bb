package input

import (
	"errors"
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestParseKeyRoundTrip(t *testing.T) {
	for _, name := range []string{"W", "Space", "LeftShift", "Comma", "F5", "Seven"} {
		k, err := ParseKey(name)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", name, err)
		}
		if k.String() != name {
			t.Errorf("got %s, want %s", k.String(), name)
		}
	}
	if _, err := ParseKey("Hyper"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("got %v, want ErrUnknownKey", err)
	}
}

func TestParseKeyMap(t *testing.T) {
	km, err := ParseKeyMap(map[string][]string{
		"forward":   {"W", "Up"},
		"next_mode": {"C"},
	})
	if err != nil {
		t.Fatalf("ParseKeyMap failed: %v", err)
	}
	if len(km[Forward]) != 2 || km[Forward][1] != Key(rl.KeyUp) {
		t.Errorf("forward: got %v", km[Forward])
	}

	tests := []struct {
		name  string
		names map[string][]string
	}{
		{"unknown action", map[string][]string{"jump": {"Space"}}},
		{"unknown key", map[string][]string{"forward": {"Hyper"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseKeyMap(tt.names); !errors.Is(err, ErrUnknownKey) {
				t.Errorf("got %v, want ErrUnknownKey", err)
			}
		})
	}
}

func TestVelocity(t *testing.T) {
	km := DefaultCameraKeys()
	forward := rl.Vector3{Z: -1}
	right := rl.Vector3{X: 1}
	diag := float32(1 / math.Sqrt2)

	tests := []struct {
		name string
		held []Key
		want rl.Vector3
	}{
		{"nothing held", nil, rl.Vector3{}},
		{"forward", []Key{Key(rl.KeyW)}, rl.Vector3{Z: -1}},
		{"opposing keys cancel", []Key{Key(rl.KeyW), Key(rl.KeyS)}, rl.Vector3{}},
		{"diagonal is normalized", []Key{Key(rl.KeyW), Key(rl.KeyD)}, rl.Vector3{X: diag, Z: -diag}},
		{"down", []Key{Key(rl.KeyLeftShift)}, rl.Vector3{Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Velocity(NewFrame().Hold(tt.held...), km, forward, right)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRotateLeftWrapsOncePerTurn(t *testing.T) {
	angle := float32(0)
	wraps := 0
	for i := 0; i < 640; i++ {
		next := RotateLeftBy(angle, 0.1)
		if next < 0 {
			t.Fatalf("step %d: negative angle %f", i, next)
		}
		if next < angle {
			wraps++
			if !near(next, 0.1) {
				t.Errorf("step %d: wrapped to %f, want 0.1", i, next)
			}
		}
		angle = next
	}
	// 63 steps per turn after the first crossing at step 64
	if wraps != 10 {
		t.Errorf("got %d wraps, want 10", wraps)
	}
}

func TestRotateRightNeverNegative(t *testing.T) {
	angle := float32(0)
	for i := 0; i < 640; i++ {
		angle = RotateRightBy(angle, 0.1)
		if angle < 0 {
			t.Fatalf("step %d: negative angle %f", i, angle)
		}
		if angle > fullTurn {
			t.Fatalf("step %d: angle %f exceeds a full turn", i, angle)
		}
	}
}

func TestRotationUsesPlayerKeys(t *testing.T) {
	km := DefaultPlayerKeys()
	got := Rotation(NewFrame().Hold(Key(rl.KeyLeft)), km, 1, 0.1)
	if !near(got, 1.1) {
		t.Errorf("left: got %f, want 1.1", got)
	}
	got = Rotation(NewFrame().Hold(Key(rl.KeyRight)), km, 1, 0.1)
	if !near(got, 0.9) {
		t.Errorf("right: got %f, want 0.9", got)
	}
}

func TestTriggersNeedPressEdge(t *testing.T) {
	km := DefaultCameraKeys()

	held := ReadTriggers(NewFrame().Hold(Key(rl.KeyC)), km)
	if held.Any() {
		t.Errorf("held key fired triggers: %+v", held)
	}

	pressed := ReadTriggers(NewFrame().Press(Key(rl.KeyC), Key(rl.KeyT)), km)
	if !pressed.NextMode || !pressed.NextDriver || pressed.NextSetting {
		t.Errorf("got %+v, want NextMode and NextDriver", pressed)
	}
}

func TestScrollCycle(t *testing.T) {
	s := NewScroll(DefaultScrollSteps())
	if s.Type != MovementSpeed {
		t.Fatalf("initial type: got %s, want MovementSpeed", s.Type)
	}

	want := []ScrollType{Lerp, CamFwd, Sensitivity, Zoom, MovementSpeed}
	for i, w := range want {
		if got := s.Cycle(); got != w {
			t.Errorf("cycle %d: got %s, want %s", i, got, w)
		}
	}
}

func TestScrollApply(t *testing.T) {
	speed, sens, fovy, lerp := float32(1), float32(0.00001), float32(45), float32(0.995)
	camFwd := false
	targets := ScrollTargets{Speed: &speed, Sensitivity: &sens, Fovy: &fovy, Lerp: &lerp, CamForward: &camFwd}
	s := NewScroll(DefaultScrollSteps())

	s.Apply(-20, targets)
	if !near(speed, 1) {
		t.Errorf("speed: got %f, want |1-2| = 1", speed)
	}

	s.Type = Zoom
	s.Apply(5, targets)
	if !near(fovy, 40) {
		t.Errorf("fovy: got %f, want 40", fovy)
	}
	s.Apply(35, targets)
	if fovy != s.MinFovy {
		t.Errorf("fovy: got %f, want clamped to %f", fovy, s.MinFovy)
	}

	s.Type = Lerp
	s.Apply(2, targets)
	if lerp != 1 {
		t.Errorf("lerp: got %f, want clamped to 1", lerp)
	}

	s.Type = CamFwd
	s.Apply(-1, targets)
	if camFwd {
		t.Error("cam forward toggled on a downward scroll")
	}
	s.Apply(1, targets)
	if !camFwd {
		t.Error("cam forward did not toggle")
	}

	s.Type = Sensitivity
	s.Apply(1, targets)
	if !near(sens, 0.000011) {
		t.Errorf("sensitivity: got %g, want 0.000011", sens)
	}
}
