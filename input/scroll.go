package input

import "math"

// ScrollType is the setting the mouse wheel currently adjusts.
type ScrollType uint8

const (
	MovementSpeed ScrollType = iota
	Sensitivity
	Zoom
	Lerp
	CamFwd
)

var scrollNames = [...]string{"MovementSpeed", "Sensitivity", "Zoom", "Lerp", "CamFwd"}

func (t ScrollType) String() string {
	if int(t) < len(scrollNames) {
		return scrollNames[t]
	}
	return "Unknown"
}

// Next returns the following scroll type:
// Sensitivity, Zoom, MovementSpeed, Lerp, CamFwd, then Sensitivity again.
func (t ScrollType) Next() ScrollType {
	switch t {
	case Sensitivity:
		return Zoom
	case Zoom:
		return MovementSpeed
	case MovementSpeed:
		return Lerp
	case Lerp:
		return CamFwd
	default:
		return Sensitivity
	}
}

// ScrollSteps is the change per wheel notch for each setting.
type ScrollSteps struct {
	Speed       float32
	Sensitivity float32
	Zoom        float32
	Lerp        float32
}

// DefaultScrollSteps returns the stock steps.
func DefaultScrollSteps() ScrollSteps {
	return ScrollSteps{Speed: 0.1, Sensitivity: 0.000001, Zoom: 1, Lerp: 0.01}
}

// ScrollTargets are the settings the wheel can write. Nil entries are skipped.
type ScrollTargets struct {
	Speed       *float32
	Sensitivity *float32
	Fovy        *float32
	Lerp        *float32
	CamForward  *bool
}

// Scroll routes wheel movement to one setting at a time.
type Scroll struct {
	Type    ScrollType
	Steps   ScrollSteps
	MinFovy float32
	MaxFovy float32
}

// NewScroll starts on MovementSpeed.
func NewScroll(steps ScrollSteps) *Scroll {
	return &Scroll{Type: MovementSpeed, Steps: steps, MinFovy: 10, MaxFovy: 120}
}

// Cycle moves to the next scroll type and returns it.
func (s *Scroll) Cycle() ScrollType {
	s.Type = s.Type.Next()
	return s.Type
}

// Apply adjusts the current setting by wheel notches y.
// Values are kept non-negative; lerp stays in [0,1] and fovy in [MinFovy,MaxFovy].
func (s *Scroll) Apply(y float32, t ScrollTargets) {
	if y == 0 {
		return
	}
	switch s.Type {
	case MovementSpeed:
		if t.Speed != nil {
			*t.Speed = abs(*t.Speed + y*s.Steps.Speed)
		}
	case Sensitivity:
		if t.Sensitivity != nil {
			*t.Sensitivity = abs(*t.Sensitivity + y*s.Steps.Sensitivity)
		}
	case Zoom:
		if t.Fovy != nil {
			fovy := abs(*t.Fovy - y*s.Steps.Zoom)
			if s.MaxFovy > 0 {
				fovy = max(s.MinFovy, min(s.MaxFovy, fovy))
			}
			*t.Fovy = fovy
		}
	case Lerp:
		if t.Lerp != nil {
			*t.Lerp = min(1, abs(*t.Lerp+y*s.Steps.Lerp))
		}
	case CamFwd:
		if t.CamForward != nil && y > 0.01 {
			*t.CamForward = !*t.CamForward
		}
	}
}

func abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
