package game

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/configcam/input"
)

// DefaultDT is the fixed step used when a scenario does not set one.
const DefaultDT = 1.0 / 60.0

// Scenario is a scripted input sequence for headless replays.
type Scenario struct {
	DT    float32        `yaml:"dt"`
	Steps []ScenarioStep `yaml:"steps"`
}

// ScenarioStep holds input for one or more ticks.
type ScenarioStep struct {
	Ticks  int        `yaml:"ticks"`  // Repeat count (0 = 1)
	Hold   []string   `yaml:"hold"`   // Keys held every tick
	Press  []string   `yaml:"press"`  // Keys pressed on the first tick
	Mouse  [2]float32 `yaml:"mouse"`  // Mouse delta every tick
	Wheel  float32    `yaml:"wheel"`  // Wheel notches on the first tick
	Mode   string     `yaml:"mode"`   // Select a mode by name before the step
	Driver string     `yaml:"driver"` // Select a driver by name before the step
}

// ScenarioTick is one expanded tick of a scenario.
type ScenarioTick struct {
	Frame  *input.Frame
	Mode   string
	Driver string
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a scenario and checks its key names.
func ParseScenario(data []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if s.DT <= 0 {
		s.DT = DefaultDT
	}
	if _, err := s.Expand(); err != nil {
		return nil, err
	}
	return s, nil
}

// Expand turns the steps into one entry per tick.
func (s *Scenario) Expand() ([]ScenarioTick, error) {
	var ticks []ScenarioTick
	for i, step := range s.Steps {
		hold, err := parseKeys(step.Hold)
		if err != nil {
			return nil, fmt.Errorf("scenario step %d: %w", i, err)
		}
		press, err := parseKeys(step.Press)
		if err != nil {
			return nil, fmt.Errorf("scenario step %d: %w", i, err)
		}

		n := max(step.Ticks, 1)
		for j := 0; j < n; j++ {
			f := input.NewFrame().Hold(hold...)
			f.Mouse = rl.Vector2{X: step.Mouse[0], Y: step.Mouse[1]}
			tick := ScenarioTick{Frame: f}
			if j == 0 {
				f.Press(press...)
				f.Scroll = step.Wheel
				tick.Mode = step.Mode
				tick.Driver = step.Driver
			}
			ticks = append(ticks, tick)
		}
	}
	return ticks, nil
}

func parseKeys(names []string) ([]input.Key, error) {
	keys := make([]input.Key, 0, len(names))
	for _, name := range names {
		k, err := input.ParseKey(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
