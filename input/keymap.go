package input

import (
	"fmt"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a bindable input action.
type Action string

const (
	Forward     Action = "forward"
	Backward    Action = "backward"
	Left        Action = "left"
	Right       Action = "right"
	Up          Action = "up"
	Down        Action = "down"
	RotateLeft  Action = "rotate_left"
	RotateRight Action = "rotate_right"
	NextMode    Action = "next_mode"
	NextSetting Action = "next_setting"
	NextDriver  Action = "next_driver"
	TogglePin   Action = "toggle_pin"
	GrabCursor  Action = "grab_cursor"
	Boost       Action = "boost"
)

// Actions lists every action in a stable order.
func Actions() []Action {
	return []Action{
		Forward, Backward, Left, Right, Up, Down, RotateLeft, RotateRight,
		NextMode, NextSetting, NextDriver, TogglePin, GrabCursor, Boost,
	}
}

// KeyMap binds actions to keys. An action may have several keys.
type KeyMap map[Action][]Key

// DefaultCameraKeys returns the fly cam bindings.
func DefaultCameraKeys() KeyMap {
	return KeyMap{
		Forward:     {Key(rl.KeyW)},
		Backward:    {Key(rl.KeyS)},
		Left:        {Key(rl.KeyA)},
		Right:       {Key(rl.KeyD)},
		Up:          {Key(rl.KeySpace)},
		Down:        {Key(rl.KeyLeftShift)},
		RotateLeft:  {Key(rl.KeyZ)},
		RotateRight: {Key(rl.KeyX)},
		NextMode:    {Key(rl.KeyC)},
		NextSetting: {Key(rl.KeyE)},
		NextDriver:  {Key(rl.KeyT)},
		TogglePin:   {Key(rl.KeyP)},
		GrabCursor:  {Key(rl.KeyEscape)},
		Boost:       {Key(rl.KeyLeftControl)},
	}
}

// DefaultPlayerKeys returns the player controller bindings.
func DefaultPlayerKeys() KeyMap {
	return KeyMap{
		Forward:     {Key(rl.KeyUp)},
		Backward:    {Key(rl.KeyDown)},
		Left:        {Key(rl.KeyComma)},
		Right:       {Key(rl.KeyPeriod)},
		Up:          {Key(rl.KeyRightShift)},
		Down:        {Key(rl.KeyMinus)},
		RotateLeft:  {Key(rl.KeyLeft)},
		RotateRight: {Key(rl.KeyRight)},
	}
}

// ParseKeyMap builds a key map from action and key names.
func ParseKeyMap(names map[string][]string) (KeyMap, error) {
	km := make(KeyMap, len(names))
	for action, keys := range names {
		if !slices.Contains(Actions(), Action(action)) {
			return nil, fmt.Errorf("parse key map: action %q: %w", action, ErrUnknownKey)
		}
		bound := make([]Key, 0, len(keys))
		for _, name := range keys {
			k, err := ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("parse key map: action %q: %w", action, err)
			}
			bound = append(bound, k)
		}
		km[Action(action)] = bound
	}
	return km, nil
}

// Held reports whether any key bound to a is down.
func (km KeyMap) Held(s State, a Action) bool {
	for _, k := range km[a] {
		if s.Down(k) {
			return true
		}
	}
	return false
}

// Pressed reports whether any key bound to a went down this tick.
func (km KeyMap) Pressed(s State, a Action) bool {
	for _, k := range km[a] {
		if s.Pressed(k) {
			return true
		}
	}
	return false
}
