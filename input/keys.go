// Package input maps raw key and mouse state to camera and player actions.
package input

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrUnknownKey is returned for key or action names that are not recognized.
var ErrUnknownKey = errors.New("unknown key")

// Key is a raylib key code.
type Key int32

type keyName struct {
	name string
	key  Key
}

// keyNames is ordered so String is deterministic.
var keyNames = []keyName{
	{"A", Key(rl.KeyA)}, {"B", Key(rl.KeyB)}, {"C", Key(rl.KeyC)}, {"D", Key(rl.KeyD)}, {"E", Key(rl.KeyE)},
	{"F", Key(rl.KeyF)}, {"G", Key(rl.KeyG)}, {"H", Key(rl.KeyH)}, {"I", Key(rl.KeyI)}, {"J", Key(rl.KeyJ)},
	{"K", Key(rl.KeyK)}, {"L", Key(rl.KeyL)}, {"M", Key(rl.KeyM)}, {"N", Key(rl.KeyN)}, {"O", Key(rl.KeyO)},
	{"P", Key(rl.KeyP)}, {"Q", Key(rl.KeyQ)}, {"R", Key(rl.KeyR)}, {"S", Key(rl.KeyS)}, {"T", Key(rl.KeyT)},
	{"U", Key(rl.KeyU)}, {"V", Key(rl.KeyV)}, {"W", Key(rl.KeyW)}, {"X", Key(rl.KeyX)}, {"Y", Key(rl.KeyY)},
	{"Z", Key(rl.KeyZ)},
	{"Zero", Key(rl.KeyZero)}, {"One", Key(rl.KeyOne)}, {"Two", Key(rl.KeyTwo)}, {"Three", Key(rl.KeyThree)},
	{"Four", Key(rl.KeyFour)}, {"Five", Key(rl.KeyFive)}, {"Six", Key(rl.KeySix)}, {"Seven", Key(rl.KeySeven)},
	{"Eight", Key(rl.KeyEight)}, {"Nine", Key(rl.KeyNine)},
	{"Space", Key(rl.KeySpace)}, {"Escape", Key(rl.KeyEscape)}, {"Enter", Key(rl.KeyEnter)},
	{"Tab", Key(rl.KeyTab)}, {"Backspace", Key(rl.KeyBackspace)},
	{"Up", Key(rl.KeyUp)}, {"Down", Key(rl.KeyDown)}, {"Left", Key(rl.KeyLeft)}, {"Right", Key(rl.KeyRight)},
	{"LeftShift", Key(rl.KeyLeftShift)}, {"RightShift", Key(rl.KeyRightShift)},
	{"LeftControl", Key(rl.KeyLeftControl)}, {"RightControl", Key(rl.KeyRightControl)},
	{"LeftAlt", Key(rl.KeyLeftAlt)}, {"RightAlt", Key(rl.KeyRightAlt)},
	{"Comma", Key(rl.KeyComma)}, {"Period", Key(rl.KeyPeriod)}, {"Minus", Key(rl.KeyMinus)},
	{"Equal", Key(rl.KeyEqual)}, {"Slash", Key(rl.KeySlash)}, {"Semicolon", Key(rl.KeySemicolon)},
	{"Apostrophe", Key(rl.KeyApostrophe)},
	{"F1", Key(rl.KeyF1)}, {"F2", Key(rl.KeyF2)}, {"F3", Key(rl.KeyF3)}, {"F4", Key(rl.KeyF4)},
	{"F5", Key(rl.KeyF5)}, {"F6", Key(rl.KeyF6)}, {"F7", Key(rl.KeyF7)}, {"F8", Key(rl.KeyF8)},
	{"F9", Key(rl.KeyF9)}, {"F10", Key(rl.KeyF10)}, {"F11", Key(rl.KeyF11)}, {"F12", Key(rl.KeyF12)},
}

// ParseKey returns the key with the given name.
func ParseKey(name string) (Key, error) {
	for _, kn := range keyNames {
		if kn.name == name {
			return kn.key, nil
		}
	}
	return 0, fmt.Errorf("parse key %q: %w", name, ErrUnknownKey)
}

// String returns the key's name.
func (k Key) String() string {
	for _, kn := range keyNames {
		if kn.key == k {
			return kn.name
		}
	}
	return fmt.Sprintf("Key(%d)", int32(k))
}
