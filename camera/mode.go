// Package camera holds the camera mode state machine, focus resolution and
// the active-camera switcher.
package camera

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/configcam/driver"
)

var (
	// ErrInvalidState is shared with the driver registry.
	ErrInvalidState = driver.ErrInvalidState
	// ErrDisallowedMode is returned when selecting a mode outside the allowed list.
	ErrDisallowedMode = errors.New("disallowed camera mode")
	// ErrUnknownMode is returned when a mode name does not parse.
	ErrUnknownMode = errors.New("unknown camera mode")
	// ErrMissingEntity is returned when a configured entity no longer exists.
	ErrMissingEntity = errors.New("missing entity")
)

// Mode is a camera behavior.
type Mode uint8

const (
	LookAt           Mode = iota // Look at the focus point from where the camera is
	FollowStatic                 // Look at the target only, ignoring the external target
	TopDown                      // Hover above the target looking straight down
	TopDownDirection             // Top-down, turning with the target
	FollowBehind                 // Trail behind and above the target
	Fps                          // Sit at the target's eyes
	Free                         // Fly freely, or follow the active rig
)

var modeNames = [...]string{"LookAt", "FollowStatic", "TopDown", "TopDownDirection", "FollowBehind", "Fps", "Free"}

// String returns the display name for a Mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Unknown"
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("parse mode %q: %w", name, ErrUnknownMode)
}

// ParseModes parses a list of names, failing on the first unknown one.
func ParseModes(names []string) ([]Mode, error) {
	modes := make([]Mode, 0, len(names))
	for _, name := range names {
		m, err := ParseMode(name)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// AllModes returns every mode in declaration order.
func AllModes() []Mode {
	modes := make([]Mode, len(modeNames))
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// Cameras is the set of allowed modes and the current one.
type Cameras struct {
	allowed []Mode
	index   int
}

// NewCameras creates the state machine. No modes means all modes.
// The first allowed mode is current; with the defaults that is LookAt.
func NewCameras(modes ...Mode) *Cameras {
	if len(modes) == 0 {
		modes = AllModes()
	}
	return &Cameras{allowed: dedupe(modes)}
}

// Current returns the current mode.
func (c *Cameras) Current() Mode {
	return c.allowed[c.index]
}

// Allowed returns the allowed modes in cycle order.
func (c *Cameras) Allowed() []Mode {
	return append([]Mode(nil), c.allowed...)
}

// Advance moves to the next allowed mode, wrapping after the last.
func (c *Cameras) Advance() Mode {
	if c.index >= len(c.allowed)-1 {
		c.index = 0
	} else {
		c.index++
	}
	return c.Current()
}

// Set makes m current. A mode outside the allowed list leaves the state unchanged.
func (c *Cameras) Set(m Mode) error {
	for i, a := range c.allowed {
		if a == m {
			c.index = i
			return nil
		}
	}
	return fmt.Errorf("set mode %s: %w", m, ErrDisallowedMode)
}

// SetByName parses name and makes it current.
func (c *Cameras) SetByName(name string) error {
	m, err := ParseMode(name)
	if err != nil {
		return err
	}
	return c.Set(m)
}

// SetAllowed replaces the allowed list. The current mode is kept when it is
// still allowed; otherwise the first allowed mode becomes current.
func (c *Cameras) SetAllowed(modes []Mode) error {
	if len(modes) == 0 {
		return fmt.Errorf("set allowed modes: empty list: %w", ErrInvalidState)
	}
	cur := c.Current()
	c.allowed = dedupe(modes)
	c.index = 0
	_ = c.Set(cur)
	return nil
}

func dedupe(modes []Mode) []Mode {
	seen := make(map[Mode]bool, len(modes))
	out := make([]Mode, 0, len(modes))
	for _, m := range modes {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
