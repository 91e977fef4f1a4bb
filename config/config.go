// Package config provides configuration loading and access for the camera plugin.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all camera plugin configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Plugin    PluginConfig    `yaml:"plugin"`
	Movement  MovementConfig  `yaml:"movement"`
	Focus     FocusConfig     `yaml:"focus"`
	Player    PlayerConfig    `yaml:"player"`
	Scroll    ScrollConfig    `yaml:"scroll"`
	Rigs      RigsConfig      `yaml:"rigs"`
	Lens      LensConfig      `yaml:"lens"`
	Keys      KeysConfig      `yaml:"keys"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the demo host.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// PluginConfig holds the knobs passed to the plugin entry point.
type PluginConfig struct {
	InitCameras   bool     `yaml:"init_cameras"`   // Spawn fly cam, player cam and player at startup
	AllowedModes  []string `yaml:"allowed_modes"`  // Subset of camera modes, in cycle order (empty = all)
	Drivers       []string `yaml:"drivers"`        // Rig drivers registered at startup, in cycle order
	FocusStrategy string   `yaml:"focus_strategy"` // "primary" or "targets"
}

// MovementConfig holds the initial movement settings.
type MovementConfig struct {
	Sensitivity float64 `yaml:"sensitivity"` // Mouse look sensitivity
	Speed       float64 `yaml:"speed"`       // Fly cam speed (units per second)
	Dist        float64 `yaml:"dist"`        // Follow distance for top-down modes
	Lerp        float64 `yaml:"lerp"`        // Blend between target and external target (0..1)
}

// FocusConfig holds focus smoothing parameters.
type FocusConfig struct {
	DeadZone float64 `yaml:"dead_zone"` // Focus only moves when further than this
	Speed    float64 `yaml:"speed"`     // Focus approach rate per second
}

// PlayerConfig holds the player controller parameters.
type PlayerConfig struct {
	Speed      float64    `yaml:"speed"`       // Player speed (units per second)
	RotateStep float64    `yaml:"rotate_step"` // Radians per tick while a rotate key is held
	CamForward bool       `yaml:"cam_forward"` // Forward follows local +Z instead of -Z
	Start      [3]float64 `yaml:"start"`       // Spawn position
}

// ScrollConfig holds the per-notch wheel steps for each scroll target.
type ScrollConfig struct {
	SpeedStep       float64 `yaml:"speed_step"`
	SensitivityStep float64 `yaml:"sensitivity_step"`
	ZoomStep        float64 `yaml:"zoom_step"`
	LerpStep        float64 `yaml:"lerp_step"`
}

// RigsConfig holds parameters for the built-in rig presets.
type RigsConfig struct {
	OrbitArm     float64 `yaml:"orbit_arm"`    // Orbit arm length
	OrbitYaw     float64 `yaml:"orbit_yaw"`    // Initial orbit yaw (degrees)
	OrbitPitch   float64 `yaml:"orbit_pitch"`  // Initial orbit pitch (degrees)
	SmoothTime   float64 `yaml:"smooth_time"`  // Smooth driver duration (seconds)
	PinnedPitch  float64 `yaml:"pinned_pitch"` // Pinned rig pitch (degrees)
	PinnedDist   float64 `yaml:"pinned_dist"`  // Pinned rig arm length
	FpvBoost     float64 `yaml:"fpv_boost"`    // Fpv boost multiplier
	LookSpeed    float64 `yaml:"look_speed"`   // Degrees per mouse unit for rig drivers
	KeyYawDegree float64 `yaml:"key_yaw_step"` // Yaw step for keyboard orbit (degrees)
}

// LensConfig holds projection settings.
type LensConfig struct {
	Fovy    float64 `yaml:"fovy"`     // Vertical field of view (degrees)
	MinFovy float64 `yaml:"min_fovy"` // Zoom lower bound
	MaxFovy float64 `yaml:"max_fovy"` // Zoom upper bound
}

// KeysConfig maps action names to key names.
type KeysConfig struct {
	Camera map[string][]string `yaml:"camera"`
	Player map[string][]string `yaml:"player"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Sensitivity32 float32
	Speed32       float32
	Dist32        float32
	Lerp32        float32
	DeadZone32    float32
	FocusSpeed32  float32
	PlayerSpeed32 float32
	RotateStep32  float32
	Fovy32        float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the camera systems cannot work with.
func (c *Config) validate() error {
	if c.Movement.Lerp < 0 || c.Movement.Lerp > 1 {
		return fmt.Errorf("movement.lerp must be in [0,1], got %v", c.Movement.Lerp)
	}
	if c.Focus.DeadZone < 0 {
		return fmt.Errorf("focus.dead_zone must not be negative, got %v", c.Focus.DeadZone)
	}
	switch c.Plugin.FocusStrategy {
	case "", "primary", "targets":
	default:
		return fmt.Errorf("plugin.focus_strategy: unknown strategy %q", c.Plugin.FocusStrategy)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Plugin.FocusStrategy == "" {
		c.Plugin.FocusStrategy = "primary"
	}
	if c.Telemetry.PerfWindow <= 0 {
		c.Telemetry.PerfWindow = 60
	}

	c.Derived.Sensitivity32 = float32(c.Movement.Sensitivity)
	c.Derived.Speed32 = float32(c.Movement.Speed)
	c.Derived.Dist32 = float32(c.Movement.Dist)
	c.Derived.Lerp32 = float32(c.Movement.Lerp)
	c.Derived.DeadZone32 = float32(c.Focus.DeadZone)
	c.Derived.FocusSpeed32 = float32(c.Focus.Speed)
	c.Derived.PlayerSpeed32 = float32(c.Player.Speed)
	c.Derived.RotateStep32 = float32(c.Player.RotateStep)
	c.Derived.Fovy32 = float32(c.Lens.Fovy)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
