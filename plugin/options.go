package plugin

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/configcam/camera"
	"github.com/pthm-cable/configcam/config"
	"github.com/pthm-cable/configcam/driver"
	"github.com/pthm-cable/configcam/input"
	"github.com/pthm-cable/configcam/rig"
	"github.com/pthm-cable/configcam/systems"
)

// Options configures a Plugin.
type Options struct {
	// InitCameras spawns the fly cam, player cam and a player at Startup.
	InitCameras  bool
	AllowedModes []camera.Mode // Empty means every mode

	KeyBindings    input.KeyMap
	PlayerBindings input.KeyMap

	Lerp           float32
	FollowDistance float32
	Sensitivity    float32
	Speed          float32

	FocusStrategy camera.FocusStrategy
	DeadZone      float32
	FocusSpeed    float32

	// Drivers names built-in rig drivers (Orbit, Fpv, Pinned) in cycle order.
	Drivers []string
	// Markers are host drivers registered after Drivers. Rigs supplies the
	// rig spawned for each of them; a marker without a rig still cycles.
	Markers []driver.Marker
	Rigs    map[string]*rig.Rig

	Presets    rig.Presets
	PinnedDist float32
	RigInput   systems.RigSettings

	PlayerSpeed      float32
	PlayerRotateStep float32
	PlayerCamForward bool
	PlayerStart      rl.Vector3

	ScrollSteps input.ScrollSteps
	Fovy        float32
	MinFovy     float32
	MaxFovy     float32

	PerfWindow int
}

// DefaultOptions returns options matching the embedded config defaults.
func DefaultOptions() Options {
	opts, err := OptionsFromConfig(config.Default())
	if err != nil {
		panic(fmt.Sprintf("plugin: embedded defaults are invalid: %v", err))
	}
	return opts
}

// OptionsFromConfig builds options from a loaded config.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	modes, err := camera.ParseModes(cfg.Plugin.AllowedModes)
	if err != nil {
		return Options{}, fmt.Errorf("allowed modes: %w", err)
	}
	camKeys, err := input.ParseKeyMap(cfg.Keys.Camera)
	if err != nil {
		return Options{}, fmt.Errorf("camera keys: %w", err)
	}
	playerKeys, err := input.ParseKeyMap(cfg.Keys.Player)
	if err != nil {
		return Options{}, fmt.Errorf("player keys: %w", err)
	}

	d := cfg.Derived
	return Options{
		InitCameras:    cfg.Plugin.InitCameras,
		AllowedModes:   modes,
		KeyBindings:    camKeys,
		PlayerBindings: playerKeys,

		Lerp:           d.Lerp32,
		FollowDistance: d.Dist32,
		Sensitivity:    d.Sensitivity32,
		Speed:          d.Speed32,

		FocusStrategy: camera.FocusStrategy(cfg.Plugin.FocusStrategy),
		DeadZone:      d.DeadZone32,
		FocusSpeed:    d.FocusSpeed32,

		Drivers: append([]string(nil), cfg.Plugin.Drivers...),

		Presets: rig.Presets{
			OrbitArm:    float32(cfg.Rigs.OrbitArm),
			OrbitYaw:    float32(cfg.Rigs.OrbitYaw),
			OrbitPitch:  float32(cfg.Rigs.OrbitPitch),
			SmoothTime:  float32(cfg.Rigs.SmoothTime),
			PinnedPitch: float32(cfg.Rigs.PinnedPitch),
		},
		PinnedDist: float32(cfg.Rigs.PinnedDist),
		RigInput: systems.RigSettings{
			LookSpeed:  float32(cfg.Rigs.LookSpeed),
			KeyYawStep: float32(cfg.Rigs.KeyYawDegree),
			FpvBoost:   float32(cfg.Rigs.FpvBoost),
		},

		PlayerSpeed:      d.PlayerSpeed32,
		PlayerRotateStep: d.RotateStep32,
		PlayerCamForward: cfg.Player.CamForward,
		PlayerStart: rl.Vector3{
			X: float32(cfg.Player.Start[0]),
			Y: float32(cfg.Player.Start[1]),
			Z: float32(cfg.Player.Start[2]),
		},

		ScrollSteps: input.ScrollSteps{
			Speed:       float32(cfg.Scroll.SpeedStep),
			Sensitivity: float32(cfg.Scroll.SensitivityStep),
			Zoom:        float32(cfg.Scroll.ZoomStep),
			Lerp:        float32(cfg.Scroll.LerpStep),
		},
		Fovy:    d.Fovy32,
		MinFovy: float32(cfg.Lens.MinFovy),
		MaxFovy: float32(cfg.Lens.MaxFovy),

		PerfWindow: cfg.Telemetry.PerfWindow,
	}, nil
}
