// Package plugin wires the camera systems into a host ark world.
//
// A host creates a Plugin with New, calls Startup once, then Update every
// frame. Update runs the phases in a fixed order:
//
//  1. input: discrete triggers and the wheel
//  2. state: mode, driver and scroll target changes, driver marker attach/detach
//  3. movement: player controller and fly cam
//  4. rig: rig drivers are fed the subject and focus, then composed
//  5. focus: the current mode runs and the focus point is smoothed
//  6. write: the mode result is written to a camera transform
//  7. switch: the active camera follows the locked-to-player flag
//
// Game code may change the Config, Movement, Cameras and Drivers handles
// between calls; changes are picked up on the next Update.
package plugin

import (
	"errors"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/configcam/camera"
	"github.com/pthm-cable/configcam/components"
	"github.com/pthm-cable/configcam/driver"
	"github.com/pthm-cable/configcam/input"
	"github.com/pthm-cable/configcam/rig"
	"github.com/pthm-cable/configcam/systems"
	"github.com/pthm-cable/configcam/telemetry"
)

// ErrAlreadyStarted is returned by a second call to Startup.
var ErrAlreadyStarted = errors.New("plugin already started")

// Built-in driver names.
const (
	DriverOrbit  = "Orbit"
	DriverFpv    = "Fpv"
	DriverPinned = "Pinned"
)

// BuiltinMarkers returns fresh markers for the built-in drivers.
func BuiltinMarkers() map[string]driver.Marker {
	return map[string]driver.Marker{
		DriverOrbit:  driver.Tag[components.Orbit](DriverOrbit),
		DriverFpv:    driver.Tag[components.Fpv](DriverFpv),
		DriverPinned: driver.Tag[components.Pinned](DriverPinned),
	}
}

// Plugin owns the camera state for one world.
type Plugin struct {
	world *ecs.World
	opts  Options

	config   *camera.CameraConfig
	movement *camera.MovementSettings
	cameras  *camera.Cameras
	drivers  *driver.Registry
	scroll   *input.Scroll
	player   systems.PlayerSettings
	rigInput systems.RigSettings

	keys        input.KeyMap
	fovy        float32
	grabbed     bool
	windowScale float32

	// Systems
	playerSys *systems.PlayerSystem
	flySys    *systems.FlyCamSystem
	rigSys    *systems.RigSystem
	writeSys  *systems.CameraWriteSystem
	switcher  *camera.Switcher
	phases    *systems.SystemRegistry
	perf      *telemetry.PerfCollector

	// Component mappers
	transforms  *ecs.Map[components.Transform]
	targets     *ecs.Map[components.Target]
	playerMoves *ecs.Map[components.PlayerMove]
	cameraMap   *ecs.Map[components.Camera]
	rigs        *ecs.Map[rig.Handle]
	movers      *ecs.Filter1[components.PlayerMove]
	allCameras  *ecs.Filter1[components.Camera]

	started  bool
	lastMode camera.Mode
	result   camera.Result
	tick     int64
	elapsed  float64
}

// New creates a plugin for w. Nothing is spawned until Startup.
func New(w *ecs.World, opts Options) (*Plugin, error) {
	builtin := BuiltinMarkers()
	markers := make([]driver.Marker, 0, len(opts.Drivers)+len(opts.Markers))
	for _, name := range opts.Drivers {
		m, ok := builtin[name]
		if !ok {
			return nil, fmt.Errorf("new plugin: driver %q: %w", name, driver.ErrUnknownDriver)
		}
		markers = append(markers, m)
	}
	markers = append(markers, opts.Markers...)
	drivers, err := driver.NewRegistry(markers...)
	if err != nil {
		return nil, fmt.Errorf("new plugin: %w", err)
	}

	p := &Plugin{
		world:       w,
		opts:        opts,
		config:      camera.NewCameraConfig(),
		movement:    camera.NewMovementSettings(),
		cameras:     camera.NewCameras(opts.AllowedModes...),
		drivers:     drivers,
		scroll:      input.NewScroll(opts.ScrollSteps),
		grabbed:     true,
		windowScale: 1,

		playerSys: systems.NewPlayerSystem(w),
		flySys:    systems.NewFlyCamSystem(w),
		rigSys:    systems.NewRigSystem(w),
		writeSys:  systems.NewCameraWriteSystem(w),
		switcher:  camera.NewSwitcher(w),
		phases:    systems.NewSystemRegistry(),
		perf:      telemetry.NewPerfCollector(opts.PerfWindow),

		transforms:  ecs.NewMap[components.Transform](w),
		targets:     ecs.NewMap[components.Target](w),
		playerMoves: ecs.NewMap[components.PlayerMove](w),
		cameraMap:   ecs.NewMap[components.Camera](w),
		rigs:        ecs.NewMap[rig.Handle](w),
		movers:      ecs.NewFilter1[components.PlayerMove](w),
		allCameras:  ecs.NewFilter1[components.Camera](w),
	}
	p.applyTunables(opts)
	p.lastMode = p.cameras.Current()
	return p, nil
}

// applyTunables copies the adjustable settings from opts.
func (p *Plugin) applyTunables(opts Options) {
	p.keys = opts.KeyBindings
	if p.keys == nil {
		p.keys = input.DefaultCameraKeys()
	}
	playerKeys := opts.PlayerBindings
	if playerKeys == nil {
		playerKeys = input.DefaultPlayerKeys()
	}

	p.movement.Sensitivity = opts.Sensitivity
	p.movement.Speed = opts.Speed
	p.movement.Dist = opts.FollowDistance
	p.movement.SetLerp(opts.Lerp)

	if opts.FocusStrategy != "" {
		p.config.Strategy = opts.FocusStrategy
	}
	p.config.DeadZone = opts.DeadZone
	p.config.Speed = opts.FocusSpeed

	p.player = systems.PlayerSettings{
		Keys:        playerKeys,
		Speed:       opts.PlayerSpeed,
		RotateStep:  opts.PlayerRotateStep,
		CamForward:  opts.PlayerCamForward,
		DisableMove: p.player.DisableMove,
	}
	p.rigInput = opts.RigInput

	p.scroll.Steps = opts.ScrollSteps
	if opts.MaxFovy > 0 {
		p.scroll.MinFovy, p.scroll.MaxFovy = opts.MinFovy, opts.MaxFovy
	}
	p.fovy = opts.Fovy
}

// Reload applies new tunables from opts. Drivers and spawned entities are
// kept; the allowed modes are replaced.
func (p *Plugin) Reload(opts Options) error {
	modes := opts.AllowedModes
	if len(modes) == 0 {
		modes = camera.AllModes()
	}
	if err := p.cameras.SetAllowed(modes); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	p.applyTunables(opts)
	p.opts = opts
	slog.Info("camera_reload",
		"modes", len(modes),
		"lerp", p.movement.Lerp,
		"dist", p.movement.Dist,
		"speed", p.movement.Speed,
	)
	return nil
}

// Startup spawns the initial entities. It may only be called once.
func (p *Plugin) Startup() error {
	if p.started {
		return ErrAlreadyStarted
	}
	p.started = true

	var playerPos rl.Vector3
	if p.opts.InitCameras {
		player := p.spawnPlayer(p.opts.PlayerStart)
		p.config.SetTarget(player)
		playerPos = p.opts.PlayerStart
		p.spawnCameras(playerPos)
	}
	p.spawnRigs(playerPos)
	p.drivers.Invalidate()

	slog.Info("camera_startup",
		"init_cameras", p.opts.InitCameras,
		"modes", len(p.cameras.Allowed()),
		"drivers", p.drivers.Len(),
		"mode", p.cameras.Current().String(),
	)
	return nil
}

func (p *Plugin) spawnPlayer(pos rl.Vector3) ecs.Entity {
	m := ecs.NewMap3[components.Transform, components.PlayerMove, components.Target](p.world)
	t := components.Transform{Translation: pos, Rotation: rl.QuaternionIdentity()}
	return m.NewEntity(&t, &components.PlayerMove{}, &components.Target{})
}

func (p *Plugin) spawnCameras(subject rl.Vector3) {
	start := components.Transform{
		Translation: rl.Vector3Add(subject, rl.Vector3{X: -2, Y: 2.5, Z: 5}),
		Rotation:    rl.QuaternionIdentity(),
	}.LookingAt(subject, components.AxisY)

	fly := ecs.NewMap3[components.Transform, components.Camera, components.FlyCam](p.world)
	flyT := start
	fly.NewEntity(&flyT,
		&components.Camera{Name: "fly", Active: true, Fovy: p.fovy},
		&components.FlyCam{},
	)

	player := ecs.NewMap3[components.Transform, components.Camera, components.PlayerCam](p.world)
	playerT := start
	player.NewEntity(&playerT,
		&components.Camera{Name: "player", Fovy: p.fovy},
		&components.PlayerCam{},
	)
}

// spawnRigs creates one rig entity per registered driver that has a rig.
func (p *Plugin) spawnRigs(subject rl.Vector3) {
	for _, m := range p.drivers.Markers() {
		var r *rig.Rig
		switch m.Name() {
		case DriverOrbit:
			r = p.opts.Presets.Orbit()
		case DriverFpv:
			r = p.opts.Presets.Fpv(rl.Vector3Add(subject, rl.Vector3{Y: camera.FpsEyeHeight}))
		case DriverPinned:
			r = p.opts.Presets.Pinned(p.opts.PinnedDist)
		default:
			r = p.opts.Rigs[m.Name()]
		}
		if r == nil {
			slog.Debug("camera_rig_missing", "driver", m.Name())
			continue
		}
		e := p.rigs.NewEntity(&rig.Handle{Name: m.Name(), Rig: r})
		m.Attach(p.world, e)
	}
}

// Update runs one tick of dt seconds with the input in.
func (p *Plugin) Update(dt float32, in input.State) error {
	p.perf.StartTick()

	// 1. Input
	p.perf.StartPhase(telemetry.PhaseInput)
	trig := input.ReadTriggers(in, p.keys)
	wheel := in.Wheel()
	if trig.GrabCursor {
		p.grabbed = !p.grabbed
		slog.Info("camera_cursor", "grabbed", p.grabbed)
	}

	// 2. Mode, driver and scroll state
	p.perf.StartPhase(telemetry.PhaseState)
	p.updateState(trig, wheel)
	mode := p.cameras.Current()

	// 3. Movement. A rig driving the fly cam in Free mode takes the raw
	// fly input itself.
	p.perf.StartPhase(telemetry.PhaseMovement)
	current, hasDriver := p.currentMarker()
	rigDriven := false
	if mode == camera.Free && hasDriver {
		_, rigDriven = p.rigSys.Final(current)
	}
	p.playerSys.Update(in, &p.player, dt)
	if !rigDriven {
		p.flySys.Update(in, p.keys, p.movement, p.grabbed, p.windowScale, dt)
	}

	// 4. Rigs, fed from a snapshot taken after movement
	p.perf.StartPhase(telemetry.PhaseRig)
	snap := camera.NewSnapshot(p.world)
	target, hasTarget := p.lookupTarget(snap)
	var steer systems.Steering
	if mode == camera.Free && hasDriver {
		steer = systems.Steering{
			Marker:  current,
			State:   in,
			Keys:    p.keys,
			Grabbed: p.grabbed,
			Speed:   p.movement.Speed,
		}
	}
	p.rigSys.Update(target.Translation, hasTarget, p.config.IsFocus, steer, &p.rigInput, dt)

	// 5. Focus
	p.perf.StartPhase(telemetry.PhaseFocus)
	p.result = mode.Update(camera.Context{Config: p.config, Movement: p.movement, Scene: snap})
	camera.Smooth(p.config, dt)

	// 6. Write
	p.perf.StartPhase(telemetry.PhaseWrite)
	wi := systems.WriteInput{
		Result: p.result,
		Target: target,
		Focus:  p.config.IsFocus,
		Locked: p.movement.LockedToPlayer,
		Fovy:   p.fovy,
	}
	if hasDriver {
		wi.Rig, wi.HasRig = p.rigSys.Final(current)
	}
	p.writeSys.Update(wi)

	// 7. Camera switch
	p.perf.StartPhase(telemetry.PhaseSwitch)
	switched, err := p.switcher.Update(p.movement.LockedToPlayer)
	if switched {
		// Markers move to the newly active camera next tick
		p.drivers.Invalidate()
		slog.Info("camera_switch", "locked", p.movement.LockedToPlayer, "active", p.activeName())
	}

	p.perf.EndTick()
	p.tick++
	p.elapsed += float64(dt)

	if err != nil {
		return fmt.Errorf("tick %d: %w", p.tick, err)
	}
	return nil
}

func (p *Plugin) updateState(trig input.Triggers, wheel float32) {
	if trig.NextMode {
		p.cameras.Advance()
	}
	if mode := p.cameras.Current(); mode != p.lastMode {
		slog.Info("camera_mode", "from", p.lastMode.String(), "to", mode.String())
		p.lastMode = mode
	}

	if trig.NextDriver {
		if err := p.drivers.Advance(); err != nil {
			slog.Debug("camera_driver_advance", "error", err)
		}
	}
	if trig.TogglePin {
		if m, ok := p.currentMarker(); ok {
			if pinned, ok := p.rigSys.TogglePin(m); ok {
				slog.Info("camera_pin", "driver", m.Name(), "pinned", pinned)
			}
		}
	}
	if p.drivers.Dirty() {
		changes := p.drivers.Apply(p.world, p.activeCameras())
		for _, c := range changes {
			slog.Debug("camera_driver_marker", "driver", c.Driver, "entity", c.Entity.ID(), "attached", c.Attached)
		}
		if m, ok := p.currentMarker(); ok {
			slog.Info("camera_driver", "driver", m.Name())
		}
	}

	if trig.NextSetting {
		slog.Info("camera_scroll", "type", p.scroll.Cycle().String())
	}
	p.scroll.Apply(wheel, input.ScrollTargets{
		Speed:       &p.movement.Speed,
		Sensitivity: &p.movement.Sensitivity,
		Fovy:        &p.fovy,
		Lerp:        &p.movement.Lerp,
		CamForward:  &p.player.CamForward,
	})
}

func (p *Plugin) lookupTarget(snap *camera.Snapshot) (components.Transform, bool) {
	if !p.config.HasTarget {
		return components.Identity(), false
	}
	t, ok := snap.Transform(p.config.Target)
	if !ok {
		return components.Identity(), false
	}
	return t, true
}

func (p *Plugin) currentMarker() (driver.Marker, bool) {
	m, err := p.drivers.CurrentMarker()
	if err != nil {
		return nil, false
	}
	return m, true
}

func (p *Plugin) activeCameras() []ecs.Entity {
	var active []ecs.Entity
	query := p.allCameras.Query()
	for query.Next() {
		if query.Get().Active {
			active = append(active, query.Entity())
		}
	}
	return active
}

func (p *Plugin) activeName() string {
	e, ok := p.switcher.Active()
	if !ok {
		return ""
	}
	return p.cameraMap.Get(e).Name
}

// SetPlayerTarget hands player control and the camera target to e. The
// PlayerMove and Target components move from the current player to e.
func (p *Plugin) SetPlayerTarget(e ecs.Entity) error {
	if !p.world.Alive(e) {
		return fmt.Errorf("set player target: %w", camera.ErrMissingEntity)
	}
	if !p.transforms.Has(e) {
		return fmt.Errorf("set player target: entity %d has no transform: %w", e.ID(), camera.ErrMissingEntity)
	}

	var previous []ecs.Entity
	query := p.movers.Query()
	for query.Next() {
		previous = append(previous, query.Entity())
	}
	for _, old := range previous {
		if old == e {
			continue
		}
		p.playerMoves.Remove(old)
		if p.targets.Has(old) {
			p.targets.Remove(old)
		}
	}

	if !p.playerMoves.Has(e) {
		yaw := components.YawAngle(p.transforms.Get(e).Rotation)
		p.playerMoves.Add(e, &components.PlayerMove{Yaw: yaw})
	}
	if !p.targets.Has(e) {
		p.targets.Add(e, &components.Target{})
	}
	p.config.SetTarget(e)
	slog.Info("camera_player_target", "entity", e.ID())
	return nil
}

// Config returns the focus state.
func (p *Plugin) Config() *camera.CameraConfig { return p.config }

// Movement returns the movement settings.
func (p *Plugin) Movement() *camera.MovementSettings { return p.movement }

// Cameras returns the mode state machine.
func (p *Plugin) Cameras() *camera.Cameras { return p.cameras }

// Drivers returns the driver registry.
func (p *Plugin) Drivers() *driver.Registry { return p.drivers }

// Scroll returns the wheel state machine.
func (p *Plugin) Scroll() *input.Scroll { return p.scroll }

// Player returns the player controller settings.
func (p *Plugin) Player() *systems.PlayerSettings { return &p.player }

// Systems returns the tick phase registry.
func (p *Plugin) Systems() *systems.SystemRegistry { return p.phases }

// Perf returns the per-phase timing collector.
func (p *Plugin) Perf() *telemetry.PerfCollector { return p.perf }

// Result returns the last mode result.
func (p *Plugin) Result() camera.Result { return p.result }

// Tick returns the number of completed updates.
func (p *Plugin) Tick() int64 { return p.tick }

// CursorGrabbed reports whether mouse look is captured.
func (p *Plugin) CursorGrabbed() bool { return p.grabbed }

// SetCursorGrabbed sets the cursor capture state.
func (p *Plugin) SetCursorGrabbed(grabbed bool) { p.grabbed = grabbed }

// SetWindowScale sets the factor applied to mouse deltas for fly cam look.
func (p *Plugin) SetWindowScale(s float32) { p.windowScale = s }

// Fovy returns the current vertical field of view in degrees.
func (p *Plugin) Fovy() float32 { return p.fovy }

// ActiveCamera returns the active camera entity.
func (p *Plugin) ActiveCamera() (ecs.Entity, bool) { return p.switcher.Active() }

// Camera3D returns the raylib camera for the active camera.
func (p *Plugin) Camera3D() (rl.Camera3D, bool) {
	e, ok := p.switcher.Active()
	if !ok || !p.transforms.Has(e) {
		return rl.Camera3D{}, false
	}
	return p.transforms.Get(e).Camera3D(p.cameraMap.Get(e).Fovy), true
}

// Trace returns the camera state after the last Update.
func (p *Plugin) Trace() telemetry.TraceRecord {
	rec := telemetry.TraceRecord{
		Tick:        p.tick,
		Time:        p.elapsed,
		Mode:        p.cameras.Current().String(),
		Locked:      p.movement.LockedToPlayer,
		DisableMove: p.movement.DisableMove,
		DisableLook: p.movement.DisableLook,
	}
	if m, ok := p.currentMarker(); ok {
		rec.Driver = m.Name()
	}
	if e, ok := p.switcher.Active(); ok {
		rec.Active = p.cameraMap.Get(e).Name
		if p.transforms.Has(e) {
			rec.SetCamera(p.transforms.Get(e).Translation)
		}
	}
	rec.SetFocus(p.config.ShouldFocus, p.config.IsFocus)
	return rec
}
