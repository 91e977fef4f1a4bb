// Package game hosts the camera plugin: a small scene, the HUD, config hot
// reload and trace output. It runs either in a raylib window or headless
// from a scripted scenario.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/configcam/config"
	"github.com/pthm-cable/configcam/input"
	"github.com/pthm-cable/configcam/plugin"
	"github.com/pthm-cable/configcam/telemetry"
	"github.com/pthm-cable/configcam/ui"
)

// Options configures a Game.
type Options struct {
	Config     *config.Config
	ConfigPath string // Watched for hot reload when Watch is set
	Watch      bool
	Headless   bool
	LogStats   bool   // Log perf stats every perf window
	OutputDir  string // Trace, perf and config output (empty = disabled)
	Scenario   *Scenario
}

// Game holds the host state around the camera plugin.
type Game struct {
	world *ecs.World
	cfg   *config.Config
	cam   *plugin.Plugin
	scene *Scene

	headless bool
	logStats bool

	// Headless replay
	ticks []ScenarioTick
	next  int
	dt    float32

	// Telemetry
	outputManager *telemetry.OutputManager
	traces        []telemetry.TraceRecord
	perfEvery     int64

	watcher *config.Watcher

	// UI
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	settings  *ui.SettingsPanel
	showHUD   bool

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates the world, the scene and the camera plugin.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	pluginOpts, err := plugin.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("plugin options: %w", err)
	}

	world := ecs.NewWorld()
	cam, err := plugin.New(world, pluginOpts)
	if err != nil {
		return nil, err
	}
	if err := cam.Startup(); err != nil {
		return nil, err
	}

	g := &Game{
		world:        world,
		cfg:          cfg,
		cam:          cam,
		scene:        NewScene(world),
		headless:     opts.Headless,
		logStats:     opts.LogStats,
		dt:           DefaultDT,
		perfEvery:    int64(cfg.Telemetry.PerfWindow),
		showHUD:      true,
		screenWidth:  float32(cfg.Screen.Width),
		screenHeight: float32(cfg.Screen.Height),
	}
	cam.Config().SetExternal(g.scene.Beacon())
	cam.SetWindowScale(min(g.screenWidth, g.screenHeight))

	if opts.Scenario != nil {
		ticks, err := opts.Scenario.Expand()
		if err != nil {
			return nil, err
		}
		g.ticks = ticks
		g.dt = opts.Scenario.DT
	}

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if opts.Watch && opts.ConfigPath != "" {
		g.watcher, err = config.Watch(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("watching config: %w", err)
		}
	}

	if !g.headless {
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-260, 10)
		g.settings = ui.NewSettingsPanel(10, 120, 280)
	}
	return g, nil
}

// Camera returns the camera plugin.
func (g *Game) Camera() *plugin.Plugin {
	return g.cam
}

// Tick returns the number of camera ticks run.
func (g *Game) Tick() int64 {
	return g.cam.Tick()
}

// Update runs one frame in the window.
func (g *Game) Update(dt float32) {
	g.handleInput()
	g.applyReloads()
	g.step(dt, input.RaylibState{})
}

// UpdateHeadless runs the next scenario tick, or an idle tick when no
// scenario was given. It returns false once the scenario is exhausted.
func (g *Game) UpdateHeadless() bool {
	g.applyReloads()
	if g.ticks == nil {
		g.step(g.dt, input.NewFrame())
		return true
	}
	if g.next >= len(g.ticks) {
		return false
	}
	tick := g.ticks[g.next]
	g.next++

	if tick.Mode != "" {
		if err := g.cam.Cameras().SetByName(tick.Mode); err != nil {
			slog.Warn("scenario_mode", "mode", tick.Mode, "error", err)
		}
	}
	if tick.Driver != "" {
		if err := g.cam.Drivers().Select(tick.Driver); err != nil {
			slog.Warn("scenario_driver", "driver", tick.Driver, "error", err)
		}
	}
	g.step(g.dt, tick.Frame)
	return g.next < len(g.ticks)
}

func (g *Game) step(dt float32, in input.State) {
	g.scene.Update(dt)
	if err := g.cam.Update(dt, in); err != nil {
		slog.Warn("camera_update", "error", err)
	}
	g.recordTick()
}

// applyReloads applies the newest config from the watcher, if any.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	select {
	case cfg, ok := <-g.watcher.Updates:
		if !ok {
			g.stopWatching()
			return
		}
		opts, err := plugin.OptionsFromConfig(cfg)
		if err == nil {
			err = g.cam.Reload(opts)
		}
		if err != nil {
			slog.Error("config_reload", "error", err)
			return
		}
		g.cfg = cfg
	case err, ok := <-g.watcher.Errors:
		if !ok {
			g.stopWatching()
			return
		}
		slog.Error("config_reload", "error", err)
	default:
	}
}

// stopWatching closes the config watcher, if any.
func (g *Game) stopWatching() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.Close(); err != nil {
		slog.Error("closing config watcher", "error", err)
	}
	g.watcher = nil
}

// Unload releases resources and logs the trace summary.
func (g *Game) Unload() {
	g.stopWatching()
	if len(g.traces) > 0 {
		slog.Info("camera_summary", "stats", telemetry.Summarize(g.traces))
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
