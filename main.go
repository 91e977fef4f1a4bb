package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/configcam/config"
	"github.com/pthm-cable/configcam/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	watch := flag.Bool("watch", false, "Reload the config file when it changes")
	headless := flag.Bool("headless", false, "Run without graphics")
	scenarioPath := flag.String("scenario", "", "Scenario YAML replayed in headless mode")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for trace/perf CSV and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	opts := game.Options{
		Config:     cfg,
		ConfigPath: *configPath,
		Watch:      *watch,
		Headless:   *headless,
		LogStats:   *logStats,
		OutputDir:  *outputDir,
	}

	if *scenarioPath != "" {
		scenario, err := game.LoadScenario(*scenarioPath)
		if err != nil {
			slog.Error("failed to load scenario", "error", err)
			os.Exit(1)
		}
		opts.Scenario = scenario
	}

	if *headless {
		// Headless mode - no raylib window needed
		if opts.Scenario == nil && *maxTicks == 0 {
			slog.Error("headless mode needs -scenario or -max-ticks")
			os.Exit(1)
		}
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless replay",
			"scenario", *scenarioPath,
			"max_ticks", *maxTicks,
		)

		for g.UpdateHeadless() {
			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				return
			}
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0) // Escape toggles the cursor grab instead
	rl.DisableCursor()

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update(rl.GetFrameTime())
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
