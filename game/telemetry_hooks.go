package game

import (
	"log/slog"

	"github.com/pthm-cable/configcam/telemetry"
)

// recordTick stores the tick's camera trace and flushes perf stats once per window.
func (g *Game) recordTick() {
	rec := g.cam.Trace()

	// Keep the full trace only when something will consume it
	if g.headless || g.outputManager != nil {
		g.traces = append(g.traces, rec)
	}
	if err := g.outputManager.WriteTrace(rec); err != nil {
		slog.Error("failed to write trace", "error", err)
	}

	if g.perfEvery <= 0 || rec.Tick%g.perfEvery != 0 {
		return
	}
	perfStats := g.cam.Perf().Stats()
	if g.logStats {
		slog.Info("perf", "stats", perfStats)
	}
	if err := g.outputManager.WritePerf(perfStats, rec.Tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Traces returns the recorded trace.
func (g *Game) Traces() []telemetry.TraceRecord {
	return g.traces
}
