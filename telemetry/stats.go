package telemetry

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// TraceStats summarizes a camera trace.
type TraceStats struct {
	Ticks          int
	ModeChanges    int
	DriverChanges  int
	CameraSwitches int

	// Distance the camera moved between consecutive ticks
	StepMean float64
	StepStd  float64
	StepMax  float64

	// Distance between the desired and smoothed focus
	FocusLagMean float64
	FocusLagMax  float64
}

// Summarize computes statistics over records in tick order.
func Summarize(records []TraceRecord) TraceStats {
	s := TraceStats{Ticks: len(records)}
	if len(records) == 0 {
		return s
	}

	lag := make([]float64, len(records))
	steps := make([]float64, 0, len(records)-1)
	for i, r := range records {
		lag[i] = float64(rl.Vector3Distance(r.ShouldFocus(), r.IsFocus()))
		if i == 0 {
			continue
		}
		prev := records[i-1]
		steps = append(steps, float64(rl.Vector3Distance(prev.Camera(), r.Camera())))
		if r.Mode != prev.Mode {
			s.ModeChanges++
		}
		if r.Driver != prev.Driver {
			s.DriverChanges++
		}
		if r.Active != prev.Active {
			s.CameraSwitches++
		}
	}

	s.FocusLagMean = stat.Mean(lag, nil)
	s.FocusLagMax = floats.Max(lag)
	if len(steps) > 0 {
		s.StepMean, s.StepStd = stat.MeanStdDev(steps, nil)
		s.StepMax = floats.Max(steps)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s TraceStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ticks", s.Ticks),
		slog.Int("mode_changes", s.ModeChanges),
		slog.Int("driver_changes", s.DriverChanges),
		slog.Int("camera_switches", s.CameraSwitches),
		slog.Float64("step_mean", s.StepMean),
		slog.Float64("step_std", s.StepStd),
		slog.Float64("step_max", s.StepMax),
		slog.Float64("focus_lag_mean", s.FocusLagMean),
		slog.Float64("focus_lag_max", s.FocusLagMax),
	)
}
