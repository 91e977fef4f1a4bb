// Package telemetry records per-phase timing and per-tick camera traces.
package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for the camera tick, in execution order.
const (
	PhaseInput    = "input"
	PhaseState    = "state"
	PhaseMovement = "movement"
	PhaseRig      = "rig"
	PhaseFocus    = "focus"
	PhaseWrite    = "write"
	PhaseSwitch   = "switch"
)

// Phases lists the tick phases in execution order.
func Phases() []string {
	return []string{PhaseInput, PhaseState, PhaseMovement, PhaseRig, PhaseFocus, PhaseWrite, PhaseSwitch}
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks tick timing over a rolling window.
type PerfCollector struct {
	window  []PerfSample
	next    int
	filled  int
	current PerfSample

	tickStart  time.Time
	phaseStart time.Time
	phase      string
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{window: make([]PerfSample, windowSize)}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = PerfSample{Phases: make(map[string]time.Duration, len(Phases()))}
	p.phase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

// EndTick closes the tick and stores its sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.TickDuration = now.Sub(p.tickStart)

	p.window[p.next] = p.current
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current.Phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// PerfStats holds aggregated timing over the window.
type PerfStats struct {
	Ticks           int
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	PhaseAvg        map[string]time.Duration
	PhasePct        map[string]float64
}

// Stats aggregates the samples in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Ticks:    p.filled,
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.filled == 0 {
		return s
	}

	ticks := make([]float64, p.filled)
	phaseSum := make(map[string]time.Duration)
	for i, sample := range p.window[:p.filled] {
		ticks[i] = float64(sample.TickDuration)
		for phase, d := range sample.Phases {
			phaseSum[phase] += d
		}
	}

	s.AvgTickDuration = time.Duration(stat.Mean(ticks, nil))
	s.MinTickDuration = time.Duration(floats.Min(ticks))
	s.MaxTickDuration = time.Duration(floats.Max(ticks))
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.filled)
		s.PhaseAvg[phase] = avg
		if s.AvgTickDuration > 0 {
			s.PhasePct[phase] = float64(avg) / float64(s.AvgTickDuration) * 100
		}
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
	}
	for _, phase := range Phases() {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of timing stats.
type PerfStatsCSV struct {
	Tick        int64   `csv:"tick"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MinTickUS   int64   `csv:"min_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	InputPct    float64 `csv:"input_pct"`
	StatePct    float64 `csv:"state_pct"`
	MovementPct float64 `csv:"movement_pct"`
	RigPct      float64 `csv:"rig_pct"`
	FocusPct    float64 `csv:"focus_pct"`
	WritePct    float64 `csv:"write_pct"`
	SwitchPct   float64 `csv:"switch_pct"`
}

// ToCSV flattens the stats for the window ending at tick.
func (s PerfStats) ToCSV(tick int64) PerfStatsCSV {
	return PerfStatsCSV{
		Tick:        tick,
		AvgTickUS:   s.AvgTickDuration.Microseconds(),
		MinTickUS:   s.MinTickDuration.Microseconds(),
		MaxTickUS:   s.MaxTickDuration.Microseconds(),
		InputPct:    s.PhasePct[PhaseInput],
		StatePct:    s.PhasePct[PhaseState],
		MovementPct: s.PhasePct[PhaseMovement],
		RigPct:      s.PhasePct[PhaseRig],
		FocusPct:    s.PhasePct[PhaseFocus],
		WritePct:    s.PhasePct[PhaseWrite],
		SwitchPct:   s.PhasePct[PhaseSwitch],
	}
}
