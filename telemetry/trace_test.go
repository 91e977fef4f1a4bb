package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/configcam/config"
)

func record(tick int64, mode, active string, camX float32) TraceRecord {
	r := TraceRecord{Tick: tick, Mode: mode, Driver: "Orbit", Active: active}
	r.SetCamera(rl.Vector3{X: camX})
	return r
}

func TestSummarize(t *testing.T) {
	records := []TraceRecord{
		record(0, "LookAt", "fly", 0),
		record(1, "LookAt", "fly", 1),
		record(2, "FollowBehind", "player", 2),
		record(3, "FollowBehind", "player", 5),
	}
	records[3].SetFocus(rl.Vector3{X: 4}, rl.Vector3{})

	s := Summarize(records)
	if s.Ticks != 4 {
		t.Errorf("ticks: got %d, want 4", s.Ticks)
	}
	if s.ModeChanges != 1 || s.CameraSwitches != 1 || s.DriverChanges != 0 {
		t.Errorf("changes: got %+v", s)
	}
	// Steps are 1, 1, 3
	if math.Abs(s.StepMean-5.0/3) > 1e-9 {
		t.Errorf("step mean: got %f, want %f", s.StepMean, 5.0/3)
	}
	if s.StepMax != 3 {
		t.Errorf("step max: got %f, want 3", s.StepMax)
	}
	if s.FocusLagMax != 4 || s.FocusLagMean != 1 {
		t.Errorf("focus lag: got mean=%f max=%f", s.FocusLagMean, s.FocusLagMax)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s != (TraceStats{}) {
		t.Errorf("expected zero stats, got %+v", s)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}

	if err := om.WriteTrace(record(0, "LookAt", "fly", 0)); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteTrace(record(1, "LookAt", "fly", 1), record(2, "Fps", "fly", 2)); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(PerfStats{}, 2); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "trace.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "tick,time,mode,driver,active_camera") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Count(string(data), "tick,") != 1 {
		t.Error("header written more than once")
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml missing: %v", err)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	// Methods are nil-safe
	if err := om.WriteTrace(TraceRecord{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}
