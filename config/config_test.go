package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if !cfg.Plugin.InitCameras {
		t.Error("expected init_cameras to default to true")
	}
	if len(cfg.Plugin.AllowedModes) != 7 {
		t.Errorf("expected 7 allowed modes, got %d", len(cfg.Plugin.AllowedModes))
	}
	if cfg.Derived.Lerp32 != 0.5 {
		t.Errorf("expected lerp 0.5, got %f", cfg.Derived.Lerp32)
	}
	if cfg.Derived.DeadZone32 != 0.2 {
		t.Errorf("expected dead zone 0.2, got %f", cfg.Derived.DeadZone32)
	}
	if cfg.Derived.FocusSpeed32 != 2.0 {
		t.Errorf("expected focus speed 2.0, got %f", cfg.Derived.FocusSpeed32)
	}
	if got := cfg.Keys.Camera["next_mode"]; len(got) != 1 || got[0] != "C" {
		t.Errorf("expected next_mode bound to C, got %v", got)
	}
}

func TestLoadOverrideMergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	override := []byte("movement:\n  lerp: 0.25\nplugin:\n  allowed_modes: [FollowBehind]\nkeys:\n  camera:\n    next_mode: [V]\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Derived.Lerp32 != 0.25 {
		t.Errorf("expected lerp 0.25, got %f", cfg.Derived.Lerp32)
	}
	if len(cfg.Plugin.AllowedModes) != 1 || cfg.Plugin.AllowedModes[0] != "FollowBehind" {
		t.Errorf("expected allowed modes [FollowBehind], got %v", cfg.Plugin.AllowedModes)
	}
	// Fields absent from the override keep their defaults
	if cfg.Movement.Dist != 10 {
		t.Errorf("expected dist 10, got %f", cfg.Movement.Dist)
	}
	if got := cfg.Keys.Camera["next_mode"]; len(got) != 1 || got[0] != "V" {
		t.Errorf("expected next_mode bound to V, got %v", got)
	}
	if got := cfg.Keys.Camera["forward"]; len(got) != 1 || got[0] != "W" {
		t.Errorf("expected forward still bound to W, got %v", got)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"lerp above one", "movement:\n  lerp: 1.5\n"},
		{"negative dead zone", "focus:\n  dead_zone: -1\n"},
		{"unknown focus strategy", "plugin:\n  focus_strategy: nearest\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected an error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLReloads(t *testing.T) {
	cfg := Default()
	cfg.Movement.Dist = 22

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if reloaded.Derived.Dist32 != 22 {
		t.Errorf("expected dist 22 after reload, got %f", reloaded.Derived.Dist32)
	}
}

func TestInitAndCfg(t *testing.T) {
	MustInit("")
	if Cfg() == nil {
		t.Fatal("Cfg() returned nil after MustInit")
	}
}

func TestWatchDeliversReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.yaml")
	if err := os.WriteFile(path, []byte("movement:\n  dist: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("movement:\n  dist: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates:
		if cfg.Derived.Dist32 != 7 {
			t.Errorf("expected reloaded dist 7, got %f", cfg.Derived.Dist32)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatchCloseClosesChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.yaml")
	if err := os.WriteFile(path, []byte("movement:\n  dist: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	for name, ch := range map[string]func() bool{
		"Updates": func() bool { _, ok := <-w.Updates; return ok },
		"Errors":  func() bool { _, ok := <-w.Errors; return ok },
	} {
		done := make(chan bool, 1)
		go func() { done <- ch() }()
		select {
		case ok := <-done:
			if ok {
				t.Errorf("%s delivered a value after Close", name)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("%s not closed after Close", name)
		}
	}
}
