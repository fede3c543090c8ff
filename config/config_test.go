package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.World.Width != 1024 || cfg.World.Height != 1024 {
		t.Errorf("world size = %fx%f, want 1024x1024", cfg.World.Width, cfg.World.Height)
	}
	if cfg.World.DT != 0.1 {
		t.Errorf("dt = %f, want 0.1", cfg.World.DT)
	}
	if cfg.Decision.OracleTimeoutTicks != 30 {
		t.Errorf("oracle timeout = %d, want 30", cfg.Decision.OracleTimeoutTicks)
	}
	if cfg.Needs.HungerCritical != 90 {
		t.Errorf("hunger critical = %f, want 90", cfg.Needs.HungerCritical)
	}
}

func TestComputeDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	d := cfg.Derived
	if d.DT32 != float32(cfg.World.DT) {
		t.Errorf("DT32 = %f", d.DT32)
	}
	if d.TalkRadius != float32(cfg.Perception.ConversationRadius) {
		t.Errorf("TalkRadius = %f", d.TalkRadius)
	}
	if d.HalfFOV != float32(cfg.Perception.VisionFOV)/2 {
		t.Errorf("HalfFOV = %f", d.HalfFOV)
	}
	if d.Interact32 != float32(cfg.Behavior.InteractionRange) {
		t.Errorf("Interact32 = %f", d.Interact32)
	}
}

func TestFileOverridesSingleField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	override := "decision:\n  oracle_timeout_ticks: 99\n"
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override file: %v", err)
	}
	if cfg.Decision.OracleTimeoutTicks != 99 {
		t.Errorf("override should win, got %d", cfg.Decision.OracleTimeoutTicks)
	}
	// Untouched sections keep their defaults.
	if cfg.World.Width != 1024 {
		t.Errorf("default should survive a partial override, got %f", cfg.World.Width)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Movement.Speed = 55

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reading config back: %v", err)
	}
	if back.Movement.Speed != 55 {
		t.Errorf("speed after roundtrip = %f, want 55", back.Movement.Speed)
	}
	if back.Derived.Speed32 != 55 {
		t.Errorf("derived should be recomputed on load, got %f", back.Derived.Speed32)
	}
}
