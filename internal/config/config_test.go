package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg RunnerConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded runner.yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Errorf("embedded defaults differ from DefaultRunnerConfig():\n got %+v\nwant %+v", cfg, DefaultRunnerConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if got := DefaultRunnerConfig().MaxLane(); got != 2 {
		t.Errorf("MaxLane() = %d, expected 2", got)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
	}{
		{"zero lanes", func(c *RunnerConfig) { c.Lanes.Count = 0 }},
		{"negative lanes", func(c *RunnerConfig) { c.Lanes.Count = -3 }},
		{"zero gravity", func(c *RunnerConfig) { c.Physics.Gravity = 0 }},
		{"zero frame clamp", func(c *RunnerConfig) { c.Physics.MaxFrameMs = 0 }},
		{"zero spawn distance", func(c *RunnerConfig) { c.World.SpawnDistance = 0 }},
		{"remove in front of player", func(c *RunnerConfig) { c.World.RemoveDistance = -5 }},
		{"probability above one", func(c *RunnerConfig) { c.Spawn.AlienChance = 1.5 }},
		{"shrinking letter interval", func(c *RunnerConfig) { c.Spawn.LetterGrowth = 0.5 }},
		{"short word", func(c *RunnerConfig) { c.Run.Word = "GEM" }},
		{"lives above max", func(c *RunnerConfig) { c.Run.Lives = 9 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, expected error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadRunnerCustomPathLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("lanes:\n  count: 3\nrun:\n  word: RUNNER\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() error: %v", err)
	}
	if cfg.Lanes.Count != 3 {
		t.Errorf("Lanes.Count = %d, expected 3", cfg.Lanes.Count)
	}
	if cfg.Run.Word != "RUNNER" {
		t.Errorf("Run.Word = %q, expected RUNNER", cfg.Run.Word)
	}
	if cfg.Physics.Gravity != DefaultRunnerConfig().Physics.Gravity {
		t.Errorf("unset fields should keep defaults, gravity = %v", cfg.Physics.Gravity)
	}
}

func TestLoadRunnerInvalidFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRunner(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadRunner() should fail for a missing custom file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("lanes:\n  count: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadRunner() with zero lanes should fail validation, got %v", err)
	}
}

func TestApplyRunnerPreset(t *testing.T) {
	cfg := DefaultRunnerConfig()
	ApplyRunnerPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultRunnerConfig()
	ApplyRunnerPreset(&cfg, DifficultyHard)
	if cfg.Difficulty.InitialLevel != 0.7 || cfg.Run.Lives != 2 {
		t.Errorf("hard preset: initial=%v lives=%d", cfg.Difficulty.InitialLevel, cfg.Run.Lives)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("hard preset should stay valid: %v", err)
	}

	cfg = DefaultRunnerConfig()
	ApplyRunnerPreset(&cfg, "")
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Error("empty preset should leave config untouched")
	}

	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should parse to empty")
	}
}

func TestDifficultySpeedRamp(t *testing.T) {
	dm := NewDifficultyManager(DefaultRunnerConfig().Difficulty)

	base := 20.0
	if got := dm.Speed(base, 0, 0); got != base {
		t.Errorf("Speed at start = %v, expected %v", got, base)
	}
	if got := dm.Speed(base, 3000, 0); got != base*1.5 {
		t.Errorf("Speed at max = %v, expected %v", got, base*1.5)
	}
	if got := dm.Speed(base, 1e6, 0); got != base*1.5 {
		t.Errorf("Speed past max should clamp, got %v", got)
	}

	prev := 0.0
	for d := 0.0; d <= 4000; d += 250 {
		s := dm.Speed(base, d, 0)
		if s < prev {
			t.Fatalf("speed decreased at distance %v: %v < %v", d, s, prev)
		}
		prev = s
	}

	dm.SetEnabled(false)
	if dm.IsEnabled() {
		t.Error("SetEnabled(false) should disable progression")
	}
	if got := dm.Speed(base, 3000, 0); got != base {
		t.Errorf("disabled progression should keep initial speed, got %v", got)
	}
}
