package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	yaml := "scenario: gaussian\nsteps: 50\ncoefficients:\n  eps: 0.002\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Scenario != "gaussian" {
		t.Errorf("Scenario = %q, want gaussian", cfg.Scenario)
	}
	if cfg.Steps != 50 {
		t.Errorf("Steps = %d, want 50", cfg.Steps)
	}
	if cfg.Coefficients.Eps != 0.002 {
		t.Errorf("Eps = %v, want 0.002", cfg.Coefficients.Eps)
	}
	// Unset fields keep their defaults.
	if cfg.Dt != DefaultDt {
		t.Errorf("Dt = %v, want default %v", cfg.Dt, DefaultDt)
	}
	if cfg.Coefficients.M2 != DefaultM2 {
		t.Errorf("M2 = %v, want default %v", cfg.Coefficients.M2, DefaultM2)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Scenario = "specialist"
	cfg.ResourceScheme = "quasistatic"
	cfg.Coefficients.KernelWidth = 0.15

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", cfg, loaded)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero dt", "dt: 0\n"},
		{"negative steps", "steps: -1\n"},
		{"zero mesh", "n: 0\n"},
		{"negative eps", "coefficients:\n  eps: -0.1\n"},
		{"malformed", "dt: [not a number\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load accepted invalid config")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load accepted a missing file")
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	want := []string{"baseline", "mutation", "quasistatic", "specialists"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ListPresets = %v, want %v", names, want)
	}

	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("GetPreset(%q) = nil", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}

	if GetPreset("nonesuch") != nil {
		t.Error("GetPreset with unknown name should return nil")
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("baseline")
	a.Steps = 1
	b := GetPreset("baseline")
	if b.Steps == 1 {
		t.Error("mutating a preset copy leaked into the registry")
	}
}
