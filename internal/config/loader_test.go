package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded YAML and DefaultConfig() disagree:\n%+v\n%+v", cfg, DefaultConfig())
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Parse([]byte("player:\n  speed: 120\ncompletion:\n  mode: loop\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Player.Speed != 120 {
		t.Errorf("Player.Speed = %g, expected 120", cfg.Player.Speed)
	}
	if cfg.Player.StartX != 100 {
		t.Errorf("Player.StartX = %g, expected default 100", cfg.Player.StartX)
	}
	if cfg.Completion.Mode != CompletionLoop {
		t.Errorf("Completion.Mode = %q, expected loop", cfg.Completion.Mode)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero speed", "player:\n  speed: 0\n"},
		{"negative world", "world:\n  width: -1\n"},
		{"huge margin", "items:\n  margin: 400\n"},
		{"unknown completion", "completion:\n  mode: forever\n"},
		{"malformed", "world: [1, 2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("input:\n  hold_ticks: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Input.HoldTicks != 3 {
		t.Errorf("Input.HoldTicks = %d, expected 3", cfg.Input.HoldTicks)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load should fail for a missing custom path")
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/tmp/x.db")
	if err != nil || got != "/tmp/x.db" {
		t.Errorf("ExpandHome(absolute) = %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/.vedapath/runs.db")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".vedapath", "runs.db"); got != want {
		t.Errorf("ExpandHome = %q, expected %q", got, want)
	}
}
