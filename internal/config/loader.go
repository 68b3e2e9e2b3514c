package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the config directories.
const FileName = "vedapath.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.vedapath/configs/vedapath.yaml -> ./configs/vedapath.yaml -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a YAML document on top of DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a playable world.
func (c Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	}
	if c.Player.Speed <= 0 {
		return fmt.Errorf("player speed must be positive, got %g", c.Player.Speed)
	}
	if c.Player.Size <= 0 || c.Items.Size <= 0 {
		return fmt.Errorf("player and item sizes must be positive")
	}
	if c.Gate.Width <= 0 || c.Gate.Height <= 0 {
		return fmt.Errorf("gate size must be positive, got %gx%g", c.Gate.Width, c.Gate.Height)
	}
	if 2*c.Items.Margin >= c.World.Width || 2*c.Items.Margin >= c.World.Height {
		return fmt.Errorf("item margin %g leaves no room to spawn", c.Items.Margin)
	}
	switch c.Completion.Mode {
	case CompletionTerminal, CompletionLoop:
	default:
		return fmt.Errorf("unknown completion mode %q", c.Completion.Mode)
	}
	return nil
}

// UserPath returns a path inside ~/.vedapath/configs, or empty if home is unavailable.
func UserPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vedapath", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
