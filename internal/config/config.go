// Package config provides YAML-based configuration loading for Veda Path.
package config

// Config contains all tunable parameters of the game.
// World coordinates are abstract units; the renderer scales them to the terminal.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Gate       GateConfig       `yaml:"gate"`
	Items      ItemsConfig      `yaml:"items"`
	Movement   MovementConfig   `yaml:"movement"`
	Input      InputConfig      `yaml:"input"`
	Questions  QuestionsConfig  `yaml:"questions"`
	Completion CompletionConfig `yaml:"completion"`
}

// WorldConfig defines the playfield size.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the avatar.
type PlayerConfig struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	Size   float64 `yaml:"size"`
	Speed  float64 `yaml:"speed"` // Units per second on each axis
}

// GateConfig defines the exit gate region.
type GateConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ItemsConfig defines veda size and random spawn constraints.
type ItemsConfig struct {
	Size                  float64 `yaml:"size"`
	Margin                float64 `yaml:"margin"`
	MinDistanceFromPlayer float64 `yaml:"min_distance_from_player"`
	MinDistanceFromGate   float64 `yaml:"min_distance_from_gate"`
	SpawnAttempts         int     `yaml:"spawn_attempts"`
	RandomSpawns          bool    `yaml:"random_spawns"` // Ignore catalog spawn points
}

// MovementConfig defines movement rules.
type MovementConfig struct {
	// NormalizeDiagonal scales two-axis movement so the avatar never moves
	// faster than Speed. Disable for the legacy "diagonal is faster" feel.
	NormalizeDiagonal bool `yaml:"normalize_diagonal"`
}

// InputConfig defines terminal input handling.
type InputConfig struct {
	HoldTicks int `yaml:"hold_ticks"` // Ticks a key press counts as held
}

// QuestionsConfig defines where question data comes from.
type QuestionsConfig struct {
	Source string `yaml:"source"` // File path or http(s) URL; empty = embedded bank
}

// CompletionMode selects what happens after the last level.
type CompletionMode string

const (
	CompletionTerminal CompletionMode = "terminal" // Show the liberation screen
	CompletionLoop     CompletionMode = "loop"     // Start over at level 1
)

// CompletionConfig defines end-of-catalog behavior.
type CompletionConfig struct {
	Mode CompletionMode `yaml:"mode"`
}
