package config

import (
	_ "embed"
)

//go:embed defaults/vedapath.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded default configuration.
// Values mirror defaults/vedapath.yaml.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:  800,
			Height: 600,
		},
		Player: PlayerConfig{
			StartX: 100,
			StartY: 500,
			Size:   30,
			Speed:  200,
		},
		Gate: GateConfig{
			X:      750,
			Y:      100,
			Width:  30,
			Height: 60,
		},
		Items: ItemsConfig{
			Size:                  24,
			Margin:                100,
			MinDistanceFromPlayer: 150,
			MinDistanceFromGate:   150,
			SpawnAttempts:         100,
			RandomSpawns:          false,
		},
		Movement: MovementConfig{
			NormalizeDiagonal: true,
		},
		Input: InputConfig{
			HoldTicks: 8,
		},
		Questions: QuestionsConfig{
			Source: "",
		},
		Completion: CompletionConfig{
			Mode: CompletionTerminal,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}
