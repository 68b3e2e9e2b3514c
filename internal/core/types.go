package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// DeltaTime returns the simulated seconds per tick.
func (c RuntimeConfig) DeltaTime() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is reported to the platform after every tick.
type GameState struct {
	Score    int  // Correct answers this session
	Level    int  // Current level (1-based)
	GameOver bool // Whether the session has ended
	Paused   bool // Whether the player paused the game
	Quiz     bool // A question is on screen; letter keys answer it
	Loading  bool // Question content has not arrived yet
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event // Loop events produced during the tick
}

// RunSummary describes a finished (or abandoned) session for the run history.
type RunSummary struct {
	Mode          string
	LevelsCleared int
	Correct       int
	Wrong         int
	Loops         int
	Completed     bool // Reached the liberation screen
}
