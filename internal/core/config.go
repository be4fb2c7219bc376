package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
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

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score
	Distance float64 // Distance traveled in the current run
	Level    int     // Current level (1-based)
	Victory  bool    // Whether the run ended by completing the final level
	GameOver bool    // Whether the game has ended
	Paused   bool    // Whether the game is paused
}

// Finished reports whether the run has ended, by death or by victory.
func (s GameState) Finished() bool {
	return s.GameOver || s.Victory
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
