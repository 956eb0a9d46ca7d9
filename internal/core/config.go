package core

// RuntimeConfig is what the platform hands a game on Reset: the terminal
// size, the fixed tick rate, the RNG seed and where to start.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns
	ScreenH  int   // Terminal rows
	TickRate int   // Steps per second (default 30)
	Seed     int64 // Same seed, same boards
	Level    int   // Level to start on, 1-based; 0 means the first
}

// DefaultConfig returns the configuration used when no terminal is attached.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // The platform replaces 0 with the current time
		Level:    1,
	}
}

// GameState is the summary the platform reads after every step.
type GameState struct {
	Score    int  // Points so far in the run
	Level    int  // Level being played
	GameOver bool // Run finished; the platform saves the score once
	Won      bool // The level ended with its target reached
	Paused   bool // Paused by the player or by a too-small window
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	// Bell asks the platform to ring the terminal bell.
	Bell bool
}
