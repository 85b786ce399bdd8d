package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to the terminal size.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // UI refresh ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// Outcome is how a finished game ended.
type Outcome string

const (
	OutcomeNone Outcome = ""
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int      // Current score
	MaxScore int      // Best possible score, 0 if unbounded
	GameOver bool     // Whether the game has ended
	Outcome  Outcome  // Set once GameOver is true
	Words    []string // Words found so far
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
}
