package core

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns available to the game
	ScreenH  int   // Terminal rows available to the game
	TickRate int   // Step calls per second
	Seed     int64 // Tile spawn seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns the settings of a plain 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is the summary a game reports to the platform after every step.
type GameState struct {
	Score    int
	Best     int  // Stored best or the current score, whichever is higher
	GameOver bool // No moves left
	Won      bool // Win tile reached, waiting for keep playing or restart
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	// Changed reports whether the board changed during this step.
	Changed bool
}
