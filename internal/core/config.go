package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Step calls per second (default 30)
	Seed     int64 // RNG seed for deterministic rounds
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameOptions carries the per-session choices made on the command line or
// in the menus. It is handed to the game factory, so no package-level state
// is needed to pass them along.
type GameOptions struct {
	ConfigPath string // Explicit content table, empty for the search path
	Difficulty string // easy, normal or hard; empty means normal
	StartLevel int    // 1-based; 0 means the first level
}

// LevelInfo describes one level for menus and listings.
type LevelInfo struct {
	Number      int
	Description string
	Goal        int // Correct answers needed
	TimeLimit   int // Seconds, 0 when untimed
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score         int  // Correct answers in the current level
	Goal          int  // Correct answers needed to finish the level
	Level         int  // 1-based current level
	LevelCount    int  // Number of levels
	TimeLeft      int  // Seconds left when Timed
	Timed         bool // Whether the level has a countdown
	LevelComplete bool // Whether the current level is finished
	GameOver      bool // Whether the last level is finished
	Paused        bool // Whether the game is paused
}

// Event names reported in StepResult.Events.
const (
	EventLevelStarted  = "level-started"
	EventCorrect       = "correct"
	EventIncorrect     = "incorrect"
	EventTimeUp        = "time-up"
	EventLevelComplete = "level-complete"
	EventGameComplete  = "game-complete"
)

// Event is an outcome that happened during a step.
type Event struct {
	Name   string
	Level  int    // 1-based level the event belongs to
	Score  int    // Score after the event
	Target string // Target item id, when there is one
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
