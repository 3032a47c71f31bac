package round

// Signal is an outcome the engine reports to the presentation layer.
type Signal int

const (
	SignalNone Signal = iota
	SignalLevelStarted
	SignalCorrect
	SignalIncorrect
	SignalTimeUp
	SignalLevelComplete
	SignalGameComplete
)

// String returns a human-readable name for the signal.
func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalLevelStarted:
		return "level-started"
	case SignalCorrect:
		return "correct"
	case SignalIncorrect:
		return "incorrect"
	case SignalTimeUp:
		return "time-up"
	case SignalLevelComplete:
		return "level-complete"
	case SignalGameComplete:
		return "game-complete"
	default:
		return "unknown"
	}
}

// Event carries a signal together with the state it was raised in.
type Event struct {
	Signal     Signal
	LevelIndex int
	Score      int
	Target     Item
	Candidate  Item // Zero unless the event answers a submission
	Generation uint64
}

// Listener receives engine events synchronously, in emission order.
type Listener func(Event)
