package round

import (
	"fmt"
	"math/rand"
)

// Config holds the per-game policy knobs.
type Config struct {
	// ResetOnMistake restarts the whole level on a wrong answer instead of
	// letting the player retry.
	ResetOnMistake bool

	Selection SelectionMode

	// DistractorCount is how many wrong options accompany the target.
	DistractorCount int
}

// DefaultConfig returns the retry-without-penalty, random-target policy
// with three distractors.
func DefaultConfig() Config {
	return Config{
		ResetOnMistake:  false,
		Selection:       SelectRandom,
		DistractorCount: 3,
	}
}

// State is a value copy of the round state.
type State struct {
	LevelIndex    int
	LevelCount    int
	Score         int
	RequiredScore int
	Target        Item
	HasTarget     bool
	Options       []Item
	TimeRemaining int
	Timed         bool
	LevelComplete bool
	GameComplete  bool
	Cursor        int
	Generation    uint64
}

// Engine owns the round state of one play session.
// It is not safe for concurrent use; callers drive it from one event loop.
type Engine struct {
	levels []Level
	cfg    Config
	rng    *rand.Rand

	levelIndex    int
	score         int
	target        Item
	hasTarget     bool
	options       []Item
	timeRemaining int
	levelComplete bool
	gameComplete  bool
	cursor        int
	generation    uint64

	listeners []Listener
}

// NewEngine validates the level table and starts the first level.
func NewEngine(levels []Level, cfg Config, rng *rand.Rand) (*Engine, error) {
	if err := ValidateLevels(levels); err != nil {
		return nil, fmt.Errorf("round: invalid level table: %w", err)
	}
	if cfg.DistractorCount < 0 {
		return nil, fmt.Errorf("round: distractor count must not be negative, got %d", cfg.DistractorCount)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	e := &Engine{
		levels: levels,
		cfg:    cfg,
		rng:    rng,
	}
	e.StartLevel(0)
	return e, nil
}

// Subscribe registers a listener for every subsequent event.
func (e *Engine) Subscribe(l Listener) {
	e.listeners = append(e.listeners, l)
}

func (e *Engine) emit(sig Signal, candidate Item) {
	evt := Event{
		Signal:     sig,
		LevelIndex: e.levelIndex,
		Score:      e.score,
		Target:     e.target,
		Candidate:  candidate,
		Generation: e.generation,
	}
	for _, l := range e.listeners {
		l(evt)
	}
}

// StartLevel resets score, completion flags and countdown for the level at
// index and opens its first round. Passing an index outside [0, LevelCount)
// is a programming error.
func (e *Engine) StartLevel(index int) {
	if index < 0 || index >= len(e.levels) {
		panic(fmt.Sprintf("round: level index %d out of range [0, %d)", index, len(e.levels)))
	}

	e.generation++
	e.levelIndex = index
	e.score = 0
	e.levelComplete = false
	e.gameComplete = false
	e.cursor = 0
	e.timeRemaining = e.levels[index].TimeLimit

	e.nextRound()
	e.emit(SignalLevelStarted, Item{})
}

// nextRound picks the next target and rebuilds options according to the
// selection mode.
func (e *Engine) nextRound() {
	level := e.levels[e.levelIndex]

	switch e.cfg.Selection {
	case SelectManual:
		e.target = Item{}
		e.hasTarget = false
		e.options = nil
		return
	case SelectSequential:
		e.target = level.Items[e.cursor%len(level.Items)]
	default:
		e.target = SelectTarget(e.rng, level)
	}

	e.hasTarget = true
	e.options = BuildOptions(e.rng, e.target, level, e.cfg.DistractorCount)
}

// Aim sets the target explicitly. It only applies in manual selection mode,
// while the level is in progress and no round is open.
func (e *Engine) Aim(target Item) bool {
	if e.cfg.Selection != SelectManual || e.levelComplete || e.hasTarget {
		return false
	}
	e.target = target
	e.hasTarget = true
	e.options = BuildOptions(e.rng, target, e.levels[e.levelIndex], e.cfg.DistractorCount)
	return true
}

// SubmitAnswer judges a candidate against the current target.
// It is a no-op returning SignalNone once the level is complete or while no
// round is open.
func (e *Engine) SubmitAnswer(candidate Item) Signal {
	if e.levelComplete || !e.hasTarget {
		return SignalNone
	}

	if candidate.ID != e.target.ID {
		e.emit(SignalIncorrect, candidate)
		if e.cfg.ResetOnMistake {
			e.ResetLevel()
			return SignalIncorrect
		}
		e.cursor++
		e.nextRound()
		return SignalIncorrect
	}

	e.score++
	e.emit(SignalCorrect, candidate)

	if e.score >= e.levels[e.levelIndex].RequiredScore {
		e.levelComplete = true
		e.emit(SignalLevelComplete, candidate)
		if e.levelIndex == len(e.levels)-1 {
			e.gameComplete = true
			e.emit(SignalGameComplete, candidate)
		}
		return SignalCorrect
	}

	e.cursor++
	e.nextRound()
	return SignalCorrect
}

// OnDropped handles a drag-and-drop gesture: dropping the current target
// onto zone answers with zone. Drops of anything else are ignored.
func (e *Engine) OnDropped(dragged, zone Item) Signal {
	if !e.hasTarget || dragged.ID != e.target.ID {
		return SignalNone
	}
	return e.SubmitAnswer(zone)
}

// Tick advances the countdown by one second. When it reaches zero the level
// is reset and SignalTimeUp is returned. Untimed or completed levels ignore
// ticks.
func (e *Engine) Tick() Signal {
	if !e.levels[e.levelIndex].Timed() || e.levelComplete {
		return SignalNone
	}

	if e.timeRemaining > 0 {
		e.timeRemaining--
	}
	if e.timeRemaining > 0 {
		return SignalNone
	}

	e.emit(SignalTimeUp, Item{})
	e.ResetLevel()
	return SignalTimeUp
}

// AdvanceLevel moves to the next level. It only succeeds when the current
// level is complete and is not the last one.
func (e *Engine) AdvanceLevel() bool {
	if !e.levelComplete || e.levelIndex >= len(e.levels)-1 {
		return false
	}
	e.StartLevel(e.levelIndex + 1)
	return true
}

// ResetLevel restarts the current level.
func (e *Engine) ResetLevel() {
	e.StartLevel(e.levelIndex)
}

// Restart begins the game again from the first level.
func (e *Engine) Restart() {
	e.StartLevel(0)
}

// Target returns the current target and whether a round is open.
func (e *Engine) Target() (Item, bool) {
	return e.target, e.hasTarget
}

// Options returns a copy of the current option set.
func (e *Engine) Options() []Item {
	out := make([]Item, len(e.options))
	copy(out, e.options)
	return out
}

// Score returns the score within the current level.
func (e *Engine) Score() int { return e.score }

// RequiredScore returns the score needed to complete the current level.
func (e *Engine) RequiredScore() int {
	return e.levels[e.levelIndex].RequiredScore
}

// TimeRemaining returns the seconds left and whether the level is timed.
func (e *Engine) TimeRemaining() (int, bool) {
	return e.timeRemaining, e.levels[e.levelIndex].Timed()
}

func (e *Engine) LevelComplete() bool { return e.levelComplete }
func (e *Engine) GameComplete() bool  { return e.gameComplete }
func (e *Engine) LevelIndex() int     { return e.levelIndex }
func (e *Engine) LevelCount() int     { return len(e.levels) }
func (e *Engine) Cursor() int         { return e.cursor }

// Level returns the current level definition.
func (e *Engine) Level() Level {
	return e.levels[e.levelIndex]
}

// Levels returns the level table.
func (e *Engine) Levels() []Level {
	return e.levels
}

// Generation changes every time a level starts or resets. Deferred work
// compares it to detect that the state it was scheduled for is gone.
func (e *Engine) Generation() uint64 {
	return e.generation
}

// Config returns the engine policy.
func (e *Engine) Config() Config {
	return e.cfg
}

// Snapshot returns a copy of the full round state.
func (e *Engine) Snapshot() State {
	remaining, timed := e.TimeRemaining()
	return State{
		LevelIndex:    e.levelIndex,
		LevelCount:    len(e.levels),
		Score:         e.score,
		RequiredScore: e.RequiredScore(),
		Target:        e.target,
		HasTarget:     e.hasTarget,
		Options:       e.Options(),
		TimeRemaining: remaining,
		Timed:         timed,
		LevelComplete: e.levelComplete,
		GameComplete:  e.gameComplete,
		Cursor:        e.cursor,
		Generation:    e.generation,
	}
}
