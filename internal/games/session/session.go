// Package session binds a round engine to the platform tick loop. It owns the
// virtual clock, the per-second countdown, outcome event collection and the
// cosmetic feedback (toast, mascot, hint) shared by every game.
package session

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/round"
)

// ToastLifetime is how long a feedback message stays on screen.
const ToastLifetime = 2 * time.Second

// Session is one play session of a game.
type Session struct {
	Engine *round.Engine
	Sched  *round.Scheduler

	tickRate int
	step     time.Duration

	toast  Toast
	mood   Mood
	hint   string
	events []core.Event
}

// New creates the engine for levels and prepares the clock for the tick
// rate in rt. The engine starts at level 0; call Start to pick the level
// once every listener is subscribed.
func New(levels []round.Level, cfg round.Config, rt core.RuntimeConfig) (*Session, error) {
	engine, err := round.NewEngine(levels, cfg, rand.New(rand.NewSource(rt.Seed)))
	if err != nil {
		return nil, err
	}

	tickRate := rt.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}

	s := &Session{
		Engine:   engine,
		Sched:    round.NewScheduler(engine.Generation),
		tickRate: tickRate,
		step:     time.Second / time.Duration(tickRate),
	}
	engine.Subscribe(s.handle)
	return s, nil
}

// Start begins the given 0-based level.
func (s *Session) Start(level int) {
	if level < 0 || level >= s.Engine.LevelCount() {
		panic(fmt.Sprintf("session: start level %d out of range [0, %d)", level, s.Engine.LevelCount()))
	}
	s.Engine.StartLevel(level)
}

// Advance moves the virtual clock by one platform tick, running due tasks
// and aging the toast.
func (s *Session) Advance() {
	s.toast.step()
	if !s.toast.Active() && s.mood != MoodCelebrate {
		s.mood = MoodNeutral
	}
	s.Sched.Advance(s.step)
}

// Close drops all pending work.
func (s *Session) Close() {
	s.Sched.CancelAll()
}

// Flush returns the events collected since the last call.
func (s *Session) Flush() []core.Event {
	out := s.events
	s.events = nil
	return out
}

// Ticks converts a duration into platform ticks, at least one.
func (s *Session) Ticks(d time.Duration) int {
	n := int(d * time.Duration(s.tickRate) / time.Second)
	if n < 1 {
		n = 1
	}
	return n
}

// Say shows a toast with the given color.
func (s *Session) Say(text string, c core.Color) {
	s.toast.Show(text, c, s.Ticks(ToastLifetime))
}

func (s *Session) Toast() Toast { return s.toast }
func (s *Session) Mood() Mood   { return s.mood }
func (s *Session) Hint() string { return s.hint }

// State builds the platform view of the round state.
func (s *Session) State(paused bool) core.GameState {
	st := s.Engine.Snapshot()
	return core.GameState{
		Score:         st.Score,
		Goal:          st.RequiredScore,
		Level:         st.LevelIndex + 1,
		LevelCount:    st.LevelCount,
		TimeLeft:      st.TimeRemaining,
		Timed:         st.Timed,
		LevelComplete: st.LevelComplete,
		GameOver:      st.GameComplete,
		Paused:        paused,
	}
}

// Levels describes the level table for menus.
func (s *Session) Levels() []core.LevelInfo {
	return LevelInfos(s.Engine.Levels())
}

// LevelInfos converts round levels into menu descriptions.
func LevelInfos(levels []round.Level) []core.LevelInfo {
	out := make([]core.LevelInfo, len(levels))
	for i, l := range levels {
		out[i] = core.LevelInfo{
			Number:      l.Number,
			Description: l.Description,
			Goal:        l.RequiredScore,
			TimeLimit:   l.TimeLimit,
		}
	}
	return out
}

// handle records every engine event and drives the countdown and feedback.
func (s *Session) handle(evt round.Event) {
	s.events = append(s.events, coreEvent(evt))

	switch evt.Signal {
	case round.SignalLevelStarted:
		s.hint = ""
		if s.mood == MoodCelebrate {
			s.mood = MoodNeutral
		}
		s.armCountdown()
	case round.SignalCorrect:
		s.hint = evt.Target.Hint
		s.mood = MoodHappy
		s.Say(praise[evt.Score%len(praise)], core.ColorCorrect)
	case round.SignalIncorrect:
		s.hint = evt.Target.Hint
		s.mood = MoodWorried
		if s.Engine.Config().ResetOnMistake {
			s.Say("Oops! Let's start this one again.", core.ColorIncorrect)
		} else {
			s.Say("Not quite, try again!", core.ColorIncorrect)
		}
	case round.SignalTimeUp:
		s.mood = MoodWorried
		s.Say("Time's up! Let's try again.", core.ColorIncorrect)
	case round.SignalLevelComplete:
		s.mood = MoodCelebrate
		s.Say(fmt.Sprintf("Level %d complete!", evt.LevelIndex+1), core.ColorHighlight)
	case round.SignalGameComplete:
		s.mood = MoodCelebrate
		s.Say("You finished every level!", core.ColorHighlight)
	}
}

// armCountdown schedules the next one-second tick for a timed level. The
// task carries the current generation, so a reset orphans the old chain.
func (s *Session) armCountdown() {
	if _, timed := s.Engine.TimeRemaining(); !timed {
		return
	}
	s.Sched.After(time.Second, s.countdown)
}

func (s *Session) countdown() {
	if s.Engine.Tick() == round.SignalTimeUp {
		// The reset re-armed a fresh chain.
		return
	}
	if !s.Engine.LevelComplete() {
		s.Sched.After(time.Second, s.countdown)
	}
}

func coreEvent(evt round.Event) core.Event {
	return core.Event{
		Name:   evt.Signal.String(),
		Level:  evt.LevelIndex + 1,
		Score:  evt.Score,
		Target: evt.Target.ID,
	}
}

var praise = []string{
	"Great job!",
	"Well done!",
	"Awesome!",
	"You got it!",
	"Super!",
}
