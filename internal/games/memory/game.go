// Package memory implements the memory-match card game: flip two cards at a
// time and find every pair before the level's countdown runs out.
package memory

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/edufy/internal/config"
	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/games/session"
	"github.com/vovakirdan/edufy/internal/registry"
	"github.com/vovakirdan/edufy/internal/round"
)

// FlipBackDelay is how long a mismatched pair stays face up.
const FlipBackDelay = time.Second

const (
	minWidth  = 40
	minHeight = 12
)

type card struct {
	item    round.Item
	up      bool
	matched bool
}

// Game is one memory-match session.
type Game struct {
	id     string
	cfg    config.GameConfig
	levels []round.Level
	policy round.Config
	start  int

	sess *session.Session
	rng  *rand.Rand

	screenW  int
	screenH  int
	tooSmall bool
	paused   bool

	cards  []card
	cursor int
	first  int  // Index of the face-up card waiting for its partner, or -1
	busy   bool // A mismatched pair is waiting to flip back

	// Hit areas recorded by the last Render.
	cardRects []core.Rect
}

func init() {
	session.RegisterDefaults(config.KindMemory, func(id string, opts core.GameOptions) (registry.Game, error) {
		g, err := New(id, opts)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}

// New loads the table for id and prepares a game.
func New(id string, opts core.GameOptions) (*Game, error) {
	table, err := session.LoadTable(id, config.KindMemory, opts)
	if err != nil {
		return nil, fmt.Errorf("memory: %w", err)
	}
	return &Game{
		id:     id,
		cfg:    table.Config,
		levels: table.Levels,
		policy: table.Policy,
		start:  table.Start,
		first:  -1,
	}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.cfg.Title }

// Engine exposes the round engine of the current session.
func (g *Game) Engine() *round.Engine { return g.sess.Engine }

// Reset starts a fresh session at the configured start level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.sess != nil {
		g.sess.Close()
	}
	sess, err := session.New(g.levels, g.policy, cfg)
	if err != nil {
		panic(fmt.Sprintf("memory: %v", err))
	}
	g.sess = sess
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.sess.Engine.Subscribe(g.onEvent)

	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.paused = false

	g.sess.Start(g.start)
}

// Resize updates the playfield size without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minWidth || h < minHeight
}

func (g *Game) onEvent(evt round.Event) {
	if evt.Signal == round.SignalLevelStarted {
		g.deal()
	}
}

// deal lays out two face-down cards per level item in random order.
func (g *Game) deal() {
	items := g.sess.Engine.Level().Items
	g.cards = make([]card, 0, 2*len(items))
	for _, it := range items {
		g.cards = append(g.cards, card{item: it}, card{item: it})
	}
	g.rng.Shuffle(len(g.cards), func(i, j int) {
		g.cards[i], g.cards[j] = g.cards[j], g.cards[i]
	})
	g.cursor = 0
	g.first = -1
	g.busy = false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !g.sess.Engine.GameComplete() {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.sess.Advance()

	engine := g.sess.Engine
	switch {
	case in.Has(core.ActionRestart):
		if engine.GameComplete() {
			engine.Restart()
		} else {
			engine.ResetLevel()
		}
	case in.Has(core.ActionNext):
		engine.AdvanceLevel()
	case engine.LevelComplete():
		if in.Has(core.ActionConfirm) {
			engine.AdvanceLevel()
		}
	default:
		g.handleInput(in)
	}

	return core.StepResult{State: g.State(), Events: g.sess.Flush()}
}

func (g *Game) handleInput(in core.InputFrame) {
	n := len(g.cards)
	cols := g.columns()

	switch {
	case in.Has(core.ActionLeft):
		g.cursor = core.Wrap(g.cursor-1, n)
	case in.Has(core.ActionRight):
		g.cursor = core.Wrap(g.cursor+1, n)
	case in.Has(core.ActionUp):
		if g.cursor-cols >= 0 {
			g.cursor -= cols
		}
	case in.Has(core.ActionDown):
		if g.cursor+cols < n {
			g.cursor += cols
		}
	}

	switch {
	case in.Has(core.ActionConfirm):
		g.flip(g.cursor)
	case in.Pointer != nil && in.Pointer.Kind == core.PointerPress:
		if i := core.HitTest(g.cardRects, in.Pointer.X, in.Pointer.Y); i >= 0 {
			g.cursor = i
			g.flip(i)
		}
	}
}

// flip turns card i face up. The first card of a pair opens the round, the
// second answers it. A mismatch flips both back after FlipBackDelay unless
// the level restarts first.
func (g *Game) flip(i int) {
	if g.busy || i < 0 || i >= len(g.cards) {
		return
	}
	c := &g.cards[i]
	if c.up || c.matched {
		return
	}
	engine := g.sess.Engine

	if g.first < 0 {
		if !engine.Aim(c.item) {
			return
		}
		c.up = true
		g.first = i
		return
	}

	first := g.first
	gen := engine.Generation()
	c.up = true
	g.first = -1

	sig := engine.SubmitAnswer(c.item)
	if engine.Generation() != gen {
		// The level restarted and the cards were dealt again.
		return
	}
	switch sig {
	case round.SignalCorrect:
		g.cards[first].matched = true
		c.matched = true
	case round.SignalIncorrect:
		g.busy = true
		g.sess.Sched.After(FlipBackDelay, func() {
			g.cards[first].up = false
			g.cards[i].up = false
			g.busy = false
		})
	}
}

// columns picks the grid width for the current deal and screen.
func (g *Game) columns() int {
	cols := (g.screenW + cardGap) / (cardWidth + cardGap)
	if cols > maxColumns {
		cols = maxColumns
	}
	if n := len(g.cards); cols > n {
		cols = n
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.sess.State(g.paused || g.tooSmall)
}

// Levels describes the level table.
func (g *Game) Levels() []core.LevelInfo {
	return session.LevelInfos(g.levels)
}
