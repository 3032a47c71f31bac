// Package quiz implements the generic choice and drag-and-drop game. Every
// quiz-kind content table (emotions, colors, spelling, shapes, scenarios...)
// is registered as its own game on top of one implementation.
package quiz

import (
	"fmt"

	"github.com/vovakirdan/edufy/internal/config"
	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/games/session"
	"github.com/vovakirdan/edufy/internal/registry"
	"github.com/vovakirdan/edufy/internal/round"
)

// Minimum playfield size.
const (
	minWidth  = 40
	minHeight = 12
)

// Game is one quiz session.
type Game struct {
	id     string
	cfg    config.GameConfig
	levels []round.Level
	policy round.Config
	start  int

	sess *session.Session

	screenW  int
	screenH  int
	tooSmall bool
	paused   bool
	selected int

	// Drag state. grabbed is set while the piece is carried, by keyboard or
	// mouse; the pointer position is only meaningful for mouse drags.
	grabbed   bool
	mouseDrag bool
	pointerX  int
	pointerY  int

	// Hit areas recorded by the last Render.
	optionRects []core.Rect
	pieceRect   core.Rect
}

func init() {
	session.RegisterDefaults(config.KindQuiz, func(id string, opts core.GameOptions) (registry.Game, error) {
		g, err := New(id, opts)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}

// New loads the table for id and prepares a game. The session itself is
// built by Reset.
func New(id string, opts core.GameOptions) (*Game, error) {
	table, err := session.LoadTable(id, config.KindQuiz, opts)
	if err != nil {
		return nil, fmt.Errorf("quiz: %w", err)
	}
	return &Game{
		id:     id,
		cfg:    table.Config,
		levels: table.Levels,
		policy: table.Policy,
		start:  table.Start,
	}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.cfg.Title }

// Config returns the loaded content table.
func (g *Game) Config() config.GameConfig { return g.cfg }

// Engine exposes the round engine of the current session.
func (g *Game) Engine() *round.Engine { return g.sess.Engine }

// Reset starts a fresh session at the configured start level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.sess != nil {
		g.sess.Close()
	}
	sess, err := session.New(g.levels, g.policy, cfg)
	if err != nil {
		// The table was validated when it was loaded.
		panic(fmt.Sprintf("quiz: %v", err))
	}
	g.sess = sess
	g.sess.Engine.Subscribe(g.onEvent)

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tooSmall = g.screenW < minWidth || g.screenH < minHeight
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
	switch evt.Signal {
	case round.SignalLevelStarted:
		g.selected = 0
		g.dropPiece()
	case round.SignalCorrect, round.SignalIncorrect:
		g.dropPiece()
	}
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
	case g.cfg.Interaction == config.InteractionDrag:
		g.handleDrag(in)
	default:
		g.handleChoose(in)
	}

	return core.StepResult{State: g.State(), Events: g.sess.Flush()}
}

// handleChoose maps input onto option picks.
func (g *Game) handleChoose(in core.InputFrame) {
	options := g.sess.Engine.Options()
	if len(options) == 0 {
		return
	}
	g.moveHighlight(in, len(options))

	switch {
	case in.Pick > 0 && in.Pick <= len(options):
		g.selected = in.Pick - 1
		g.answer(options[g.selected])
	case in.Has(core.ActionConfirm):
		g.answer(options[g.selected])
	case in.Pointer != nil && in.Pointer.Kind == core.PointerPress:
		if i := core.HitTest(g.optionRects, in.Pointer.X, in.Pointer.Y); i >= 0 && i < len(options) {
			g.selected = i
			g.answer(options[i])
		}
	}
}

// handleDrag implements grab and drop. With the keyboard, Confirm grabs the
// piece and Confirm again drops it on the highlighted bin; a number key drops
// straight into that bin. With the mouse, press on the piece and release
// over a bin.
func (g *Game) handleDrag(in core.InputFrame) {
	engine := g.sess.Engine
	bins := engine.Options()
	piece, ok := engine.Target()
	if !ok || len(bins) == 0 {
		return
	}
	g.moveHighlight(in, len(bins))

	switch {
	case in.Pick > 0 && in.Pick <= len(bins):
		g.selected = in.Pick - 1
		engine.OnDropped(piece, bins[g.selected])
	case in.Has(core.ActionConfirm):
		if !g.grabbed {
			g.grabbed = true
			return
		}
		engine.OnDropped(piece, bins[g.selected])
	case in.Pointer != nil:
		p := in.Pointer
		switch p.Kind {
		case core.PointerPress:
			if g.pieceRect.Contains(p.X, p.Y) {
				g.grabbed = true
				g.mouseDrag = true
				g.pointerX, g.pointerY = p.X, p.Y
			}
		case core.PointerMove:
			if g.mouseDrag {
				g.pointerX, g.pointerY = p.X, p.Y
				if i := core.HitTest(g.optionRects, p.X, p.Y); i >= 0 && i < len(bins) {
					g.selected = i
				}
			}
		case core.PointerRelease:
			if !g.mouseDrag {
				return
			}
			i := core.HitTest(g.optionRects, p.X, p.Y)
			if i < 0 || i >= len(bins) {
				g.dropPiece()
				return
			}
			g.selected = i
			engine.OnDropped(piece, bins[i])
		}
	}
}

func (g *Game) moveHighlight(in core.InputFrame, n int) {
	switch {
	case in.Has(core.ActionLeft), in.Has(core.ActionUp):
		g.selected = core.Wrap(g.selected-1, n)
	case in.Has(core.ActionRight), in.Has(core.ActionDown):
		g.selected = core.Wrap(g.selected+1, n)
	}
	g.selected = core.Clamp(g.selected, 0, n-1)
}

func (g *Game) answer(candidate round.Item) {
	g.sess.Engine.SubmitAnswer(candidate)
	if n := len(g.sess.Engine.Options()); n > 0 {
		g.selected = core.Clamp(g.selected, 0, n-1)
	}
}

func (g *Game) dropPiece() {
	g.grabbed = false
	g.mouseDrag = false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.sess.State(g.paused || g.tooSmall)
}

// Levels describes the level table.
func (g *Game) Levels() []core.LevelInfo {
	return session.LevelInfos(g.levels)
}
