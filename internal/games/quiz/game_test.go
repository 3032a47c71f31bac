package quiz

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/registry"
)

const tinyYAML = `
id: tiny
title: Tiny Quiz
prompt: Pick it
policy: {selection: sequential, distractors: 2}
items:
  - {id: a, name: Apple, glyph: "🍎", hint: Apples grow on trees}
  - {id: b, name: Ball, glyph: "⚽"}
  - {id: c, name: Cat, glyph: "🐱"}
levels:
  - {number: 1, required_score: 2, all: true}
  - {number: 2, required_score: 1, time_limit: 2, all: true}
`

const binsYAML = `
id: bins
title: Bins
interaction: drag
display: {target: glyph, options: both}
policy: {distractors: 2}
items:
  - {id: a, name: Apples, glyph: "🍎"}
  - {id: b, name: Balls, glyph: "⚽"}
  - {id: c, name: Cats, glyph: "🐱"}
levels:
  - {number: 1, required_score: 3, all: true}
`

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestGame(t *testing.T, content string, opts core.GameOptions) *Game {
	t.Helper()
	opts.ConfigPath = writeTable(t, content)
	g, err := New("tiny", opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 21, TickRate: 1, Seed: 1})
	return g
}

func targetIndex(t *testing.T, g *Game) int {
	t.Helper()
	target, ok := g.Engine().Target()
	if !ok {
		t.Fatal("no open round")
	}
	for i, o := range g.Engine().Options() {
		if o.ID == target.ID {
			return i
		}
	}
	t.Fatalf("target %q missing from options", target.ID)
	return -1
}

func wrongIndex(t *testing.T, g *Game) int {
	t.Helper()
	target, _ := g.Engine().Target()
	for i, o := range g.Engine().Options() {
		if o.ID != target.ID {
			return i
		}
	}
	t.Fatal("no wrong option")
	return -1
}

func pick(n int) core.InputFrame {
	f := core.NewInputFrame()
	f.Pick = n
	return f
}

func action(a core.Action) core.InputFrame {
	f := core.NewInputFrame()
	f.Set(a)
	return f
}

func pointer(kind core.PointerKind, x, y int) core.InputFrame {
	f := core.NewInputFrame()
	f.SetPointer(kind, x, y)
	return f
}

func names(events []core.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Name
	}
	return out
}

func TestPickCorrectAnswersCompletesLevel(t *testing.T) {
	g := newTestGame(t, tinyYAML, core.GameOptions{})

	res := g.Step(pick(targetIndex(t, g) + 1))
	if !slices.Contains(names(res.Events), core.EventCorrect) {
		t.Errorf("events = %v, expected correct", names(res.Events))
	}
	if res.State.Score != 1 || res.State.Goal != 2 {
		t.Errorf("state = %+v", res.State)
	}

	res = g.Step(pick(targetIndex(t, g) + 1))
	if !res.State.LevelComplete {
		t.Fatal("expected level complete")
	}
	if !slices.Contains(names(res.Events), core.EventLevelComplete) {
		t.Errorf("events = %v, expected level-complete", names(res.Events))
	}

	// Answers are ignored until the player moves on.
	res = g.Step(pick(1))
	if len(res.Events) != 0 {
		t.Errorf("events after completion = %v", names(res.Events))
	}

	res = g.Step(action(core.ActionNext))
	if res.State.Level != 2 || res.State.Score != 0 {
		t.Errorf("after next: %+v", res.State)
	}
	if !slices.Contains(names(res.Events), core.EventLevelStarted) {
		t.Errorf("events = %v, expected level-started", names(res.Events))
	}
}

func TestWrongAnswerKeepsScore(t *testing.T) {
	g := newTestGame(t, tinyYAML, core.GameOptions{})
	g.Step(pick(targetIndex(t, g) + 1))

	res := g.Step(pick(wrongIndex(t, g) + 1))
	if res.State.Score != 1 {
		t.Errorf("score = %d, expected 1", res.State.Score)
	}
	if !slices.Contains(names(res.Events), core.EventIncorrect) {
		t.Errorf("events = %v, expected incorrect", names(res.Events))
	}
}

func TestHighlightAndConfirm(t *testing.T) {
	g := newTestGame(t, tinyYAML, core.GameOptions{})
	want := targetIndex(t, g)
	for range want {
		g.Step(action(core.ActionRight))
	}
	if g.selected != want {
		t.Fatalf("selected = %d, expected %d", g.selected, want)
	}

	res := g.Step(action(core.ActionConfirm))
	if res.State.Score != 1 {
		t.Errorf("score = %d, expected 1", res.State.Score)
	}

	g.selected = 0
	g.Step(action(core.ActionLeft))
	if n := len(g.Engine().Options()); g.selected != n-1 {
		t.Errorf("selected = %d, expected wrap to %d", g.selected, n-1)
	}
}

func TestClickOption(t *testing.T) {
	g := newTestGame(t, tinyYAML, core.GameOptions{})
	g.Render(core.NewScreen(80, 21))
	if len(g.optionRects) != len(g.Engine().Options()) {
		t.Fatalf("recorded %d option rects for %d options", len(g.optionRects), len(g.Engine().Options()))
	}

	r := g.optionRects[targetIndex(t, g)]
	res := g.Step(pointer(core.PointerPress, r.X+1, r.Y+1))
	if res.State.Score != 1 {
		t.Errorf("score = %d, expected 1", res.State.Score)
	}

	// A click outside every option does nothing.
	res = g.Step(pointer(core.PointerPress, 0, 20))
	if len(res.Events) != 0 {
		t.Errorf("events = %v, expected none", names(res.Events))
	}
}

func TestCountdownResetsLevel(t *testing.T) {
	g := newTestGame(t, tinyYAML, core.GameOptions{StartLevel: 2})
	if st := g.State(); st.Level != 2 || !st.Timed || st.TimeLeft != 2 {
		t.Fatalf("state = %+v", st)
	}

	res := g.Step(core.NewInputFrame())
	if res.State.TimeLeft != 1 {
		t.Errorf("time left = %d, expected 1", res.State.TimeLeft)
	}

	res = g.Step(core.NewInputFrame())
	got := names(res.Events)
	if !slices.Contains(got, core.EventTimeUp) || !slices.Contains(got, core.EventLevelStarted) {
		t.Errorf("events = %v, expected time-up and level-started", got)
	}
	if res.State.TimeLeft != 2 || res.State.Score != 0 {
		t.Errorf("state after time up = %+v", res.State)
	}
}

func TestPauseFreezesCountdown(t *testing.T) {
	g := newTestGame(t, tinyYAML, core.GameOptions{StartLevel: 2})

	res := g.Step(action(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused")
	}
	for range 5 {
		res = g.Step(core.NewInputFrame())
	}
	if res.State.TimeLeft != 2 {
		t.Errorf("time left = %d while paused, expected 2", res.State.TimeLeft)
	}

	res = g.Step(action(core.ActionPause))
	if res.State.Paused || res.State.TimeLeft != 1 {
		t.Errorf("after resume: %+v", res.State)
	}
}

func TestRestartAfterGameComplete(t *testing.T) {
	g := newTestGame(t, tinyYAML, core.GameOptions{StartLevel: 2})

	res := g.Step(pick(targetIndex(t, g) + 1))
	if !res.State.GameOver {
		t.Fatal("expected game complete")
	}
	if !slices.Contains(names(res.Events), core.EventGameComplete) {
		t.Errorf("events = %v, expected game-complete", names(res.Events))
	}

	// Next has nowhere to go.
	res = g.Step(action(core.ActionNext))
	if res.State.Level != 2 || !res.State.GameOver {
		t.Errorf("after next: %+v", res.State)
	}

	res = g.Step(action(core.ActionRestart))
	if res.State.Level != 1 || res.State.GameOver || res.State.Score != 0 {
		t.Errorf("after restart: %+v", res.State)
	}
}

func TestRestartResetsLevel(t *testing.T) {
	g := newTestGame(t, tinyYAML, core.GameOptions{})
	g.Step(pick(targetIndex(t, g) + 1))

	res := g.Step(action(core.ActionRestart))
	if res.State.Level != 1 || res.State.Score != 0 {
		t.Errorf("after reset: %+v", res.State)
	}
}

func TestStartLevelOutOfRange(t *testing.T) {
	_, err := New("tiny", core.GameOptions{ConfigPath: writeTable(t, tinyYAML), StartLevel: 3})
	if err == nil {
		t.Error("expected error for start level 3 of 2")
	}
}

func TestUnknownDifficulty(t *testing.T) {
	_, err := New("tiny", core.GameOptions{ConfigPath: writeTable(t, tinyYAML), Difficulty: "extreme"})
	if err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestEasyPresetRemovesTimer(t *testing.T) {
	g := newTestGame(t, tinyYAML, core.GameOptions{StartLevel: 2, Difficulty: "easy"})
	if g.State().Timed {
		t.Error("easy preset should remove the countdown")
	}
	if got := len(g.Engine().Options()); got != 2 {
		t.Errorf("options = %d, expected target plus one distractor", got)
	}
}

func TestMouseDragOntoBin(t *testing.T) {
	g := newTestGame(t, binsYAML, core.GameOptions{})
	g.Render(core.NewScreen(80, 21))
	if g.pieceRect.Empty() {
		t.Fatal("piece rect not recorded")
	}

	piece := g.pieceRect
	g.Step(pointer(core.PointerPress, piece.X+1, piece.Y+1))
	if !g.grabbed || !g.mouseDrag {
		t.Fatal("expected piece to be grabbed")
	}

	bin := g.optionRects[targetIndex(t, g)]
	g.Step(pointer(core.PointerMove, bin.X+1, bin.Y+1))
	res := g.Step(pointer(core.PointerRelease, bin.X+1, bin.Y+1))
	if res.State.Score != 1 {
		t.Errorf("score = %d, expected 1", res.State.Score)
	}
	if g.grabbed {
		t.Error("piece still grabbed after drop")
	}
}

func TestMouseDragOntoWrongBin(t *testing.T) {
	g := newTestGame(t, binsYAML, core.GameOptions{})
	g.Render(core.NewScreen(80, 21))

	piece := g.pieceRect
	g.Step(pointer(core.PointerPress, piece.X+1, piece.Y+1))
	bin := g.optionRects[wrongIndex(t, g)]
	res := g.Step(pointer(core.PointerRelease, bin.X+1, bin.Y+1))
	if !slices.Contains(names(res.Events), core.EventIncorrect) {
		t.Errorf("events = %v, expected incorrect", names(res.Events))
	}
}

func TestMouseDropOutsideBins(t *testing.T) {
	g := newTestGame(t, binsYAML, core.GameOptions{})
	g.Render(core.NewScreen(80, 21))

	piece := g.pieceRect
	g.Step(pointer(core.PointerPress, piece.X+1, piece.Y+1))
	res := g.Step(pointer(core.PointerRelease, 0, 0))
	if len(res.Events) != 0 || g.grabbed {
		t.Errorf("events = %v, grabbed = %v", names(res.Events), g.grabbed)
	}

	// Releasing without grabbing first is ignored.
	bin := g.optionRects[targetIndex(t, g)]
	res = g.Step(pointer(core.PointerRelease, bin.X+1, bin.Y+1))
	if len(res.Events) != 0 {
		t.Errorf("events = %v, expected none", names(res.Events))
	}
}

func TestKeyboardDrag(t *testing.T) {
	g := newTestGame(t, binsYAML, core.GameOptions{})
	want := targetIndex(t, g)

	g.Step(action(core.ActionConfirm))
	if !g.grabbed {
		t.Fatal("expected piece to be grabbed")
	}
	for range want {
		g.Step(action(core.ActionRight))
	}
	res := g.Step(action(core.ActionConfirm))
	if res.State.Score != 1 {
		t.Errorf("score = %d, expected 1", res.State.Score)
	}
}

func TestRegisteredDefaultsRender(t *testing.T) {
	games := registry.List()
	if len(games) != 13 {
		t.Errorf("registered %d quiz games, expected 13", len(games))
	}

	for _, info := range games {
		t.Run(info.ID, func(t *testing.T) {
			rg, err := registry.Create(info.ID, core.GameOptions{})
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			g := rg.(*Game)
			g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 21, TickRate: 30, Seed: 42})
			g.Render(core.NewScreen(80, 21))

			if len(g.optionRects) != len(g.Engine().Options()) {
				t.Errorf("recorded %d option rects for %d options", len(g.optionRects), len(g.Engine().Options()))
			}
			if len(g.Levels()) != info.Levels {
				t.Errorf("Levels() = %d, info says %d", len(g.Levels()), info.Levels)
			}
		})
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := newTestGame(t, tinyYAML, core.GameOptions{})
	g.Resize(20, 5)
	if !g.State().Paused {
		t.Error("expected a too-small screen to pause the game")
	}
	screen := core.NewScreen(20, 5)
	g.Render(screen)
	if len(g.optionRects) != 0 {
		t.Error("no options should be drawn on a too-small screen")
	}
}
