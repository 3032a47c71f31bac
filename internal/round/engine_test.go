package round

import (
	"math/rand"
	"testing"
)

func testItems(ids ...string) []Item {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Name: id}
	}
	return items
}

func testLevels(n int, items []Item, required, timeLimit int) []Level {
	levels := make([]Level, n)
	for i := range levels {
		levels[i] = Level{
			Number:        i + 1,
			Items:         items,
			RequiredScore: required,
			TimeLimit:     timeLimit,
		}
	}
	return levels
}

func newTestEngine(t *testing.T, levels []Level, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(levels, cfg, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

// wrongAnswer returns an option that is not the current target.
func wrongAnswer(t *testing.T, e *Engine) Item {
	t.Helper()
	target, _ := e.Target()
	for _, opt := range e.Options() {
		if opt.ID != target.ID {
			return opt
		}
	}
	t.Fatal("no distractor among options")
	return Item{}
}

func TestBuildOptionsContainsTargetOnce(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f", "g"}
	rng := rand.New(rand.NewSource(1))

	for n := 1; n <= len(ids); n++ {
		level := Level{Number: 1, Items: testItems(ids[:n]...), RequiredScore: 1}
		for trial := 0; trial < 50; trial++ {
			target := SelectTarget(rng, level)
			opts := BuildOptions(rng, target, level, 3)

			want := n
			if want > 4 {
				want = 4
			}
			if len(opts) != want {
				t.Fatalf("items=%d: len(options) = %d, expected %d", n, len(opts), want)
			}

			count := 0
			seen := make(map[string]bool)
			for _, o := range opts {
				if o.ID == target.ID {
					count++
				}
				if seen[o.ID] {
					t.Fatalf("items=%d: duplicate option %q", n, o.ID)
				}
				seen[o.ID] = true
			}
			if count != 1 {
				t.Fatalf("items=%d: target appears %d times, expected 1", n, count)
			}
		}
	}
}

func TestCorrectAnswersIncreaseScoreByOne(t *testing.T) {
	e := newTestEngine(t, testLevels(1, testItems("a", "b", "c", "d"), 10, 0), DefaultConfig())

	for i := 1; i <= 10; i++ {
		target, ok := e.Target()
		if !ok {
			t.Fatalf("round %d: no target", i)
		}
		if sig := e.SubmitAnswer(target); sig != SignalCorrect {
			t.Fatalf("round %d: SubmitAnswer() = %v, expected correct", i, sig)
		}
		if e.Score() != i {
			t.Fatalf("round %d: score = %d, expected %d", i, e.Score(), i)
		}
		if e.LevelComplete() != (i == 10) {
			t.Fatalf("round %d: LevelComplete() = %v", i, e.LevelComplete())
		}
	}
}

func TestIncorrectAnswerKeepsScore(t *testing.T) {
	e := newTestEngine(t, testLevels(1, testItems("a", "b", "c", "d"), 5, 0), DefaultConfig())

	target, _ := e.Target()
	e.SubmitAnswer(target)
	genBefore := e.Generation()

	if sig := e.SubmitAnswer(wrongAnswer(t, e)); sig != SignalIncorrect {
		t.Fatalf("SubmitAnswer() = %v, expected incorrect", sig)
	}
	if e.Score() != 1 {
		t.Errorf("score = %d, expected 1 after a mistake", e.Score())
	}
	if e.Generation() != genBefore {
		t.Error("retry policy should not reset the level")
	}
	if _, ok := e.Target(); !ok {
		t.Error("a new round should be open after a mistake")
	}
}

func TestResetOnMistake(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ResetOnMistake = true
	levels := testLevels(1, testItems("a", "b", "c", "d"), 5, 30)
	e := newTestEngine(t, levels, cfg)

	target, _ := e.Target()
	e.SubmitAnswer(target)
	e.Tick()
	genBefore := e.Generation()

	e.SubmitAnswer(wrongAnswer(t, e))

	if e.Score() != 0 {
		t.Errorf("score = %d, expected 0", e.Score())
	}
	if remaining, _ := e.TimeRemaining(); remaining != 30 {
		t.Errorf("time remaining = %d, expected 30", remaining)
	}
	if e.Generation() == genBefore {
		t.Error("generation should change on reset")
	}
}

func TestTwoItemScenario(t *testing.T) {
	e := newTestEngine(t, testLevels(1, testItems("a", "b"), 2, 0), DefaultConfig())

	target, _ := e.Target()
	e.SubmitAnswer(target)
	if e.Score() != 1 || e.LevelComplete() {
		t.Fatalf("after first correct: score=%d complete=%v", e.Score(), e.LevelComplete())
	}

	target, _ = e.Target()
	e.SubmitAnswer(target)
	if e.Score() != 2 || !e.LevelComplete() {
		t.Fatalf("after second correct: score=%d complete=%v", e.Score(), e.LevelComplete())
	}

	for _, candidate := range testItems("a", "b", "z") {
		if sig := e.SubmitAnswer(candidate); sig != SignalNone {
			t.Errorf("SubmitAnswer(%q) on complete level = %v, expected none", candidate.ID, sig)
		}
	}
	if e.Score() != 2 || !e.LevelComplete() {
		t.Errorf("complete level changed: score=%d complete=%v", e.Score(), e.LevelComplete())
	}
}

func TestTimeUpResetsLevel(t *testing.T) {
	e := newTestEngine(t, testLevels(1, testItems("a", "b", "c"), 3, 5), DefaultConfig())

	target, _ := e.Target()
	e.SubmitAnswer(target)

	timeUps := 0
	e.Subscribe(func(ev Event) {
		if ev.Signal == SignalTimeUp {
			timeUps++
		}
	})

	for i := 0; i < 4; i++ {
		if sig := e.Tick(); sig != SignalNone {
			t.Fatalf("tick %d: %v, expected none", i+1, sig)
		}
	}
	if remaining, _ := e.TimeRemaining(); remaining != 1 {
		t.Fatalf("time remaining = %d, expected 1", remaining)
	}
	if e.Score() != 1 {
		t.Fatalf("score = %d before time-up, expected 1", e.Score())
	}

	if sig := e.Tick(); sig != SignalTimeUp {
		t.Fatalf("fifth tick = %v, expected time-up", sig)
	}
	if timeUps != 1 {
		t.Errorf("time-up emitted %d times, expected 1", timeUps)
	}
	if e.Score() != 0 {
		t.Errorf("score = %d after time-up, expected 0", e.Score())
	}
	if remaining, timed := e.TimeRemaining(); remaining != 5 || !timed {
		t.Errorf("TimeRemaining() = (%d, %v), expected (5, true)", remaining, timed)
	}
}

func TestTickNeverGoesNegative(t *testing.T) {
	e := newTestEngine(t, testLevels(1, testItems("a", "b"), 1, 2), DefaultConfig())

	for i := 0; i < 25; i++ {
		e.Tick()
		remaining, _ := e.TimeRemaining()
		if remaining < 0 {
			t.Fatalf("tick %d: time remaining %d < 0", i+1, remaining)
		}
		if remaining == 0 {
			t.Fatalf("tick %d: countdown left at zero without reset", i+1)
		}
	}
}

func TestTickIgnoredWhenUntimedOrComplete(t *testing.T) {
	t.Run("untimed", func(t *testing.T) {
		e := newTestEngine(t, testLevels(1, testItems("a", "b"), 1, 0), DefaultConfig())
		if sig := e.Tick(); sig != SignalNone {
			t.Errorf("Tick() = %v, expected none", sig)
		}
		if _, timed := e.TimeRemaining(); timed {
			t.Error("level should be untimed")
		}
	})

	t.Run("complete", func(t *testing.T) {
		e := newTestEngine(t, testLevels(2, testItems("a", "b"), 1, 3), DefaultConfig())
		target, _ := e.Target()
		e.SubmitAnswer(target)
		for i := 0; i < 10; i++ {
			e.Tick()
		}
		if remaining, _ := e.TimeRemaining(); remaining != 3 {
			t.Errorf("time remaining = %d, expected frozen at 3", remaining)
		}
		if !e.LevelComplete() {
			t.Error("ticks must not undo completion")
		}
	})
}

func TestResetLevelRestoresState(t *testing.T) {
	e := newTestEngine(t, testLevels(2, testItems("a", "b", "c"), 2, 10), DefaultConfig())

	target, _ := e.Target()
	e.SubmitAnswer(target)
	target, _ = e.Target()
	e.SubmitAnswer(target)
	e.Tick()
	if !e.LevelComplete() {
		t.Fatal("expected level complete")
	}

	e.ResetLevel()

	s := e.Snapshot()
	if s.Score != 0 || s.LevelComplete || s.GameComplete {
		t.Errorf("after reset: score=%d complete=%v game=%v", s.Score, s.LevelComplete, s.GameComplete)
	}
	if s.TimeRemaining != 10 {
		t.Errorf("after reset: time remaining = %d, expected 10", s.TimeRemaining)
	}
	if s.LevelIndex != 0 {
		t.Errorf("after reset: level index = %d, expected 0", s.LevelIndex)
	}
	if !s.HasTarget || len(s.Options) == 0 {
		t.Error("after reset: expected an open round")
	}
}

func TestEightLevelGameCompletion(t *testing.T) {
	e := newTestEngine(t, testLevels(8, testItems("a", "b", "c", "d"), 2, 0), DefaultConfig())

	for level := 0; level < 8; level++ {
		if e.LevelIndex() != level {
			t.Fatalf("level index = %d, expected %d", e.LevelIndex(), level)
		}
		if e.AdvanceLevel() {
			t.Fatalf("level %d: AdvanceLevel() succeeded before completion", level+1)
		}
		for !e.LevelComplete() {
			target, _ := e.Target()
			e.SubmitAnswer(target)
		}
		if got, want := e.GameComplete(), level == 7; got != want {
			t.Fatalf("level %d: GameComplete() = %v, expected %v", level+1, got, want)
		}
		if level < 7 {
			if !e.AdvanceLevel() {
				t.Fatalf("level %d: AdvanceLevel() rejected", level+1)
			}
		}
	}

	if e.AdvanceLevel() {
		t.Error("AdvanceLevel() on the last level should be rejected")
	}
	if e.LevelIndex() != 7 || !e.GameComplete() || !e.LevelComplete() {
		t.Errorf("state changed after rejected advance: index=%d game=%v", e.LevelIndex(), e.GameComplete())
	}

	e.Restart()
	if e.LevelIndex() != 0 || e.GameComplete() || e.Score() != 0 {
		t.Errorf("Restart(): index=%d game=%v score=%d", e.LevelIndex(), e.GameComplete(), e.Score())
	}
}

func TestCompletionEventOrder(t *testing.T) {
	e := newTestEngine(t, testLevels(1, testItems("a", "b"), 1, 0), DefaultConfig())

	var got []Signal
	e.Subscribe(func(ev Event) { got = append(got, ev.Signal) })

	target, _ := e.Target()
	e.SubmitAnswer(target)

	want := []Signal{SignalCorrect, SignalLevelComplete, SignalGameComplete}
	if len(got) != len(want) {
		t.Fatalf("events = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestSequentialSelection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Selection = SelectSequential
	e := newTestEngine(t, testLevels(1, testItems("a", "b", "c"), 10, 0), cfg)

	want := []string{"a", "b", "c", "a", "b"}
	for i, id := range want {
		target, _ := e.Target()
		if target.ID != id {
			t.Fatalf("round %d: target = %q, expected %q", i, target.ID, id)
		}
		if i == 2 {
			e.SubmitAnswer(wrongAnswer(t, e))
			continue
		}
		e.SubmitAnswer(target)
	}
}

func TestSequentialResetReturnsToStart(t *testing.T) {
	cfg := Config{ResetOnMistake: true, Selection: SelectSequential, DistractorCount: 2}
	e := newTestEngine(t, testLevels(1, testItems("c", "a", "t"), 3, 0), cfg)

	target, _ := e.Target()
	e.SubmitAnswer(target)
	if target, _ = e.Target(); target.ID != "a" {
		t.Fatalf("second target = %q, expected a", target.ID)
	}

	e.SubmitAnswer(wrongAnswer(t, e))
	if target, _ = e.Target(); target.ID != "c" {
		t.Errorf("target after mistake = %q, expected c", target.ID)
	}
	if e.Cursor() != 0 {
		t.Errorf("cursor = %d, expected 0", e.Cursor())
	}
}

func TestManualSelection(t *testing.T) {
	cfg := Config{Selection: SelectManual}
	e := newTestEngine(t, testLevels(1, testItems("a", "b", "c"), 2, 0), cfg)
	items := e.Level().Items

	if _, ok := e.Target(); ok {
		t.Fatal("manual mode should start without a target")
	}
	if sig := e.SubmitAnswer(items[0]); sig != SignalNone {
		t.Fatalf("SubmitAnswer() without target = %v, expected none", sig)
	}

	if !e.Aim(items[0]) {
		t.Fatal("Aim() rejected")
	}
	if e.Aim(items[1]) {
		t.Fatal("Aim() accepted while a round is open")
	}

	if sig := e.SubmitAnswer(items[1]); sig != SignalIncorrect {
		t.Fatalf("SubmitAnswer(b) = %v, expected incorrect", sig)
	}
	if _, ok := e.Target(); ok {
		t.Fatal("round should close after an answer")
	}

	e.Aim(items[2])
	e.SubmitAnswer(items[2])
	e.Aim(items[1])
	e.SubmitAnswer(items[1])
	if !e.LevelComplete() {
		t.Error("expected level complete after two matches")
	}
	if e.Aim(items[0]) {
		t.Error("Aim() accepted on a complete level")
	}
}

func TestAimRejectedOutsideManualMode(t *testing.T) {
	e := newTestEngine(t, testLevels(1, testItems("a", "b"), 1, 0), DefaultConfig())
	if e.Aim(Item{ID: "a"}) {
		t.Error("Aim() should only apply in manual mode")
	}
}

func TestOnDropped(t *testing.T) {
	e := newTestEngine(t, testLevels(1, testItems("circle", "square", "star"), 3, 0), DefaultConfig())

	target, _ := e.Target()
	var other Item
	for _, it := range e.Level().Items {
		if it.ID != target.ID {
			other = it
			break
		}
	}

	if sig := e.OnDropped(other, target); sig != SignalNone {
		t.Errorf("dropping a non-target piece = %v, expected none", sig)
	}
	if e.Score() != 0 {
		t.Fatal("ignored drop changed the score")
	}

	if sig := e.OnDropped(target, other); sig != SignalIncorrect {
		t.Errorf("dropping onto the wrong zone = %v, expected incorrect", sig)
	}

	target, _ = e.Target()
	if sig := e.OnDropped(target, target); sig != SignalCorrect {
		t.Errorf("dropping onto the matching zone = %v, expected correct", sig)
	}
}

func TestDecoyOptions(t *testing.T) {
	items := []Item{
		{ID: "share", Name: "Share the toy", Decoys: []string{"Grab it", "Walk away"}},
		{ID: "wait", Name: "Wait your turn", Decoys: []string{"Push ahead"}},
	}
	cfg := Config{Selection: SelectSequential, DistractorCount: 3}
	e := newTestEngine(t, []Level{{Number: 1, Items: items, RequiredScore: 2}}, cfg)

	opts := e.Options()
	if len(opts) != 3 {
		t.Fatalf("len(options) = %d, expected target plus two decoys", len(opts))
	}
	for _, o := range opts {
		if o.ID == "wait" {
			t.Error("other items must not be offered when the target has decoys")
		}
	}

	e.SubmitAnswer(items[0])
	if len(e.Options()) != 2 {
		t.Errorf("len(options) = %d, expected 2", len(e.Options()))
	}
}

func TestExtrasAreNeverTargets(t *testing.T) {
	level := Level{
		Number:        1,
		Items:         testItems("c", "a", "t"),
		Extras:        testItems("x", "q", "a"),
		RequiredScore: 50,
	}
	e := newTestEngine(t, []Level{level}, DefaultConfig())

	sawExtra := false
	for i := 0; i < 40; i++ {
		target, _ := e.Target()
		if target.ID == "x" || target.ID == "q" {
			t.Fatalf("extra %q chosen as target", target.ID)
		}
		for _, o := range e.Options() {
			if o.ID == "x" || o.ID == "q" {
				sawExtra = true
			}
		}
		e.SubmitAnswer(target)
	}
	if !sawExtra {
		t.Error("extras never offered as distractors")
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	if _, err := NewEngine(nil, DefaultConfig(), nil); err == nil {
		t.Error("expected error for empty level table")
	}

	cfg := DefaultConfig()
	cfg.DistractorCount = -1
	if _, err := NewEngine(testLevels(1, testItems("a", "b"), 1, 0), cfg, nil); err == nil {
		t.Error("expected error for negative distractor count")
	}
}

func TestStartLevelOutOfRangePanics(t *testing.T) {
	e := newTestEngine(t, testLevels(2, testItems("a", "b"), 1, 0), DefaultConfig())

	for _, idx := range []int{-1, 2} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("StartLevel(%d) did not panic", idx)
				}
			}()
			e.StartLevel(idx)
		}()
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	levels := testLevels(1, testItems("a", "b", "c", "d", "e"), 20, 0)
	run := func() []string {
		e, err := NewEngine(levels, DefaultConfig(), rand.New(rand.NewSource(99)))
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		var seq []string
		for i := 0; i < 15; i++ {
			target, _ := e.Target()
			seq = append(seq, target.ID)
			for _, o := range e.Options() {
				seq = append(seq, o.ID)
			}
			e.SubmitAnswer(target)
		}
		return seq
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverge at %d: %q vs %q", i, a[i], b[i])
		}
	}
}
