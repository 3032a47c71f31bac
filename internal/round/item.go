// Package round implements the level/round progression and scoring engine
// shared by every mini-game. It owns the round state (target, options, score,
// countdown) and enforces level progression. It has no knowledge of rendering
// or input devices; the presentation layer feeds it answers and ticks.
package round

import "strconv"

// Item is one matchable unit of content: a color, emotion, shape, letter,
// routine step, scenario answer and so on. Display fields are opaque to the
// engine; only ID takes part in matching.
type Item struct {
	ID       string
	Name     string
	Glyph    string // Emoji or symbol shown to the player
	Text     string // Prompt or explanatory text
	Hint     string // Explanation shown after the round is answered
	Category string
	Order    int // Position in a sequence (routines)

	// Decoys are wrong answers that belong to this item only. When the target
	// carries decoys they replace the level pool as distractors.
	Decoys []string
}

// Label returns the glyph and name joined for display.
func (it Item) Label() string {
	switch {
	case it.Glyph == "":
		return it.Name
	case it.Name == "":
		return it.Glyph
	default:
		return it.Glyph + " " + it.Name
	}
}

// decoyItems expands the item's decoys into synthetic items whose IDs can
// never collide with the item itself.
func (it Item) decoyItems() []Item {
	out := make([]Item, len(it.Decoys))
	for i, d := range it.Decoys {
		out[i] = Item{
			ID:   it.ID + "/decoy/" + strconv.Itoa(i),
			Name: d,
		}
	}
	return out
}

// Level is an ordered difficulty stage.
type Level struct {
	Number        int    // 1-based, defines ordering
	Items         []Item // Items in play; for sequential games, in sequence order
	Extras        []Item // Distractor-only items, never chosen as targets
	RequiredScore int
	Description   string
	TimeLimit     int // Seconds; 0 means untimed
}

// Timed reports whether the level has a countdown.
func (l Level) Timed() bool {
	return l.TimeLimit > 0
}

// pool returns the distinct items (by ID) of Items and Extras in
// declaration order.
func (l Level) pool() []Item {
	seen := make(map[string]bool, len(l.Items)+len(l.Extras))
	out := make([]Item, 0, len(l.Items)+len(l.Extras))
	for _, group := range [][]Item{l.Items, l.Extras} {
		for _, it := range group {
			if seen[it.ID] {
				continue
			}
			seen[it.ID] = true
			out = append(out, it)
		}
	}
	return out
}
