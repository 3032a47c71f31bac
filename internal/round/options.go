package round

import "math/rand"

// SelectionMode decides how the next target is picked.
type SelectionMode int

const (
	// SelectRandom picks uniformly from the level items, with replacement.
	// The same item may come up in consecutive rounds.
	SelectRandom SelectionMode = iota

	// SelectSequential walks the level items in order, wrapping around.
	SelectSequential

	// SelectManual leaves targeting to the caller (see Engine.Aim).
	SelectManual
)

// String returns the table spelling of the mode.
func (m SelectionMode) String() string {
	switch m {
	case SelectRandom:
		return "random"
	case SelectSequential:
		return "sequential"
	case SelectManual:
		return "manual"
	default:
		return "unknown"
	}
}

// ParseSelectionMode parses the table spelling. Empty means random.
func ParseSelectionMode(s string) (SelectionMode, bool) {
	switch s {
	case "", "random":
		return SelectRandom, true
	case "sequential":
		return SelectSequential, true
	case "manual":
		return SelectManual, true
	}
	return SelectRandom, false
}

// SelectTarget chooses one item from level.Items uniformly at random.
func SelectTarget(rng *rand.Rand, level Level) Item {
	return level.Items[rng.Intn(len(level.Items))]
}

// BuildOptions samples up to distractorCount distractors without replacement,
// adds the target and shuffles. The result holds the target exactly once and
// has length min(distractorCount+1, |pool|+1), where the pool is the target's
// decoys if it has any, or else the distinct level items other than the target.
func BuildOptions(rng *rand.Rand, target Item, level Level, distractorCount int) []Item {
	var pool []Item
	if len(target.Decoys) > 0 {
		pool = target.decoyItems()
	} else {
		for _, it := range level.pool() {
			if it.ID != target.ID {
				pool = append(pool, it)
			}
		}
	}

	n := distractorCount
	if n > len(pool) {
		n = len(pool)
	}
	if n < 0 {
		n = 0
	}

	options := make([]Item, 0, n+1)
	options = append(options, target)
	for _, idx := range rng.Perm(len(pool))[:n] {
		options = append(options, pool[idx])
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
