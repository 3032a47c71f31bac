package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/edufy/internal/round"
)

// Table-level validation codes, reported alongside the round codes.
const (
	CodeMissingField  = "MISSING_FIELD"
	CodeUnknownValue  = "UNKNOWN_VALUE"
	CodeDuplicateItem = "DUPLICATE_ITEM"
	CodeUnknownItem   = "UNKNOWN_ITEM"
	CodeDistractors   = "DISTRACTORS"
)

// normalize fills in defaults for omitted fields.
func (c *GameConfig) normalize() {
	if c.Kind == "" {
		c.Kind = KindQuiz
	}
	if c.Kind == KindMemory {
		if c.Policy.Selection == "" {
			c.Policy.Selection = round.SelectManual.String()
		}
		return
	}
	if c.Interaction == "" {
		c.Interaction = InteractionChoose
	}
	if c.Display.Target == "" {
		c.Display.Target = TargetGlyph
	}
	if c.Display.Options == "" {
		c.Display.Options = OptionsName
	}
	if c.Policy.Distractors == 0 {
		c.Policy.Distractors = round.DefaultConfig().DistractorCount
	}
}

// Validate checks the table and the level table it produces. All problems
// are reported together.
func (c GameConfig) Validate() error {
	var errs []error
	fail := func(code string, level int, format string, args ...any) {
		errs = append(errs, round.ConfigError{Code: code, Level: level, Message: fmt.Sprintf(format, args...)})
	}

	if c.ID == "" {
		fail(CodeMissingField, 0, "id is required")
	}
	if c.Title == "" {
		fail(CodeMissingField, 0, "title is required")
	}

	switch c.Kind {
	case KindQuiz:
		if c.Interaction != InteractionChoose && c.Interaction != InteractionDrag {
			fail(CodeUnknownValue, 0, "unknown interaction %q", c.Interaction)
		}
		switch c.Display.Target {
		case TargetGlyph, TargetName, TargetText, TargetSequence:
		default:
			fail(CodeUnknownValue, 0, "unknown display.target %q", c.Display.Target)
		}
		switch c.Display.Options {
		case OptionsName, OptionsGlyph, OptionsBoth:
		default:
			fail(CodeUnknownValue, 0, "unknown display.options %q", c.Display.Options)
		}
		if c.Policy.Distractors < 1 {
			fail(CodeDistractors, 0, "distractors must be at least 1, got %d", c.Policy.Distractors)
		}
	case KindMemory:
		if c.Policy.Selection != round.SelectManual.String() {
			fail(CodeUnknownValue, 0, "memory games use manual selection, got %q", c.Policy.Selection)
		}
	default:
		fail(CodeUnknownValue, 0, "unknown kind %q", c.Kind)
	}

	if _, ok := round.ParseSelectionMode(c.Policy.Selection); !ok {
		fail(CodeUnknownValue, 0, "unknown selection mode %q", c.Policy.Selection)
	}

	seen := make(map[string]bool, len(c.Items))
	for _, it := range c.Items {
		if it.ID == "" {
			fail(CodeMissingField, 0, "item %q has no id", it.Name)
			continue
		}
		if seen[it.ID] {
			fail(CodeDuplicateItem, 0, "duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
	}

	for _, lvl := range c.Levels {
		for _, ref := range append(append([]string{}, lvl.Items...), lvl.Extras...) {
			if !seen[ref] {
				fail(CodeUnknownItem, lvl.Number, "unknown item %q", ref)
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	levels, err := c.RoundLevels()
	if err != nil {
		return err
	}
	if c.Kind == KindMemory {
		if err := validatePairs(levels); err != nil {
			return err
		}
	}
	return round.ValidateLevels(levels)
}

// validatePairs rejects memory levels that ask for more matches than the
// level deals distinct pairs.
func validatePairs(levels []round.Level) error {
	var errs []error
	for _, lvl := range levels {
		pairs := make(map[string]bool, len(lvl.Items))
		for _, it := range lvl.Items {
			pairs[it.ID] = true
		}
		if lvl.RequiredScore > len(pairs) {
			errs = append(errs, round.ConfigError{
				Code:    round.CodeRequiredScore,
				Level:   lvl.Number,
				Message: fmt.Sprintf("required_score %d exceeds the %d pairs dealt", lvl.RequiredScore, len(pairs)),
			})
		}
	}
	return errors.Join(errs...)
}

// RoundLevels resolves the level table into engine levels.
func (c GameConfig) RoundLevels() ([]round.Level, error) {
	levels := make([]round.Level, 0, len(c.Levels))
	for _, lc := range c.Levels {
		lvl := round.Level{
			Number:        lc.Number,
			RequiredScore: lc.RequiredScore,
			Description:   lc.Description,
			TimeLimit:     lc.TimeLimit,
		}

		if lc.All {
			for _, it := range c.Items {
				lvl.Items = append(lvl.Items, it.toRound())
			}
		} else {
			items, err := c.resolve(lc.Number, lc.Items)
			if err != nil {
				return nil, err
			}
			lvl.Items = items
		}

		extras, err := c.resolve(lc.Number, lc.Extras)
		if err != nil {
			return nil, err
		}
		lvl.Extras = extras

		levels = append(levels, lvl)
	}
	return levels, nil
}

func (c GameConfig) resolve(level int, ids []string) ([]round.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	out := make([]round.Item, 0, len(ids))
	for _, id := range ids {
		it, ok := c.Item(id)
		if !ok {
			return nil, round.ConfigError{Code: CodeUnknownItem, Level: level, Message: fmt.Sprintf("unknown item %q", id)}
		}
		out = append(out, it.toRound())
	}
	return out, nil
}

// RoundConfig returns the engine policy for this table.
func (c GameConfig) RoundConfig() (round.Config, error) {
	mode, ok := round.ParseSelectionMode(c.Policy.Selection)
	if !ok {
		return round.Config{}, fmt.Errorf("config: %s: unknown selection mode %q", c.ID, c.Policy.Selection)
	}
	return round.Config{
		ResetOnMistake:  c.Policy.ResetOnMistake,
		Selection:       mode,
		DistractorCount: c.Policy.Distractors,
	}, nil
}

func (it ItemConfig) toRound() round.Item {
	return round.Item{
		ID:       it.ID,
		Name:     it.Name,
		Glyph:    it.Glyph,
		Text:     it.Text,
		Hint:     it.Hint,
		Category: it.Category,
		Order:    it.Order,
		Decoys:   it.Decoys,
	}
}

// LevelCount returns the number of levels in the table.
func (c GameConfig) LevelCount() int {
	return len(c.Levels)
}

// Timed reports whether any level has a countdown.
func (c GameConfig) Timed() bool {
	for _, lvl := range c.Levels {
		if lvl.TimeLimit > 0 {
			return true
		}
	}
	return false
}
