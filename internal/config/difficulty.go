package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Limits applied by the presets.
const (
	minDistractors   = 1
	minHardTimeLimit = 5
)

// ParseDifficulty parses a preset name. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (expected easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the table for a difficulty preset.
//
//	easy:   countdowns removed, one distractor fewer
//	normal: unchanged
//	hard:   countdowns cut to three quarters, one distractor more
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		for i := range cfg.Levels {
			cfg.Levels[i].TimeLimit = 0
		}
		if cfg.Kind == KindQuiz {
			cfg.Policy.Distractors = max(cfg.Policy.Distractors-1, minDistractors)
		}
	case DifficultyHard:
		for i := range cfg.Levels {
			if tl := cfg.Levels[i].TimeLimit; tl > 0 {
				cfg.Levels[i].TimeLimit = max(tl*3/4, minHardTimeLimit)
			}
		}
		if cfg.Kind == KindQuiz {
			cfg.Policy.Distractors++
		}
	}
}
