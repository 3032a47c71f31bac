package session

import (
	"fmt"

	"github.com/vovakirdan/edufy/internal/config"
	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/registry"
	"github.com/vovakirdan/edufy/internal/round"
)

// Table is a content table resolved for the engine.
type Table struct {
	Config config.GameConfig
	Levels []round.Level
	Policy round.Config
	Start  int // 0-based start level
}

// LoadTable loads the table for id with the options' difficulty and config
// path, and checks that it is a game of the given kind.
func LoadTable(id, kind string, opts core.GameOptions) (Table, error) {
	preset, err := config.ParseDifficulty(opts.Difficulty)
	if err != nil {
		return Table{}, err
	}
	cfg, err := config.LoadPreset(id, opts.ConfigPath, preset)
	if err != nil {
		return Table{}, err
	}
	if cfg.Kind != kind {
		return Table{}, fmt.Errorf("table %s is a %s game, not %s", cfg.Source, cfg.Kind, kind)
	}

	levels, err := cfg.RoundLevels()
	if err != nil {
		return Table{}, err
	}
	policy, err := cfg.RoundConfig()
	if err != nil {
		return Table{}, err
	}

	start := 0
	if opts.StartLevel != 0 {
		if opts.StartLevel < 1 || opts.StartLevel > len(levels) {
			return Table{}, fmt.Errorf("%s has %d levels, cannot start at level %d", id, len(levels), opts.StartLevel)
		}
		start = opts.StartLevel - 1
	}

	return Table{Config: cfg, Levels: levels, Policy: policy, Start: start}, nil
}

// RegisterDefaults registers one game per embedded table of the given kind.
// A broken embedded table panics.
func RegisterDefaults(kind string, create func(id string, opts core.GameOptions) (registry.Game, error)) {
	cfgs, err := config.Defaults()
	if err != nil {
		panic(fmt.Sprintf("session: embedded tables: %v", err))
	}
	for _, cfg := range cfgs {
		if cfg.Kind != kind {
			continue
		}
		id := cfg.ID
		registry.Register(registry.GameInfo{
			ID:          id,
			Title:       cfg.Title,
			Description: cfg.Description,
			Icon:        cfg.Icon,
			Levels:      cfg.LevelCount(),
		}, func(opts core.GameOptions) (registry.Game, error) {
			return create(id, opts)
		})
	}
}
