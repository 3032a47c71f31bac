package main

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/edufy/internal/config"
	"github.com/vovakirdan/edufy/internal/registry"
	"github.com/vovakirdan/edufy/internal/round"
)

var flagCheckConfigs []string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate content tables",
	Long: `Load and validate every game's content table, including user
overrides in ~/.edufy/configs and ./configs, plus any files given with
--config. Exits non-zero if any table is invalid.

Examples:
  edufy check
  edufy check --config ./my-colors.yaml --config ./my-words.yaml`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringArrayVar(&flagCheckConfigs, "config", nil, "Extra content table YAML to validate (repeatable)")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	logger := stderrLogger()
	var errs []error

	for _, id := range config.DefaultIDs() {
		cfg, err := config.Load(id, "")
		if err != nil {
			errs = append(errs, err)
			fmt.Printf("  FAIL  %s\n", id)
			continue
		}
		if err := checkTable(cfg); err != nil {
			errs = append(errs, err)
			fmt.Printf("  FAIL  %s (%s)\n", id, cfg.Source)
			continue
		}
		fmt.Printf("  ok    %-10s %2d levels  %s\n", id, cfg.LevelCount(), cfg.Source)
	}

	for _, path := range flagCheckConfigs {
		cfg, err := config.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			fmt.Printf("  FAIL  %s\n", path)
			continue
		}
		if err := checkTable(cfg); err != nil {
			errs = append(errs, err)
			fmt.Printf("  FAIL  %s\n", path)
			continue
		}
		if !registry.Exists(cfg.ID) {
			logger.Warn("table id matches no game; use it with --config on a game of the same kind", "file", path, "id", cfg.ID, "kind", cfg.Kind)
		}
		warnTimers(logger, path, cfg)
		fmt.Printf("  ok    %-10s %2d levels  %s\n", cfg.ID, cfg.LevelCount(), path)
	}

	if len(errs) > 0 {
		for _, err := range errs {
			logger.Error(err.Error())
		}
		return fmt.Errorf("%d table(s) failed validation", len(errs))
	}
	return nil
}

// checkTable builds an engine from the table and plays every level
// through with correct answers, so a level that cannot be finished fails
// here instead of during play.
func checkTable(cfg config.GameConfig) error {
	levels, err := cfg.RoundLevels()
	if err != nil {
		return err
	}
	policy, err := cfg.RoundConfig()
	if err != nil {
		return err
	}
	engine, err := round.NewEngine(levels, policy, rand.New(rand.NewSource(1)))
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Source, err)
	}

	for i, lvl := range levels {
		engine.StartLevel(i)
		pairs := distinctItems(lvl.Items)
		for step := 0; step < lvl.RequiredScore && !engine.LevelComplete(); step++ {
			if policy.Selection == round.SelectManual {
				// Each pair can be matched once per deal.
				if step >= len(pairs) || !engine.Aim(pairs[step]) {
					break
				}
			}
			target, ok := engine.Target()
			if !ok {
				return fmt.Errorf("%s: level %d: no target in round %d", cfg.Source, lvl.Number, step+1)
			}
			if n := countID(engine.Options(), target.ID); n != 1 {
				return fmt.Errorf("%s: level %d: target %q shown %d times", cfg.Source, lvl.Number, target.ID, n)
			}
			engine.SubmitAnswer(target)
		}
		if !engine.LevelComplete() {
			return fmt.Errorf("%s: level %d cannot be completed (required_score %d)", cfg.Source, lvl.Number, lvl.RequiredScore)
		}
	}
	if !engine.GameComplete() {
		return fmt.Errorf("%s: finishing the last level does not complete the game", cfg.Source)
	}
	return nil
}

func distinctItems(items []round.Item) []round.Item {
	seen := make(map[string]bool, len(items))
	out := make([]round.Item, 0, len(items))
	for _, it := range items {
		if !seen[it.ID] {
			seen[it.ID] = true
			out = append(out, it)
		}
	}
	return out
}

func countID(items []round.Item, id string) int {
	n := 0
	for _, it := range items {
		if it.ID == id {
			n++
		}
	}
	return n
}

// warnTimers flags timed levels that leave less than two seconds per
// required answer.
func warnTimers(logger *log.Logger, path string, cfg config.GameConfig) {
	for _, lvl := range cfg.Levels {
		if lvl.TimeLimit > 0 && lvl.TimeLimit < 2*lvl.RequiredScore {
			logger.Warn("tight timer", "file", path, "level", lvl.Number, "time_limit", lvl.TimeLimit, "required_score", lvl.RequiredScore)
		}
	}
}
