package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/edufy/internal/config"
	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/platform/tui"
	"github.com/vovakirdan/edufy/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a game and a level interactively",
	Long: `Start edufy in interactive menu mode.

Pick a game, then a level. Esc in a game or in the level list goes back
one step; after a game you return to the game list.

Controls:
  Up/Down/j/k  - Navigate
  Enter/Space  - Select
  Tab/D        - Change difficulty
  Q            - Quit

Examples:
  edufy menu
  edufy menu --fps 60
  edufy menu --log-file ./edufy.log`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := runtimeConfig()
	difficulty := config.DifficultyNormal

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg, difficulty)
		if err != nil {
			return err
		}
		cfg = menuResult.Config
		difficulty = menuResult.Difficulty
		if menuResult.Quit || menuResult.GameID == "" {
			return nil
		}

		quit, err := playFromMenu(menuResult.GameID, difficulty, cfg, logger)
		if err != nil {
			logger.Error("game failed", "game", menuResult.GameID, "error", err)
			return err
		}
		if quit {
			return nil
		}
	}
}

// playFromMenu shows the level picker for a game and runs the chosen level.
// Back from a game returns to the level picker and back from the level
// picker returns to the game list. It reports true when the player quit.
func playFromMenu(gameID string, difficulty config.DifficultyPreset, cfg core.RuntimeConfig, logger *log.Logger) (bool, error) {
	info, ok := registry.Info(gameID)
	if !ok {
		return false, fmt.Errorf("unknown game %q", gameID)
	}

	for {
		// Level infos come from a throwaway instance so presets apply.
		probe, err := registry.Create(gameID, core.GameOptions{Difficulty: string(difficulty)})
		if err != nil {
			return false, err
		}

		pick, err := tui.RunLevelPicker(info.Title, probe.Levels(), cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			return false, err
		}
		if pick.Quit {
			return true, nil
		}
		if pick.Back || pick.Level == 0 {
			return false, nil
		}

		game, err := registry.Create(gameID, core.GameOptions{
			Difficulty: string(difficulty),
			StartLevel: pick.Level,
		})
		if err != nil {
			return false, err
		}
		res, err := tui.Run(game, cfg, logger)
		if err != nil {
			return false, err
		}
		if !res.Back {
			return true, nil
		}
	}
}
