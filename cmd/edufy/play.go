package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/edufy/internal/config"
	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/platform/tui"
	"github.com/vovakirdan/edufy/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  1-9          - Pick an option
  Arrows       - Move the highlight
  Enter/Space  - Choose (or grab and drop in sorting games)
  Mouse        - Click an option, or drag the piece onto a bin
  N            - Next level (once the level is complete)
  R            - Reset the level, or restart a finished game
  P            - Pause
  Esc          - Back
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - No timers, one fewer choice
  normal - Levels as written
  hard   - Shorter timers, one more choice

Examples:
  edufy play colors
  edufy play shapes --level 2
  edufy play counting --difficulty easy
  edufy play colors --config ./my-colors.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom content table YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start at (1-based)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'edufy list' to see available games)", gameID)
	}
	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		return err
	}
	if flagLevel < 1 {
		return fmt.Errorf("invalid --level %d: levels start at 1", flagLevel)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID, core.GameOptions{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		StartLevel: flagLevel,
	})
	if err != nil {
		return fmt.Errorf("error creating game: %w", err)
	}

	if _, err := tui.Run(game, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
