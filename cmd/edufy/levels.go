package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/edufy/internal/config"
	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels <game>",
	Short: "Show the levels of a game",
	Long: `Print each level's goal, timer and description.

Examples:
  edufy levels colors
  edufy levels counting --difficulty hard
  edufy levels colors --config ./my-colors.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom content table YAML")
	levelsCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runLevels(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'edufy list' to see available games)", gameID)
	}
	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		return err
	}

	game, err := registry.Create(gameID, core.GameOptions{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
	})
	if err != nil {
		return fmt.Errorf("error loading game: %w", err)
	}

	fmt.Printf("Levels - %s\n", game.Title())
	fmt.Println()
	fmt.Printf("  %-5s  %-4s  %-5s  %s\n", "Level", "Goal", "Timer", "Description")
	fmt.Printf("  %-5s  %-4s  %-5s  %s\n", "-----", "----", "-----", "-----------")
	for _, l := range game.Levels() {
		timer := "-"
		if l.TimeLimit > 0 {
			timer = fmt.Sprintf("%ds", l.TimeLimit)
		}
		fmt.Printf("  %-5d  %-4d  %-5s  %s\n", l.Number, l.Goal, timer, l.Description)
	}
	return nil
}
