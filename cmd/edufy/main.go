// edufy is a terminal collection of educational mini-games for kids.
//
// Usage:
//
//	edufy list               - List available games
//	edufy play <game>        - Play a game
//	edufy menu               - Pick games and levels interactively
//	edufy levels <game>      - Show a game's levels
//	edufy check              - Validate content tables
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible rounds
//	--log-file <path>    - Write session logs to a file
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/edufy/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/edufy/internal/games/memory"
	_ "github.com/vovakirdan/edufy/internal/games/quiz"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "edufy",
	Short: "Edufy - learning games for kids in your terminal",
	Long: `Edufy is a collection of small learning games: colors, shapes,
counting, words, feelings, routines and more. Each game is a series of
levels; answer enough rounds correctly to finish a level.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game and level picker
  levels   - Show the levels of a game
  check    - Validate the built-in and custom content tables

Examples:
  edufy list
  edufy play colors
  edufy play counting --level 3 --difficulty easy
  edufy menu
  edufy check --config ./my-colors.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write session logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
}

// newLogger builds the session logger. The TUI owns the terminal, so logs
// go to --log-file or nowhere. The returned func closes the file.
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "edufy",
		Level:           level,
	})
	return logger, closeFn, nil
}

// stderrLogger is used by commands that do not take over the terminal.
func stderrLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Prefix: "edufy"})
}

// runtimeConfig reads the terminal size and the global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
