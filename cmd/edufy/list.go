package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/edufy/internal/core"
	"github.com/vovakirdan/edufy/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games with their level counts.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, core.TextWidth(g.Title))
	}

	// Print header
	fmt.Printf("     %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Levels")
	fmt.Printf("     %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------")

	// Print games. Titles are padded by display width for emoji and accents.
	for _, g := range games {
		icon := g.Icon
		if pad := 2 - core.TextWidth(icon); pad > 0 {
			icon += strings.Repeat(" ", pad)
		}
		title := g.Title + strings.Repeat(" ", maxTitleLen-core.TextWidth(g.Title))
		fmt.Printf("  %s %-*s  %s  %d\n", icon, maxIDLen, g.ID, title, g.Levels)
	}

	fmt.Println()
	fmt.Println("Run 'edufy play <id>' to play a game.")
}

