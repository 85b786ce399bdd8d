package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordgrid/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available puzzles",
	Long:  `Shows the built-in puzzles and those loaded from the puzzle directory.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	puzzles := registry.List()

	if len(puzzles) == 0 {
		fmt.Println("No puzzles available.")
		return
	}

	fmt.Println("Available puzzles:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range puzzles {
		maxIDLen = max(maxIDLen, len(p.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, p := range puzzles {
		fmt.Printf("  %-*s  %s\n", maxIDLen, p.ID, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'wordgrid play <id>' to play a puzzle.")
}
