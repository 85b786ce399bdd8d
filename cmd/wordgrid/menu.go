package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordgrid/internal/platform/tui"
	"github.com/vovakirdan/wordgrid/internal/registry"
	"github.com/vovakirdan/wordgrid/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a puzzle picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a puzzle.
Esc in a game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select puzzle
  Tab          - Scoreboard
  Q            - Quit

Examples:
  wordgrid menu
  wordgrid menu --db ./results.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.PuzzleID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating puzzle: %v\n", err)
			continue
		}

		if err := tui.Run(game, store, cfg, uiLogger()); err != nil {
			fmt.Fprintf(os.Stderr, "Error running puzzle: %v\n", err)
		}
	}
}
