package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordgrid/internal/config"
	"github.com/vovakirdan/wordgrid/internal/games/wordgrid"
	"github.com/vovakirdan/wordgrid/internal/platform/tui"
	"github.com/vovakirdan/wordgrid/internal/registry"
	"github.com/vovakirdan/wordgrid/internal/storage"
)

var flagPuzzleFile string

var playCmd = &cobra.Command{
	Use:   "play [puzzle]",
	Short: "Play a puzzle",
	Long: `Start playing the named puzzle. Without a name the default puzzle is
used, searched in this order:
  --puzzle-file, ~/.wordgrid/puzzles/default.yaml, ./puzzles/default.yaml,
  then the built-in classic board.

Controls:
  Arrows      - Move the cursor
  Space       - Pick the letter under the cursor (or drop the last one)
  Backspace   - Drop the last letter
  Enter       - Submit the word / play again after the game ended
  R           - Start over
  Esc         - Leave
  Q/Ctrl+C    - Quit

Examples:
  wordgrid play
  wordgrid play garden
  wordgrid play --puzzle-file ./my-puzzle.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPuzzleFile, "puzzle-file", "", "Path to a puzzle YAML file")
}

func runPlay(_ *cobra.Command, args []string) error {
	defer closeLog()

	game, err := pickGame(args)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	return tui.Run(game, store, runtimeConfig(), uiLogger())
}

func pickGame(args []string) (registry.Game, error) {
	if len(args) == 1 {
		if flagPuzzleFile != "" {
			return nil, fmt.Errorf("give either a puzzle name or --puzzle-file, not both")
		}
		if !registry.Exists(args[0]) {
			return nil, fmt.Errorf("unknown puzzle %q, run 'wordgrid list' to see available puzzles", args[0])
		}
		return registry.Create(args[0])
	}

	p, err := config.LoadPuzzle(flagPuzzleFile)
	if err != nil {
		return nil, err
	}
	return wordgrid.New(p)
}
