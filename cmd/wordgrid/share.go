package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordgrid/internal/games/wordgrid"
	"github.com/vovakirdan/wordgrid/internal/registry"
	"github.com/vovakirdan/wordgrid/internal/storage"
)

var shareCmd = &cobra.Command{
	Use:   "share <puzzle>",
	Short: "Print the share text of the last game",
	Long: `Print the score of the most recent finished game of a puzzle together
with its board, ready to paste. If the puzzle was never played only the
board is printed.

Examples:
  wordgrid share classic`,
	Args: cobra.ExactArgs(1),
	RunE: runShare,
}

func runShare(_ *cobra.Command, args []string) error {
	defer closeLog()

	puzzleID := args[0]
	if !registry.Exists(puzzleID) {
		return fmt.Errorf("unknown puzzle %q, run 'wordgrid list' to see available puzzles", puzzleID)
	}

	g, err := registry.Create(puzzleID)
	if err != nil {
		return err
	}
	game, ok := g.(*wordgrid.Game)
	if !ok {
		return fmt.Errorf("puzzle %q cannot be shared", puzzleID)
	}
	defer game.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		fmt.Println(game.ShareText())
		return nil
	}
	defer store.Close()

	last, err := store.LatestResult(puzzleID)
	if err != nil {
		return err
	}
	if last == nil {
		fmt.Println(game.ShareText())
		return nil
	}

	fmt.Println(wordgrid.ShareResult(game.Puzzle(), last.Score, last.MaxScore))
	return nil
}
