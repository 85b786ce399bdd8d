package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordgrid/internal/registry"
	"github.com/vovakirdan/wordgrid/internal/storage"
)

var (
	flagRecent int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [puzzle]",
	Short: "Show results for a puzzle",
	Long: `Display the top 10 results for the specified puzzle.
Without a puzzle, --recent lists the latest games of every puzzle.

Examples:
  wordgrid scores classic
  wordgrid scores --recent 5
  wordgrid scores garden --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Show the N most recent games of all puzzles")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results of the puzzle")
}

func runScores(_ *cobra.Command, args []string) error {
	defer closeLog()

	if len(args) == 0 && flagRecent <= 0 {
		return fmt.Errorf("give a puzzle id or --recent N")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printRecent(store, flagRecent)
	}

	puzzleID := args[0]
	if !registry.Exists(puzzleID) {
		return fmt.Errorf("unknown puzzle %q, run 'wordgrid list' to see available puzzles", puzzleID)
	}

	if flagClear {
		if err := store.ClearScores(puzzleID); err != nil {
			return err
		}
		logger.Info("results cleared", "puzzle", puzzleID)
		return nil
	}

	return printTop(store, puzzleID)
}

func printTop(store *storage.Store, puzzleID string) error {
	scores, err := store.TopScores(puzzleID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("Results - %s\n", puzzleTitle(puzzleID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'wordgrid play %s' to record the first one!\n", puzzleID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "Rank", "Score", "Result", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %s\n", "----", "-----", "------", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10s  %-6s  %s\n", i+1, scoreText(entry), entry.Outcome, formatDate(entry.CreatedAt))
	}

	stats, err := store.PuzzleStats(puzzleID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Played: %d  Won: %d  Lost: %d  Best: %d  Avg: %.1f\n",
			stats.Played, stats.Won, stats.Lost, stats.BestScore, stats.AvgScore)
	}
	return nil
}

func printRecent(store *storage.Store, limit int) error {
	results, err := store.RecentResults(limit)
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	fmt.Printf("  %-12s  %-10s  %-6s  %s\n", "Puzzle", "Score", "Result", "Date")
	fmt.Printf("  %-12s  %-10s  %-6s  %s\n", "------", "-----", "------", "----")
	for _, r := range results {
		fmt.Printf("  %-12s  %-10s  %-6s  %s\n", r.PuzzleID, scoreText(r), r.Outcome, formatDate(r.CreatedAt))
	}
	return nil
}

func scoreText(r storage.Result) string {
	return fmt.Sprintf("%d of %d", r.Score, r.MaxScore)
}

func formatDate(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func puzzleTitle(id string) string {
	for _, p := range registry.List() {
		if p.ID == id {
			return p.Title
		}
	}
	return id
}
