// wordgrid is a terminal word-grid puzzle: trace paths of adjacent letters
// and find every hidden word without a miss.
//
// Usage:
//
//	wordgrid list                - List available puzzles
//	wordgrid play [puzzle]       - Play a puzzle
//	wordgrid menu                - Pick puzzles interactively
//	wordgrid serve               - Start SSH server for remote play
//	wordgrid scores <puzzle>     - Show results for a puzzle
//	wordgrid share <puzzle>      - Print the share text of the last result
//
// Global flags:
//
//	--fps <rate>         - Set UI tick rate (default: 30)
//	--db <path>          - Set database path (default: ~/.wordgrid/results.db)
//	--puzzle-dir <path>  - Extra puzzles to load (default: ~/.wordgrid/puzzles)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wordgrid/internal/config"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagPuzzleDir string
	flagLogLevel  string
	flagLogFile   string
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db",
		config.EnvOr(config.EnvDB, "~/.wordgrid/results.db"), "Path to results database (env "+config.EnvDB+")")
	rootCmd.PersistentFlags().StringVar(&flagPuzzleDir, "puzzle-dir",
		config.EnvOr(config.EnvPuzzleDir, config.UserPuzzleDir()), "Directory of extra puzzle files (env "+config.EnvPuzzleDir+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level",
		config.EnvOr(config.EnvLogLevel, "info"), "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wordgrid",
	Short: "wordgrid - find the hidden words in a grid of letters",
	Long: `wordgrid is a terminal word puzzle. Walk a path of neighbouring letters
(up, down, left, right), submit the word, and find every word on the list.
A word that is not on the list ends the game.

Available commands:
  list     - Show all available puzzles
  play     - Play a puzzle directly
  menu     - Interactive puzzle picker
  serve    - Start SSH server for remote play
  scores   - View results
  share    - Print the share text of the last game

Examples:
  wordgrid list
  wordgrid play classic
  wordgrid play --puzzle-file ./my-puzzle.yaml
  wordgrid menu
  wordgrid serve --ssh :2222
  wordgrid scores classic`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "UI tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(shareCmd)
}
