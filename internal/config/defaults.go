package config

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed defaults/*.yaml
var defaultPuzzles embed.FS

// DefaultPuzzleID is the puzzle played when none is named.
const DefaultPuzzleID = "classic"

// BuiltinPuzzles returns the puzzles shipped with the binary, sorted by ID.
func BuiltinPuzzles() ([]Puzzle, error) {
	entries, err := fs.ReadDir(defaultPuzzles, "defaults")
	if err != nil {
		return nil, err
	}

	puzzles := make([]Puzzle, 0, len(entries))
	for _, e := range entries {
		data, err := defaultPuzzles.ReadFile("defaults/" + e.Name())
		if err != nil {
			return nil, err
		}
		p, err := ParsePuzzle(data)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", e.Name(), err)
		}
		puzzles = append(puzzles, p)
	}

	sort.Slice(puzzles, func(i, j int) bool {
		return puzzles[i].ID < puzzles[j].ID
	})
	return puzzles, nil
}

// DefaultPuzzle returns the embedded classic board: 4x4, three words.
func DefaultPuzzle() Puzzle {
	data, err := defaultPuzzles.ReadFile("defaults/" + DefaultPuzzleID + ".yaml")
	if err == nil {
		if p, err := ParsePuzzle(data); err == nil {
			return p
		}
	}

	// Fallback to hardcoded if embed fails
	return Puzzle{
		ID:     DefaultPuzzleID,
		Title:  "Classic",
		Domain: "words.xyz",
		Board: Board{
			Columns: 4,
			Rows:    4,
			Letters: Letters{"A", "C", "E", "F", "M", "N", "R", "D", "C", "X", "U", "F", "I", "E", "N", "F"},
		},
		Dictionary: []string{"ACE", "CAM", "RUN"},
		Rules:      Rules{MinWordLength: 3},
	}
}
