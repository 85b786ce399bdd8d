package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadPuzzle loads the puzzle to play when no id is given.
// Search order: customPath -> ~/.wordgrid/puzzles/default.yaml -> ./puzzles/default.yaml -> embedded default
func LoadPuzzle(customPath string) (Puzzle, error) {
	// Try custom path first
	if customPath != "" {
		p, err := LoadPuzzleFile(customPath)
		if err != nil {
			return Puzzle{}, err
		}
		return p, nil
	}

	// Try user puzzle directory
	if userPath := userPuzzlePath("default.yaml"); userPath != "" {
		if p, err := LoadPuzzleFile(userPath); err == nil {
			return p, nil
		}
	}

	// Try local puzzles directory
	if p, err := LoadPuzzleFile(filepath.Join("puzzles", "default.yaml")); err == nil {
		return p, nil
	}

	return DefaultPuzzle(), nil
}

// LoadPuzzleFile reads and validates a single puzzle file.
func LoadPuzzleFile(path string) (Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Puzzle{}, fmt.Errorf("failed to read puzzle %s: %w", path, err)
	}
	p, err := ParsePuzzle(data)
	if err != nil {
		return Puzzle{}, fmt.Errorf("failed to parse puzzle %s: %w", path, err)
	}
	return p, nil
}

// UserPuzzleDir returns ~/.wordgrid/puzzles, or empty if home is unavailable.
func UserPuzzleDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wordgrid", "puzzles")
}

func userPuzzlePath(filename string) string {
	dir := UserPuzzleDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}

// PuzzleLoader loads puzzle files from a directory tree.
type PuzzleLoader struct {
	Root string
}

// NewPuzzleLoader creates a loader rooted at root.
func NewPuzzleLoader(root string) *PuzzleLoader {
	return &PuzzleLoader{Root: root}
}

// LoadAll recursively scans Root for *.yaml and *.yml puzzles.
// Invalid files are skipped and reported in the returned problem list.
// Puzzles are sorted by ID.
func (l *PuzzleLoader) LoadAll() ([]Puzzle, []error, error) {
	var (
		puzzles  []Puzzle
		problems []error
	)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
		default:
			return nil
		}

		p, err := LoadPuzzleFile(path)
		if err != nil {
			problems = append(problems, err)
			return nil
		}
		puzzles = append(puzzles, p)
		return nil
	})
	if err != nil {
		return nil, problems, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(puzzles, func(i, j int) bool {
		return puzzles[i].ID < puzzles[j].ID
	})
	return puzzles, problems, nil
}

// LoadByID returns the puzzle with the given id.
func (l *PuzzleLoader) LoadByID(id string) (Puzzle, error) {
	puzzles, _, err := l.LoadAll()
	if err != nil {
		return Puzzle{}, err
	}
	for _, p := range puzzles {
		if p.ID == id {
			return p, nil
		}
	}
	return Puzzle{}, fmt.Errorf("puzzle %q not found in %s", id, l.Root)
}
