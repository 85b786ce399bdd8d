package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/wordgrid/internal/games/wordgrid/engine"
)

func TestDefaultPuzzle(t *testing.T) {
	p := DefaultPuzzle()

	if p.ID != DefaultPuzzleID {
		t.Errorf("ID = %q, expected %q", p.ID, DefaultPuzzleID)
	}
	if p.Board.Columns != 4 || p.Board.Rows != 4 {
		t.Errorf("board = %dx%d, expected 4x4", p.Board.Columns, p.Board.Rows)
	}
	if got := strings.Join(p.Board.Letters, ""); got != "ACEFMNRDCXUFIENF" {
		t.Errorf("letters = %q", got)
	}
	if got := strings.Join(p.Dictionary, ","); got != "ACE,CAM,RUN" {
		t.Errorf("dictionary = %q", got)
	}
	if p.Domain != "words.xyz" {
		t.Errorf("domain = %q", p.Domain)
	}
	if p.Rules.ResetDelay != 2*time.Second {
		t.Errorf("reset delay = %s, expected 2s", p.Rules.ResetDelay)
	}
}

func TestBuiltinPuzzlesAreValid(t *testing.T) {
	puzzles, err := BuiltinPuzzles()
	if err != nil {
		t.Fatalf("BuiltinPuzzles() error: %v", err)
	}
	if len(puzzles) < 3 {
		t.Fatalf("expected at least 3 builtin puzzles, got %d", len(puzzles))
	}

	for i, p := range puzzles {
		if i > 0 && puzzles[i-1].ID >= p.ID {
			t.Errorf("puzzles not sorted: %q before %q", puzzles[i-1].ID, p.ID)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("builtin %q invalid: %v", p.ID, err)
		}
		for _, w := range p.Dictionary {
			if w != strings.ToUpper(w) {
				t.Errorf("builtin %q word %q not normalised", p.ID, w)
			}
		}
	}
}

// Every builtin word must be spellable along an adjacent path, otherwise the
// puzzle cannot be won.
func TestBuiltinWordsArePlayable(t *testing.T) {
	puzzles, err := BuiltinPuzzles()
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range puzzles {
		grid, err := engine.NewGrid(p.Board.Columns, p.Board.Rows, p.Board.Letters)
		if err != nil {
			t.Fatalf("%s: %v", p.ID, err)
		}
		for _, w := range p.Dictionary {
			if !spellable(grid, w) {
				t.Errorf("%s: word %q cannot be traced on the board", p.ID, w)
			}
		}
	}
}

func spellable(g *engine.Grid, word string) bool {
	letters := strings.Split(word, "")
	used := make(map[engine.TileID]bool)

	var walk func(id engine.TileID, i int) bool
	walk = func(id engine.TileID, i int) bool {
		t, _ := g.Tile(id)
		if used[id] || t.Letter != letters[i] {
			return false
		}
		if i == len(letters)-1 {
			return true
		}
		used[id] = true
		defer delete(used, id)
		for _, n := range g.Neighbors(id) {
			if walk(n, i+1) {
				return true
			}
		}
		return false
	}

	for i := range g.Size() {
		if walk(engine.TileID(i), 0) {
			return true
		}
	}
	return false
}

func TestParsePuzzleLetterForms(t *testing.T) {
	tests := []struct {
		name    string
		letters string
	}{
		{"string", `letters: "ab-cd"`},
		{"spaced", "letters: |\n    a b\n    c d"},
		{"list", "letters: [a, b, c, d]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "id: t\nboard:\n  columns: 2\n  rows: 2\n  " + tt.letters + "\ndictionary: [abd]\n"
			p, err := ParsePuzzle([]byte(doc))
			if err != nil {
				t.Fatalf("ParsePuzzle() error: %v", err)
			}
			if got := strings.Join(p.Board.Letters, ""); got != "ABCD" {
				t.Errorf("letters = %q, expected ABCD", got)
			}
			if p.Title != "t" {
				t.Errorf("title should default to id, got %q", p.Title)
			}
		})
	}
}

func TestParsePuzzleRejectsBadLetters(t *testing.T) {
	doc := "id: t\nboard:\n  columns: 2\n  rows: 2\n  letters:\n    a: b\ndictionary: [abd]\n"
	if _, err := ParsePuzzle([]byte(doc)); err == nil {
		t.Error("expected an error for a mapping as letters")
	}
}

func TestPuzzleValidate(t *testing.T) {
	valid := func() Puzzle {
		p := DefaultPuzzle()
		p.Board.Letters = append(Letters(nil), p.Board.Letters...)
		p.Dictionary = append([]string(nil), p.Dictionary...)
		return p
	}

	tests := []struct {
		name   string
		mutate func(*Puzzle)
		want   error
	}{
		{"missing id", func(p *Puzzle) { p.ID = "" }, ErrMissingID},
		{"bad id", func(p *Puzzle) { p.ID = "Has Space" }, ErrInvalidID},
		{"no words", func(p *Puzzle) { p.Dictionary = nil }, ErrNoDictionary},
		{"negative delay", func(p *Puzzle) { p.Rules.ResetDelay = -time.Second }, ErrNegativeRule},
		{"too few letters", func(p *Puzzle) { p.Board.Letters = p.Board.Letters[:10] }, engine.ErrTooFewLetters},
		{"all words short", func(p *Puzzle) { p.Rules.MinWordLength = 4 }, engine.ErrEmptyDictionary},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("default puzzle should be valid: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			err := p.Validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, expected %v", err, tt.want)
			}
		})
	}
}

func TestEngineConfigCopies(t *testing.T) {
	p := DefaultPuzzle()
	cfg := p.EngineConfig()
	cfg.Letters[0] = "Z"
	cfg.SolutionWords[0] = "ZZZ"

	if p.Board.Letters[0] != "A" || p.Dictionary[0] != "ACE" {
		t.Error("EngineConfig should not alias the puzzle slices")
	}
	if cfg.Columns != 4 || cfg.Rows != 4 || cfg.MinWordLength != 3 {
		t.Errorf("unexpected engine config %+v", cfg)
	}
}

func writePuzzle(t *testing.T, dir, name, id string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	doc := "id: " + id + "\nboard:\n  columns: 2\n  rows: 2\n  letters: abcd\ndictionary: [abd, cab]\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadPuzzleCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := writePuzzle(t, dir, "mine.yaml", "mine")

	p, err := LoadPuzzle(path)
	if err != nil {
		t.Fatalf("LoadPuzzle() error: %v", err)
	}
	if p.ID != "mine" {
		t.Errorf("ID = %q, expected mine", p.ID)
	}

	if _, err := LoadPuzzle(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing custom path")
	}
}

func TestLoadPuzzleFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	p, err := LoadPuzzle("")
	if err != nil {
		t.Fatalf("LoadPuzzle() error: %v", err)
	}
	if p.ID != DefaultPuzzleID {
		t.Errorf("expected embedded default, got %q", p.ID)
	}
}

func TestLoadPuzzleLocalDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd := t.TempDir()
	if err := os.Mkdir(filepath.Join(wd, "puzzles"), 0o755); err != nil {
		t.Fatal(err)
	}
	writePuzzle(t, filepath.Join(wd, "puzzles"), "default.yaml", "local")
	t.Chdir(wd)

	p, err := LoadPuzzle("")
	if err != nil {
		t.Fatalf("LoadPuzzle() error: %v", err)
	}
	if p.ID != "local" {
		t.Errorf("expected ./puzzles/default.yaml, got %q", p.ID)
	}
}

func TestPuzzleLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writePuzzle(t, dir, "b.yaml", "bravo")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	writePuzzle(t, filepath.Join(dir, "nested"), "a.yml", "alpha")
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("id: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewPuzzleLoader(dir)
	puzzles, problems, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(puzzles) != 2 || puzzles[0].ID != "alpha" || puzzles[1].ID != "bravo" {
		t.Errorf("unexpected puzzles: %+v", puzzles)
	}
	if len(problems) != 1 {
		t.Errorf("expected one problem for broken.yaml, got %v", problems)
	}

	p, err := loader.LoadByID("bravo")
	if err != nil || p.ID != "bravo" {
		t.Errorf("LoadByID(bravo) = %q, %v", p.ID, err)
	}
	if _, err := loader.LoadByID("charlie"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(EnvLogLevel+"=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv() error: %v", err)
	}
	if got := EnvOr(EnvLogLevel, "info"); got != "debug" {
		t.Errorf("EnvOr = %q, expected debug", got)
	}

	if err := LoadEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
	if got := EnvOr("WORDGRID_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("EnvOr = %q, expected fallback", got)
	}
}
