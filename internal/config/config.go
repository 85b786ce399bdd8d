// Package config provides YAML puzzle definitions and their loading for the
// word grid game.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/wordgrid/internal/games/wordgrid/engine"
)

// Puzzle is one playable board together with its solution list.
type Puzzle struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Domain     string   `yaml:"domain"`
	Board      Board    `yaml:"board"`
	Dictionary []string `yaml:"dictionary"`
	Rules      Rules    `yaml:"rules"`
}

// Board defines the grid dimensions and its letters in row-major order.
type Board struct {
	Columns int     `yaml:"columns"`
	Rows    int     `yaml:"rows"`
	Letters Letters `yaml:"letters"`
}

// Rules holds the tunable game rules. Zero values take the engine defaults.
type Rules struct {
	MinWordLength int           `yaml:"min_word_length"`
	ResetDelay    time.Duration `yaml:"reset_delay"`
}

// Letters is the tile list. In YAML it is either a sequence of letters or a
// single string where every non-space character is one tile.
type Letters []string

// UnmarshalYAML accepts both the sequence and the string form.
func (l *Letters) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var out Letters
		for _, r := range value.Value {
			if unicode.IsSpace(r) || r == '-' {
				continue
			}
			out = append(out, string(r))
		}
		*l = out
		return nil
	case yaml.SequenceNode:
		var raw []string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*l = raw
		return nil
	default:
		return fmt.Errorf("line %d: letters must be a string or a list", value.Line)
	}
}

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Errors reported by Puzzle.Validate.
var (
	ErrMissingID    = errors.New("puzzle id is required")
	ErrInvalidID    = errors.New("puzzle id may only contain lower-case letters, digits, '-' and '_'")
	ErrNoDictionary = errors.New("puzzle dictionary is empty")
	ErrNegativeRule = errors.New("puzzle rules must not be negative")
)

// Normalize trims the puzzle and upper-cases every letter and word so that
// matching in the engine is exact.
func (p *Puzzle) Normalize() {
	p.ID = strings.TrimSpace(p.ID)
	p.Title = strings.TrimSpace(p.Title)
	p.Domain = strings.TrimSpace(p.Domain)
	if p.Title == "" {
		p.Title = p.ID
	}

	for i, l := range p.Board.Letters {
		p.Board.Letters[i] = strings.ToUpper(strings.TrimSpace(l))
	}

	words := p.Dictionary[:0]
	for _, w := range p.Dictionary {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	p.Dictionary = words
}

// EngineConfig converts the puzzle into an engine configuration.
func (p Puzzle) EngineConfig() engine.Config {
	return engine.Config{
		Columns:       p.Board.Columns,
		Rows:          p.Board.Rows,
		Letters:       append([]string(nil), p.Board.Letters...),
		SolutionWords: append([]string(nil), p.Dictionary...),
		MinWordLength: p.Rules.MinWordLength,
		ResetDelay:    p.Rules.ResetDelay,
	}
}

// Validate reports every problem with the puzzle, including those the engine
// would reject when starting a session.
func (p Puzzle) Validate() error {
	var errs []error

	switch {
	case p.ID == "":
		errs = append(errs, ErrMissingID)
	case !idPattern.MatchString(p.ID):
		errs = append(errs, fmt.Errorf("%w (got %q)", ErrInvalidID, p.ID))
	}
	if len(p.Dictionary) == 0 {
		errs = append(errs, ErrNoDictionary)
	}
	if p.Rules.MinWordLength < 0 || p.Rules.ResetDelay < 0 {
		errs = append(errs, ErrNegativeRule)
	}

	if len(errs) == 0 {
		s, err := engine.New(p.EngineConfig())
		if err != nil {
			errs = append(errs, err)
		} else {
			s.Close()
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("puzzle %q: %w", p.ID, errors.Join(errs...))
	}
	return nil
}

// ParsePuzzle decodes, normalises and validates a YAML puzzle.
func ParsePuzzle(data []byte) (Puzzle, error) {
	var p Puzzle
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Puzzle{}, err
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return Puzzle{}, err
	}
	return p, nil
}
