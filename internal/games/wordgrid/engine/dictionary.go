package engine

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultMinWordLength is used when a configuration leaves the rule unset.
const DefaultMinWordLength = 3

// ErrInvalidMinWordLength is returned for a minimum word length below 1.
var ErrInvalidMinWordLength = errors.New("engine: minimum word length must be at least 1")

// Outcome classifies a submitted word.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeDuplicate
	OutcomeValid
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeValid:
		return "valid"
	default:
		return "unknown"
	}
}

// Result is the payload produced for every validated word.
type Result struct {
	Word         string
	Outcome      Outcome
	Message      string
	ShortMessage string
}

// SolvedSet records words already found in the current game, in the order
// they were found.
type SolvedSet struct {
	order []string
	words map[string]struct{}
}

// NewSolvedSet returns an empty set.
func NewSolvedSet() *SolvedSet {
	return &SolvedSet{words: make(map[string]struct{})}
}

// Add records word. Adding a word twice has no effect.
func (s *SolvedSet) Add(word string) {
	if _, ok := s.words[word]; ok {
		return
	}
	s.words[word] = struct{}{}
	s.order = append(s.order, word)
}

// Has reports whether word was already found. A nil set is empty.
func (s *SolvedSet) Has(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of solved words.
func (s *SolvedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Words returns the solved words in the order they were found.
func (s *SolvedSet) Words() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clear empties the set.
func (s *SolvedSet) Clear() {
	s.order = s.order[:0]
	clear(s.words)
}

// Dictionary is the fixed list of target words plus the minimum length rule.
type Dictionary struct {
	minWordLength int
	effective     []string
	lookup        map[string]struct{}
}

// NewDictionary builds a dictionary. Words shorter than minWordLength are kept
// out of the effective list; repeated words count once.
func NewDictionary(words []string, minWordLength int) (*Dictionary, error) {
	if minWordLength < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidMinWordLength, minWordLength)
	}

	d := &Dictionary{
		minWordLength: minWordLength,
		lookup:        make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		if utf8.RuneCountInString(w) < minWordLength {
			continue
		}
		if _, dup := d.lookup[w]; dup {
			continue
		}
		d.lookup[w] = struct{}{}
		d.effective = append(d.effective, w)
	}
	return d, nil
}

// MinWordLength returns the minimum accepted word length in characters.
func (d *Dictionary) MinWordLength() int { return d.minWordLength }

// Size returns the number of words that can be scored.
func (d *Dictionary) Size() int { return len(d.effective) }

// Words returns the effective word list in configuration order.
func (d *Dictionary) Words() []string {
	out := make([]string, len(d.effective))
	copy(out, d.effective)
	return out
}

// Contains reports whether word is in the effective list.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.lookup[word]
	return ok
}

// Validate classifies word. Checks run in a fixed order and the first match
// wins: empty, too short, unknown, already solved, valid.
func (d *Dictionary) Validate(word string, solved *SolvedSet) Result {
	r := Result{Word: word, Outcome: OutcomeInvalid}

	switch {
	case word == "":
		r.Message = "Word is empty."
		r.ShortMessage = "Invalid word!"
	case utf8.RuneCountInString(word) < d.minWordLength:
		r.Message = fmt.Sprintf("Minimum word length is %d characters.", d.minWordLength)
		r.ShortMessage = "Too short!"
	case !d.Contains(word):
		r.Message = fmt.Sprintf("“%s” isn't a valid word.", word)
		r.ShortMessage = "Invalid word!"
	case solved.Has(word):
		r.Outcome = OutcomeDuplicate
		r.Message = fmt.Sprintf("“%s” has already been solved.", word)
		r.ShortMessage = "Word already solved!"
	default:
		r.Outcome = OutcomeValid
		r.Message = fmt.Sprintf("“%s” is valid!", word)
		r.ShortMessage = "Word found!"
	}

	return r
}
