package engine

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"
)

// DefaultResetDelay is how long a submission result stays on screen before
// the selection is cleared.
const DefaultResetDelay = 2 * time.Second

// Errors returned when a session refuses an input.
var (
	ErrSessionOver      = errors.New("engine: session is over, reset to play again")
	ErrResetPending     = errors.New("engine: waiting for the previous submission to clear")
	ErrEmptyDictionary  = errors.New("engine: no solution word meets the minimum length")
	ErrNegativeDelay    = errors.New("engine: reset delay must not be negative")
	ErrUnknownResetKind = errors.New("engine: unknown reset scope")
)

// Status is the overall state of a session.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in-progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether only a full reset can leave this status.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// ResetScope selects what Reset clears.
type ResetScope int

const (
	// ResetSelection clears the path and the displayed word only.
	ResetSelection ResetScope = iota
	// ResetFull starts the game over.
	ResetFull
)

// Config describes a game. Zero MinWordLength and ResetDelay take the
// package defaults.
type Config struct {
	Columns       int
	Rows          int
	Letters       []string
	SolutionWords []string
	MinWordLength int
	ResetDelay    time.Duration
}

// Option customises a Session.
type Option func(*Session)

// WithClock sets the clock used to schedule delayed resets.
func WithClock(c clock.Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithListener registers fn to receive session events. Listeners are called
// after the session lock is released, on the goroutine that caused the event.
func WithListener(fn func(Event)) Option {
	return func(s *Session) { s.listeners = append(s.listeners, fn) }
}

// Session is one game: the board, the path being built, the score and the
// words found so far. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	grid       *Grid
	dict       *Dictionary
	selection  *Selection
	solved     *SolvedSet
	resetDelay time.Duration

	score  int
	status Status
	last   *Result

	// A pending soft reset is identified by resetGen; a timer that fires
	// after the generation moved on does nothing.
	pending  bool
	resetGen uint64
	timer    *clock.Timer

	clock     clock.Clock
	logger    *log.Logger
	listeners []func(Event)
}

// New validates cfg and creates a session. Nothing is created when any part
// of the configuration is wrong; all problems are reported together.
func New(cfg Config, opts ...Option) (*Session, error) {
	if cfg.MinWordLength == 0 {
		cfg.MinWordLength = DefaultMinWordLength
	}
	if cfg.ResetDelay == 0 {
		cfg.ResetDelay = DefaultResetDelay
	}

	var errs []error
	grid, err := NewGrid(cfg.Columns, cfg.Rows, cfg.Letters)
	if err != nil {
		errs = append(errs, err)
	}
	dict, err := NewDictionary(cfg.SolutionWords, cfg.MinWordLength)
	if err != nil {
		errs = append(errs, err)
	} else if dict.Size() == 0 {
		errs = append(errs, ErrEmptyDictionary)
	}
	if cfg.ResetDelay < 0 {
		errs = append(errs, fmt.Errorf("%w (got %s)", ErrNegativeDelay, cfg.ResetDelay))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("engine: invalid configuration: %w", errors.Join(errs...))
	}

	s := &Session{
		grid:       grid,
		dict:       dict,
		selection:  NewSelection(grid),
		solved:     NewSolvedSet(),
		resetDelay: cfg.ResetDelay,
		status:     StatusInProgress,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	return s, nil
}

// Grid returns the board. It is immutable and safe to share.
func (s *Session) Grid() *Grid { return s.grid }

// Dictionary returns the solution dictionary.
func (s *Session) Dictionary() *Dictionary { return s.dict }

// ToggleTile adds id to the path or removes it from the path end.
func (s *Session) ToggleTile(id TileID) error {
	var events []Event
	defer func() { s.emit(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playableLocked(); err != nil {
		return err
	}
	if err := s.selection.Toggle(id); err != nil {
		return err
	}

	word := s.selection.Word()
	s.logger.Debug("tile toggled", "tile", int(id), "word", word)
	events = append(events, Event{Kind: EventTileToggled, Tile: id, Word: word, Score: s.score, Status: s.status})
	return nil
}

// SubmitWord validates the current word and applies the outcome. While the
// game is over or a previous result is still on display the call does
// nothing and returns ErrSessionOver or ErrResetPending.
func (s *Session) SubmitWord() (Result, error) {
	var events []Event
	defer func() { s.emit(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.playableLocked(); err != nil {
		return Result{}, err
	}

	word := s.selection.Word()
	r := s.dict.Validate(word, s.solved)
	s.last = &r

	switch r.Outcome {
	case OutcomeValid:
		s.score++
		s.solved.Add(word)
		if s.score == s.dict.Size() {
			s.status = StatusWon
		} else {
			s.scheduleResetLocked()
		}
	case OutcomeDuplicate:
		s.scheduleResetLocked()
	case OutcomeInvalid:
		s.status = StatusLost
	}

	s.logger.Debug("word submitted",
		"word", word,
		"outcome", r.Outcome,
		"score", s.score,
		"status", s.status,
	)

	events = append(events, Event{Kind: EventWordSubmitted, Word: word, Result: &r, Score: s.score, Status: s.status})
	if s.status.Terminal() {
		s.logger.Info("game over", "status", s.status, "score", s.score, "max", s.dict.Size())
		events = append(events, Event{Kind: EventStatusChanged, Score: s.score, Status: s.status})
	}
	return r, nil
}

// Reset clears the selection, or with ResetFull the whole game. Any pending
// delayed reset is cancelled.
func (s *Session) Reset(scope ResetScope) error {
	var events []Event
	defer func() { s.emit(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	switch scope {
	case ResetSelection:
		s.cancelPendingLocked()
		s.resetSelectionLocked()
		events = append(events, Event{Kind: EventSelectionReset, Score: s.score, Status: s.status})
	case ResetFull:
		s.cancelPendingLocked()
		prev := s.status
		s.resetSelectionLocked()
		s.score = 0
		s.solved.Clear()
		s.status = StatusInProgress
		s.logger.Debug("session reset")
		events = append(events, Event{Kind: EventSessionReset, Score: s.score, Status: s.status})
		if prev != s.status {
			events = append(events, Event{Kind: EventStatusChanged, Score: s.score, Status: s.status})
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownResetKind, scope)
	}
	return nil
}

// Close stops any pending timer. The session stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPendingLocked()
}

// CurrentWord returns the word spelled by the current path.
func (s *Session) CurrentWord() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Word()
}

// Score returns the number of words found.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// MaxScore returns the number of words that can be found.
func (s *Session) MaxScore() int {
	return s.dict.Size()
}

// Status returns the session status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// ResetPending reports whether a delayed selection reset is scheduled.
func (s *Session) ResetPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// LastResult returns the most recent submission result, if any is on display.
func (s *Session) LastResult() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

// Solved returns the words found so far in the order they were found.
func (s *Session) Solved() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.solved.Words()
}

// TileStatuses returns the status of every tile in row-major order.
func (s *Session) TileStatuses() []TileStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Statuses()
}

// EligibleTiles returns the tiles that ToggleTile would currently append.
// Nothing is eligible once the game is over or while a reset is pending.
func (s *Session) EligibleTiles() []TileID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playableLocked() != nil {
		return nil
	}
	return s.selection.Eligible()
}

// Path returns the selected tile ids in path order.
func (s *Session) Path() []TileID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Path()
}

func (s *Session) playableLocked() error {
	if s.status.Terminal() {
		return ErrSessionOver
	}
	if s.pending {
		return ErrResetPending
	}
	return nil
}

func (s *Session) resetSelectionLocked() {
	s.selection.Clear()
	s.last = nil
}

func (s *Session) scheduleResetLocked() {
	s.cancelPendingLocked()
	s.pending = true
	gen := s.resetGen
	s.timer = s.clock.AfterFunc(s.resetDelay, func() { s.firePendingReset(gen) })
}

func (s *Session) cancelPendingLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
	s.resetGen++
}

func (s *Session) firePendingReset(gen uint64) {
	var events []Event
	defer func() { s.emit(events) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pending || gen != s.resetGen || s.status.Terminal() {
		return
	}
	s.pending = false
	s.timer = nil
	s.resetSelectionLocked()
	events = append(events, Event{Kind: EventSelectionReset, Score: s.score, Status: s.status})
}

func (s *Session) emit(events []Event) {
	for _, evt := range events {
		for _, fn := range s.listeners {
			fn(evt)
		}
	}
}
