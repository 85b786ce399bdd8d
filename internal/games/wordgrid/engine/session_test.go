package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) record(evt Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, evt)
}

func (l *eventLog) kinds() []EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]EventKind, len(l.events))
	for i, e := range l.events {
		out[i] = e.Kind
	}
	return out
}

func classicConfig() Config {
	return Config{
		Columns:       4,
		Rows:          4,
		Letters:       classicLetters,
		SolutionWords: []string{"ACE", "CAM", "RUN"},
		MinWordLength: 3,
		ResetDelay:    2 * time.Second,
	}
}

func newClassicSession(t *testing.T, opts ...Option) (*Session, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	s, err := New(classicConfig(), append([]Option{WithClock(mock)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, mock
}

func spell(t *testing.T, s *Session, ids ...TileID) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, s.ToggleTile(id))
	}
}

// waitForClear waits for the delayed reset, which the mock clock runs on its
// own goroutine.
func waitForClear(t *testing.T, s *Session) {
	t.Helper()
	require.Eventually(t, func() bool {
		return !s.ResetPending() && s.CurrentWord() == ""
	}, time.Second, time.Millisecond)
}

var (
	wordACE = []TileID{0, 1, 2}
	wordCAM = []TileID{1, 0, 4}
	wordRUN = []TileID{6, 10, 14}
	wordACN = []TileID{0, 1, 5}
)

func TestNewValidatesConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := classicConfig()
		cfg.MinWordLength = 0
		cfg.ResetDelay = 0
		s, err := New(cfg)
		require.NoError(t, err)
		defer s.Close()
		assert.Equal(t, DefaultMinWordLength, s.Dictionary().MinWordLength())
		assert.Equal(t, DefaultResetDelay, s.resetDelay)
	})

	t.Run("too few letters", func(t *testing.T) {
		cfg := classicConfig()
		cfg.Letters = cfg.Letters[:10]
		s, err := New(cfg)
		require.ErrorIs(t, err, ErrTooFewLetters)
		assert.Nil(t, s)
	})

	t.Run("all problems reported", func(t *testing.T) {
		cfg := classicConfig()
		cfg.Columns = 0
		cfg.SolutionWords = []string{"AT"}
		cfg.ResetDelay = -time.Second
		_, err := New(cfg)
		require.ErrorIs(t, err, ErrInvalidDimensions)
		require.ErrorIs(t, err, ErrEmptyDictionary)
		require.ErrorIs(t, err, ErrNegativeDelay)
	})

	t.Run("bad min length", func(t *testing.T) {
		cfg := classicConfig()
		cfg.MinWordLength = -2
		_, err := New(cfg)
		require.ErrorIs(t, err, ErrInvalidMinWordLength)
	})
}

func TestSessionValidSubmission(t *testing.T) {
	s, mock := newClassicSession(t)

	spell(t, s, wordACE...)
	assert.Equal(t, "ACE", s.CurrentWord())

	r, err := s.SubmitWord()
	require.NoError(t, err)
	assert.Equal(t, OutcomeValid, r.Outcome)
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, StatusInProgress, s.Status())
	assert.True(t, s.ResetPending())
	assert.Equal(t, []string{"ACE"}, s.Solved())

	last, ok := s.LastResult()
	require.True(t, ok)
	assert.Equal(t, r, last)

	// The word stays on display until the delay elapses.
	mock.Add(time.Second)
	assert.Equal(t, "ACE", s.CurrentWord())
	assert.True(t, s.ResetPending())

	mock.Add(time.Second)
	waitForClear(t, s)
	assert.Equal(t, 1, s.Score(), "soft reset keeps the score")
	assert.Equal(t, []string{"ACE"}, s.Solved(), "soft reset keeps solved words")
	_, ok = s.LastResult()
	assert.False(t, ok)
}

func TestSessionInputIgnoredWhileResetPending(t *testing.T) {
	s, mock := newClassicSession(t)

	spell(t, s, wordACE...)
	_, err := s.SubmitWord()
	require.NoError(t, err)

	_, err = s.SubmitWord()
	require.ErrorIs(t, err, ErrResetPending)
	require.ErrorIs(t, s.ToggleTile(3), ErrResetPending)
	assert.Equal(t, 1, s.Score())
	assert.Nil(t, s.EligibleTiles())

	mock.Add(2 * time.Second)
	waitForClear(t, s)
	require.NoError(t, s.ToggleTile(3))
}

func TestSessionDuplicateSubmission(t *testing.T) {
	s, mock := newClassicSession(t)

	spell(t, s, wordACE...)
	_, err := s.SubmitWord()
	require.NoError(t, err)
	mock.Add(2 * time.Second)
	waitForClear(t, s)

	spell(t, s, wordACE...)
	r, err := s.SubmitWord()
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicate, r.Outcome)
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, StatusInProgress, s.Status())
	assert.True(t, s.ResetPending())

	mock.Add(2 * time.Second)
	waitForClear(t, s)
	assert.Equal(t, StatusInProgress, s.Status())
}

func TestSessionInvalidSubmissionLoses(t *testing.T) {
	s, mock := newClassicSession(t)

	spell(t, s, wordACN...)
	r, err := s.SubmitWord()
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, r.Outcome)
	assert.Equal(t, StatusLost, s.Status())
	assert.False(t, s.ResetPending(), "a lost game schedules nothing")

	_, err = s.SubmitWord()
	require.ErrorIs(t, err, ErrSessionOver)
	require.ErrorIs(t, s.ToggleTile(3), ErrSessionOver)

	mock.Add(time.Minute)
	assert.Equal(t, "ACN", s.CurrentWord(), "the losing word stays on display")
	assert.Equal(t, StatusLost, s.Status())
}

func TestSessionEmptySubmissionLoses(t *testing.T) {
	s, _ := newClassicSession(t)

	r, err := s.SubmitWord()
	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, r.Outcome)
	assert.Equal(t, "Word is empty.", r.Message)
	assert.Equal(t, StatusLost, s.Status())
}

func TestSessionWin(t *testing.T) {
	s, mock := newClassicSession(t)

	for _, word := range [][]TileID{wordACE, wordCAM} {
		spell(t, s, word...)
		r, err := s.SubmitWord()
		require.NoError(t, err)
		require.Equal(t, OutcomeValid, r.Outcome)
		mock.Add(2 * time.Second)
		waitForClear(t, s)
	}

	spell(t, s, wordRUN...)
	r, err := s.SubmitWord()
	require.NoError(t, err)
	assert.Equal(t, OutcomeValid, r.Outcome)
	assert.Equal(t, StatusWon, s.Status())
	assert.Equal(t, 3, s.Score())
	assert.Equal(t, s.MaxScore(), s.Score())
	assert.False(t, s.ResetPending())

	require.ErrorIs(t, s.ToggleTile(0), ErrSessionOver)
	assert.Equal(t, 3, s.Score(), "toggles after winning do not change the score")
}

func TestSessionFullReset(t *testing.T) {
	s, mock := newClassicSession(t)

	spell(t, s, wordACE...)
	_, err := s.SubmitWord()
	require.NoError(t, err)
	mock.Add(2 * time.Second)
	waitForClear(t, s)

	spell(t, s, wordACN...)
	_, err = s.SubmitWord()
	require.NoError(t, err)
	require.Equal(t, StatusLost, s.Status())

	require.NoError(t, s.Reset(ResetFull))
	assert.Equal(t, StatusInProgress, s.Status())
	assert.Zero(t, s.Score())
	assert.Empty(t, s.Solved())
	assert.Empty(t, s.CurrentWord())

	spell(t, s, wordACE...)
	r, err := s.SubmitWord()
	require.NoError(t, err)
	assert.Equal(t, OutcomeValid, r.Outcome, "solved words are forgotten after a full reset")
}

func TestSessionFullResetCancelsPendingReset(t *testing.T) {
	s, mock := newClassicSession(t)

	spell(t, s, wordACE...)
	_, err := s.SubmitWord()
	require.NoError(t, err)
	require.True(t, s.ResetPending())

	require.NoError(t, s.Reset(ResetFull))
	assert.False(t, s.ResetPending())

	spell(t, s, wordRUN...)
	mock.Add(5 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, "RUN", s.CurrentWord(), "a cancelled timer must not clear the new path")
}

func TestSessionSelectionReset(t *testing.T) {
	s, mock := newClassicSession(t)

	spell(t, s, wordACE...)
	_, err := s.SubmitWord()
	require.NoError(t, err)

	require.NoError(t, s.Reset(ResetSelection))
	assert.False(t, s.ResetPending())
	assert.Empty(t, s.CurrentWord())
	assert.Equal(t, 1, s.Score())

	spell(t, s, wordRUN...)
	mock.Add(5 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, "RUN", s.CurrentWord())

	require.ErrorIs(t, s.Reset(ResetScope(42)), ErrUnknownResetKind)
}

func TestSessionRejectsNonAdjacentToggle(t *testing.T) {
	s, _ := newClassicSession(t)

	require.NoError(t, s.ToggleTile(0))
	require.ErrorIs(t, s.ToggleTile(2), ErrNotAdjacent)
	assert.Equal(t, "A", s.CurrentWord())
	assert.Equal(t, []TileID{1, 4}, s.EligibleTiles())
}

func TestSessionEvents(t *testing.T) {
	var log eventLog
	s, mock := newClassicSession(t, WithListener(log.record))

	spell(t, s, wordACE...)
	_, err := s.SubmitWord()
	require.NoError(t, err)
	mock.Add(2 * time.Second)
	waitForClear(t, s)

	require.Eventually(t, func() bool { return len(log.kinds()) == 5 }, time.Second, time.Millisecond)
	assert.Equal(t, []EventKind{
		EventTileToggled,
		EventTileToggled,
		EventTileToggled,
		EventWordSubmitted,
		EventSelectionReset,
	}, log.kinds())

	spell(t, s, wordACN...)
	_, err = s.SubmitWord()
	require.NoError(t, err)
	require.NoError(t, s.Reset(ResetFull))

	kinds := log.kinds()
	assert.Equal(t, []EventKind{
		EventTileToggled,
		EventTileToggled,
		EventTileToggled,
		EventWordSubmitted,
		EventStatusChanged,
		EventSessionReset,
		EventStatusChanged,
	}, kinds[5:])
}

func TestSessionListenerMayReadState(t *testing.T) {
	var s *Session
	var words []string
	listener := func(evt Event) {
		// Listeners run outside the lock so reading back must not deadlock.
		words = append(words, s.CurrentWord())
	}
	s, _ = newClassicSession(t, WithListener(listener))

	spell(t, s, 6, 10)
	assert.Equal(t, []string{"R", "RU"}, words)
}

func TestSessionSnapshot(t *testing.T) {
	s, _ := newClassicSession(t)
	spell(t, s, 4, 5)

	snap := s.Snapshot()
	assert.Equal(t, 4, snap.Columns)
	assert.Equal(t, 4, snap.Rows)
	assert.Equal(t, "MN", snap.Word)
	assert.Equal(t, []TileID{4, 5}, snap.Path)
	assert.Equal(t, 3, snap.MaxScore)
	assert.Equal(t, 3, snap.MinWordLength)
	assert.Equal(t, StatusInProgress, snap.Status)
	assert.Nil(t, snap.LastResult)
	require.Len(t, snap.Tiles, 16)
	assert.Equal(t, TileSelected, snap.Tiles[4].Status)
	assert.Equal(t, TileSelectedLast, snap.Tiles[5].Status)
	assert.Equal(t, TileDisabled, snap.Tiles[0].Status)
	assert.Equal(t, "N", snap.Tiles[5].Letter)
}

func TestSessionConcurrentUse(t *testing.T) {
	s, mock := newClassicSession(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				_ = s.ToggleTile(0)
				_ = s.Snapshot()
				_ = s.EligibleTiles()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 20 {
			mock.Add(time.Second)
		}
	}()
	wg.Wait()

	assert.LessOrEqual(t, len(s.Path()), 1)
	assert.Equal(t, StatusInProgress, s.Status())
}
