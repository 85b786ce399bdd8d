package wordgrid

import (
	"strings"
	"testing"

	"github.com/benbjohnson/clock"

	"github.com/vovakirdan/wordgrid/internal/config"
	"github.com/vovakirdan/wordgrid/internal/core"
	"github.com/vovakirdan/wordgrid/internal/games/wordgrid/engine"
	"github.com/vovakirdan/wordgrid/internal/registry"
)

func newTestGame(t *testing.T) (*Game, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	g, err := New(config.DefaultPuzzle(), engine.WithClock(mock))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	g.Reset(core.DefaultConfig())
	t.Cleanup(g.Close)
	return g, mock
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestBuiltinPuzzlesRegistered(t *testing.T) {
	for _, id := range []string{"classic", "garden", "tiny"} {
		if !registry.Exists(id) {
			t.Errorf("puzzle %q not registered", id)
		}
	}

	g, err := registry.Create("classic")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	defer g.(registry.Closer).Close()

	if g.Title() != "Classic" {
		t.Errorf("Title() = %q", g.Title())
	}
	if s := g.State(); s.MaxScore != 3 || s.GameOver {
		t.Errorf("unexpected initial state %+v", s)
	}
}

func TestRegisterRejects(t *testing.T) {
	if err := Register(config.DefaultPuzzle()); err == nil {
		t.Error("expected error registering classic twice")
	}

	bad := config.DefaultPuzzle()
	bad.ID = "zz-bad"
	bad.Dictionary = nil
	if err := Register(bad); err == nil {
		t.Error("expected validation error")
	}
	if registry.Exists("zz-bad") {
		t.Error("invalid puzzle must not be registered")
	}
}

func TestCursorMovementWraps(t *testing.T) {
	g, _ := newTestGame(t)

	tests := []struct {
		action core.Action
		want   engine.TileID
	}{
		{core.ActionLeft, 3},
		{core.ActionDown, 7},
		{core.ActionRight, 4},
		{core.ActionUp, 0},
		{core.ActionUp, 12},
	}
	for _, tt := range tests {
		g.Step(frame(tt.action))
		if g.Cursor() != tt.want {
			t.Errorf("after %v cursor = %d, expected %d", tt.action, g.Cursor(), tt.want)
		}
	}
}

func TestSpellAndSubmit(t *testing.T) {
	g, _ := newTestGame(t)

	g.Step(frame(
		core.ActionToggle, core.ActionRight,
		core.ActionToggle, core.ActionRight,
		core.ActionToggle,
	))
	if w := g.Session().CurrentWord(); w != "ACE" {
		t.Fatalf("word = %q, expected ACE", w)
	}

	res := g.Step(frame(core.ActionConfirm))
	if res.State.Score != 1 || res.State.GameOver {
		t.Errorf("unexpected state after ACE: %+v", res.State)
	}
	if got := strings.Join(res.State.Words, ","); got != "ACE" {
		t.Errorf("words = %q", got)
	}
	if !g.Session().ResetPending() {
		t.Error("a delayed reset should be pending")
	}

	// Input is ignored until the result clears.
	g.Step(frame(core.ActionUndo, core.ActionToggle))
	if w := g.Session().CurrentWord(); w != "ACE" {
		t.Errorf("word changed while reset pending: %q", w)
	}
}

func TestShortWordIsHeldBack(t *testing.T) {
	g, _ := newTestGame(t)

	res := g.Step(frame(core.ActionToggle, core.ActionRight, core.ActionToggle, core.ActionConfirm))
	if res.State.GameOver || res.State.Score != 0 {
		t.Errorf("short word must not reach the engine: %+v", res.State)
	}
	if _, ok := g.Session().LastResult(); ok {
		t.Error("no submission result expected")
	}
	if g.notice == "" {
		t.Error("expected a notice for the short word")
	}
}

func TestInvalidWordLosesAndConfirmRestarts(t *testing.T) {
	g, _ := newTestGame(t)

	// A, C, then N below C
	res := g.Step(frame(
		core.ActionToggle, core.ActionRight, core.ActionToggle,
		core.ActionDown, core.ActionToggle, core.ActionConfirm,
	))
	if !res.State.GameOver || res.State.Outcome != core.OutcomeLost {
		t.Fatalf("expected a lost game, got %+v", res.State)
	}

	res = g.Step(frame(core.ActionConfirm))
	if res.State.GameOver || res.State.Score != 0 {
		t.Errorf("confirm after game over should restart, got %+v", res.State)
	}
	if g.Cursor() != 0 {
		t.Errorf("cursor should return home, got %d", g.Cursor())
	}
}

func TestGameOverEndsTheFrame(t *testing.T) {
	g, _ := newTestGame(t)

	// "ACN" loses; the confirms queued behind it belong to the next game.
	res := g.Step(frame(
		core.ActionToggle, core.ActionRight, core.ActionToggle,
		core.ActionDown, core.ActionToggle, core.ActionConfirm,
		core.ActionConfirm, core.ActionRestart,
	))
	if !res.State.GameOver || res.State.Outcome != core.OutcomeLost {
		t.Fatalf("lost game must survive the tick it ended in, got %+v", res.State)
	}

	res = g.Step(frame(core.ActionConfirm, core.ActionToggle))
	if res.State.GameOver {
		t.Fatalf("confirm on a later tick should restart, got %+v", res.State)
	}
	if w := g.Session().CurrentWord(); w != "A" {
		t.Errorf("actions after the restart should apply, word = %q", w)
	}
}

func TestUndoAndNotices(t *testing.T) {
	g, _ := newTestGame(t)

	g.Step(frame(core.ActionToggle, core.ActionRight, core.ActionToggle))
	g.Step(frame(core.ActionUndo))
	if w := g.Session().CurrentWord(); w != "A" {
		t.Errorf("undo should drop C, word = %q", w)
	}

	// D at 7 is not next to A at 0
	g.Step(frame(core.ActionRight, core.ActionRight, core.ActionDown, core.ActionToggle))
	if w := g.Session().CurrentWord(); w != "A" {
		t.Errorf("non-adjacent pick should be refused, word = %q", w)
	}
	if g.notice == "" {
		t.Error("expected a notice for the non-adjacent pick")
	}

	g.Step(frame(core.ActionRestart))
	if w := g.Session().CurrentWord(); w != "" || g.notice != "" {
		t.Errorf("restart should clear word and notice, got %q / %q", w, g.notice)
	}
}

func TestWinningGame(t *testing.T) {
	g, mock := newTestGame(t)
	s := g.Session()

	spell := func(ids ...engine.TileID) {
		t.Helper()
		for _, id := range ids {
			if err := s.ToggleTile(id); err != nil {
				t.Fatalf("ToggleTile(%d): %v", id, err)
			}
		}
		g.Step(frame(core.ActionConfirm))
	}
	waitClear := func() {
		t.Helper()
		mock.Add(engine.DefaultResetDelay)
		for range 100 {
			if !s.ResetPending() {
				return
			}
			mock.Add(0)
		}
		t.Fatal("pending reset never fired")
	}

	spell(0, 1, 2)
	waitClear()
	spell(1, 0, 4)
	waitClear()
	spell(6, 10, 14)

	st := g.State()
	if !st.GameOver || st.Outcome != core.OutcomeWon || st.Score != 3 {
		t.Errorf("expected a won game, got %+v", st)
	}
}
