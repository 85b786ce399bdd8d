// Package wordgrid adapts the word grid engine to the platform's game loop:
// a cursor over the board, per-tick actions and cell-buffer rendering.
package wordgrid

import (
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wordgrid/internal/config"
	"github.com/vovakirdan/wordgrid/internal/core"
	"github.com/vovakirdan/wordgrid/internal/games/wordgrid/engine"
	"github.com/vovakirdan/wordgrid/internal/registry"
)

// Game is one puzzle being played in the terminal.
type Game struct {
	puzzle  config.Puzzle
	session *engine.Session
	cursor  engine.TileID

	// Short feedback for inputs the engine refused or that never reached it.
	notice string

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

var (
	loggerMu      sync.RWMutex
	sessionLogger *log.Logger
)

// SetLogger sets the logger handed to sessions created from the registry.
func SetLogger(l *log.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	sessionLogger = l
}

func currentLogger() *log.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return sessionLogger
}

// New creates a game for p. Extra engine options, such as a mock clock, are
// applied after the package logger.
func New(p config.Puzzle, opts ...engine.Option) (*Game, error) {
	if l := currentLogger(); l != nil {
		opts = append([]engine.Option{engine.WithLogger(l.With("puzzle", p.ID))}, opts...)
	}

	s, err := engine.New(p.EngineConfig(), opts...)
	if err != nil {
		return nil, fmt.Errorf("puzzle %q: %w", p.ID, err)
	}

	cfg := core.DefaultConfig()
	g := &Game{
		puzzle:  p,
		session: s,
		screenW: cfg.ScreenW,
		screenH: cfg.ScreenH,
	}
	g.checkScreenSize()
	return g, nil
}

// Register validates p and adds it to the registry.
func Register(p config.Puzzle) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f := func() registry.Game {
		g, err := New(p)
		if err != nil {
			// Validate already built a session from the same config.
			panic(err)
		}
		return g
	}
	if !registry.RegisterIfAbsent(p.ID, f) {
		return fmt.Errorf("puzzle %q already registered", p.ID)
	}
	return nil
}

func init() {
	puzzles, err := config.BuiltinPuzzles()
	if err != nil {
		panic(err)
	}
	for _, p := range puzzles {
		if err := Register(p); err != nil {
			panic(err)
		}
	}
}

// ID returns the puzzle identifier.
func (g *Game) ID() string {
	return g.puzzle.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.puzzle.Title
}

// Puzzle returns the puzzle definition.
func (g *Game) Puzzle() config.Puzzle {
	return g.puzzle
}

// Session exposes the underlying engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Reset starts the puzzle over.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()

	g.cursor = 0
	g.notice = ""
	//nolint:errcheck // ResetFull is always a known scope
	g.session.Reset(engine.ResetFull)
}

// Resize updates the screen size without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Close stops the session's pending timer.
func (g *Game) Close() {
	g.session.Close()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := g.minSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step applies the actions of one tick in the order they arrived. Once a
// submission ends the game the rest of the frame is dropped, so the finished
// game is always reported before it can be restarted.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions() {
		over := g.session.Status().Terminal()
		switch a {
		case core.ActionUp:
			g.moveCursor(0, -1)
		case core.ActionDown:
			g.moveCursor(0, 1)
		case core.ActionLeft:
			g.moveCursor(-1, 0)
		case core.ActionRight:
			g.moveCursor(1, 0)
		case core.ActionToggle:
			g.toggle(g.cursor)
		case core.ActionUndo:
			g.undo()
		case core.ActionConfirm:
			if over {
				g.restart()
			} else {
				g.submit()
			}
		case core.ActionRestart:
			g.restart()
		}
		if !over && g.session.Status().Terminal() {
			break
		}
	}

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	snap := g.session.Snapshot()
	state := core.GameState{
		Score:    snap.Score,
		MaxScore: snap.MaxScore,
		GameOver: snap.Status.Terminal(),
		Words:    snap.Solved,
	}
	switch snap.Status {
	case engine.StatusWon:
		state.Outcome = core.OutcomeWon
	case engine.StatusLost:
		state.Outcome = core.OutcomeLost
	}
	return state
}

// Cursor returns the tile under the cursor.
func (g *Game) Cursor() engine.TileID {
	return g.cursor
}

func (g *Game) moveCursor(dx, dy int) {
	grid := g.session.Grid()
	col, row := grid.Position(g.cursor)
	col = (col + dx + grid.Columns()) % grid.Columns()
	row = (row + dy + grid.Rows()) % grid.Rows()
	if id, ok := grid.At(col, row); ok {
		g.cursor = id
	}
}

func (g *Game) toggle(id engine.TileID) {
	err := g.session.ToggleTile(id)
	switch {
	case err == nil:
		g.notice = ""
	case errors.Is(err, engine.ErrNotAdjacent):
		g.notice = "Pick a letter next to the last one."
	case errors.Is(err, engine.ErrNotPathEnd):
		g.notice = "Only the last letter can be removed."
	}
}

func (g *Game) undo() {
	path := g.session.Path()
	if len(path) == 0 {
		return
	}
	g.toggle(path[len(path)-1])
}

// submit sends the current word to the engine. Words below the minimum
// length are held back, the way a disabled submit button would.
func (g *Game) submit() {
	snap := g.session.Snapshot()
	if snap.ResetPending {
		return
	}
	if utf8.RuneCountInString(snap.Word) < snap.MinWordLength {
		g.notice = fmt.Sprintf("Words need at least %d letters.", snap.MinWordLength)
		return
	}
	g.notice = ""
	//nolint:errcheck // Refusals are visible in the snapshot
	g.session.SubmitWord()
}

func (g *Game) restart() {
	g.notice = ""
	g.cursor = 0
	//nolint:errcheck // ResetFull is always a known scope
	g.session.Reset(engine.ResetFull)
}
