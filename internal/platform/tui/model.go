package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wordgrid/internal/core"
	"github.com/vovakirdan/wordgrid/internal/registry"
	"github.com/vovakirdan/wordgrid/internal/storage"
)

// resizer is implemented by games that can adapt to a new screen size
// without a restart.
type resizer interface {
	Resize(w, h int)
}

// GameModel is the Bubble Tea model for playing one puzzle.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame *core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the result has been saved for the current game over
	lastSaved  *storage.Result
}

// NewGameModel creates a model for the given game. store and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	frame := core.NewInputFrame()

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: &frame,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	switch action := m.keyMapper.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.closeGame()
		return m, tea.Quit
	case core.ActionBack:
		m.backToMenu = true
		m.closeGame()
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick feeds the collected input to the game.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	result := m.game.Step(*m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	// Save result on game over (once)
	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.saveResult()
		m.scoreSaved = true
	case !m.gameState.GameOver:
		m.scoreSaved = false
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) saveResult() {
	if m.store == nil {
		return
	}
	saved, err := m.store.SaveResult(storage.Result{
		PuzzleID: m.game.ID(),
		Score:    m.gameState.Score,
		MaxScore: m.gameState.MaxScore,
		Outcome:  string(m.gameState.Outcome),
		Words:    m.gameState.Words,
	})
	if err != nil {
		m.logger.Error("could not save result", "puzzle", m.game.ID(), "error", err)
		return
	}
	m.lastSaved = &saved
	m.logger.Info("result saved",
		"puzzle", saved.PuzzleID,
		"run", saved.RunID,
		"score", saved.Score,
		"outcome", saved.Outcome,
	)
}

func (m *GameModel) closeGame() {
	if c, ok := m.game.(registry.Closer); ok {
		c.Close()
	}
}

// saveScreenshot writes the current screen to ~/.wordgrid/screenshots.
func (m *GameModel) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".wordgrid", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// LastSaved returns the most recently stored result, if any.
func (m GameModel) LastSaved() *storage.Result {
	return m.lastSaved
}

// Run plays a single game until the user quits or goes back.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
