package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wordgrid/internal/registry"
	"github.com/vovakirdan/wordgrid/internal/storage"
)

const (
	statsPanelMinWidth = 84 // below this the puzzle panel folds into one line
	statsPanelWidth    = 26
	maxScores          = 100
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	wonStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lostStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	activeStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Clear  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Prev, k.Next, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Scroll, k.Prev, k.Next}, {k.Clear, k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next puzzle")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev puzzle")),
		Clear:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear results")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the results of one puzzle at a time next to a panel
// with the play record of every puzzle.
type ScoreboardModel struct {
	puzzles []registry.GameInfo
	current int
	store   *storage.Store

	results []storage.Result
	stats   map[string]*storage.PuzzleStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		puzzles: registry.List(),
		store:   store,
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= statsPanelMinWidth
}

func (m ScoreboardModel) newTable() table.Model {
	dateWidth := 12
	if m.wide() {
		dateWidth = 16
	}
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Found", Width: 8},
		{Title: "Result", Width: 6},
		{Title: "Date", Width: dateWidth},
		{Title: "Words", Width: max(m.tableWidth()-dateWidth-26, 8)},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) tableWidth() int {
	w := m.width - 6
	if m.wide() {
		w -= statsPanelWidth + 4
	}
	return w
}

func (m ScoreboardModel) selectedID() string {
	if len(m.puzzles) == 0 {
		return ""
	}
	return m.puzzles[m.current].ID
}

// reload refreshes the results of the selected puzzle and every puzzle's stats.
func (m *ScoreboardModel) reload() {
	m.results = nil
	m.stats = nil
	if m.store != nil {
		if all, err := m.store.AllPuzzleStats(); err == nil {
			m.stats = all
		}
		if id := m.selectedID(); id != "" {
			if results, err := m.store.TopScores(id, maxScores); err == nil {
				m.results = results
			}
		}
	}

	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprintf("%d of %d", r.Score, r.MaxScore),
			r.Outcome,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			strings.Join(r.Words, " "),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) move(delta int) {
	if len(m.puzzles) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.puzzles)) % len(m.puzzles)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.move(-1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			if m.store != nil && m.selectedID() != "" {
				if err := m.store.ClearScores(m.selectedID()); err == nil {
					m.reload()
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "RESULTS"
	if len(m.puzzles) > 0 {
		title = fmt.Sprintf("RESULTS - %s (%d/%d)", m.puzzles[m.current].Title, m.current+1, len(m.puzzles))
	}

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			panelStyle.Width(statsPanelWidth).Render(m.puzzlePanel()),
			" ",
			panelStyle.Render(m.resultsView()),
		)
	} else {
		body = centerText(dimStyle.Render(recordLine(m.stats[m.selectedID()])), m.width) +
			"\n\n" + panelStyle.Render(m.resultsView())
	}

	return boardTitleStyle.Render(centerText(title, m.width)) + "\n\n" +
		body + "\n" +
		dimStyle.Render(m.help.View(m.keys))
}

// puzzlePanel lists every puzzle with its win record and details the
// selected one.
func (m ScoreboardModel) puzzlePanel() string {
	var b strings.Builder
	for i, p := range m.puzzles {
		name := truncateRunes(p.Title, statsPanelWidth-10)
		record := dimStyle.Render("-")
		if st := m.stats[p.ID]; st != nil && st.Played > 0 {
			record = fmt.Sprintf("%s/%s", wonStyle.Render(fmt.Sprint(st.Won)), lostStyle.Render(fmt.Sprint(st.Lost)))
		}
		line := fmt.Sprintf("  %-*s %s", statsPanelWidth-10, name, record)
		if i == m.current {
			line = activeStyle.Render(">") + line[1:]
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	st := m.stats[m.selectedID()]
	b.WriteByte('\n')
	if st == nil || st.Played == 0 {
		b.WriteString(dimStyle.Render("Not played yet"))
		return b.String()
	}
	fmt.Fprintf(&b, "Played  %d\n", st.Played)
	fmt.Fprintf(&b, "Won     %d (%d%%)\n", st.Won, st.Won*100/st.Played)
	fmt.Fprintf(&b, "Best    %d\n", st.BestScore)
	fmt.Fprintf(&b, "Average %.1f\n", st.AvgScore)
	fmt.Fprintf(&b, "Last    %s", st.LastPlayed.Local().Format("Jan 02 15:04"))
	return b.String()
}

func (m ScoreboardModel) resultsView() string {
	if len(m.results) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No games recorded yet.\nFinish a puzzle to see it here.")
	}
	return m.table.View()
}

// recordLine summarises one puzzle's history on a single line.
func recordLine(st *storage.PuzzleStats) string {
	if st == nil || st.Played == 0 {
		return "not played yet"
	}
	return fmt.Sprintf("played %d  won %d  lost %d  best %d  avg %.1f",
		st.Played, st.Won, st.Lost, st.BestScore, st.AvgScore)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
