package wordgrid

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/wordgrid/internal/core"
	"github.com/vovakirdan/wordgrid/internal/games/wordgrid/engine"
)

const (
	tileWidth  = 5 // Width of each tile box
	tileHeight = 3 // Height of each tile box
	hudHeight  = 3 // Title, score and a blank line above the board
	footHeight = 4 // Message, found words, status and help below the board
	minWidth   = 46
)

const helpLine = "←↑↓→ move  space pick  ⌫ undo  enter submit  r restart"

// minSize returns the smallest screen the puzzle can be drawn on.
func (g *Game) minSize() (w, h int) {
	boardW := g.puzzle.Board.Columns * tileWidth
	boardH := g.puzzle.Board.Rows * tileHeight
	return max(boardW+2, minWidth), hudHeight + boardH + footHeight
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.session.Snapshot()

	boardW := snap.Columns * tileWidth
	boardH := snap.Rows * tileHeight
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst, snap)
	g.renderBoard(dst, snap, boardX, boardY)
	g.renderFooter(dst, snap, boardY+boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)

	minW, minH := g.minSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", minW, minH), core.ColorGray)
}

// renderHUD draws the title and the score.
func (g *Game) renderHUD(dst *core.Screen, snap engine.Snapshot) {
	dst.DrawTextCentered(0, g.puzzle.Title, core.ColorBrightWhite)

	score := fmt.Sprintf("Score: %d of %d", snap.Score, snap.MaxScore)
	rule := fmt.Sprintf("Min %d letters", snap.MinWordLength)
	left := (g.screenW - minWidth) / 2
	dst.DrawTextColored(left, 1, score, core.ColorCyan)
	dst.DrawTextColored(left+minWidth-utf8.RuneCountInString(rule), 1, rule, core.ColorGray)
}

// renderBoard draws one box per tile, colored by its status.
func (g *Game) renderBoard(dst *core.Screen, snap engine.Snapshot, boardX, boardY int) {
	playable := !snap.Status.Terminal() && !snap.ResetPending

	for _, t := range snap.Tiles {
		col, row := int(t.ID)%snap.Columns, int(t.ID)/snap.Columns
		x := boardX + col*tileWidth
		y := boardY + row*tileHeight

		letterColor, boxColor := tileColors(t.Status)
		if playable && t.ID == g.cursor {
			boxColor = core.ColorYellow
		}

		dst.DrawBox(core.NewRect(x, y, tileWidth, tileHeight), boxColor)
		lx := x + (tileWidth-utf8.RuneCountInString(t.Letter))/2
		dst.DrawTextColored(lx, y+1, t.Letter, letterColor)
	}
}

func tileColors(s engine.TileStatus) (letter, box core.Color) {
	switch s {
	case engine.TileSelectedLast:
		return core.ColorBrightGreen, core.ColorGreen
	case engine.TileSelected:
		return core.ColorGreen, core.ColorGreen
	case engine.TileEligible:
		return core.ColorBrightWhite, core.ColorGray
	default:
		return core.ColorGray, core.ColorGray
	}
}

// renderFooter draws the word or last message, the found words, the game
// result and, at the end of a game, the share text.
func (g *Game) renderFooter(dst *core.Screen, snap engine.Snapshot, y int) {
	text, color := g.messageLine(snap)
	dst.DrawTextCentered(y, text, color)

	found := "Found: -"
	if len(snap.Solved) > 0 {
		found = "Found: " + strings.Join(snap.Solved, ", ")
	}
	dst.DrawTextCentered(y+1, truncate(found, g.screenW), core.ColorDefault)

	switch snap.Status {
	case engine.StatusWon:
		dst.DrawTextCentered(y+2, "You found every word! Play again? [enter]", core.ColorBrightGreen)
	case engine.StatusLost:
		dst.DrawTextCentered(y+2, "Game over. Play again? [enter]", core.ColorRed)
	}

	if snap.Status.Terminal() {
		share := strings.Split(ShareText(snap, g.puzzle.Domain, g.puzzle.ID), "\n")
		top := y + 4
		if top+len(share) < g.screenH-1 {
			for i, line := range share {
				dst.DrawTextCentered(top+i, line, core.ColorGray)
			}
		}
	}

	dst.DrawTextCentered(g.screenH-1, truncate(helpLine, g.screenW), core.ColorGray)
}

func (g *Game) messageLine(snap engine.Snapshot) (string, core.Color) {
	switch {
	case snap.LastResult != nil:
		switch snap.LastResult.Outcome {
		case engine.OutcomeValid:
			return snap.LastResult.Message, core.ColorBrightGreen
		case engine.OutcomeDuplicate:
			return snap.LastResult.Message, core.ColorOrange
		default:
			return snap.LastResult.Message, core.ColorRed
		}
	case g.notice != "":
		return g.notice, core.ColorYellow
	case snap.Word != "":
		return "Word: " + snap.Word, core.ColorBrightWhite
	default:
		return "Select letters to build a word", core.ColorGray
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 1 {
		return ""
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
