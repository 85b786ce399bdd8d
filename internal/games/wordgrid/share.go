package wordgrid

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/wordgrid/internal/config"
	"github.com/vovakirdan/wordgrid/internal/games/wordgrid/engine"
)

// ShareText formats a game for sharing: the score when the game has ended,
// the board one row per line with letters joined by "-", and the puzzle
// address.
func ShareText(snap engine.Snapshot, domain, puzzleID string) string {
	letters := make([]string, len(snap.Tiles))
	for i, t := range snap.Tiles {
		letters[i] = t.Letter
	}

	header := ""
	if snap.Status.Terminal() {
		header = fmt.Sprintf("%d of %d", snap.Score, snap.MaxScore)
	}
	return formatShare(header, snap.Columns, snap.Rows, letters, domain, puzzleID)
}

// ShareResult formats a finished game of p that was stored earlier.
func ShareResult(p config.Puzzle, score, maxScore int) string {
	header := fmt.Sprintf("%d of %d", score, maxScore)
	return formatShare(header, p.Board.Columns, p.Board.Rows, p.Board.Letters, p.Domain, p.ID)
}

// ShareText formats the game's current state for sharing.
func (g *Game) ShareText() string {
	return ShareText(g.session.Snapshot(), g.puzzle.Domain, g.puzzle.ID)
}

func formatShare(header string, columns, rows int, letters []string, domain, puzzleID string) string {
	var sb strings.Builder

	if header != "" {
		sb.WriteString(header)
		sb.WriteString("\n\n")
	}

	for row := range rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(letters[row*columns:(row+1)*columns], "-"))
	}

	sb.WriteString("\n\n")
	if domain != "" {
		sb.WriteString(domain)
		sb.WriteByte('/')
	}
	sb.WriteString(puzzleID)
	return sb.String()
}
