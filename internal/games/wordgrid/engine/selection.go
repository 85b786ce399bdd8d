package engine

import (
	"errors"
	"strings"
)

// Errors returned by Selection.Toggle. The selection is unchanged when any of
// them is returned.
var (
	ErrUnknownTile = errors.New("engine: tile is not on the grid")
	ErrNotAdjacent = errors.New("engine: tile is not adjacent to the end of the path")
	ErrNotPathEnd  = errors.New("engine: only the end of the path can be deselected")
)

// TileStatus is the derived per-tile state exposed to presentation layers.
type TileStatus int

const (
	// TileEligible tiles can be appended to the path.
	TileEligible TileStatus = iota
	// TileSelected tiles are on the path but not its end.
	TileSelected
	// TileSelectedLast is the end of the path, the only removable tile.
	TileSelectedLast
	// TileDisabled tiles are neither selected nor reachable from the path end.
	TileDisabled
)

// String returns the status name.
func (s TileStatus) String() string {
	switch s {
	case TileEligible:
		return "eligible"
	case TileSelected:
		return "selected"
	case TileSelectedLast:
		return "selected-last"
	case TileDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Selection is the ordered path of chosen tiles. Every tile after the first
// is adjacent to the one before it and no tile appears twice.
type Selection struct {
	grid   *Grid
	path   []TileID
	member map[TileID]bool
}

// NewSelection creates an empty selection on the given grid.
func NewSelection(grid *Grid) *Selection {
	return &Selection{
		grid:   grid,
		member: make(map[TileID]bool),
	}
}

// Toggle removes id if it is the end of the path, otherwise appends it.
// Appending requires id to be adjacent to the current end; removing a tile in
// the middle of the path is refused so the path always stays connected.
func (s *Selection) Toggle(id TileID) error {
	if !s.grid.Contains(id) {
		return ErrUnknownTile
	}

	if s.member[id] {
		if last, _ := s.Last(); last != id {
			return ErrNotPathEnd
		}
		s.Pop()
		return nil
	}

	if last, ok := s.Last(); ok && !s.grid.AreAdjacent(last, id) {
		return ErrNotAdjacent
	}

	s.path = append(s.path, id)
	s.member[id] = true
	return nil
}

// Pop removes the end of the path and returns it.
func (s *Selection) Pop() (TileID, bool) {
	last, ok := s.Last()
	if !ok {
		return 0, false
	}
	s.path = s.path[:len(s.path)-1]
	delete(s.member, last)
	return last, true
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.path = s.path[:0]
	clear(s.member)
}

// Last returns the end of the path.
func (s *Selection) Last() (TileID, bool) {
	if len(s.path) == 0 {
		return 0, false
	}
	return s.path[len(s.path)-1], true
}

// Contains reports whether id is on the path.
func (s *Selection) Contains(id TileID) bool {
	return s.member[id]
}

// Len returns the number of selected tiles.
func (s *Selection) Len() int {
	return len(s.path)
}

// Path returns a copy of the selected tile ids in path order.
func (s *Selection) Path() []TileID {
	out := make([]TileID, len(s.path))
	copy(out, s.path)
	return out
}

// Word concatenates the letters of the selected tiles in path order.
func (s *Selection) Word() string {
	var sb strings.Builder
	for _, id := range s.path {
		t, _ := s.grid.Tile(id)
		sb.WriteString(t.Letter)
	}
	return sb.String()
}

// Status derives the presentation status of a single tile.
func (s *Selection) Status(id TileID) TileStatus {
	last, hasLast := s.Last()
	switch {
	case s.member[id] && id == last:
		return TileSelectedLast
	case s.member[id]:
		return TileSelected
	case !hasLast:
		return TileEligible
	case s.grid.AreAdjacent(last, id):
		return TileEligible
	default:
		return TileDisabled
	}
}

// Statuses returns the status of every tile in row-major order.
func (s *Selection) Statuses() []TileStatus {
	out := make([]TileStatus, s.grid.Size())
	for i := range out {
		out[i] = s.Status(TileID(i))
	}
	return out
}

// Eligible returns the tiles that may be appended next, in ascending order.
func (s *Selection) Eligible() []TileID {
	var out []TileID
	for i := range s.grid.Size() {
		if s.Status(TileID(i)) == TileEligible {
			out = append(out, TileID(i))
		}
	}
	return out
}
