// Package engine implements the word-grid puzzle rules: tile geometry, the
// selected path, word validation and the session state machine.
// It has no terminal or storage dependencies so it can be driven by any front end.
package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors returned while building a grid.
var (
	ErrInvalidDimensions = errors.New("engine: columns and rows must be at least 1")
	ErrTooFewLetters     = errors.New("engine: not enough letters for the grid")
	ErrEmptyLetter       = errors.New("engine: tile letter is empty")
)

// TileID is the row-major index of a tile on the grid.
type TileID int

// Tile is one letter cell. Tiles never change after the grid is built.
type Tile struct {
	ID     TileID
	Letter string
}

// Grid is the static board layout.
type Grid struct {
	columns int
	rows    int
	tiles   []Tile
}

// NewGrid builds a columns x rows grid from the first columns*rows letters.
// Letters beyond that are ignored; fewer is an error.
func NewGrid(columns, rows int, letters []string) (*Grid, error) {
	if columns < 1 || rows < 1 {
		return nil, fmt.Errorf("%w (got %dx%d)", ErrInvalidDimensions, columns, rows)
	}

	size := columns * rows
	if len(letters) < size {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrTooFewLetters, len(letters), size)
	}

	tiles := make([]Tile, size)
	for i, letter := range letters[:size] {
		if strings.TrimSpace(letter) == "" {
			return nil, fmt.Errorf("%w at index %d", ErrEmptyLetter, i)
		}
		tiles[i] = Tile{ID: TileID(i), Letter: letter}
	}

	return &Grid{columns: columns, rows: rows, tiles: tiles}, nil
}

// AreAdjacent reports whether two tiles on a grid with the given column count
// are orthogonal neighbours. Horizontal steps never wrap across a row boundary
// and diagonals are not adjacent. Bounds are the caller's concern.
func AreAdjacent(columns int, a, b TileID) bool {
	if columns < 1 {
		return false
	}
	c := TileID(columns)
	switch {
	case a == b-c, a == b+c:
		return true
	case a == b-1:
		return b%c != 0
	case a == b+1:
		return a%c != 0
	}
	return false
}

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.columns }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Size returns the number of tiles.
func (g *Grid) Size() int { return len(g.tiles) }

// Contains reports whether id is a tile on this grid.
func (g *Grid) Contains(id TileID) bool {
	return id >= 0 && int(id) < len(g.tiles)
}

// Tile returns the tile with the given id.
func (g *Grid) Tile(id TileID) (Tile, bool) {
	if !g.Contains(id) {
		return Tile{}, false
	}
	return g.tiles[id], true
}

// Tiles returns a copy of all tiles in row-major order.
func (g *Grid) Tiles() []Tile {
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// Letters returns the tile letters in row-major order.
func (g *Grid) Letters() []string {
	out := make([]string, len(g.tiles))
	for i, t := range g.tiles {
		out[i] = t.Letter
	}
	return out
}

// AreAdjacent reports whether a and b are both on the grid and adjacent.
func (g *Grid) AreAdjacent(a, b TileID) bool {
	return g.Contains(a) && g.Contains(b) && AreAdjacent(g.columns, a, b)
}

// Neighbors returns the on-grid neighbours of id in ascending order.
func (g *Grid) Neighbors(id TileID) []TileID {
	if !g.Contains(id) {
		return nil
	}
	c := TileID(g.columns)
	candidates := [4]TileID{id - c, id - 1, id + 1, id + c}

	out := make([]TileID, 0, 4)
	for _, n := range candidates {
		if g.AreAdjacent(id, n) {
			out = append(out, n)
		}
	}
	return out
}

// Position converts a tile id to its column and row.
func (g *Grid) Position(id TileID) (col, row int) {
	return int(id) % g.columns, int(id) / g.columns
}

// At returns the id of the tile at column col and row row.
func (g *Grid) At(col, row int) (TileID, bool) {
	if col < 0 || col >= g.columns || row < 0 || row >= g.rows {
		return 0, false
	}
	return TileID(row*g.columns + col), true
}
