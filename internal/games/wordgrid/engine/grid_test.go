package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var classicLetters = []string{
	"A", "C", "E", "F",
	"M", "N", "R", "D",
	"C", "X", "U", "F",
	"I", "E", "N", "F",
}

func TestAreAdjacent(t *testing.T) {
	tests := []struct {
		name    string
		columns int
		a, b    TileID
		want    bool
	}{
		{"right neighbour", 4, 0, 1, true},
		{"left neighbour", 4, 2, 1, true},
		{"below", 4, 1, 5, true},
		{"above", 4, 5, 1, true},
		{"row wrap forward", 4, 3, 4, false},
		{"row wrap backward", 4, 4, 3, false},
		{"diagonal", 4, 0, 5, false},
		{"anti-diagonal", 4, 1, 4, false},
		{"same tile", 4, 5, 5, false},
		{"two apart", 4, 0, 2, false},
		{"single column vertical", 1, 2, 3, true},
		{"single row horizontal", 5, 3, 4, true},
		{"zero columns", 0, 0, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AreAdjacent(tc.columns, tc.a, tc.b))
		})
	}
}

func TestAreAdjacentSymmetricAndNoRowWrap(t *testing.T) {
	for _, columns := range []int{1, 2, 3, 4, 5, 7} {
		rows := 4
		size := TileID(columns * rows)
		for a := TileID(0); a < size; a++ {
			for b := TileID(0); b < size; b++ {
				ab := AreAdjacent(columns, a, b)
				require.Equal(t, ab, AreAdjacent(columns, b, a), "symmetry columns=%d a=%d b=%d", columns, a, b)

				if ab && int(a)/columns != int(b)/columns {
					// Different rows must be a pure vertical step.
					require.Equal(t, int(a)%columns, int(b)%columns, "row wrap columns=%d a=%d b=%d", columns, a, b)
				}
			}
		}
	}
}

func TestNewGrid(t *testing.T) {
	t.Run("truncates extra letters", func(t *testing.T) {
		g, err := NewGrid(2, 2, []string{"A", "B", "C", "D", "E", "F"})
		require.NoError(t, err)
		assert.Equal(t, 4, g.Size())
		assert.Equal(t, []string{"A", "B", "C", "D"}, g.Letters())
	})

	t.Run("too few letters", func(t *testing.T) {
		_, err := NewGrid(4, 4, []string{"A", "B"})
		require.ErrorIs(t, err, ErrTooFewLetters)
	})

	t.Run("bad dimensions", func(t *testing.T) {
		_, err := NewGrid(0, 3, classicLetters)
		require.ErrorIs(t, err, ErrInvalidDimensions)
	})

	t.Run("empty letter", func(t *testing.T) {
		_, err := NewGrid(2, 1, []string{"A", " "})
		require.ErrorIs(t, err, ErrEmptyLetter)
	})
}

func TestGridNeighbors(t *testing.T) {
	g, err := NewGrid(4, 4, classicLetters)
	require.NoError(t, err)

	assert.Equal(t, []TileID{1, 4}, g.Neighbors(0))
	assert.Equal(t, []TileID{1, 4, 6, 9}, g.Neighbors(5))
	assert.Equal(t, []TileID{3, 6, 11}, g.Neighbors(7))
	assert.Equal(t, []TileID{11, 14}, g.Neighbors(15))
	assert.Nil(t, g.Neighbors(16))

	assert.False(t, g.AreAdjacent(15, 16), "off-grid ids are never adjacent")
}

func TestGridPosition(t *testing.T) {
	g, err := NewGrid(4, 3, classicLetters)
	require.NoError(t, err)

	col, row := g.Position(6)
	assert.Equal(t, 2, col)
	assert.Equal(t, 1, row)

	id, ok := g.At(2, 1)
	require.True(t, ok)
	assert.Equal(t, TileID(6), id)

	_, ok = g.At(4, 0)
	assert.False(t, ok)
	_, ok = g.At(0, 3)
	assert.False(t, ok)

	tile, ok := g.Tile(6)
	require.True(t, ok)
	assert.Equal(t, "R", tile.Letter)
}
