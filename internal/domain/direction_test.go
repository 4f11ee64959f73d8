package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardinalDirection(t *testing.T) {
	tests := []struct {
		dir      CardinalDirection
		offset   Coord
		opposite CardinalDirection
		general  Direction
	}{
		{CardinalNorth, Coord{0, -1}, CardinalSouth, North},
		{CardinalEast, Coord{1, 0}, CardinalWest, East},
		{CardinalSouth, Coord{0, 1}, CardinalNorth, South},
		{CardinalWest, Coord{-1, 0}, CardinalEast, West},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			assert.Equal(t, tt.offset, tt.dir.Coord())
			assert.Equal(t, tt.opposite, tt.dir.Opposite())
			assert.Equal(t, tt.general, tt.dir.Direction())

			back, ok := CardinalFromCoord(tt.offset)
			assert.True(t, ok)
			assert.Equal(t, tt.dir, back)
		})
	}

	_, ok := CardinalFromCoord(Coord{1, 1})
	assert.False(t, ok)
}

func TestCardinalDirections_TieBreakOrder(t *testing.T) {
	assert.Equal(t, [...]CardinalDirection{CardinalNorth, CardinalEast, CardinalSouth, CardinalWest}, CardinalDirections)
}

func TestParseCardinalDirection(t *testing.T) {
	d, ok := ParseCardinalDirection("up")
	assert.True(t, ok)
	assert.Equal(t, CardinalNorth, d)

	d, ok = ParseCardinalDirection("West")
	assert.True(t, ok)
	assert.Equal(t, CardinalWest, d)

	_, ok = ParseCardinalDirection("sideways")
	assert.False(t, ok)
}

func TestDirectionBitmap(t *testing.T) {
	b := DirectionBitmapEmpty.With(North).With(SouthWest)
	assert.True(t, b.Has(North))
	assert.True(t, b.Has(SouthWest))
	assert.False(t, b.Has(East))
	assert.Equal(t, "{N,SW}", b.String())

	assert.True(t, b.Intersects(North.Bit()))
	assert.False(t, b.Intersects(South.Bit()|East.Bit()))
	assert.True(t, DirectionBitmapAll.Intersects(b))
	assert.True(t, DirectionBitmapEmpty.IsEmpty())
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, NorthWest, SouthEast.Opposite())
}

func TestCoord(t *testing.T) {
	size := Size{Width: 5, Height: 4}
	assert.True(t, Coord{0, 0}.IsValid(size))
	assert.True(t, Coord{4, 3}.IsValid(size))
	assert.False(t, Coord{5, 0}.IsValid(size))
	assert.False(t, Coord{0, -1}.IsValid(size))

	a, b := Coord{1, 2}, Coord{4, -2}
	assert.Equal(t, 7, a.ManhattanDistance(b))
	assert.Equal(t, 25, a.DistanceSquaredTo(b))
	assert.Equal(t, Coord{5, 0}, a.Add(b))
	assert.True(t, a.IsAdjacent(Coord{2, 3}))
	assert.False(t, a.IsAdjacent(a))
}

func TestGrid(t *testing.T) {
	g := NewGrid(Size{Width: 3, Height: 2}, 7)
	v, ok := g.Get(Coord{2, 1})
	assert.True(t, ok)
	assert.Equal(t, 7, *v)
	*v = 9
	assert.Equal(t, 9, g.Cells[5])
	assert.Equal(t, Coord{2, 1}, g.CoordOf(5))

	_, ok = g.Get(Coord{3, 0})
	assert.False(t, ok)
}
