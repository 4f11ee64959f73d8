package systems

import (
	"testing"

	"github.com/gridbugs/gws/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceField_Update(t *testing.T) {
	w := createTestWorld(t,
		"@..#.",
		"...#d",
		"...#.",
	)
	f := NewDistanceField(w.Size())

	// До первого пересчёта всё недостижимо
	assert.Equal(t, Unreachable, f.Distance(domain.Coord{X: 0, Y: 0}))
	_, ok := f.Target()
	assert.False(t, ok)

	require.True(t, f.Update(domain.Coord{X: 0, Y: 0}, w))

	tests := []struct {
		coord domain.Coord
		want  uint32
	}{
		{domain.Coord{X: 0, Y: 0}, 0},
		{domain.Coord{X: 1, Y: 0}, 1},
		{domain.Coord{X: 1, Y: 1}, 2},
		{domain.Coord{X: 2, Y: 2}, 4},
		{domain.Coord{X: 3, Y: 0}, Unreachable}, // стена
		{domain.Coord{X: 4, Y: 1}, Unreachable}, // отрезано стеной
		{domain.Coord{X: -1, Y: 0}, Unreachable},
	}
	for _, tt := range tests {
		t.Run(tt.coord.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, f.Distance(tt.coord))
		})
	}
}

func TestDistanceField_BestDirection(t *testing.T) {
	w := createTestWorld(t,
		"@..",
		"...",
		"...",
	)
	f := NewDistanceField(w.Size())
	require.True(t, f.Update(domain.Coord{X: 0, Y: 0}, w))

	// Из (1,1) подходят и север, и запад; север идёт первым
	dir, ok := f.BestDirection(domain.Coord{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, domain.CardinalNorth, dir)

	dir, ok = f.BestDirection(domain.Coord{X: 2, Y: 0})
	require.True(t, ok)
	assert.Equal(t, domain.CardinalWest, dir)

	_, ok = f.BestDirection(domain.Coord{X: 0, Y: 0})
	assert.False(t, ok, "target has no descent")

	// Каждый сосед из Best ровно на единицу ближе
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			c := domain.Coord{X: x, Y: y}
			cell, _ := f.grid.Get(c)
			for _, d := range domain.CardinalDirections {
				if cell.Best.Has(d.Direction()) {
					assert.Equal(t, cell.Distance-1, f.Distance(c.Add(d.Coord())), "cell %s dir %s", c, d)
				}
			}
		}
	}
}

func TestDistanceField_InvalidTargetKeepsField(t *testing.T) {
	w := createTestWorld(t,
		"@..",
		"...",
	)
	f := NewDistanceField(w.Size())
	require.True(t, f.Update(domain.Coord{X: 0, Y: 0}, w))

	assert.False(t, f.Update(domain.Coord{X: 10, Y: 10}, w))
	target, ok := f.Target()
	assert.True(t, ok)
	assert.Equal(t, domain.Coord{X: 0, Y: 0}, target)
	assert.Equal(t, uint32(3), f.Distance(domain.Coord{X: 2, Y: 1}))
}
