package systems

import (
	"testing"

	"github.com/gridbugs/gws/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, src OpacitySource, origin domain.Coord, rng RangePredicate) map[domain.Coord]VisibleCell {
	t.Helper()
	out := make(map[domain.Coord]VisibleCell)
	for vc := range Sweep(src, origin, rng, 255) {
		_, dup := out[vc.Coord]
		require.False(t, dup, "cell %s reported twice", vc.Coord)
		out[vc.Coord] = vc
	}
	return out
}

func TestSweep_OpenRoom(t *testing.T) {
	w := createTestWorld(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		".......",
		".......",
	)
	origin := domain.Coord{X: 3, Y: 3}
	cells := collect(t, w, origin, CircleSquared(100))

	assert.Len(t, cells, 49)
	center := cells[origin]
	assert.Equal(t, domain.DirectionBitmapAll, center.Directions)
	assert.Equal(t, uint8(255), center.Visibility)
	for _, vc := range cells {
		assert.Equal(t, uint8(255), vc.Visibility, "open cell %s", vc.Coord)
		assert.Equal(t, domain.DirectionBitmapAll, vc.Directions, "transparent cell %s", vc.Coord)
	}
}

func TestSweep_Range(t *testing.T) {
	w := createTestWorld(t,
		".......",
		".......",
		".......",
		".......",
		".......",
		".......",
		".......",
	)
	origin := domain.Coord{X: 3, Y: 3}

	assert.Len(t, collect(t, w, origin, Exact(1)), 9)

	circle := collect(t, w, origin, CircleSquared(4))
	for c := range circle {
		assert.LessOrEqual(t, c.DistanceSquaredTo(origin), 4)
	}
	assert.Contains(t, circle, domain.Coord{X: 3, Y: 1})
	assert.NotContains(t, circle, domain.Coord{X: 5, Y: 5})

	assert.Len(t, collect(t, w, origin, CircleSquared(0)), 1, "origin is always visible")
}

func TestSweep_WallBlocks(t *testing.T) {
	w := createTestWorld(t,
		".....",
		".....",
		"..#..",
		".....",
		".....",
	)
	origin := domain.Coord{X: 2, Y: 4}
	cells := collect(t, w, origin, CircleSquared(100))

	wall, ok := cells[domain.Coord{X: 2, Y: 2}]
	require.True(t, ok, "wall itself is visible")
	assert.Equal(t, domain.South.Bit(), wall.Directions, "only the face towards the viewer")

	assert.NotContains(t, cells, domain.Coord{X: 2, Y: 1})
	assert.NotContains(t, cells, domain.Coord{X: 2, Y: 0})
	assert.Contains(t, cells, domain.Coord{X: 0, Y: 0})
}

func TestSweep_MirroredOctants(t *testing.T) {
	w := createTestWorld(t,
		".........",
		".........",
		".........",
		"..#...#..",
		".........",
		"....~....",
		".........",
		".........",
	)
	origin := domain.Coord{X: 4, Y: 6}
	cells := collect(t, w, origin, CircleSquared(100))

	assert.Contains(t, cells, domain.Coord{X: 2, Y: 3})
	assert.Contains(t, cells, domain.Coord{X: 6, Y: 3})
	assert.Less(t, len(cells), 72, "walls must hide something")

	// Раскладка зеркальна относительно x = 4, значит и видимость тоже.
	// Клетки на границах октантов выдаются первым октантом, поэтому их значение не сравниваем.
	for c, vc := range cells {
		mirror := domain.Coord{X: 8 - c.X, Y: c.Y}
		other, ok := cells[mirror]
		require.True(t, ok, "%s is visible but its mirror %s is not", c, mirror)
		d := c.Sub(origin)
		if abs(d.X) == abs(d.Y) || d.Y == 0 {
			continue
		}
		assert.Equal(t, vc.Visibility, other.Visibility, "cell %s", c)
	}
}

func TestSweep_PartialOpacityAccumulates(t *testing.T) {
	w := createTestWorld(t, "..~..")
	cells := collect(t, w, domain.Coord{X: 0, Y: 0}, CircleSquared(100))

	assert.Equal(t, uint8(255), cells[domain.Coord{X: 2, Y: 0}].Visibility)
	assert.Equal(t, uint8(127), cells[domain.Coord{X: 3, Y: 0}].Visibility)
	assert.Equal(t, uint8(127), cells[domain.Coord{X: 4, Y: 0}].Visibility)

	// Две ледяные стены подряд дают 256 -> насыщение, дальше не видно
	w = createTestWorld(t, ".~~..")
	cells = collect(t, w, domain.Coord{X: 0, Y: 0}, CircleSquared(100))
	assert.Contains(t, cells, domain.Coord{X: 2, Y: 0})
	assert.NotContains(t, cells, domain.Coord{X: 3, Y: 0})
}

func TestSweep_IsLazy(t *testing.T) {
	w := createTestWorld(t,
		".....",
		".....",
		".....",
	)
	n := 0
	for range Sweep(w, domain.Coord{X: 2, Y: 1}, CircleSquared(100), 255) {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)

	// Источник вне сетки - пустая последовательность
	for range Sweep(w, domain.Coord{X: -1, Y: 0}, CircleSquared(100), 255) {
		t.Fatal("no cells expected for an out-of-bounds origin")
	}
}

func TestSweep_ContextReuse(t *testing.T) {
	w := createTestWorld(t,
		"....",
		"....",
	)
	var ctx ShadowcastContext
	for i := 0; i < 3; i++ {
		n := 0
		for range ctx.Sweep(w, domain.Coord{X: 0, Y: 0}, CircleSquared(100), 255) {
			n++
		}
		assert.Equal(t, 8, n, "pass %d", i)
	}
}

func TestFacingBitmap(t *testing.T) {
	tests := []struct {
		name  string
		delta domain.Coord
		want  domain.DirectionBitmap
	}{
		{"east of viewer", domain.Coord{X: 3, Y: 0}, domain.West.Bit()},
		{"north of viewer", domain.Coord{X: 0, Y: -2}, domain.South.Bit()},
		{"east-north-east", domain.Coord{X: 2, Y: -1}, domain.West.Bit() | domain.SouthWest.Bit()},
		{"diagonal", domain.Coord{X: -2, Y: 2}, domain.East.Bit() | domain.North.Bit() | domain.NorthEast.Bit()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, facingBitmap(tt.delta, 255))
		})
	}
	assert.Equal(t, domain.DirectionBitmapAll, facingBitmap(domain.Coord{X: 1, Y: 0}, 0))
}
