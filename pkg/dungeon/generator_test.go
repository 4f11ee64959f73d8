package dungeon

import (
	"math/rand"
	"os"
	"testing"

	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func countForeground(w *domain.World, tile enums.ForegroundTile) int {
	n := 0
	for _, id := range w.EntityIDs() {
		if e, ok := w.Entity(id); ok && e.Foreground == tile {
			n++
		}
	}
	return n
}

func TestGenerate(t *testing.T) {
	for _, seed := range []int64{1, 2, 42, 1337} {
		level := Generate(1, MapWidth, MapHeight, rand.New(rand.NewSource(seed)))

		// 1. Размеры
		assert.Equal(t, domain.Size{Width: MapWidth, Height: MapHeight}, level.Size)

		// 2. Мир собирается, игрок стоит на старте
		w, err := BuildWorld(level, CreatePlayer())
		require.NoError(t, err, "seed %d", seed)
		require.NotNil(t, w.Player())
		assert.Equal(t, level.Start, w.Player().Coord)

		// 3. Старт не в стене
		assert.False(t, w.IsSolid(level.Start), "seed %d: start %s is solid", seed, level.Start)

		// 4. Выход есть
		assert.Equal(t, 1, countForeground(w, enums.ForegroundStairs), "seed %d", seed)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(2, MapWidth, MapHeight, rand.New(rand.NewSource(7)))
	b := Generate(2, MapWidth, MapHeight, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestLevelBuilder_SpawnEnemy(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	level := NewLevel(1, rng).WithRooms(MaxRooms).SpawnEnemy("demon", 4).SpawnEnemy("dragon", 2).Build()

	w, err := BuildWorld(level, CreatePlayer())
	require.NoError(t, err)

	// Неизвестный шаблон пропускается, клетки не дублируются
	assert.LessOrEqual(t, countForeground(w, enums.ForegroundDemon), 4)
	assert.Len(t, w.NPCIDs(), countForeground(w, enums.ForegroundDemon))
}

func TestLevelBuilder_TreesAvoidStart(t *testing.T) {
	// Порог ниже любого значения шума: деревья на каждой клетке пола
	level := NewLevel(1, rand.New(rand.NewSource(5))).WithRooms(MaxRooms).ScatterTrees(-10).Build()

	w, err := BuildWorld(level, CreatePlayer())
	require.NoError(t, err)
	assert.False(t, w.HasForeground(level.Start, enums.ForegroundTree))
	assert.Positive(t, countForeground(w, enums.ForegroundTree))
}

func TestLevelBuilder_FreezeWallsKeepsInterior(t *testing.T) {
	level := NewLevel(1, rand.New(rand.NewSource(9))).WithRooms(MaxRooms).FreezeWalls(-10).Build()

	w, err := BuildWorld(level, CreatePlayer())
	require.NoError(t, err)

	// Лёд появляется только на стенах, граничащих с полом
	size := w.Size()
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			c := domain.Coord{X: x, Y: y}
			cell, _ := w.Cell(c)
			if cell.Background != enums.BackgroundIceWall {
				continue
			}
			open := false
			for _, d := range domain.CardinalDirections {
				if n, ok := w.Cell(c.Add(d.Coord())); ok && !n.Background.IsSolid() {
					open = true
				}
			}
			assert.True(t, open, "ice at %s is not next to floor", c)
		}
	}
}

func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10} // Пересекается
	r3 := Rect{20, 20, 5, 5} // Не пересекается

	assert.True(t, r1.Intersects(r2))
	assert.False(t, r1.Intersects(r3))
	assert.Equal(t, domain.Coord{X: 5, Y: 5}, r1.Center())
}

func TestParseTerrain(t *testing.T) {
	tests := []struct {
		name    string
		rows    []string
		wantErr error
	}{
		{name: "Valid", rows: []string{"#####", "#@,&#", "#d~>#", "#1F.#", "#####"}},
		{name: "Empty", rows: nil, wantErr: ErrEmptyTerrain},
		{name: "Ragged", rows: []string{"@..", ".."}, wantErr: ErrRaggedTerrain},
		{name: "No player", rows: []string{"..."}, wantErr: ErrNoPlayerMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseTerrain(tt.rows)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.Coord{X: 1, Y: 1}, level.Start)

			w, err := BuildWorld(level, CreatePlayer())
			require.NoError(t, err)

			cell, _ := w.Cell(domain.Coord{X: 2, Y: 1})
			assert.Equal(t, enums.BackgroundGround, cell.Background)
			cell, _ = w.Cell(domain.Coord{X: 3, Y: 1})
			assert.Equal(t, enums.BackgroundGround, cell.Background)
			assert.True(t, w.HasForeground(domain.Coord{X: 3, Y: 1}, enums.ForegroundTree))
			cell, _ = w.Cell(domain.Coord{X: 2, Y: 2})
			assert.Equal(t, enums.BackgroundIceWall, cell.Background)

			assert.True(t, w.ContainsNPC(domain.Coord{X: 1, Y: 2}))
			assert.True(t, w.HasForeground(domain.Coord{X: 3, Y: 2}, enums.ForegroundStairs))
			assert.True(t, w.HasForeground(domain.Coord{X: 1, Y: 3}, enums.ForegroundLamp))
			assert.True(t, w.HasForeground(domain.Coord{X: 2, Y: 3}, enums.ForegroundFountain))
		})
	}

	t.Run("Unknown symbol", func(t *testing.T) {
		_, err := ParseTerrain([]string{"@?"})
		assert.Error(t, err)
	})
}
