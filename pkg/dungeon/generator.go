package dungeon

import (
	"math/rand"

	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
)

// Константы генерации
const (
	MapWidth  = 40
	MapHeight = 25
	MaxRooms  = 8
	MinSize   = 4
	MaxSize   = 10
)

// Rect - Вспомогательная структура для комнаты
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() domain.Coord {
	return domain.Coord{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Level - описание уровня: инструкции для арены и стартовая клетка игрока.
type Level struct {
	Number       int
	Size         domain.Size
	Instructions []domain.Instruction
	Start        domain.Coord
}

// Generate создает стандартный уровень заданной глубины.
// С глубиной растёт число кастеров и лекарей.
func Generate(level int, width, height int, rng *rand.Rand) Level {
	return NewLevel(level, rng).
		WithSize(width, height).
		WithRooms(MaxRooms).
		FreezeWalls(0.2).
		ScatterTrees(0.3).
		SpawnEnemy("demon", 2+level).
		SpawnEnemy("caster", level).
		SpawnEnemy("healer", level/2).
		PlaceLamps(3).
		PlaceFountain().
		PlaceExit().
		Build()
}

// --- Вспомогательные функции ---

func carveRoom(tiles *domain.Grid[enums.BackgroundTile], room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			carve(tiles, domain.Coord{X: x, Y: y})
		}
	}
}

func carveHCorridor(tiles *domain.Grid[enums.BackgroundTile], x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		carve(tiles, domain.Coord{X: x, Y: y})
	}
}

func carveVCorridor(tiles *domain.Grid[enums.BackgroundTile], y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		carve(tiles, domain.Coord{X: x, Y: y})
	}
}

func carve(tiles *domain.Grid[enums.BackgroundTile], c domain.Coord) {
	if t, ok := tiles.Get(c); ok {
		*t = enums.BackgroundFloor
	}
}
