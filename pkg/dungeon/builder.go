package dungeon

import (
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// Параметры шума: alpha, beta, число октав и масштаб координат
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
	noiseScale   = 0.15
)

func (b *LevelBuilder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

// LevelBuilder предоставляет fluent API для создания уровней
type LevelBuilder struct {
	level    int
	width    int
	height   int
	rooms    []Rect
	tiles    *domain.Grid[enums.BackgroundTile]
	entities []domain.Instruction
	occupied mapset.Set[domain.Coord]
	rng      *rand.Rand
	noise    *perlin.Perlin
}

// NewLevel создает новый builder для уровня
func NewLevel(level int, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		level:    level,
		width:    MapWidth,
		height:   MapHeight,
		entities: make([]domain.Instruction, 0),
		occupied: mapset.New[domain.Coord](),
		rng:      rng,
		noise:    perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, rng.Int63()),
	}
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

// WithRooms генерирует комнаты и коридоры
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	// Инициализируем карту стенами
	b.tiles = domain.NewGrid(domain.Size{Width: b.width, Height: b.height}, enums.BackgroundWall)

	// Генерируем комнаты
	b.rooms = make([]Rect, 0, maxRooms)
	maxW := min(MaxSize, b.width-2)
	maxH := min(MaxSize, b.height-2)
	for i := 0; i < maxRooms; i++ {
		w := b.randRange(MinSize, maxW)
		h := b.randRange(MinSize, maxH)
		x := b.randRange(0, b.width-w-1)
		y := b.randRange(0, b.height-h-1)

		newRoom := Rect{X: x, Y: y, W: w, H: h}

		// Проверяем пересечения
		failed := false
		for _, other := range b.rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		carveRoom(b.tiles, newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.rooms) > 0 {
			prev := b.rooms[len(b.rooms)-1].Center()
			curr := newRoom.Center()

			if b.rng.Intn(2) == 0 {
				carveHCorridor(b.tiles, prev.X, curr.X, prev.Y)
				carveVCorridor(b.tiles, prev.Y, curr.Y, curr.X)
			} else {
				carveVCorridor(b.tiles, prev.Y, curr.Y, prev.X)
				carveHCorridor(b.tiles, prev.X, curr.X, curr.Y)
			}
		}
		b.rooms = append(b.rooms, newRoom)
	}

	// Все попытки неудачны: одна комната по центру
	if len(b.rooms) == 0 {
		room := Rect{X: (b.width - MinSize) / 2, Y: (b.height - MinSize) / 2, W: MinSize, H: MinSize}
		carveRoom(b.tiles, room)
		b.rooms = append(b.rooms, room)
	}

	b.occupied.Put(b.GetStartPos())
	return b
}

// FreezeWalls превращает часть стен, граничащих с полом, в лёд.
// Лёд так же непроходим, но пропускает половину света.
func (b *LevelBuilder) FreezeWalls(threshold float64) *LevelBuilder {
	if b.tiles == nil {
		return b
	}
	frozen := 0
	for i := range b.tiles.Cells {
		c := b.tiles.CoordOf(i)
		if b.tiles.Cells[i] != enums.BackgroundWall || !b.bordersFloor(c) {
			continue
		}
		// Сдвиг, чтобы лёд не повторял рисунок деревьев
		if b.noiseAt(c.X+1000, c.Y) > threshold {
			b.tiles.Cells[i] = enums.BackgroundIceWall
			frozen++
		}
	}
	b.log().WithField("ice_walls", frozen).Debug("Walls frozen.")
	return b
}

// ScatterTrees засаживает пол деревьями по шуму Перлина. Деревья не блокируют проход,
// но частично закрывают обзор.
func (b *LevelBuilder) ScatterTrees(threshold float64) *LevelBuilder {
	if b.tiles == nil {
		return b
	}
	planted := 0
	for i := range b.tiles.Cells {
		c := b.tiles.CoordOf(i)
		if b.tiles.Cells[i] != enums.BackgroundFloor || b.occupied.Has(c) {
			continue
		}
		if b.noiseAt(c.X, c.Y) > threshold {
			b.tiles.Cells[i] = enums.BackgroundGround
			b.place(c, domain.PackedTree())
			planted++
		}
	}
	b.log().WithField("trees", planted).Debug("Trees scattered.")
	return b
}

// SpawnEnemy спавнит врага из шаблона
func (b *LevelBuilder) SpawnEnemy(templateName string, count int) *LevelBuilder {
	template, ok := EnemyTemplates[templateName]
	if !ok {
		b.log().WithField("template", templateName).Warn("Unknown enemy template.")
		return b
	}

	// Спавним в случайных комнатах (кроме первой)
	for i := 0; i < count && len(b.rooms) > 1; i++ {
		room := b.rooms[b.rng.Intn(len(b.rooms)-1)+1]
		if c, ok := b.freeCell(room); ok {
			b.place(c, template())
		}
	}
	return b
}

// PlaceLamps расставляет лампы случайных цветов
func (b *LevelBuilder) PlaceLamps(count int) *LevelBuilder {
	for i := 0; i < count && len(b.rooms) > 0; i++ {
		room := b.rooms[b.rng.Intn(len(b.rooms))]
		if c, ok := b.freeCell(room); ok {
			b.place(c, domain.PackedLamp(LampColours[b.rng.Intn(len(LampColours))]))
		}
	}
	return b
}

// PlaceFountain ставит фонтан в случайную комнату
func (b *LevelBuilder) PlaceFountain() *LevelBuilder {
	if len(b.rooms) == 0 {
		return b
	}
	room := b.rooms[b.rng.Intn(len(b.rooms))]
	if c, ok := b.freeCell(room); ok {
		b.place(c, domain.PackedFountain())
	}
	return b
}

// PlaceExit размещает лестницу вниз в последней комнате
func (b *LevelBuilder) PlaceExit() *LevelBuilder {
	if len(b.rooms) == 0 {
		return b
	}
	room := b.rooms[len(b.rooms)-1]
	c := room.Center()
	if b.occupied.Has(c) {
		var ok bool
		if c, ok = b.freeCell(room); !ok {
			return b
		}
	}
	b.place(c, domain.PackedStairs())
	return b
}

// GetStartPos возвращает стартовую позицию (центр первой комнаты)
func (b *LevelBuilder) GetStartPos() domain.Coord {
	if len(b.rooms) > 0 {
		return b.rooms[0].Center()
	}
	return domain.Coord{X: b.width / 2, Y: b.height / 2}
}

// Build собирает описание уровня. Пол - покрытие по умолчанию, поэтому для него инструкций нет.
func (b *LevelBuilder) Build() Level {
	if b.tiles == nil {
		b.WithRooms(MaxRooms)
	}
	lvl := Level{
		Number: b.level,
		Size:   b.tiles.Size(),
		Start:  b.GetStartPos(),
	}
	for i, tile := range b.tiles.Cells {
		if tile != enums.BackgroundFloor {
			lvl.Instructions = append(lvl.Instructions, domain.SetBackgroundAt(b.tiles.CoordOf(i), tile))
		}
	}
	lvl.Instructions = append(lvl.Instructions, b.entities...)

	b.log().WithFields(logrus.Fields{
		"rooms":    len(b.rooms),
		"entities": len(b.entities),
		"start":    lvl.Start,
	}).Info("Level built.")
	return lvl
}

// --- Helper functions ---

func (b *LevelBuilder) place(c domain.Coord, packed domain.PackedEntity) {
	b.entities = append(b.entities, domain.AddEntityAt(c, packed))
	b.occupied.Put(c)
}

// freeCell ищет пустую клетку пола внутри комнаты (макс 20 попыток)
func (b *LevelBuilder) freeCell(room Rect) (domain.Coord, bool) {
	for attempt := 0; attempt < 20; attempt++ {
		c := domain.Coord{
			X: room.X + 1 + b.rng.Intn(room.W-1),
			Y: room.Y + 1 + b.rng.Intn(room.H-1),
		}
		tile, ok := b.tiles.Get(c)
		if ok && *tile == enums.BackgroundFloor && !b.occupied.Has(c) {
			return c, true
		}
	}
	return domain.Coord{}, false
}

func (b *LevelBuilder) bordersFloor(c domain.Coord) bool {
	for _, d := range domain.CardinalDirections {
		if tile, ok := b.tiles.Get(c.Add(d.Coord())); ok && !tile.IsSolid() {
			return true
		}
	}
	return false
}

func (b *LevelBuilder) noiseAt(x, y int) float64 {
	return b.noise.Noise2D(float64(x)*noiseScale, float64(y)*noiseScale)
}

func (b *LevelBuilder) log() *logrus.Entry {
	return logger.For("dungeon").WithField("level", b.level)
}
