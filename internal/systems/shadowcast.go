package systems

import (
	"iter"
	"math"

	"github.com/gridbugs/gws/internal/domain"
)

// OpacitySource - то, по чему считается видимость (обычно *domain.World).
type OpacitySource interface {
	Size() domain.Size
	Opacity(domain.Coord) uint8
}

// RangePredicate ограничивает дальность обзора.
type RangePredicate interface {
	Contains(delta domain.Coord) bool
	MaxDepth() int // Сколько рядов от центра нужно просканировать
}

// CircleSquared - круг, заданный квадратом радиуса.
type CircleSquared int

func (r CircleSquared) Contains(delta domain.Coord) bool {
	return delta.Magnitude2() <= int(r)
}

func (r CircleSquared) MaxDepth() int {
	if r <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(r))))
}

// Exact - квадрат Чебышёва радиуса n.
type Exact int

func (r Exact) Contains(delta domain.Coord) bool {
	return max(abs(delta.X), abs(delta.Y)) <= int(r)
}

func (r Exact) MaxDepth() int {
	return int(r)
}

// VisibleCell - одна видимая клетка.
type VisibleCell struct {
	Coord      domain.Coord
	Directions domain.DirectionBitmap // С каких сторон клетка видна
	Visibility uint8                  // 255 - накопленная непрозрачность перед клеткой
}

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// ShadowcastContext хранит рабочий буфер обхода.
// Буфер не сохраняется со снапшотом и пересоздаётся при смене размера сетки.
// Один контекст нельзя использовать для двух обходов одновременно.
type ShadowcastContext struct {
	stamps []uint64
	stamp  uint64
	size   domain.Size
}

// Sweep - обход с одноразовым контекстом.
func Sweep(src OpacitySource, origin domain.Coord, rng RangePredicate, threshold uint8) iter.Seq[VisibleCell] {
	return new(ShadowcastContext).Sweep(src, origin, rng, threshold)
}

// Sweep возвращает ленивую последовательность клеток, видимых из origin.
// Каждая клетка выдаётся не более одного раза. Центр виден всегда.
// Восемь октантов обходятся одним кодом, поэтому зеркальная раскладка даёт зеркальную
// видимость. Взаимность не гарантируется: из того, что A видит B, не следует, что B видит A.
// Клетка загораживает клетки за собой пропорционально своей непрозрачности (с насыщением);
// луч останавливается, когда накопленная непрозрачность достигает threshold.
func (s *ShadowcastContext) Sweep(src OpacitySource, origin domain.Coord, rng RangePredicate, threshold uint8) iter.Seq[VisibleCell] {
	return func(yield func(VisibleCell) bool) {
		size := src.Size()
		if !origin.IsValid(size) {
			return
		}
		s.reset(size)

		sc := scan{
			ctx:       s,
			src:       src,
			origin:    origin,
			rng:       rng,
			threshold: threshold,
			maxDepth:  rng.MaxDepth(),
			yield:     yield,
		}

		// 1. Центр всегда виден со всех сторон
		if !sc.emit(origin, domain.DirectionBitmapAll, 255) {
			return
		}

		// 2. Восемь октантов в фиксированном порядке
		for i := 0; i < 8; i++ {
			sc.xx, sc.xy = multipliers[0][i], multipliers[1][i]
			sc.yx, sc.yy = multipliers[2][i], multipliers[3][i]
			if !sc.row(1, 1.0, 0.0, 0) {
				return
			}
		}
	}
}

func (s *ShadowcastContext) reset(size domain.Size) {
	if s.size != size || s.stamps == nil {
		s.size = size
		s.stamps = make([]uint64, size.Area())
		s.stamp = 0
	}
	s.stamp++
}

// scan - состояние одного обхода.
type scan struct {
	ctx       *ShadowcastContext
	src       OpacitySource
	origin    domain.Coord
	rng       RangePredicate
	threshold uint8
	maxDepth  int
	yield     func(VisibleCell) bool

	xx, xy, yx, yy int
}

// emit отдаёт клетку потребителю, пропуская уже выданные. false - потребитель остановился.
func (sc *scan) emit(c domain.Coord, dirs domain.DirectionBitmap, visibility uint8) bool {
	idx := c.Y*sc.ctx.size.Width + c.X
	if sc.ctx.stamps[idx] == sc.ctx.stamp {
		return true
	}
	sc.ctx.stamps[idx] = sc.ctx.stamp
	return sc.yield(VisibleCell{Coord: c, Directions: dirs, Visibility: visibility})
}

// row сканирует ряд j внутри сектора [end, start] с уже накопленной непрозрачностью acc.
// Ряд разбивается на отрезки клеток с одинаковой пропускаемостью;
// каждый пропускающий отрезок рекурсивно продолжается в следующий ряд.
func (sc *scan) row(j int, start, end float64, acc uint8) bool {
	if start < end || j > sc.maxDepth {
		return true
	}

	runOpen := false
	var runAcc uint8
	var runStart, prevRSlope float64

	for dx := -j; dx <= 0; dx++ {
		dy := -j

		// Расчет наклонов (Slopes)
		lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
		rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

		if start < rSlope {
			continue
		}
		if end > lSlope {
			break
		}

		// Трансформация координат в глобальные
		c := domain.Coord{
			X: sc.origin.X + dx*sc.xx + dy*sc.xy,
			Y: sc.origin.Y + dx*sc.yx + dy*sc.yy,
		}
		delta := c.Sub(sc.origin)

		// Выход за границы считается непрозрачным
		opacity := uint8(math.MaxUint8)
		if c.IsValid(sc.ctx.size) {
			opacity = sc.src.Opacity(c)
			if sc.rng.Contains(delta) && !sc.emit(c, facingBitmap(delta, opacity), 255-acc) {
				return false
			}
		}

		// Сколько непрозрачности накопит луч, прошедший через эту клетку
		next := saturatingAdd(acc, opacity)
		if next >= sc.threshold {
			next = math.MaxUint8
		}

		switch {
		case !runOpen:
			runOpen, runAcc, runStart = true, next, start
		case next != runAcc:
			// Отрезок закончился: продолжаем его в следующий ряд
			if sc.transmits(runAcc) && !sc.row(j+1, runStart, lSlope, runAcc) {
				return false
			}
			runAcc, runStart = next, prevRSlope
		}
		prevRSlope = rSlope
	}

	if runOpen && sc.transmits(runAcc) {
		return sc.row(j+1, runStart, end, runAcc)
	}
	return true
}

func (sc *scan) transmits(acc uint8) bool {
	return acc < sc.threshold
}

// facingBitmap - стороны клетки, обращённые к наблюдателю.
// Прозрачная клетка видна со всех сторон. У непрозрачной видна грань
// по основной оси луча и угол, если луч не идёт вдоль оси.
func facingBitmap(delta domain.Coord, opacity uint8) domain.DirectionBitmap {
	if opacity == 0 {
		return domain.DirectionBitmapAll
	}
	ax, ay := abs(delta.X), abs(delta.Y)
	b := domain.DirectionBitmapEmpty

	var horizontal, vertical domain.Direction
	if delta.X > 0 {
		horizontal = domain.West
	} else {
		horizontal = domain.East
	}
	if delta.Y > 0 {
		vertical = domain.North
	} else {
		vertical = domain.South
	}

	if delta.X != 0 && ax >= ay {
		b = b.With(horizontal)
	}
	if delta.Y != 0 && ay >= ax {
		b = b.With(vertical)
	}
	if delta.X != 0 && delta.Y != 0 {
		b = b.With(corner(horizontal, vertical))
	}
	return b
}

func corner(horizontal, vertical domain.Direction) domain.Direction {
	switch {
	case vertical == domain.North && horizontal == domain.East:
		return domain.NorthEast
	case vertical == domain.North:
		return domain.NorthWest
	case horizontal == domain.East:
		return domain.SouthEast
	default:
		return domain.SouthWest
	}
}

func saturatingAdd(a, b uint8) uint8 {
	if sum := uint16(a) + uint16(b); sum < math.MaxUint8 {
		return uint8(sum)
	}
	return math.MaxUint8
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
