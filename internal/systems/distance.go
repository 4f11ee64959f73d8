package systems

import (
	"math"

	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Unreachable - расстояние до клеток, отрезанных от цели статическими препятствиями.
const Unreachable uint32 = math.MaxUint32

// SolidSource - статическая проходимость клеток.
type SolidSource interface {
	Size() domain.Size
	IsSolid(domain.Coord) bool
}

// DistanceCell - расстояние до цели и направления, по которым оно убывает.
type DistanceCell struct {
	Distance uint32
	Best     domain.DirectionBitmap
}

// DistanceField - карта расстояний до игрока (BFS по четырём направлениям).
// Другие персонажи на этом этапе не учитываются.
type DistanceField struct {
	grid   *domain.Grid[DistanceCell]
	target domain.Coord
	valid  bool

	// Переиспользуемая очередь BFS
	queue []int
	log   *logrus.Entry
}

func NewDistanceField(size domain.Size) *DistanceField {
	return &DistanceField{
		grid:  domain.NewGrid(size, DistanceCell{Distance: Unreachable}),
		queue: make([]int, 0, size.Area()),
		log:   logger.For("distance_field"),
	}
}

// Update пересчитывает поле от target. Если target вне сетки, поле не меняется и возвращается false.
func (f *DistanceField) Update(target domain.Coord, w SolidSource) bool {
	if !target.IsValid(f.grid.Size()) {
		f.log.WithField("target", target).Warn("Distance field target is out of bounds, keeping previous field.")
		return false
	}

	// 1. Сброс
	for i := range f.grid.Cells {
		f.grid.Cells[i] = DistanceCell{Distance: Unreachable}
	}

	// 2. BFS от цели
	start := f.grid.Index(target)
	f.grid.Cells[start].Distance = 0
	f.queue = append(f.queue[:0], start)

	reached := 0
	for head := 0; head < len(f.queue); head++ {
		idx := f.queue[head]
		c := f.grid.CoordOf(idx)
		d := f.grid.Cells[idx].Distance
		reached++

		for _, dir := range domain.CardinalDirections {
			n := c.Add(dir.Coord())
			cell, ok := f.grid.Get(n)
			if !ok || cell.Distance != Unreachable || w.IsSolid(n) {
				continue
			}
			cell.Distance = d + 1
			f.queue = append(f.queue, f.grid.Index(n))
		}
	}

	// 3. Направления спуска: соседи с расстоянием на единицу меньше
	for _, idx := range f.queue {
		cell := &f.grid.Cells[idx]
		if cell.Distance == 0 {
			continue
		}
		c := f.grid.CoordOf(idx)
		for _, dir := range domain.CardinalDirections {
			if f.Distance(c.Add(dir.Coord())) == cell.Distance-1 {
				cell.Best = cell.Best.With(dir.Direction())
			}
		}
	}

	f.target = target
	f.valid = true

	f.log.WithFields(logrus.Fields{
		"target":  target,
		"reached": reached,
	}).Debug("Distance field updated.")
	return true
}

// Distance возвращает расстояние до цели или Unreachable.
func (f *DistanceField) Distance(c domain.Coord) uint32 {
	cell, ok := f.grid.Get(c)
	if !ok || !f.valid {
		return Unreachable
	}
	return cell.Distance
}

// BestDirection - первое (в порядке N, E, S, W) направление, уменьшающее расстояние.
func (f *DistanceField) BestDirection(c domain.Coord) (domain.CardinalDirection, bool) {
	cell, ok := f.grid.Get(c)
	if !ok || !f.valid {
		return 0, false
	}
	for _, dir := range domain.CardinalDirections {
		if cell.Best.Has(dir.Direction()) {
			return dir, true
		}
	}
	return 0, false
}

// Target - клетка, от которой посчитано поле.
func (f *DistanceField) Target() (domain.Coord, bool) {
	return f.target, f.valid
}
