package systems

import (
	"iter"

	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ShotWorld - проходимость и NPC для проверки линии выстрела.
type ShotWorld interface {
	IsSolid(domain.Coord) bool
	ContainsNPC(domain.Coord) bool
}

// Line возвращает точки отрезка по Брезенхэму, включая оба конца.
// Только целочисленная арифметика.
func Line(p1, p2 domain.Coord) iter.Seq[domain.Coord] {
	return func(yield func(domain.Coord) bool) {
		x0, y0 := p1.X, p1.Y
		dx, dy := abs(p2.X-x0), abs(p2.Y-y0)
		sx, sy := sign(p2.X-x0), sign(p2.Y-y0)
		err := dx - dy

		for {
			if !yield(domain.Coord{X: x0, Y: y0}) {
				return
			}
			if x0 == p2.X && y0 == p2.Y {
				return
			}
			e2 := err * 2
			if e2 > -dy {
				err -= dy
				x0 += sx
			}
			if e2 < dx {
				err += dx
				y0 += sy
			}
		}
	}
}

// interior - точки отрезка без начала и конца.
func interior(p1, p2 domain.Coord) iter.Seq[domain.Coord] {
	return func(yield func(domain.Coord) bool) {
		for c := range Line(p1, p2) {
			if c == p1 || c == p2 {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// CanSee проверяет, замечает ли наблюдатель цель. Непрозрачность клеток
// между ними накапливается; луч длиннее maxSteps или полностью перекрытый не проходит.
func CanSee(w OpacitySource, from, to domain.Coord, maxSteps int) bool {
	losLogger := logger.For("physics_system").WithFields(logrus.Fields{
		"function":  "CanSee",
		"start_pos": from,
		"end_pos":   to,
	})

	if from == to {
		return true
	}

	steps := max(abs(to.X-from.X), abs(to.Y-from.Y))
	if steps > maxSteps {
		losLogger.WithField("steps", steps).Debug("Check finished: target is too far. Result: false")
		return false
	}

	var total uint8
	for c := range interior(from, to) {
		total = saturatingAdd(total, w.Opacity(c))
		if total == 255 {
			losLogger.WithField("blocking_point", c).Debug("Check finished: line is occluded. Result: false")
			return false
		}
	}
	return true
}

// CleanShot - на линии между стрелком и целью нет NPC и стен.
func CleanShot(w ShotWorld, from, to domain.Coord) bool {
	for c := range interior(from, to) {
		if w.ContainsNPC(c) || w.IsSolid(c) {
			return false
		}
	}
	return true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
