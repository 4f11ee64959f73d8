package systems

import (
	"fmt"

	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// LitWorld - мир с источниками света.
type LitWorld interface {
	OpacitySource
	Lights() []*domain.Light
}

// VisibilityCell - накопленное состояние клетки. Никогда не сбрасывается целиком:
// устаревание определяется сравнением эпох.
type VisibilityCell struct {
	LastSeen   uint64
	LastLit    uint64
	Directions domain.DirectionBitmap
	Light      types.Colour
}

// VisibilityState - снимок эпохи на момент чтения.
type VisibilityState struct {
	Epoch uint64
}

// VisibilityConfig - параметры зрения игрока.
type VisibilityConfig struct {
	Distance2    int   // Квадрат радиуса зрения
	AmbientFloor uint8 // Минимальная освещённость видимых клеток (0 - выключено)
	Omniscient   bool  // Отладка: видно всё поле
}

// VisibilityField - поле видимости и освещённости игрока.
type VisibilityField struct {
	grid       *domain.Grid[VisibilityCell]
	epoch      uint64
	cfg        VisibilityConfig
	shadowcast ShadowcastContext
	log        *logrus.Entry
}

func NewVisibilityField(size domain.Size, cfg VisibilityConfig) *VisibilityField {
	return &VisibilityField{
		grid:  domain.NewGrid(size, VisibilityCell{}),
		epoch: 1,
		cfg:   cfg,
		log:   logger.For("visibility_system"),
	}
}

// RestoreVisibilityField собирает поле из сохранённых клеток.
func RestoreVisibilityField(size domain.Size, cells []VisibilityCell, epoch uint64, cfg VisibilityConfig) (*VisibilityField, error) {
	if len(cells) != size.Area() {
		return nil, fmt.Errorf("visibility field: %d cells for size %dx%d", len(cells), size.Width, size.Height)
	}
	v := NewVisibilityField(size, cfg)
	copy(v.grid.Cells, cells)
	v.epoch = max(epoch, 1)
	return v, nil
}

// Snapshot фиксирует текущую эпоху. O(1).
func (v *VisibilityField) Snapshot() VisibilityState {
	return VisibilityState{Epoch: v.epoch}
}

// Cells - клетки поля (для сохранения).
func (v *VisibilityField) Cells() []VisibilityCell {
	return v.grid.Cells
}

func (v *VisibilityField) Size() domain.Size {
	return v.grid.Size()
}

// Update пересчитывает видимость игрока и освещение за один тик.
//
// 1. Эпоха увеличивается на единицу.
// 2. Обход из позиции игрока отмечает видимые клетки и стороны, с которых они видны.
// 3. Каждый источник света (в порядке ID) освещает только видимые сейчас клетки,
// и только если стороны, видимые игроку и свету, пересекаются.
// Вклад света зависит только от расстояния: полупрозрачные клетки на пути его не ослабляют.
func (v *VisibilityField) Update(player domain.Coord, w LitWorld) {
	v.epoch++
	epoch := v.epoch

	base := types.Black
	if v.cfg.AmbientFloor > 0 {
		base = types.Grey(v.cfg.AmbientFloor)
	}

	seen := 0
	mark := func(cell *VisibilityCell, dirs domain.DirectionBitmap) {
		cell.LastSeen = epoch
		cell.Directions = dirs
		if v.cfg.AmbientFloor > 0 {
			cell.LastLit = epoch
			cell.Light = base
		}
		seen++
	}

	// 1. Основной обход
	if v.cfg.Omniscient {
		for i := range v.grid.Cells {
			mark(&v.grid.Cells[i], domain.DirectionBitmapAll)
		}
	} else {
		for vc := range v.shadowcast.Sweep(w, player, CircleSquared(v.cfg.Distance2), 255) {
			if cell, ok := v.grid.Get(vc.Coord); ok {
				mark(cell, vc.Directions)
			}
		}
	}

	// 2. Свет
	lit := 0
	lights := w.Lights()
	for _, l := range lights {
		for vc := range v.shadowcast.Sweep(w, l.Coord, CircleSquared(l.Range2), 255) {
			cell, ok := v.grid.Get(vc.Coord)
			if !ok || cell.LastSeen != epoch || !vc.Directions.Intersects(cell.Directions) {
				continue
			}
			if cell.LastLit != epoch {
				cell.LastLit = epoch
				cell.Light = base
				lit++
			}
			cell.Light = cell.Light.SaturatingAdd(l.ColourAt(vc.Coord))
		}
	}

	v.log.WithFields(logrus.Fields{
		"epoch":  epoch,
		"origin": player,
		"seen":   seen,
		"lights": len(lights),
		"lit":    lit,
	}).Debug("Visibility updated.")
}

// IsVisible - клетка видна в момент снимка state.
func (v *VisibilityField) IsVisible(c domain.Coord, state VisibilityState) bool {
	cell, ok := v.grid.Get(c)
	return ok && cell.LastSeen == state.Epoch
}

// IsDiscovered - клетку хоть раз видели (для карты).
func (v *VisibilityField) IsDiscovered(c domain.Coord) bool {
	cell, ok := v.grid.Get(c)
	return ok && cell.LastSeen != 0
}

// LightColour - освещённость клетки в момент снимка. Неосвещённая в этом тике клетка чёрная.
func (v *VisibilityField) LightColour(c domain.Coord, state VisibilityState) types.Colour {
	cell, ok := v.grid.Get(c)
	if !ok || cell.LastLit != state.Epoch {
		return types.Black
	}
	return cell.Light
}
