package systems

import (
	"fmt"

	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// VisibilityView - чтение поля видимости (чтобы не зависеть от VisibilityField напрямую)
type VisibilityView interface {
	IsVisible(domain.Coord, VisibilityState) bool
	LightColour(domain.Coord, VisibilityState) types.Colour
}

// ValidateBlink проверяет точку телепорта. Не меняет состояние мира!
//
// Точка должна быть видна и освещена в момент снимка state, лежать
// не дальше maxRange по манхэттену и быть свободной.
func ValidateBlink(w *domain.World, vis VisibilityView, state VisibilityState, id types.EntityID, dest domain.Coord, maxRange int) error {
	e, ok := w.Entity(id)
	if !ok {
		return fmt.Errorf("blink %s: %w", id, domain.CancelNoSuchEntity)
	}

	// 1. Проверка границ
	if !dest.IsValid(w.Size()) {
		return domain.CancelDestinationOutOfBounds
	}

	// 2. Видимость: тёмная клетка не годится, даже если она открыта на карте
	if !vis.IsVisible(dest, state) || vis.LightColour(dest, state).IsBlack() {
		return domain.CancelDestinationNotVisible
	}

	// 3. Дистанция
	if e.Coord.ManhattanDistance(dest) > maxRange {
		return domain.CancelDestinationOutOfRange
	}

	// 4. Клетка свободна
	if _, occupied := w.CharacterAt(dest); occupied || w.IsSolid(dest) {
		return domain.CancelLocationBlocked
	}
	return nil
}

// BlinkEntityToCoord телепортирует сущность. На месте отправления остаётся вспышка.
func BlinkEntityToCoord(w *domain.World, vis VisibilityView, state VisibilityState, id types.EntityID, dest domain.Coord, maxRange int) (domain.ApplyAction, error) {
	blinkLogger := logger.For("targeting_system").WithFields(logrus.Fields{
		"entity_id": id,
		"dest":      dest,
	})

	if err := ValidateBlink(w, vis, state, id, dest, maxRange); err != nil {
		blinkLogger.WithField("reason", err).Debug("Blink rejected.")
		return domain.ApplyAction{}, err
	}

	e, _ := w.Entity(id)
	from := e.Coord
	if err := w.MoveEntityToCoord(id, dest); err != nil {
		return domain.ApplyAction{}, err
	}

	blinkLogger.WithField("from", from).Info("Entity blinked.")
	return domain.Animate(domain.AnimationSpec{Kind: domain.AnimationBlink, Coord: from}), nil
}
