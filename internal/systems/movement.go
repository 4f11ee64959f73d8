package systems

import (
	"fmt"

	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// MoveOutcome - что произойдёт при шаге.
type MoveOutcome uint8

const (
	MoveStep MoveOutcome = iota
	MoveAttack
	MoveInteract
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	From, To  domain.Coord
	Direction domain.CardinalDirection
	Outcome   MoveOutcome
	Target    *domain.Entity // Цель атаки или взаимодействия
}

// CalculateMove вычисляет результат шага. Не меняет состояние мира!
//
// Игрок атакует NPC, NPC атакуют игрока, NPC друг друга не бьют.
func CalculateMove(w *domain.World, id types.EntityID, dir domain.CardinalDirection) (MovementResult, error) {
	e, ok := w.Entity(id)
	if !ok {
		return MovementResult{}, fmt.Errorf("move %s: %w", id, domain.CancelNoSuchEntity)
	}
	to := e.Coord.Add(dir.Coord())
	res := MovementResult{From: e.Coord, To: to, Direction: dir}

	// 1. Проверка границ
	if !to.IsValid(w.Size()) {
		return res, domain.CancelDestinationOutOfBounds
	}

	// 2. Проверка персонажей
	if other, ok := w.CharacterAt(to); ok {
		hostile := (e.IsPlayer && other.IsNPC) || (e.IsNPC && other.IsPlayer)
		if !hostile {
			return res, domain.CancelMoveIntoOccupiedActor
		}
		res.Outcome = MoveAttack
		res.Target = other
		return res, nil
	}

	// 3. Проверка стен и блоков
	if w.IsSolid(to) {
		return res, domain.CancelMoveIntoSolid
	}

	// 4. Объекты взаимодействия (только для игрока)
	if e.IsPlayer {
		if obj, ok := w.InteractiveAt(to); ok {
			res.Outcome = MoveInteract
			res.Target = obj
			return res, nil
		}
	}

	res.Outcome = MoveStep
	return res, nil
}

// MoveEntityInDirectionWithAttackPolicy проверяет шаг и применяет его.
// При отказе мир не меняется.
func MoveEntityInDirectionWithAttackPolicy(w *domain.World, id types.EntityID, dir domain.CardinalDirection) (domain.ApplyAction, error) {
	res, err := CalculateMove(w, id, dir)
	if err != nil {
		logger.For("movement_system").WithFields(logrus.Fields{
			"entity_id": id,
			"direction": dir,
			"reason":    err,
		}).Debug("Move rejected.")
		return domain.ApplyAction{}, err
	}

	switch res.Outcome {
	case MoveAttack:
		return domain.Animate(domain.AnimationSpec{
			Kind:      domain.AnimationDamage,
			Entity:    res.Target.ID,
			Direction: dir,
		}), nil
	case MoveInteract:
		return domain.Interact(res.Target.ID), nil
	default:
		if err := w.MoveEntityToCoord(id, res.To); err != nil {
			return domain.ApplyAction{}, err
		}
		return domain.Done(), nil
	}
}
