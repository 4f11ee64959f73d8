package systems

import (
	"fmt"

	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// DealDamage наносит урон. Погибший NPC удаляется из мира, игрок остаётся с нулём здоровья.
// Возвращает true, если цель погибла.
func DealDamage(w *domain.World, id types.EntityID, amount uint32) bool {
	target, ok := w.Entity(id)
	if !ok || target.HitPoints == nil {
		return false
	}
	combatLogger := logger.For("combat_system").WithFields(logrus.Fields{
		"target_id": id,
		"amount":    amount,
	})

	hpBefore := target.HitPoints.Current
	died := target.HitPoints.TakeDamage(amount)

	combatLogger.WithFields(logrus.Fields{
		"hp_before":   hpBefore,
		"hp_after":    target.HitPoints.Current,
		"target_died": died,
	}).Info("Damage resolved.")

	if died && !target.IsPlayer {
		if err := w.RemoveEntity(id); err != nil {
			combatLogger.WithError(err).Error("Failed to remove dead entity.")
		}
	}
	return died
}

// Heal лечит сущность.
func Heal(w *domain.World, id types.EntityID, amount uint32) (domain.ApplyAction, error) {
	e, ok := w.Entity(id)
	if !ok || e.HitPoints == nil {
		return domain.ApplyAction{}, fmt.Errorf("heal %s: %w", id, domain.CancelNoSuchEntity)
	}
	if e.HitPoints.IsFull() {
		return domain.ApplyAction{}, domain.CancelAlreadyAtFullHealth
	}
	e.HitPoints.Heal(amount)
	return domain.Done(), nil
}

// HealWoundedAround лечит раненых NPC ближе radius (манхэттен) и возвращает их число.
func HealWoundedAround(w *domain.World, center domain.Coord, radius int, amount uint32) int {
	healed := 0
	for _, id := range w.NPCIDs() {
		e, _ := w.Entity(id)
		if e.IsWounded() && center.ManhattanDistance(e.Coord) < radius {
			e.HitPoints.Heal(amount)
			healed++
		}
	}
	return healed
}

// SparkInDirection выпускает светящийся снаряд из клетки стрелка.
func SparkInDirection(w *domain.World, id types.EntityID, dir domain.CardinalDirection) (domain.ApplyAction, error) {
	e, ok := w.Entity(id)
	if !ok {
		return domain.ApplyAction{}, fmt.Errorf("spark %s: %w", id, domain.CancelNoSuchEntity)
	}
	spark, err := w.AddEntity(e.Coord, domain.PackedSpark())
	if err != nil {
		return domain.ApplyAction{}, fmt.Errorf("spark from %s: %w", e.Coord, err)
	}
	return domain.Animate(domain.AnimationSpec{
		Kind:      domain.AnimationProjectile,
		Entity:    spark,
		Direction: dir,
		Frames:    domain.ProjectileRange,
	}), nil
}

// ProjectileMove - итог шага снаряда.
type ProjectileMove uint8

const (
	ProjectileContinue ProjectileMove = iota
	ProjectileHitObstacle
	ProjectileHitCharacter
)

// CheckProjectileStep вычисляет, что встретит снаряд в следующей клетке. Не меняет мир.
func CheckProjectileStep(w *domain.World, id types.EntityID, dir domain.CardinalDirection) (ProjectileMove, *domain.Entity, error) {
	e, ok := w.Entity(id)
	if !ok {
		return 0, nil, fmt.Errorf("projectile %s: %w", id, domain.CancelNoSuchEntity)
	}
	return projectileStepAt(w, e.Coord.Add(dir.Coord()))
}

func projectileStepAt(w *domain.World, next domain.Coord) (ProjectileMove, *domain.Entity, error) {
	if !next.IsValid(w.Size()) {
		return 0, nil, domain.CancelDestinationOutOfBounds
	}
	if target, ok := w.CharacterAt(next); ok {
		return ProjectileHitCharacter, target, nil
	}
	if w.IsSolid(next) {
		return ProjectileHitObstacle, nil, nil
	}
	return ProjectileContinue, nil, nil
}

// ProjectileTrace - полёт снаряда, рассчитанный целиком в момент выстрела.
type ProjectileTrace struct {
	Path []domain.Coord // Клетки, которые снаряд пролетит (без стартовой)
	Hit  types.EntityID // Задетый персонаж или NilEntityID
}

// TraceProjectile прокладывает путь снаряда из from. Снаряд пролетает не больше maxRange клеток,
// персонажа в следующей после последней клетке он ещё задевает. Не меняет мир.
func TraceProjectile(w *domain.World, from domain.Coord, dir domain.CardinalDirection, maxRange int) ProjectileTrace {
	var trace ProjectileTrace
	cur := from
	for step := 0; step <= maxRange; step++ {
		next := cur.Add(dir.Coord())
		move, target, err := projectileStepAt(w, next)
		if err != nil || move == ProjectileHitObstacle {
			break
		}
		if move == ProjectileHitCharacter {
			trace.Hit = target.ID
			break
		}
		if step == maxRange {
			break
		}
		trace.Path = append(trace.Path, next)
		cur = next
	}
	return trace
}

// BumpNPCInDirection толкает соседнего NPC на клетку дальше и оглушает его на ход.
// Если отступать некуда, NPC получает урон.
func BumpNPCInDirection(w *domain.World, id types.EntityID, dir domain.CardinalDirection) (domain.ApplyAction, error) {
	e, ok := w.Entity(id)
	if !ok {
		return domain.ApplyAction{}, fmt.Errorf("bump %s: %w", id, domain.CancelNoSuchEntity)
	}
	target, ok := w.NPCAt(e.Coord.Add(dir.Coord()))
	if !ok {
		return domain.ApplyAction{}, domain.CancelNothingToAttack
	}

	behind := target.Coord.Add(dir.Coord())
	_, occupied := w.CharacterAt(behind)
	if occupied || w.IsSolid(behind) {
		return domain.Animate(domain.AnimationSpec{
			Kind:      domain.AnimationDamage,
			Entity:    target.ID,
			Direction: dir,
		}), nil
	}
	if err := w.MoveEntityToCoord(target.ID, behind); err != nil {
		return domain.ApplyAction{}, err
	}
	target.Status.Frozen = 1
	return domain.Done(), nil
}
