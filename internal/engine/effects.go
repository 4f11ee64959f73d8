package engine

import (
	"time"

	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/systems"
	"github.com/sirupsen/logrus"
)

// Цвет и затухание второй стадии вспышки телепорта
var (
	blinkFadeColour  = types.RGB(0, 128, 128)
	blinkFadeFalloff = domain.Rational{Num: 1, Denom: 5}
)

// resolve применяет последствия действия сразу.
// Анимации, которые при этом ставятся, только меняют внешний вид мира.
func (s *Simulation) resolve(actor types.EntityID, apply domain.ApplyAction) {
	if apply.Kind != domain.ApplyAnimation || apply.Animation == nil {
		return
	}
	spec := *apply.Animation
	s.log.WithFields(logrus.Fields{
		"actor":     actor,
		"animation": spec.Kind,
	}).Debug("Resolving action.")

	switch spec.Kind {
	case domain.AnimationDamage:
		s.strike(spec.Entity, spec.Direction)
	case domain.AnimationBlink:
		s.blinkFlash(spec.Coord)
	case domain.AnimationProjectile:
		s.launch(spec.Entity, spec.Direction, int(spec.Frames))
	case domain.AnimationGlowFade:
		s.glowFade(spec.Entity, spec.Frames)
	}
}

// strike: урон сразу, подсветка удара гаснет через DamageAnimationPeriod.
func (s *Simulation) strike(target types.EntityID, dir domain.CardinalDirection) {
	if died := systems.DealDamage(s.world, target, 1); died && target != s.world.PlayerID() {
		return
	}
	s.world.SetTakingDamage(target, &dir)
	s.anim.schedule(domain.AnimationDamage, domain.DamageAnimationPeriod, func() (time.Duration, bool) {
		s.world.SetTakingDamage(target, nil)
		return 0, false
	})
}

// blinkFlash оставляет на месте отправления вспышку в две стадии.
func (s *Simulation) blinkFlash(at domain.Coord) {
	flash, err := s.world.AddEntity(at, domain.PackedBlink())
	if err != nil {
		s.log.WithError(err).Warn("Failed to spawn blink flash.")
		return
	}
	stage := 0
	s.anim.schedule(domain.AnimationBlink, domain.BlinkAnimationPeriod, func() (time.Duration, bool) {
		if stage == 0 {
			stage++
			s.world.SetLightParams(flash, blinkFadeColour, blinkFadeFalloff)
			return domain.BlinkAnimationPeriod, true
		}
		s.removeEffect(flash)
		return 0, false
	})
}

// launch рассчитывает полёт снаряда целиком: попадание засчитывается сразу,
// а сам снаряд потом летит по готовому пути клетка за клеткой.
func (s *Simulation) launch(spark types.EntityID, dir domain.CardinalDirection, maxRange int) {
	e, ok := s.world.Entity(spark)
	if !ok {
		return
	}
	trace := systems.TraceProjectile(s.world, e.Coord, dir, maxRange)
	if !trace.Hit.IsNil() {
		s.strike(trace.Hit, dir)
	}

	path := trace.Path
	s.anim.schedule(domain.AnimationProjectile, 0, func() (time.Duration, bool) {
		if len(path) == 0 {
			s.removeEffect(spark)
			return 0, false
		}
		if err := s.world.MoveEntityToCoord(spark, path[0]); err != nil {
			s.removeEffect(spark)
			return 0, false
		}
		path = path[1:]
		return domain.ProjectileAnimationPeriod, true
	})
}

// glowFade гасит свечение за frames кадров: знаменатель затухания растёт с каждым кадром.
func (s *Simulation) glowFade(glow types.EntityID, frames uint32) {
	remaining := frames
	s.anim.schedule(domain.AnimationGlowFade, 0, func() (time.Duration, bool) {
		if remaining == 0 {
			s.removeEffect(glow)
			return 0, false
		}
		s.world.SetLightFalloffDenom(glow, frames-remaining+1)
		remaining--
		return domain.GlowFadePeriod, true
	})
}

func (s *Simulation) removeEffect(id types.EntityID) {
	if _, ok := s.world.Entity(id); !ok {
		return
	}
	if err := s.world.RemoveEntity(id); err != nil {
		s.log.WithError(err).WithField("entity_id", id).Warn("Failed to remove effect entity.")
	}
}
