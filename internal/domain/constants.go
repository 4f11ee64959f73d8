package domain

import "time"

// Параметры восприятия
const (
	VisionDistance2 = 60 // Квадрат радиуса зрения игрока
	NPCVisionSteps  = 16 // Максимальная длина луча, по которому NPC замечает игрока
)

// Дальности умений
const (
	MaxBlinkRange   = 12
	ProjectileRange = 12
	CasterRange     = 8  // Кастер стреляет, если игрок ближе (манхэттен, строго меньше)
	HealerRange     = 8  // Лекарь начинает заряжаться, если раненый союзник ближе
	HealBurstRange  = 10 // Радиус лечения после зарядки
	HealChargeTurns = 3
	GlowFadeFrames  = 10
	MaxSearchDepth  = 4 // Глубина локального поиска пути
)

// Длительности косметических анимаций
const (
	DamageAnimationPeriod     = 250 * time.Millisecond
	BlinkAnimationPeriod      = 50 * time.Millisecond
	ProjectileAnimationPeriod = 50 * time.Millisecond
	GlowFadePeriod            = 50 * time.Millisecond
)
