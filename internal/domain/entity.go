package domain

import (
	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/core/types/enums"
)

// --- КОМПОНЕНТЫ ---

// HitPoints - здоровье
type HitPoints struct {
	Current uint32 `json:"current"`
	Max     uint32 `json:"max"`
}

// TakeDamage наносит урон. Возвращает true, если цель погибла.
func (h *HitPoints) TakeDamage(amount uint32) bool {
	if h.Current == 0 {
		return false
	}
	if amount >= h.Current {
		h.Current = 0
		return true
	}
	h.Current -= amount
	return false
}

// Heal лечит, не выходя за максимум.
func (h *HitPoints) Heal(amount uint32) {
	h.Current = min(h.Current+amount, h.Max)
}

func (h *HitPoints) IsFull() bool {
	return h.Current >= h.Max
}

func (h *HitPoints) IsDead() bool {
	return h.Current == 0
}

// Status - временные состояния (для анимаций и ИИ)
type Status struct {
	TakingDamage  *CardinalDirection `json:"takingDamage,omitempty"` // Откуда пришёл удар
	Frozen        uint32             `json:"frozen,omitempty"`       // Сколько ходов пропустить
	HealCountdown *uint32            `json:"healCountdown,omitempty"`
}

// --- СУЩНОСТЬ ---

type Entity struct {
	ID         types.EntityID       `json:"id"`
	Coord      Coord                `json:"coord"`
	Foreground enums.ForegroundTile `json:"foreground"`

	// Теги вида
	IsPlayer      bool `json:"isPlayer,omitempty"`
	IsNPC         bool `json:"isNpc,omitempty"`
	IsProjectile  bool `json:"isProjectile,omitempty"`
	IsInteractive bool `json:"isInteractive,omitempty"`

	// Опциональные компоненты (nil - свойство отсутствует)
	LightID   *types.LightID `json:"lightId,omitempty"`
	HitPoints *HitPoints     `json:"hitPoints,omitempty"`
	Status    Status         `json:"status"`
}

// IsWounded - есть здоровье и оно не полное.
func (e *Entity) IsWounded() bool {
	return e.HitPoints != nil && !e.HitPoints.IsFull()
}

// PackedEntity - шаблон сущности без идентификатора и позиции.
type PackedEntity struct {
	Foreground    enums.ForegroundTile
	Light         *PackedLight
	HitPoints     *HitPoints
	IsPlayer      bool
	IsNPC         bool
	IsProjectile  bool
	IsInteractive bool
}

func hp(n uint32) *HitPoints {
	return &HitPoints{Current: n, Max: n}
}

// --- ШАБЛОНЫ ---

func PackedPlayer() PackedEntity {
	return PackedEntity{
		Foreground: enums.ForegroundPlayer,
		Light:      &PackedLight{Colour: types.Grey(128), Range2: 30, Falloff: Rational{Num: 10, Denom: 1}},
		HitPoints:  hp(4),
		IsPlayer:   true,
	}
}

func PackedDemon() PackedEntity {
	return PackedEntity{Foreground: enums.ForegroundDemon, HitPoints: hp(2), IsNPC: true}
}

func PackedCaster() PackedEntity {
	return PackedEntity{Foreground: enums.ForegroundCaster, HitPoints: hp(2), IsNPC: true}
}

func PackedHealer() PackedEntity {
	return PackedEntity{Foreground: enums.ForegroundHealer, HitPoints: hp(2), IsNPC: true}
}

func PackedTree() PackedEntity {
	return PackedEntity{Foreground: enums.ForegroundTree}
}

func PackedStairs() PackedEntity {
	return PackedEntity{Foreground: enums.ForegroundStairs}
}

func PackedBlock() PackedEntity {
	return PackedEntity{Foreground: enums.ForegroundBlock}
}

// PackedLamp - неподвижный источник света. Цвет поднимается минимум до 10 по каждому каналу.
func PackedLamp(colour types.Colour) PackedEntity {
	return PackedEntity{
		Foreground: enums.ForegroundLamp,
		Light:      &PackedLight{Colour: colour.Floor(10), Range2: 90, Falloff: Rational{Num: 10, Denom: 1}},
	}
}

func PackedFountain() PackedEntity {
	return PackedEntity{
		Foreground:    enums.ForegroundFountain,
		Light:         &PackedLight{Colour: types.RGB(0, 64, 255), Range2: 20, Falloff: Rational{Num: 5, Denom: 1}},
		HitPoints:     hp(1),
		IsInteractive: true,
	}
}

func PackedSpark() PackedEntity {
	return PackedEntity{
		Foreground:   enums.ForegroundSpark,
		Light:        &PackedLight{Colour: types.RGB(255, 128, 0), Range2: 20, Falloff: Rational{Num: 4, Denom: 1}},
		IsProjectile: true,
	}
}

func PackedBlink() PackedEntity {
	return PackedEntity{
		Foreground: enums.ForegroundBlink,
		Light:      &PackedLight{Colour: types.RGB(0, 255, 255), Range2: 20, Falloff: Rational{Num: 10, Denom: 1}},
	}
}

func PackedGlow(colour types.Colour) PackedEntity {
	return PackedEntity{
		Foreground: enums.ForegroundGlow,
		Light:      &PackedLight{Colour: colour, Range2: 60, Falloff: Rational{Num: 10, Denom: 1}},
	}
}
