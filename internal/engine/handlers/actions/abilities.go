package actions

import (
	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/engine/handlers"
	"github.com/gridbugs/gws/internal/systems"
)

// HandleBlink - телепорт в видимую освещённую клетку.
func HandleBlink(ctx handlers.Context, dest domain.Coord) (handlers.Result, error) {
	apply, err := systems.BlinkEntityToCoord(ctx.World, ctx.Visibility, ctx.State, ctx.Actor.ID, dest, ctx.MaxBlinkRange)
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Apply: apply}, nil
}

func HandleSpark(ctx handlers.Context, dir domain.CardinalDirection) (handlers.Result, error) {
	apply, err := systems.SparkInDirection(ctx.World, ctx.Actor.ID, dir)
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Apply: apply, Msg: "Искра срывается с пальцев.", MsgType: "COMBAT"}, nil
}

func HandleBump(ctx handlers.Context, dir domain.CardinalDirection) (handlers.Result, error) {
	apply, err := systems.BumpNPCInDirection(ctx.World, ctx.Actor.ID, dir)
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Apply: apply, Msg: "Вы отталкиваете противника.", MsgType: "COMBAT"}, nil
}

func HandleHeal(ctx handlers.Context) (handlers.Result, error) {
	apply, err := systems.Heal(ctx.World, ctx.Actor.ID, 1)
	if err != nil {
		return handlers.Result{}, err
	}
	return handlers.Result{Apply: apply, Msg: "Раны затягиваются.", MsgType: "INFO"}, nil
}

// healGlow - цвет вспышки лекаря.
var healGlow = types.RGB(255, 255, 0)

// HealGlow возвращает шаблон вспышки, которую оставляет лечение NPC.
func HealGlow() domain.PackedEntity {
	return domain.PackedGlow(healGlow)
}
