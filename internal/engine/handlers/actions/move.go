package actions

import (
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/engine/handlers"
	"github.com/gridbugs/gws/internal/systems"
)

func HandleMove(ctx handlers.Context, dir domain.CardinalDirection) (handlers.Result, error) {
	apply, err := systems.MoveEntityInDirectionWithAttackPolicy(ctx.World, ctx.Actor.ID, dir)
	if err != nil {
		return handlers.Result{}, err
	}

	switch apply.Kind {
	case domain.ApplyAnimation:
		return handlers.Result{Apply: apply, Msg: "Вы атакуете.", MsgType: "COMBAT"}, nil
	case domain.ApplyInteract:
		return handlers.Result{Apply: apply, Msg: "Здесь можно что-то сделать.", MsgType: "INFO"}, nil
	default:
		return handlers.Result{Apply: apply}, nil
	}
}
