package actions

import (
	"fmt"

	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/engine/handlers"
	"github.com/gridbugs/gws/internal/systems"
)

// HandleInteract - использовать объект в соседней клетке.
// Фонтан лечит игрока полностью и иссякает.
func HandleInteract(ctx handlers.Context, dir domain.CardinalDirection) (handlers.Result, error) {
	// 1. Поиск цели взаимодействия
	at := ctx.Actor.Coord.Add(dir.Coord())
	target, ok := ctx.World.InteractiveAt(at)
	if !ok {
		return handlers.Result{}, fmt.Errorf("interact at %s: %w", at, domain.CancelNothingToAttack)
	}

	// 2. Применение эффекта
	switch target.Foreground {
	case enums.ForegroundFountain:
		if ctx.Actor.HitPoints == nil {
			return handlers.Result{}, domain.CancelInvalidInput
		}
		if _, err := systems.Heal(ctx.World, ctx.Actor.ID, ctx.Actor.HitPoints.Max); err != nil {
			return handlers.Result{}, err
		}
		// 3. Фонтан одноразовый
		systems.DealDamage(ctx.World, target.ID, 1)
		return handlers.Result{
			Apply:   domain.Done(),
			Msg:     "Вода фонтана восстанавливает силы.",
			MsgType: "INFO",
		}, nil
	default:
		return handlers.Result{
			Apply:   domain.Done(),
			Msg:     fmt.Sprintf("Ничего не происходит при взаимодействии с %s.", target.Foreground.Symbol()),
			MsgType: "INFO",
		}, nil
	}
}
