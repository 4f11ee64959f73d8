package actions

import "github.com/gridbugs/gws/internal/engine/handlers"

// HandleInit не тратит ход: клиент просто получает первый кадр.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Добро пожаловать в подземелье.",
		MsgType: "INFO",
		Free:    true,
	}, nil
}
