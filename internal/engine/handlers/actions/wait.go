package actions

import (
	"github.com/gridbugs/gws/internal/engine/handlers"
)

func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Apply:   handlers.EmptyResult().Apply,
		Msg:     "Вы пропускаете ход.",
		MsgType: "INFO",
	}, nil
}
