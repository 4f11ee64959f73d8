package handlers

import (
	"fmt"

	"github.com/gridbugs/gws/internal/domain"
)

// TypedHandlerFunc - это "чистый" хендлер, который работает с готовым параметром T
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - хендлер, которому НЕ нужны данные (INIT, WAIT, HEAL)
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithDirection достаёт направление из команды и проверяет его.
func WithDirection(handler TypedHandlerFunc[domain.CardinalDirection]) HandlerFunc {
	return func(ctx Context, in domain.Input) (Result, error) {
		if in.Direction > domain.CardinalWest {
			return Result{}, fmt.Errorf("direction %d: %w", in.Direction, domain.CancelInvalidInput)
		}
		return handler(ctx, in.Direction)
	}
}

// WithTarget достаёт целевую клетку из команды.
// Границы проверяет сам хендлер: это часть его правил.
func WithTarget(handler TypedHandlerFunc[domain.Coord]) HandlerFunc {
	return func(ctx Context, in domain.Input) (Result, error) {
		return handler(ctx, in.Target)
	}
}

// WithEmptyPayload - обертка для команд без данных (INIT, WAIT)
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ domain.Input) (Result, error) {
		// Мы просто игнорируем параметры, так как они не нужны логике.
		return handler(ctx)
	}
}
