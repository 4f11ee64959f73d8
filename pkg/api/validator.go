package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gridbugs/gws/internal/domain"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx != 0 && p.Dy != 0 {
		return errors.New("diagonal movement is not allowed")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("position cannot be negative")
	}
	return nil
}

// decode разбирает и проверяет payload
func decode[T Validator](raw json.RawMessage) (T, error) {
	var p T
	if len(raw) == 0 {
		return p, errors.New("payload is required")
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("invalid payload: %w", err)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// ToInput переводит команду клиента в ввод симуляции.
// Любая ошибка разбора оборачивает domain.CancelInvalidInput.
func (c ClientCommand) ToInput() (domain.Input, error) {
	action := domain.ParseAction(c.Action)
	if action == domain.ActionUnknown {
		return domain.Input{}, fmt.Errorf("unknown action %q: %w", c.Action, domain.CancelInvalidInput)
	}
	in := domain.Input{Action: action}

	switch {
	case action.NeedsDirection():
		p, err := decode[DirectionPayload](c.Payload)
		if err != nil {
			return in, fmt.Errorf("%s: %v: %w", action, err, domain.CancelInvalidInput)
		}
		dir, _ := domain.CardinalFromCoord(domain.Coord{X: p.Dx, Y: p.Dy})
		in.Direction = dir
	case action == domain.ActionBlink:
		p, err := decode[PositionPayload](c.Payload)
		if err != nil {
			return in, fmt.Errorf("%s: %v: %w", action, err, domain.CancelInvalidInput)
		}
		in.Target = domain.Coord{X: p.X, Y: p.Y}
	}
	return in, nil
}
