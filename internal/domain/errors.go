package domain

import (
	"errors"
	"strings"
)

// CancelAction - причина отказа в действии. Возвращается как error
// до какой-либо мутации мира, поэтому откатывать ничего не нужно.
type CancelAction uint8

const (
	CancelUnknown CancelAction = iota
	CancelMoveIntoSolid
	CancelMoveIntoOccupiedActor
	CancelDestinationOutOfBounds
	CancelDestinationOutOfRange
	CancelDestinationNotVisible
	CancelLocationBlocked
	CancelNothingToAttack
	CancelAlreadyAtFullHealth
	CancelNoSuchEntity
	CancelInvalidInput
	CancelNotEnoughEnergy
)

var cancelToString = map[CancelAction]string{
	CancelMoveIntoSolid:          "MOVE_INTO_SOLID",
	CancelMoveIntoOccupiedActor:  "MOVE_INTO_OCCUPIED_ACTOR",
	CancelDestinationOutOfBounds: "DESTINATION_OUT_OF_BOUNDS",
	CancelDestinationOutOfRange:  "DESTINATION_OUT_OF_RANGE",
	CancelDestinationNotVisible:  "DESTINATION_NOT_VISIBLE",
	CancelLocationBlocked:        "LOCATION_BLOCKED",
	CancelNothingToAttack:        "NOTHING_TO_ATTACK",
	CancelAlreadyAtFullHealth:    "ALREADY_AT_FULL_HEALTH",
	CancelNoSuchEntity:           "NO_SUCH_ENTITY",
	CancelInvalidInput:           "INVALID_INPUT",
	CancelNotEnoughEnergy:        "NOT_ENOUGH_ENERGY",
}

func (c CancelAction) String() string {
	if val, ok := cancelToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// Error реализует error. Текст в нижнем регистре, как принято для ошибок в Go.
func (c CancelAction) Error() string {
	return "action cancelled: " + strings.ToLower(strings.ReplaceAll(c.String(), "_", " "))
}

// AsCancel извлекает причину отмены из цепочки ошибок.
func AsCancel(err error) (CancelAction, bool) {
	var c CancelAction
	if errors.As(err, &c) {
		return c, true
	}
	return CancelUnknown, false
}
