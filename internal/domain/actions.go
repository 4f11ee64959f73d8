package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия игрока
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionWait
	ActionBlink
	ActionSpark
	ActionBump
	ActionHeal
	ActionInteract
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":     ActionInit,
	"MOVE":     ActionMove,
	"WAIT":     ActionWait,
	"BLINK":    ActionBlink,
	"SPARK":    ActionSpark,
	"BUMP":     ActionBump,
	"HEAL":     ActionHeal,
	"INTERACT": ActionInteract,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:     "INIT",
	ActionMove:     "MOVE",
	ActionWait:     "WAIT",
	ActionBlink:    "BLINK",
	ActionSpark:    "SPARK",
	ActionBump:     "BUMP",
	ActionHeal:     "HEAL",
	ActionInteract: "INTERACT",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// NeedsDirection - действие требует направления.
func (a ActionType) NeedsDirection() bool {
	switch a {
	case ActionMove, ActionSpark, ActionBump, ActionInteract:
		return true
	default:
		return false
	}
}

// Input - разобранная команда игрока.
type Input struct {
	Action    ActionType
	Direction CardinalDirection
	Target    Coord // Для ActionBlink
}
