package enums

import "strings"

// CommitmentType - тип действия, которое NPC зарезервировал на текущий ход.
type CommitmentType uint8

const (
	CommitMove CommitmentType = iota
	CommitCast
	CommitHeal
)

var commitmentToString = map[CommitmentType]string{
	CommitMove: "MOVE",
	CommitCast: "CAST",
	CommitHeal: "HEAL",
}

var commitmentStringToType = map[string]CommitmentType{
	"MOVE": CommitMove,
	"CAST": CommitCast,
	"HEAL": CommitHeal,
}

func (c CommitmentType) String() string {
	if val, ok := commitmentToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseCommitmentType конвертирует строку в Enum (нужно для загрузки конфигов)
func ParseCommitmentType(s string) (CommitmentType, bool) {
	val, ok := commitmentStringToType[strings.ToUpper(s)]
	return val, ok
}
