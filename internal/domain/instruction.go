package domain

import (
	"fmt"

	"github.com/gridbugs/gws/internal/core/types/enums"
)

// InstructionKind - команда генератора террейна.
type InstructionKind uint8

const (
	InstructionSetBackground InstructionKind = iota
	InstructionAddEntity
)

// Instruction - один шаг построения арены.
type Instruction struct {
	Kind       InstructionKind
	Coord      Coord
	Background enums.BackgroundTile
	Entity     PackedEntity
}

func SetBackgroundAt(c Coord, tile enums.BackgroundTile) Instruction {
	return Instruction{Kind: InstructionSetBackground, Coord: c, Background: tile}
}

func AddEntityAt(c Coord, packed PackedEntity) Instruction {
	return Instruction{Kind: InstructionAddEntity, Coord: c, Entity: packed}
}

// Interpret применяет инструкцию к миру.
func (w *World) Interpret(ins Instruction) error {
	switch ins.Kind {
	case InstructionSetBackground:
		return w.SetBackground(ins.Coord, ins.Background)
	case InstructionAddEntity:
		_, err := w.AddEntity(ins.Coord, ins.Entity)
		return err
	default:
		return fmt.Errorf("unknown instruction kind %d", ins.Kind)
	}
}
