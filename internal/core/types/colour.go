package types

import (
	"fmt"
	"strconv"
)

// Colour - упакованный 24-битный RGB-цвет в формате 0xRRGGBB.
//
// Все арифметические операции насыщающие: каналы никогда не переполняются
// и не уходят ниже нуля.
type Colour uint32

const (
	maskChannel = 0xFF
	maskColour  = 0xFFFFFF

	shiftRed   = 16
	shiftGreen = 8
)

// Black - отсутствие света. Клетка, не освещённая в текущем тике, имеет этот цвет.
const Black Colour = 0

// RGB собирает цвет из каналов.
func RGB(r, g, b uint8) Colour {
	return Colour(uint32(r)<<shiftRed | uint32(g)<<shiftGreen | uint32(b))
}

// Grey - серый цвет с одинаковыми каналами.
func Grey(v uint8) Colour {
	return RGB(v, v, v)
}

// ParseHex разбирает строку вида "#RRGGBB" (решётка необязательна).
func ParseHex(s string) (Colour, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return Black, fmt.Errorf("invalid colour %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Black, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return Colour(v & maskColour), nil
}

func (c Colour) R() uint8 { return uint8(c >> shiftRed & maskChannel) }
func (c Colour) G() uint8 { return uint8(c >> shiftGreen & maskChannel) }
func (c Colour) B() uint8 { return uint8(c & maskChannel) }

// IsBlack проверяет, что все каналы нулевые.
func (c Colour) IsBlack() bool {
	return c&maskColour == 0
}

// SaturatingAdd складывает цвета поканально с насыщением на 255.
func (c Colour) SaturatingAdd(other Colour) Colour {
	return RGB(
		saturate(uint32(c.R())+uint32(other.R())),
		saturate(uint32(c.G())+uint32(other.G())),
		saturate(uint32(c.B())+uint32(other.B())),
	)
}

// Scale умножает каждый канал на num/denom с насыщением. denom == 0 трактуется как 1.
func (c Colour) Scale(num, denom uint32) Colour {
	if denom == 0 {
		denom = 1
	}
	return RGB(
		saturate(uint64(c.R()) * uint64(num) / uint64(denom)),
		saturate(uint64(c.G()) * uint64(num) / uint64(denom)),
		saturate(uint64(c.B()) * uint64(num) / uint64(denom)),
	)
}

// Floor поднимает каждый канал минимум до v.
func (c Colour) Floor(v uint8) Colour {
	return RGB(max(c.R(), v), max(c.G(), v), max(c.B(), v))
}

// Brightness - сумма каналов. Используется для сравнения интенсивности.
func (c Colour) Brightness() uint32 {
	return uint32(c.R()) + uint32(c.G()) + uint32(c.B())
}

// Hex возвращает строку вида "#00FF00".
func (c Colour) Hex() string {
	return fmt.Sprintf("#%06X", uint32(c)&maskColour)
}

// String реализует fmt.Stringer.
func (c Colour) String() string {
	return fmt.Sprintf("Colour{%s}", c.Hex())
}

func saturate[T uint32 | uint64](v T) uint8 {
	if v > maskChannel {
		return maskChannel
	}
	return uint8(v)
}
