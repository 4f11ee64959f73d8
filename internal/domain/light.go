package domain

import "github.com/gridbugs/gws/internal/core/types"

// Rational - множитель затухания света num/denom.
type Rational struct {
	Num   uint32 `json:"num"`
	Denom uint32 `json:"denom"`
}

// Light - точечный источник света. Может быть привязан к сущности,
// тогда его координата обновляется при каждом перемещении сущности.
type Light struct {
	ID      types.LightID  `json:"id"`
	Owner   types.EntityID `json:"owner"`
	Coord   Coord          `json:"coord"`
	Colour  types.Colour   `json:"colour"`
	Range2  int            `json:"range2"` // Квадрат радиуса освещения
	Falloff Rational       `json:"falloff"`
}

// ColourAt - интенсивность в клетке: colour * num / max(1, dist² * denom).
func (l *Light) ColourAt(c Coord) types.Colour {
	d2 := uint32(l.Coord.DistanceSquaredTo(c))
	return l.Colour.Scale(l.Falloff.Num, max(1, d2*l.Falloff.Denom))
}

// PackedLight - параметры света без координаты (для спавна и переноса между уровнями).
type PackedLight struct {
	Colour  types.Colour `json:"colour"`
	Range2  int          `json:"range2"`
	Falloff Rational     `json:"falloff"`
}

func (p PackedLight) At(coord Coord) Light {
	return Light{
		Coord:   coord,
		Colour:  p.Colour,
		Range2:  p.Range2,
		Falloff: p.Falloff,
	}
}
