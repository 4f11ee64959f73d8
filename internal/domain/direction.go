package domain

import "strings"

// Direction - одно из 8 направлений. Порядок перечисления фиксирован (по часовой от севера).
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Directions - все направления в порядке перечисления.
var Directions = [...]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var directionOffsets = [...]Coord{
	North:     {X: 0, Y: -1},
	NorthEast: {X: 1, Y: -1},
	East:      {X: 1, Y: 0},
	SouthEast: {X: 1, Y: 1},
	South:     {X: 0, Y: 1},
	SouthWest: {X: -1, Y: 1},
	West:      {X: -1, Y: 0},
	NorthWest: {X: -1, Y: -1},
}

var directionNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (d Direction) Coord() Coord {
	return directionOffsets[d&7]
}

func (d Direction) Opposite() Direction {
	return (d + 4) & 7
}

// Bit возвращает маску из одного направления.
func (d Direction) Bit() DirectionBitmap {
	return DirectionBitmap(1) << (d & 7)
}

func (d Direction) String() string {
	return directionNames[d&7]
}

// CardinalDirection - направление шага. Порядок перечисления N, E, S, W
// используется как tie-break при выборе равноценных ходов.
type CardinalDirection uint8

const (
	CardinalNorth CardinalDirection = iota
	CardinalEast
	CardinalSouth
	CardinalWest
)

// CardinalDirections - порядок обхода соседей в поиске пути.
var CardinalDirections = [...]CardinalDirection{CardinalNorth, CardinalEast, CardinalSouth, CardinalWest}

var cardinalStringToType = map[string]CardinalDirection{
	"NORTH": CardinalNorth, "N": CardinalNorth, "UP": CardinalNorth,
	"EAST": CardinalEast, "E": CardinalEast, "RIGHT": CardinalEast,
	"SOUTH": CardinalSouth, "S": CardinalSouth, "DOWN": CardinalSouth,
	"WEST": CardinalWest, "W": CardinalWest, "LEFT": CardinalWest,
}

// ParseCardinalDirection конвертирует строку из JSON ("north", "up", "N") в направление.
func ParseCardinalDirection(s string) (CardinalDirection, bool) {
	val, ok := cardinalStringToType[strings.ToUpper(s)]
	return val, ok
}

// CardinalFromCoord возвращает направление для единичного смещения.
func CardinalFromCoord(delta Coord) (CardinalDirection, bool) {
	for _, c := range CardinalDirections {
		if c.Coord() == delta {
			return c, true
		}
	}
	return 0, false
}

// Direction переводит в общее 8-направленное перечисление.
func (c CardinalDirection) Direction() Direction {
	return Direction(c&3) * 2
}

func (c CardinalDirection) Coord() Coord {
	return c.Direction().Coord()
}

func (c CardinalDirection) Opposite() CardinalDirection {
	return (c + 2) & 3
}

func (c CardinalDirection) String() string {
	switch c {
	case CardinalNorth:
		return "NORTH"
	case CardinalEast:
		return "EAST"
	case CardinalSouth:
		return "SOUTH"
	case CardinalWest:
		return "WEST"
	default:
		return "UNKNOWN"
	}
}

// DirectionBitmap - множество направлений, бит i соответствует Direction(i).
type DirectionBitmap uint8

const (
	DirectionBitmapEmpty DirectionBitmap = 0
	DirectionBitmapAll   DirectionBitmap = 0xFF
)

func (b DirectionBitmap) Has(d Direction) bool {
	return b&d.Bit() != 0
}

func (b DirectionBitmap) With(d Direction) DirectionBitmap {
	return b | d.Bit()
}

// Intersects - есть ли у двух масок общее направление.
func (b DirectionBitmap) Intersects(other DirectionBitmap) bool {
	return b&other != 0
}

func (b DirectionBitmap) IsEmpty() bool {
	return b == DirectionBitmapEmpty
}

func (b DirectionBitmap) String() string {
	if b.IsEmpty() {
		return "{}"
	}
	parts := make([]string, 0, 8)
	for _, d := range Directions {
		if b.Has(d) {
			parts = append(parts, d.String())
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}
