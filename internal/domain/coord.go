package domain

import "fmt"

// Coord - координата клетки. Ось Y направлена вниз (север = y-1).
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size - размер прямоугольной сетки.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Area возвращает количество клеток.
func (s Size) Area() int {
	return s.Width * s.Height
}

// IsValid проверяет, что координата лежит внутри сетки размера s
func (c Coord) IsValid(s Size) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.Width && c.Y < s.Height
}

func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y}
}

// Magnitude2 возвращает квадрат длины вектора (int) для сравнения без корней
func (c Coord) Magnitude2() int {
	return c.X*c.X + c.Y*c.Y
}

// DistanceSquaredTo - квадрат расстояния до другой точки.
func (c Coord) DistanceSquaredTo(other Coord) int {
	return c.Sub(other).Magnitude2()
}

// ManhattanDistance - расстояние в шагах по четырём направлениям.
func (c Coord) ManhattanDistance(other Coord) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ)
func (c Coord) IsAdjacent(other Coord) bool {
	dx := abs(c.X - other.X)
	dy := abs(c.Y - other.Y)
	return dx <= 1 && dy <= 1 && (dx != 0 || dy != 0)
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
