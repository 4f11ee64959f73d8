package domain

// Grid - плотный двумерный массив, хранимый построчно.
// Поля экспортированы для сериализации снапшотов.
type Grid[T any] struct {
	Dims  Size
	Cells []T
}

// NewGrid создаёт сетку, заполненную значением fill.
func NewGrid[T any](size Size, fill T) *Grid[T] {
	cells := make([]T, size.Area())
	for i := range cells {
		cells[i] = fill
	}
	return &Grid[T]{Dims: size, Cells: cells}
}

// NewGridFunc создаёт сетку, вызывая ctor для каждой клетки.
func NewGridFunc[T any](size Size, ctor func(Coord) T) *Grid[T] {
	g := &Grid[T]{Dims: size, Cells: make([]T, size.Area())}
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			c := Coord{X: x, Y: y}
			g.Cells[g.Index(c)] = ctor(c)
		}
	}
	return g
}

func (g *Grid[T]) Size() Size {
	return g.Dims
}

// Index - индекс клетки в Cells. Не проверяет границы.
func (g *Grid[T]) Index(c Coord) int {
	return c.Y*g.Dims.Width + c.X
}

// CoordOf - обратное к Index.
func (g *Grid[T]) CoordOf(index int) Coord {
	return Coord{X: index % g.Dims.Width, Y: index / g.Dims.Width}
}

// Get возвращает указатель на клетку или false, если координата за пределами сетки.
func (g *Grid[T]) Get(c Coord) (*T, bool) {
	if !c.IsValid(g.Dims) {
		return nil, false
	}
	return &g.Cells[g.Index(c)], true
}
