package systems

import (
	"fmt"

	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
)

// Intent - что NPC собирается сделать в этом ходу.
type Intent struct {
	Type  enums.CommitmentType
	Count uint32 // Для CommitHeal: сколько ходов осталось до лечения
}

func MoveIntent() Intent { return Intent{Type: enums.CommitMove} }
func CastIntent() Intent { return Intent{Type: enums.CommitCast} }
func HealIntent(count uint32) Intent {
	return Intent{Type: enums.CommitHeal, Count: count}
}

// Commitment - зарезервированный шаг.
type Commitment struct {
	Direction domain.CardinalDirection
	Intent
}

// CommitmentCell хранит эпоху последней записи. Клетка с устаревшей эпохой свободна.
type CommitmentCell struct {
	Epoch uint64
	Commitment
}

// CommitmentGrid - сетка резерваций на текущий ход.
// Очистка - это увеличение эпохи, клетки не перебираются.
type CommitmentGrid struct {
	grid  *domain.Grid[CommitmentCell]
	epoch uint64
}

func NewCommitmentGrid(size domain.Size) *CommitmentGrid {
	return &CommitmentGrid{
		grid:  domain.NewGrid(size, CommitmentCell{}),
		epoch: 1,
	}
}

// RestoreCommitmentGrid собирает сетку из сохранённых клеток.
func RestoreCommitmentGrid(size domain.Size, cells []CommitmentCell, epoch uint64) (*CommitmentGrid, error) {
	if len(cells) != size.Area() {
		return nil, fmt.Errorf("commitment grid: %d cells for size %dx%d", len(cells), size.Width, size.Height)
	}
	g := NewCommitmentGrid(size)
	copy(g.grid.Cells, cells)
	g.epoch = max(epoch, 1)
	return g, nil
}

// Clear освобождает все клетки за O(1).
func (g *CommitmentGrid) Clear() {
	g.epoch++
}

// Commit резервирует клетку. Возвращает false, если клетка вне сетки.
func (g *CommitmentGrid) Commit(c domain.Coord, commitment Commitment) bool {
	cell, ok := g.grid.Get(c)
	if !ok {
		return false
	}
	cell.Epoch = g.epoch
	cell.Commitment = commitment
	return true
}

func (g *CommitmentGrid) IsCommitted(c domain.Coord) bool {
	cell, ok := g.grid.Get(c)
	return ok && cell.Epoch == g.epoch
}

// Get возвращает резервацию клетки в текущей эпохе.
func (g *CommitmentGrid) Get(c domain.Coord) (Commitment, bool) {
	cell, ok := g.grid.Get(c)
	if !ok || cell.Epoch != g.epoch {
		return Commitment{}, false
	}
	return cell.Commitment, true
}

func (g *CommitmentGrid) Epoch() uint64 {
	return g.epoch
}

func (g *CommitmentGrid) Size() domain.Size {
	return g.grid.Size()
}

// Cells - клетки сетки (для сохранения).
func (g *CommitmentGrid) Cells() []CommitmentCell {
	return g.grid.Cells
}
