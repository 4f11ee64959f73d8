package systems

import (
	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// PathWorld - то, что нужно поиску пути от мира.
type PathWorld interface {
	SolidSource
	ContainsNPC(domain.Coord) bool
	Entity(types.EntityID) (*domain.Entity, bool)
}

// CommittedAction - действие NPC, которое движок применит в этом ходу.
type CommittedAction struct {
	ID types.EntityID
	Commitment
}

// PathfindingContext - карта расстояний до игрока, резервации и локальный поиск.
type PathfindingContext struct {
	distance    *DistanceField
	commitments *CommitmentGrid
	playerCoord domain.Coord
	committed   []CommittedAction
	maxDepth    int

	// Буферы локального поиска
	stamps []uint64
	stamp  uint64
	parent []int
	depth  []int
	queue  []int

	log *logrus.Entry
}

func NewPathfindingContext(size domain.Size, maxDepth int) *PathfindingContext {
	if maxDepth <= 0 {
		maxDepth = domain.MaxSearchDepth
	}
	n := size.Area()
	return &PathfindingContext{
		distance:    NewDistanceField(size),
		commitments: NewCommitmentGrid(size),
		maxDepth:    maxDepth,
		stamps:      make([]uint64, n),
		parent:      make([]int, n),
		depth:       make([]int, n),
		log:         logger.For("pathfinding"),
	}
}

// RestoreCommitments подменяет сетку резераций (загрузка сохранения).
func (p *PathfindingContext) RestoreCommitments(g *CommitmentGrid) {
	p.commitments = g
}

func (p *PathfindingContext) DistanceField() *DistanceField {
	return p.distance
}

func (p *PathfindingContext) CommitmentGrid() *CommitmentGrid {
	return p.commitments
}

func (p *PathfindingContext) CommittedActions() []CommittedAction {
	return p.committed
}

// UpdatePlayerCoord пересчитывает карту расстояний (если координата валидна),
// очищает резервации и список действий прошлого хода.
func (p *PathfindingContext) UpdatePlayerCoord(player domain.Coord, w SolidSource) {
	p.distance.Update(player, w)
	p.playerCoord = player
	p.commitments.Clear()
	p.committed = p.committed[:0]
}

// ClearCommitments освобождает резервации, не трогая карту расстояний.
func (p *PathfindingContext) ClearCommitments() {
	p.commitments.Clear()
}

// DirectionTowardsPlayer - первый шаг ограниченного поиска из from.
//
// Ищется клетка с наименьшим расстоянием до игрока, достижимая не более чем за maxDepth шагов.
// Непроходимы: стены, клетки с NPC, зарезервированные клетки. Стартовая клетка допустима всегда.
// Равные варианты: меньшая глубина, затем порядок обхода N, E, S, W.
// Если улучшить расстояние нельзя, возвращается false.
func (p *PathfindingContext) DirectionTowardsPlayer(from domain.Coord, w PathWorld) (domain.CardinalDirection, bool) {
	size := p.distance.grid.Size()
	if !from.IsValid(size) {
		return 0, false
	}
	p.stamp++

	start := p.distance.grid.Index(from)
	p.visit(start, -1, 0)
	p.queue = append(p.queue[:0], start)

	best, bestDist := -1, p.distance.Distance(from)

	// 1. BFS с ограничением глубины
	for head := 0; head < len(p.queue); head++ {
		idx := p.queue[head]
		if d := p.distance.grid.Cells[idx].Distance; d < bestDist {
			best, bestDist = idx, d
		}
		if p.depth[idx] >= p.maxDepth {
			continue
		}
		c := p.distance.grid.CoordOf(idx)
		for _, dir := range domain.CardinalDirections {
			n := c.Add(dir.Coord())
			if !n.IsValid(size) {
				continue
			}
			nIdx := p.distance.grid.Index(n)
			if p.stamps[nIdx] == p.stamp || p.blocked(n, w) {
				continue
			}
			p.visit(nIdx, idx, p.depth[idx]+1)
			p.queue = append(p.queue, nIdx)
		}
	}
	if best < 0 {
		return 0, false
	}

	// 2. Разворачиваем путь до первого шага
	step := best
	for p.parent[step] != start {
		step = p.parent[step]
	}
	return domain.CardinalFromCoord(p.distance.grid.CoordOf(step).Sub(from))
}

func (p *PathfindingContext) visit(idx, parent, depth int) {
	p.stamps[idx] = p.stamp
	p.parent[idx] = parent
	p.depth[idx] = depth
}

func (p *PathfindingContext) blocked(c domain.Coord, w PathWorld) bool {
	return w.IsSolid(c) || w.ContainsNPC(c) || p.commitments.IsCommitted(c)
}

// CommitAction выбирает шаг для NPC и резервирует клетку назначения.
// Клетка игрока не резервируется: это атака, а не ход.
// Если шага нет, NPC пропускает ход (false).
func (p *PathfindingContext) CommitAction(id types.EntityID, w PathWorld, intent Intent) bool {
	e, ok := w.Entity(id)
	if !ok {
		return false
	}
	actionLogger := p.log.WithFields(logrus.Fields{
		"entity_id": id,
		"from":      e.Coord,
		"intent":    intent.Type,
	})

	dir, ok := p.DirectionTowardsPlayer(e.Coord, w)
	if !ok {
		actionLogger.Debug("No improving step, skipping turn.")
		return false
	}

	c := Commitment{Direction: dir, Intent: intent}
	if next := e.Coord.Add(dir.Coord()); next != p.playerCoord {
		p.commitments.Commit(next, c)
	}
	p.committed = append(p.committed, CommittedAction{ID: id, Commitment: c})

	actionLogger.WithField("direction", dir).Debug("Action committed.")
	return true
}
