package engine

import (
	"fmt"

	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/systems"
)

// Snapshot - полное состояние симуляции для сохранения.
// Буферы обхода и карта расстояний не хранятся: они пересчитываются при загрузке.
type Snapshot struct {
	Level           int
	Turn            uint64
	World           domain.WorldDump
	Visibility      []systems.VisibilityCell
	VisibilityEpoch uint64
	Commitments     []systems.CommitmentCell
	CommitmentEpoch uint64
}

// Snapshot доигрывает косметические анимации и снимает состояние.
//
// Flush удаляет эффекты (снаряды, вспышки) вместе с их светом, поэтому освещение
// пересчитывается: иначе в сохранение попал бы свет уже несуществующих сущностей.
// Эпоха видимости при этом растёт на единицу, как после обычного тика.
func (s *Simulation) Snapshot() Snapshot {
	s.anim.Flush()
	s.visibility.Update(s.world.Player().Coord, s.world)

	grid := s.pathfinding.CommitmentGrid()
	return Snapshot{
		Turn:            s.turn,
		World:           s.world.Dump(),
		Visibility:      append([]systems.VisibilityCell(nil), s.visibility.Cells()...),
		VisibilityEpoch: s.visibility.Snapshot().Epoch,
		Commitments:     append([]systems.CommitmentCell(nil), grid.Cells()...),
		CommitmentEpoch: grid.Epoch(),
	}
}

// RestoreSimulation собирает симуляцию из сохранения.
func RestoreSimulation(cfg Config, snap Snapshot) (*Simulation, error) {
	w, err := domain.WorldFromDump(snap.World)
	if err != nil {
		return nil, fmt.Errorf("restore world: %w", err)
	}
	if w.Player() == nil {
		return nil, ErrNoPlayer
	}

	vis, err := systems.RestoreVisibilityField(w.Size(), snap.Visibility, snap.VisibilityEpoch, cfg.visibilityConfig())
	if err != nil {
		return nil, fmt.Errorf("restore visibility: %w", err)
	}
	commitments, err := systems.RestoreCommitmentGrid(w.Size(), snap.Commitments, snap.CommitmentEpoch)
	if err != nil {
		return nil, fmt.Errorf("restore commitments: %w", err)
	}

	s := newSimulation(cfg, w, vis)
	s.turn = snap.Turn
	s.pathfinding.DistanceField().Update(w.Player().Coord, w)
	s.pathfinding.RestoreCommitments(commitments)
	return s, nil
}
