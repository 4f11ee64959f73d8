package dungeon

import (
	"fmt"

	"github.com/gridbugs/gws/internal/domain"
)

// CreatePlayer создаёт игрока для первого уровня.
// На следующих уровнях используется упакованный игрок с прошлого уровня.
func CreatePlayer() domain.PackedEntity {
	return domain.PackedPlayer()
}

// BuildWorld собирает мир по описанию уровня и ставит игрока на старт.
func BuildWorld(level Level, player domain.PackedEntity) (*domain.World, error) {
	w := domain.NewWorld(level.Size)
	for i, ins := range level.Instructions {
		if err := w.Interpret(ins); err != nil {
			return nil, fmt.Errorf("level %d instruction %d: %w", level.Number, i, err)
		}
	}
	if _, err := w.AddEntity(level.Start, player); err != nil {
		return nil, fmt.Errorf("level %d: %w", level.Number, err)
	}
	return w, nil
}
