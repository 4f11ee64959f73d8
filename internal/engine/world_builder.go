package engine

import (
	"fmt"
	"math/rand"

	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/dungeon"
)

// LevelSeed - сид уровня. Level N Seed = MasterSeed + N
func (c Config) LevelSeed(level int) int64 {
	return c.Seed + int64(level)
}

// buildLevel создает мир уровня и ставит в него игрока.
// Если в конфиге задана арена, она используется на каждом уровне.
func buildLevel(cfg Config, level int, player domain.PackedEntity) (*domain.World, error) {
	var lvl dungeon.Level
	if len(cfg.Terrain) > 0 {
		parsed, err := dungeon.ParseTerrain(cfg.Terrain)
		if err != nil {
			return nil, fmt.Errorf("parse terrain: %w", err)
		}
		lvl = parsed
		lvl.Number = level
	} else {
		rng := rand.New(rand.NewSource(cfg.LevelSeed(level)))
		lvl = dungeon.Generate(level, cfg.Width, cfg.Height, rng)
	}
	return dungeon.BuildWorld(lvl, player)
}
