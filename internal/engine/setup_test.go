package engine

import (
	"os"
	"testing"

	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/dungeon"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// testConfig - конфиг с фиксированным сидом и ареной.
func testConfig(rows ...string) Config {
	cfg := NewConfig()
	cfg.Seed = 42
	cfg.Terrain = rows
	return cfg
}

// createTestSimulation строит симуляцию по ASCII-арене (легенда dungeon.ParseTerrain).
func createTestSimulation(t *testing.T, rows ...string) *Simulation {
	t.Helper()
	cfg := testConfig(rows...)

	w, err := buildLevel(cfg, 1, dungeon.CreatePlayer())
	require.NoError(t, err)

	sim, err := NewSimulation(cfg, w)
	require.NoError(t, err)
	return sim
}

// entityOf находит первую сущность данного вида.
func entityOf(t *testing.T, w *domain.World, tile enums.ForegroundTile) *domain.Entity {
	t.Helper()
	for _, id := range w.EntityIDs() {
		if e, _ := w.Entity(id); e.Foreground == tile {
			return e
		}
	}
	t.Fatalf("no %s in world", tile)
	return nil
}

func countOf(w *domain.World, tile enums.ForegroundTile) int {
	n := 0
	for _, id := range w.EntityIDs() {
		if e, _ := w.Entity(id); e.Foreground == tile {
			n++
		}
	}
	return n
}

func move(dir domain.CardinalDirection) *domain.Input {
	return &domain.Input{Action: domain.ActionMove, Direction: dir}
}

func act(action domain.ActionType, dir domain.CardinalDirection) *domain.Input {
	return &domain.Input{Action: action, Direction: dir}
}
