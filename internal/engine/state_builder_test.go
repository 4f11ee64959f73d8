package engine

import (
	"testing"

	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFrame(t *testing.T) {
	sim := createTestSimulation(t,
		"########",
		"#@..#..#",
		"#...#.d#",
		"########",
	)
	logs := []api.LogEntry{{ID: "1", Text: "hello", Type: "INFO"}}

	frame := BuildFrame(sim, 2, logs)
	require.NotNil(t, frame)

	assert.Equal(t, "UPDATE", frame.Type)
	assert.Equal(t, 2, frame.Level)
	assert.Zero(t, frame.Turn)
	assert.Equal(t, &api.GridMeta{Width: 8, Height: 4}, frame.Grid)
	assert.Equal(t, logs, frame.Logs)

	require.NotNil(t, frame.Player)
	assert.Equal(t, 4, frame.Player.HP)
	assert.Equal(t, 4, frame.Player.MaxHP)

	// За стеной ничего не открыто
	for _, tile := range frame.Map {
		assert.True(t, tile.IsExplored)
		if tile.Y == 1 || tile.Y == 2 {
			assert.Less(t, tile.X, 5, "tile %d,%d behind the wall leaked", tile.X, tile.Y)
		}
	}

	// Демон за стеной не виден, игрок виден всегда
	require.Len(t, frame.Entities, 1)
	assert.Equal(t, "PLAYER", frame.Entities[0].Foreground)
	assert.Equal(t, "@", frame.Entities[0].Render.Symbol)
	assert.Equal(t, 1, frame.Entities[0].Pos.X)
}

func TestBuildFrame_Commitments(t *testing.T) {
	sim := createTestSimulation(t,
		"#######",
		"#@...d#",
		"#######",
	)
	_, err := sim.Tick(&domain.Input{Action: domain.ActionWait}, 0)
	require.NoError(t, err)

	frame := BuildFrame(sim, 1, nil)
	var arrows []api.TileView
	for _, tile := range frame.Map {
		if tile.Commitment != nil {
			arrows = append(arrows, tile)
		}
	}
	require.Len(t, arrows, 1)
	assert.Equal(t, 4, arrows[0].X)
	assert.Equal(t, "MOVE", arrows[0].Commitment.Action)
	assert.True(t, arrows[0].IsVisible)
}
