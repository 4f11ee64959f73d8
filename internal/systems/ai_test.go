package systems

import (
	"testing"

	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseIntent(t *testing.T) {
	u32 := func(v uint32) *uint32 { return &v }

	tests := []struct {
		name      string
		rows      []string
		npc       domain.Coord
		setup     func(t *testing.T, w *domain.World)
		wantOK    bool
		wantType  enums.CommitmentType
		wantCount uint32
	}{
		{
			name:     "demon chases visible player",
			rows:     []string{"d...@"},
			npc:      domain.Coord{X: 0, Y: 0},
			wantOK:   true,
			wantType: enums.CommitMove,
		},
		{
			name:   "player behind wall",
			rows:   []string{"d.#.@"},
			npc:    domain.Coord{X: 0, Y: 0},
			wantOK: false,
		},
		{
			name: "frozen npc waits",
			rows: []string{"d...@"},
			npc:  domain.Coord{X: 0, Y: 0},
			setup: func(t *testing.T, w *domain.World) {
				e, _ := w.NPCAt(domain.Coord{X: 0, Y: 0})
				e.Status.Frozen = 2
			},
			wantOK: false,
		},
		{
			name:     "caster with clean shot",
			rows:     []string{"c...@"},
			npc:      domain.Coord{X: 0, Y: 0},
			wantOK:   true,
			wantType: enums.CommitCast,
		},
		{
			name:     "caster blocked by npc",
			rows:     []string{"c.d.@"},
			npc:      domain.Coord{X: 0, Y: 0},
			wantOK:   true,
			wantType: enums.CommitMove,
		},
		{
			name:     "caster off axis",
			rows:     []string{"c....", "....@"},
			npc:      domain.Coord{X: 0, Y: 0},
			wantOK:   true,
			wantType: enums.CommitMove,
		},
		{
			name:     "caster out of range",
			rows:     []string{"c.........@"},
			npc:      domain.Coord{X: 0, Y: 0},
			wantOK:   true,
			wantType: enums.CommitMove,
		},
		{
			name: "healer starts charging near wounded",
			rows: []string{"hd..@"},
			npc:  domain.Coord{X: 0, Y: 0},
			setup: func(t *testing.T, w *domain.World) {
				DealDamage(w, npcAt(t, w, domain.Coord{X: 1, Y: 0}), 1)
			},
			wantOK:    true,
			wantType:  enums.CommitHeal,
			wantCount: domain.HealChargeTurns,
		},
		{
			name:     "healer without patients",
			rows:     []string{"hd..@"},
			npc:      domain.Coord{X: 0, Y: 0},
			wantOK:   true,
			wantType: enums.CommitMove,
		},
		{
			name: "healer counts down",
			rows: []string{"h...@"},
			npc:  domain.Coord{X: 0, Y: 0},
			setup: func(t *testing.T, w *domain.World) {
				w.SetHealCountdown(npcAt(t, w, domain.Coord{X: 0, Y: 0}), u32(2))
			},
			wantOK:    true,
			wantType:  enums.CommitHeal,
			wantCount: 1,
		},
		{
			name: "healer with spent charge waits",
			rows: []string{"h...@"},
			npc:  domain.Coord{X: 0, Y: 0},
			setup: func(t *testing.T, w *domain.World) {
				w.SetHealCountdown(npcAt(t, w, domain.Coord{X: 0, Y: 0}), u32(0))
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createTestWorld(t, tt.rows...)
			if tt.setup != nil {
				tt.setup(t, w)
			}
			npc, ok := w.NPCAt(tt.npc)
			require.True(t, ok)

			intent, ok := ChooseIntent(w, npc, w.Player().Coord)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantType, intent.Type)
			assert.Equal(t, tt.wantCount, intent.Count)
		})
	}
}

func TestCommitNPCActions(t *testing.T) {
	w := createTestWorld(t,
		"d....",
		"..@..",
		"....c",
		"#####",
		"..d..",
	)
	pf := newPathfinding(t, w)

	// Демон за стеной игрока не видит
	assert.Equal(t, 2, CommitNPCActions(pf, w))
	for _, a := range pf.CommittedActions() {
		e, _ := w.Entity(a.ID)
		assert.NotEqual(t, domain.Coord{X: 2, Y: 4}, e.Coord)
	}

	// Убитый демон выпадает из прохода
	pf.UpdatePlayerCoord(domain.Coord{X: 2, Y: 1}, w)
	require.NoError(t, w.RemoveEntity(npcAt(t, w, domain.Coord{X: 0, Y: 0})))
	assert.Equal(t, 1, CommitNPCActions(pf, w))
}
