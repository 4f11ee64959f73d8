package systems

import (
	"testing"

	"github.com/gridbugs/gws/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveEntityInDirectionWithAttackPolicy(t *testing.T) {
	tests := []struct {
		name     string
		row      string
		mover    domain.Coord
		dir      domain.CardinalDirection
		wantErr  error
		wantKind domain.ApplyKind
		wantAt   domain.Coord
	}{
		{"step onto floor", "@..", domain.Coord{X: 0, Y: 0}, domain.CardinalEast, nil, domain.ApplyDone, domain.Coord{X: 1, Y: 0}},
		{"player attacks npc", "@d.", domain.Coord{X: 0, Y: 0}, domain.CardinalEast, nil, domain.ApplyAnimation, domain.Coord{X: 0, Y: 0}},
		{"npc attacks player", "d@.", domain.Coord{X: 0, Y: 0}, domain.CardinalEast, nil, domain.ApplyAnimation, domain.Coord{X: 0, Y: 0}},
		{"npc does not hit npc", "dd.", domain.Coord{X: 0, Y: 0}, domain.CardinalEast, domain.CancelMoveIntoOccupiedActor, 0, domain.Coord{X: 0, Y: 0}},
		{"wall", "@#.", domain.Coord{X: 0, Y: 0}, domain.CardinalEast, domain.CancelMoveIntoSolid, 0, domain.Coord{X: 0, Y: 0}},
		{"block", "@B.", domain.Coord{X: 0, Y: 0}, domain.CardinalEast, domain.CancelMoveIntoSolid, 0, domain.Coord{X: 0, Y: 0}},
		{"edge of the arena", "@..", domain.Coord{X: 0, Y: 0}, domain.CardinalWest, domain.CancelDestinationOutOfBounds, 0, domain.Coord{X: 0, Y: 0}},
		{"tree is passable", "@T.", domain.Coord{X: 0, Y: 0}, domain.CardinalEast, nil, domain.ApplyDone, domain.Coord{X: 1, Y: 0}},
		{"player uses fountain", "@F.", domain.Coord{X: 0, Y: 0}, domain.CardinalEast, nil, domain.ApplyInteract, domain.Coord{X: 0, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createTestWorld(t, tt.row)
			mover, ok := w.CharacterAt(tt.mover)
			require.True(t, ok)
			id := mover.ID

			got, err := MoveEntityInDirectionWithAttackPolicy(w, id, tt.dir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantKind, got.Kind)
			}

			e, _ := w.Entity(id)
			assert.Equal(t, tt.wantAt, e.Coord)
		})
	}
}

func TestMoveAttackTargetsDefender(t *testing.T) {
	w := createTestWorld(t, "@d.")
	demon := npcAt(t, w, domain.Coord{X: 1, Y: 0})

	got, err := MoveEntityInDirectionWithAttackPolicy(w, w.PlayerID(), domain.CardinalEast)
	require.NoError(t, err)
	require.NotNil(t, got.Animation)
	assert.Equal(t, domain.AnimationDamage, got.Animation.Kind)
	assert.Equal(t, demon, got.Animation.Entity)
	assert.Equal(t, domain.CardinalEast, got.Animation.Direction)
}

func TestMoveKeepsLightInSync(t *testing.T) {
	w := createTestWorld(t,
		"@..",
		"...",
	)
	_, err := MoveEntityInDirectionWithAttackPolicy(w, w.PlayerID(), domain.CardinalSouth)
	require.NoError(t, err)

	player := w.Player()
	require.NotNil(t, player.LightID)
	l, ok := w.Light(*player.LightID)
	require.True(t, ok)
	assert.Equal(t, player.Coord, l.Coord)
}

func TestMoveUnknownEntity(t *testing.T) {
	w := createTestWorld(t, "@..")
	_, err := MoveEntityInDirectionWithAttackPolicy(w, 12345, domain.CardinalEast)
	assert.ErrorIs(t, err, domain.CancelNoSuchEntity)
}
