package systems

import (
	"testing"

	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealDamage(t *testing.T) {
	w := createTestWorld(t, "@d.")
	demon := npcAt(t, w, domain.Coord{X: 1, Y: 0})

	assert.False(t, DealDamage(w, demon, 1))
	e, ok := w.Entity(demon)
	require.True(t, ok)
	assert.Equal(t, uint32(1), e.HitPoints.Current)

	assert.True(t, DealDamage(w, demon, 1))
	_, ok = w.Entity(demon)
	assert.False(t, ok, "dead NPC is removed from the world")
	assert.False(t, w.ContainsNPC(domain.Coord{X: 1, Y: 0}))

	// Игрок остаётся в мире с нулём здоровья
	assert.True(t, DealDamage(w, w.PlayerID(), 10))
	require.NotNil(t, w.Player())
	assert.True(t, w.Player().HitPoints.IsDead())

	assert.False(t, DealDamage(w, 999, 1), "unknown entity")
}

func TestHeal(t *testing.T) {
	w := createTestWorld(t, "@..")

	_, err := Heal(w, w.PlayerID(), 1)
	assert.ErrorIs(t, err, domain.CancelAlreadyAtFullHealth)

	DealDamage(w, w.PlayerID(), 2)
	got, err := Heal(w, w.PlayerID(), 5)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplyDone, got.Kind)
	assert.Equal(t, uint32(4), w.Player().HitPoints.Current, "heal is clamped to max")

	_, err = Heal(w, 999, 1)
	assert.ErrorIs(t, err, domain.CancelNoSuchEntity)
}

func TestHealWoundedAround(t *testing.T) {
	w := createTestWorld(t, "d.h.........d")
	near := npcAt(t, w, domain.Coord{X: 0, Y: 0})
	far := npcAt(t, w, domain.Coord{X: 12, Y: 0})
	DealDamage(w, near, 1)
	DealDamage(w, far, 1)

	healed := HealWoundedAround(w, domain.Coord{X: 2, Y: 0}, domain.HealBurstRange, 1)
	assert.Equal(t, 1, healed)

	e, _ := w.Entity(near)
	assert.True(t, e.HitPoints.IsFull())
	e, _ = w.Entity(far)
	assert.False(t, e.HitPoints.IsFull(), "manhattan distance 10 is outside the burst")
}

func TestSparkAndProjectileSteps(t *testing.T) {
	w := createTestWorld(t, "@.d#")

	got, err := SparkInDirection(w, w.PlayerID(), domain.CardinalEast)
	require.NoError(t, err)
	require.NotNil(t, got.Animation)
	assert.Equal(t, domain.AnimationProjectile, got.Animation.Kind)
	assert.Equal(t, uint32(domain.ProjectileRange), got.Animation.Frames)

	spark := got.Animation.Entity
	e, ok := w.Entity(spark)
	require.True(t, ok)
	assert.Equal(t, enums.ForegroundSpark, e.Foreground)
	assert.Equal(t, domain.Coord{X: 0, Y: 0}, e.Coord)

	move, _, err := CheckProjectileStep(w, spark, domain.CardinalEast)
	require.NoError(t, err)
	assert.Equal(t, ProjectileContinue, move)

	require.NoError(t, w.MoveEntityToCoord(spark, domain.Coord{X: 1, Y: 0}))
	move, target, err := CheckProjectileStep(w, spark, domain.CardinalEast)
	require.NoError(t, err)
	assert.Equal(t, ProjectileHitCharacter, move)
	require.NotNil(t, target)
	assert.True(t, target.IsNPC)

	require.NoError(t, w.MoveEntityToCoord(spark, domain.Coord{X: 2, Y: 0}))
	move, _, err = CheckProjectileStep(w, spark, domain.CardinalEast)
	require.NoError(t, err)
	assert.Equal(t, ProjectileHitObstacle, move)

	_, _, err = CheckProjectileStep(w, spark, domain.CardinalNorth)
	assert.ErrorIs(t, err, domain.CancelDestinationOutOfBounds)
}

func TestTraceProjectile(t *testing.T) {
	tests := []struct {
		name     string
		row      string
		maxRange int
		wantPath int
		wantHit  bool
	}{
		{"hits demon", "@...d", 12, 3, true},
		{"stops at wall", "@..#.", 12, 2, false},
		{"stops at map edge", "@...", 12, 3, false},
		{"range limit", "@......", 3, 3, false},
		{"hits just beyond range", "@...d", 3, 3, true},
		{"point blank", "@d", 12, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createTestWorld(t, tt.row)
			trace := TraceProjectile(w, w.Player().Coord, domain.CardinalEast, tt.maxRange)

			assert.Len(t, trace.Path, tt.wantPath)
			for i, c := range trace.Path {
				assert.Equal(t, domain.Coord{X: i + 1, Y: 0}, c)
			}
			assert.Equal(t, tt.wantHit, !trace.Hit.IsNil())
			if tt.wantHit {
				e, ok := w.Entity(trace.Hit)
				require.True(t, ok)
				assert.True(t, e.IsNPC)
			}
		})
	}
}

func TestBumpNPCInDirection(t *testing.T) {
	tests := []struct {
		name     string
		row      string
		wantErr  error
		wantKind domain.ApplyKind
		wantNPC  domain.Coord
	}{
		{"push into free cell", "@d.", nil, domain.ApplyDone, domain.Coord{X: 2, Y: 0}},
		{"wall behind", "@d#", nil, domain.ApplyAnimation, domain.Coord{X: 1, Y: 0}},
		{"npc behind", "@dd", nil, domain.ApplyAnimation, domain.Coord{X: 1, Y: 0}},
		{"nothing to bump", "@.d", domain.CancelNothingToAttack, 0, domain.Coord{X: 2, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createTestWorld(t, tt.row)
			first, _ := w.NPCAt(domain.Coord{X: 1, Y: 0})
			if first == nil {
				first, _ = w.NPCAt(domain.Coord{X: 2, Y: 0})
			}
			require.NotNil(t, first)
			id := first.ID

			got, err := BumpNPCInDirection(w, w.PlayerID(), domain.CardinalEast)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantKind, got.Kind)
			}
			e, ok := w.Entity(id)
			require.True(t, ok)
			assert.Equal(t, tt.wantNPC, e.Coord)
			pushed := tt.wantErr == nil && tt.wantKind == domain.ApplyDone
			assert.Equal(t, pushed, e.Status.Frozen > 0, "pushed NPC is stunned")
		})
	}
}
