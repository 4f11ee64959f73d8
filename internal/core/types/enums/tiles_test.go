package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackgroundTile(t *testing.T) {
	tests := []struct {
		tile    BackgroundTile
		name    string
		opacity uint8
		solid   bool
	}{
		{BackgroundFloor, "FLOOR", 0, false},
		{BackgroundGround, "GROUND", 0, false},
		{BackgroundIceWall, "ICE_WALL", 128, true},
		{BackgroundWall, "WALL", 255, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.tile.String())
			assert.Equal(t, tt.opacity, tt.tile.Opacity())
			assert.Equal(t, tt.solid, tt.tile.IsSolid())

			parsed, ok := ParseBackgroundTile(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.tile, parsed)
		})
	}

	_, ok := ParseBackgroundTile("lava")
	assert.False(t, ok)
	assert.Equal(t, "UNKNOWN", BackgroundTile(99).String())
}

func TestForegroundTile(t *testing.T) {
	assert.Equal(t, uint8(128), ForegroundTree.Opacity())
	assert.Equal(t, uint8(255), ForegroundBlock.Opacity())
	assert.Equal(t, uint8(0), ForegroundDemon.Opacity())
	assert.True(t, ForegroundBlock.IsSolid())
	assert.False(t, ForegroundTree.IsSolid())
	assert.Equal(t, "@", ForegroundPlayer.Symbol())
	assert.Equal(t, "CASTER", ForegroundCaster.String())
}

func TestParseCommitmentType(t *testing.T) {
	c, ok := ParseCommitmentType("heal")
	assert.True(t, ok)
	assert.Equal(t, CommitHeal, c)
	assert.Equal(t, "CAST", CommitCast.String())

	_, ok = ParseCommitmentType("dance")
	assert.False(t, ok)
}
