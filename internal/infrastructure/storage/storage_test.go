package storage

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/engine"
	"github.com/gridbugs/gws/pkg/dungeon"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func testSnapshot(t *testing.T) engine.Snapshot {
	t.Helper()
	level, err := dungeon.ParseTerrain([]string{
		"#########",
		"#@..1..d#",
		"#..~~...#",
		"#.&..F.>#",
		"#########",
	})
	require.NoError(t, err)
	w, err := dungeon.BuildWorld(level, dungeon.CreatePlayer())
	require.NoError(t, err)

	cfg := engine.NewConfig()
	sim, err := engine.NewSimulation(cfg, w)
	require.NoError(t, err)

	// Один ход, чтобы появились резервации и сменилась эпоха
	_, err = sim.Tick(&domain.Input{Action: domain.ActionMove, Direction: domain.CardinalEast}, 0)
	require.NoError(t, err)

	snap := sim.Snapshot()
	snap.Level = 3
	return snap
}

func TestWriteReadSnapshot(t *testing.T) {
	snap := testSnapshot(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, snap))

	got, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	// Симуляция поднимается из прочитанного снапшота
	sim, err := engine.RestoreSimulation(engine.NewConfig(), got)
	require.NoError(t, err)
	assert.Equal(t, snap.Turn, sim.Turn())
	assert.Equal(t, snap.World, sim.World().Dump())
}

func TestReadSnapshot_Errors(t *testing.T) {
	snap := testSnapshot(t)
	data, err := EncodeSnapshot(snap)
	require.NoError(t, err)

	t.Run("Bad magic", func(t *testing.T) {
		broken := append([]byte(nil), data...)
		copy(broken, "NOPE")
		_, err := DecodeSnapshot(broken)
		assert.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("Bad version", func(t *testing.T) {
		broken := append([]byte(nil), data...)
		binary.LittleEndian.PutUint32(broken[4:], 99)
		_, err := DecodeSnapshot(broken)
		assert.ErrorContains(t, err, "unsupported version")
	})

	t.Run("Header mismatch", func(t *testing.T) {
		broken := append([]byte(nil), data...)
		binary.LittleEndian.PutUint32(broken[8:], 100) // Width
		_, err := DecodeSnapshot(broken)
		assert.ErrorIs(t, err, ErrHeaderMismatch)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := DecodeSnapshot(data[:10])
		assert.Error(t, err)
	})
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	snap := testSnapshot(t)
	require.NoError(t, store.Save("quick", snap))

	got, err := store.Load("quick")
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	_, err = store.Load("missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
