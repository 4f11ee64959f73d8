package network

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/gridbugs/gws/pkg/api"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestBroadcaster(t *testing.T) {
	b := NewBroadcaster()

	idA, chA := b.Register()
	idB, chB := b.Register()
	require.NotEqual(t, idA, idB)
	assert.Equal(t, 2, b.SubscriberCount())

	b.Broadcast(api.ServerResponse{Type: "UPDATE", Turn: 1})
	assert.Equal(t, uint64(1), (<-chA).Turn)
	assert.Equal(t, uint64(1), (<-chB).Turn)

	b.SendTo(idB, api.ServerResponse{Type: "CANCEL"})
	assert.Equal(t, "CANCEL", (<-chB).Type)
	assert.Empty(t, chA)

	b.Unregister(idA)
	assert.False(t, b.HasSubscriber(idA))
	_, open := <-chA
	assert.False(t, open, "channel is closed on unregister")

	// Повторная отписка и неизвестный ID безопасны
	b.Unregister(idA)
	b.SendTo(uuid.New(), api.ServerResponse{})
	assert.Equal(t, 1, b.SubscriberCount())
}

func TestBroadcasterDropsWhenFull(t *testing.T) {
	b := NewBroadcaster()
	id, ch := b.Register()

	for range cap(ch) + 5 {
		b.SendTo(id, api.ServerResponse{Type: "UPDATE"})
	}
	assert.Len(t, ch, cap(ch))
}
