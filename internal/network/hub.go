package network

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gridbugs/gws/pkg/api"
	"github.com/gridbugs/gws/pkg/logger"
)

// Broadcaster занимается только рассылкой кадров подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID сессии -> Личный канал
	subscribers map[uuid.UUID]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uuid.UUID]chan api.ServerResponse),
	}
}

// Register создает личный канал для новой сессии (клиента или бота)
func (b *Broadcaster) Register() (uuid.UUID, chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New()
	ch := make(chan api.ServerResponse, 100)
	b.subscribers[id] = ch
	return id, ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// SendTo отправляет сообщение конкретной сессии (Unicast)
func (b *Broadcaster) SendTo(id uuid.UUID, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[id]; ok {
		select {
		case ch <- msg:
		default:
			logger.For("hub").WithField("session", id).Warn("Channel full, frame dropped.")
		}
	}
}

// Broadcast отправляет всем
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			// Пропускаем медленных клиентов
		}
	}
}

// HasSubscriber проверяет, жива ли сессия
func (b *Broadcaster) HasSubscriber(id uuid.UUID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
