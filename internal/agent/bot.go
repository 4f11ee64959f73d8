package agent

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/engine"
	"github.com/gridbugs/gws/internal/systems"
	"github.com/gridbugs/gws/pkg/api"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Он подписывается на кадры так же, как websocket-клиент, и видит только то, что видит игрок.
//
// Жизненный цикл:
//  1. NewBot -> Регистрация в хабе сервера, получение личного канала (Inbox).
//  2. Run -> Запуск в отдельной горутине, слушает свой Inbox.
//  3. На каждый новый ход (или отказ в действии) вызывается makeMove.
type Bot struct {
	Session uuid.UUID
	Service *engine.GameService
	Inbox   chan api.ServerResponse

	// Delay пауза перед ходом, чтобы за ботом можно было следить глазами
	Delay time.Duration

	// Idle через сколько бот повторяет попытку, если ход так и не сменился
	Idle time.Duration

	rng      *rand.Rand
	started  bool
	lastTurn uint64
	lastLvl  int
	last     api.ServerResponse
	log      *logrus.Entry
}

func NewBot(service *engine.GameService, seed int64) *Bot {
	session, inbox := service.Hub.Register()
	b := &Bot{
		Session: session,
		Service: service,
		Inbox:   inbox,
		Delay:   200 * time.Millisecond,
		Idle:    2 * time.Second,
		rng:     rand.New(rand.NewSource(seed)),
		log:     logger.For("bot").WithField("session", session),
	}
	b.log.Info("Bot registered")
	return b
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Service.Hub.Unregister(b.Session)

	// Триггер первой отрисовки
	b.Service.ProcessCommand(b.Session, command(domain.ActionInit, nil))

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Bot shut down")
			return
		case <-time.After(b.Idle):
			// Упёрлись в фонтан или команда потерялась
			if b.started {
				b.makeMove(b.last)
			}
		case frame, ok := <-b.Inbox:
			if !ok {
				return
			}
			if frame.Type != "CANCEL" {
				b.last = frame
			}
			if !b.shouldAct(frame) {
				continue
			}
			select {
			case <-time.After(b.Delay):
			case <-ctx.Done():
				return
			}
			b.makeMove(frame)
		}
	}
}

// shouldAct: кадры анимаций повторяют ход, на них бот не реагирует.
func (b *Bot) shouldAct(frame api.ServerResponse) bool {
	switch frame.Type {
	case "CANCEL":
		return true
	case "END":
		b.started = false
		return false
	}
	fresh := !b.started || frame.Level != b.lastLvl || frame.Turn > b.lastTurn
	b.started = true
	b.lastTurn = frame.Turn
	b.lastLvl = frame.Level
	return fresh
}

// makeMove отправляет решение бота на сервер.
func (b *Bot) makeMove(frame api.ServerResponse) {
	if frame.Grid == nil || frame.Type == "CANCEL" {
		frame = b.last
	}
	b.Service.ProcessCommand(b.Session, b.decide(frame))
}

// decide - мозг бота.
//
// 1. Соседний враг - атакуем.
// 2. Видна лестница - идём к ней по карте расстояний.
// 3. Иначе - случайный шаг в проходимую клетку.
func (b *Bot) decide(frame api.ServerResponse) api.ClientCommand {
	if frame.Grid == nil {
		return command(domain.ActionWait, nil)
	}
	local := newLocalMap(frame)

	me, ok := local.find(enums.ForegroundPlayer.String())
	if !ok {
		return command(domain.ActionWait, nil)
	}

	for _, dir := range domain.CardinalDirections {
		if local.hostile[me.Add(dir.Coord())] {
			return moveCommand(dir)
		}
	}

	if stairs, ok := local.find(enums.ForegroundStairs.String()); ok {
		field := systems.NewDistanceField(local.size)
		if field.Update(stairs, local) {
			if dir, ok := field.BestDirection(me); ok {
				return moveCommand(dir)
			}
		}
	}

	start := b.rng.Intn(len(domain.CardinalDirections))
	for i := range domain.CardinalDirections {
		dir := domain.CardinalDirections[(start+i)%len(domain.CardinalDirections)]
		if !local.IsSolid(me.Add(dir.Coord())) {
			return moveCommand(dir)
		}
	}
	return command(domain.ActionWait, nil)
}

// --- Хелперы для команд ---

func command(action domain.ActionType, payload any) api.ClientCommand {
	cmd := api.ClientCommand{Action: action.String()}
	if payload != nil {
		// Payload - простые структуры api, Marshal не падает
		raw, _ := json.Marshal(payload)
		cmd.Payload = raw
	}
	return cmd
}

func moveCommand(dir domain.CardinalDirection) api.ClientCommand {
	d := dir.Coord()
	return command(domain.ActionMove, api.DirectionPayload{Dx: d.X, Dy: d.Y})
}
