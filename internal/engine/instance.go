package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/network"
	"github.com/gridbugs/gws/pkg/api"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// InstanceCommand обертка, чтобы передать команду и сессию, которая её прислала
type InstanceCommand struct {
	Cmd     api.ClientCommand
	Session uuid.UUID
}

// Instance представляет собой один запущенный уровень.
// Симуляция принадлежит горутине Run: снаружи к ней обращаются только через каналы.
type Instance struct {
	ID  int // Номер уровня
	sim *Simulation
	hub *network.Broadcaster

	// Каналы коммуникации
	CommandChan  chan InstanceCommand // Команды от игрока и бота
	snapshotChan chan chan Snapshot   // Запросы на сохранение

	Logs []api.LogEntry // Логи, накопленные с прошлого кадра

	log *logrus.Entry
}

func NewInstance(id int, sim *Simulation, hub *network.Broadcaster) *Instance {
	return &Instance{
		ID:           id,
		sim:          sim,
		hub:          hub,
		CommandChan:  make(chan InstanceCommand, 100),
		snapshotChan: make(chan chan Snapshot),
		Logs:         []api.LogEntry{},
		log:          logger.For("instance").WithField("instance_id", id),
	}
}

// Run запускает игровой цикл ЭТОГО инстанса. Возвращается, когда уровень закончен.
func (i *Instance) Run(ctx context.Context) (*End, error) {
	period := i.sim.cfg.TickPeriod
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	i.log.Info("Instance loop started")
	i.publish()

	for {
		select {
		case <-ctx.Done():
			i.log.Info("Instance loop stopped")
			return nil, ctx.Err()

		// 1. Часы анимаций идут, только пока есть что показывать
		case <-ticker.C:
			if !i.sim.Animating() {
				continue
			}
			res, err := i.sim.Tick(nil, period)
			if err != nil {
				i.log.WithError(err).Error("Animation tick failed")
				continue
			}
			if end := i.finish(res); end != nil {
				return end, nil
			}
			i.publish()

		// 2. Команда
		case wrapper := <-i.CommandChan:
			if end := i.execute(wrapper); end != nil {
				return end, nil
			}

		// 3. Сохранение
		case reply := <-i.snapshotChan:
			snap := i.sim.Snapshot()
			snap.Level = i.ID
			reply <- snap
			i.publish()
		}
	}
}

// Submit кладёт команду в очередь инстанса, не блокируя читателя сокета.
func (i *Instance) Submit(session uuid.UUID, cmd api.ClientCommand) bool {
	select {
	case i.CommandChan <- InstanceCommand{Cmd: cmd, Session: session}:
		return true
	default:
		i.log.WithField("session", session).Warn("Command queue full, command dropped")
		return false
	}
}

// Snapshot просит цикл инстанса снять состояние между тиками.
func (i *Instance) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case i.snapshotChan <- reply:
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// executeCommand выполняет команду в контексте уровня
func (i *Instance) execute(wrapper InstanceCommand) *End {
	input, err := wrapper.Cmd.ToInput()
	if err != nil {
		i.cancel(wrapper.Session, err)
		return nil
	}

	res, err := i.sim.Tick(&input, 0)
	if err != nil {
		i.cancel(wrapper.Session, err)
		return nil
	}
	if res.Interaction != 0 {
		i.log.WithField("target", res.Interaction).Debug("Player bumped into interactive entity")
	}
	if end := i.finish(res); end != nil {
		return end
	}
	i.publish()
	return nil
}

// finish переносит логи тика и, если уровень закончен, рассылает итоговый кадр.
func (i *Instance) finish(res *TickResult) *End {
	for _, l := range res.Logs {
		i.AddLog(l.Text, l.Type)
	}
	if res.End == nil {
		return nil
	}

	frame := BuildFrame(i.sim, i.ID, i.takeLogs())
	frame.Type = "END"
	frame.End = res.End.Kind.String()
	i.hub.Broadcast(*frame)

	i.log.WithFields(logrus.Fields{
		"end":  res.End.Kind,
		"turn": i.sim.Turn(),
	}).Info("Level finished")
	return res.End
}

// cancel сообщает отправителю, почему действие не выполнено. Мир не изменился.
func (i *Instance) cancel(session uuid.UUID, err error) {
	reason := err.Error()
	if c, ok := domain.AsCancel(err); ok {
		reason = c.String()
	}
	i.hub.SendTo(session, api.ServerResponse{
		Type:   "CANCEL",
		Turn:   i.sim.Turn(),
		Level:  i.ID,
		Cancel: reason,
	})
}

// publish рассылает кадр всем подписчикам
func (i *Instance) publish() {
	frame := BuildFrame(i.sim, i.ID, i.takeLogs())
	i.hub.Broadcast(*frame)
}
