package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/network"
	"github.com/gridbugs/gws/pkg/api"
	"github.com/gridbugs/gws/pkg/dungeon"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ErrNoInstance - уровень ещё не запущен или уже закончился.
var ErrNoInstance = errors.New("no running instance")

// GameService ведёт игрока по уровням подземелья.
// В каждый момент запущен ровно один инстанс.
type GameService struct {
	cfg Config
	Hub *network.Broadcaster

	mu      sync.RWMutex
	current *Instance
	restore *Snapshot

	log *logrus.Entry
}

func NewService(cfg Config) *GameService {
	return &GameService{
		cfg: cfg,
		Hub: network.NewBroadcaster(),
		log: logger.For("service"),
	}
}

// Restore запускает игру с сохранения вместо первого уровня. Вызывается до Run.
func (s *GameService) Restore(snap Snapshot) {
	s.restore = &snap
}

// Run проходит уровни до отмены контекста.
// Выход по лестнице ведёт на следующий уровень с тем же игроком, смерть начинает забег заново.
func (s *GameService) Run(ctx context.Context) error {
	level := 1
	player := dungeon.CreatePlayer()

	for {
		inst, err := s.startLevel(level, player)
		if err != nil {
			return err
		}
		level = inst.ID

		end, err := inst.Run(ctx)
		s.setCurrent(nil)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		switch end.Kind {
		case EndExitLevel:
			level++
			player = end.Player
			s.log.WithField("level", level).Info("Descending")
		case EndPlayerDied:
			level = 1
			player = dungeon.CreatePlayer()
			s.log.Info("Player died, starting a new run")
		}
	}
}

// startLevel собирает симуляцию уровня (или поднимает её из сохранения).
func (s *GameService) startLevel(level int, player domain.PackedEntity) (*Instance, error) {
	var (
		sim *Simulation
		err error
	)
	if s.restore != nil {
		snap := *s.restore
		s.restore = nil
		level = snap.Level
		sim, err = RestoreSimulation(s.cfg, snap)
		if err != nil {
			return nil, fmt.Errorf("restore level %d: %w", level, err)
		}
	} else {
		w, err := buildLevel(s.cfg, level, player)
		if err != nil {
			return nil, fmt.Errorf("build level %d: %w", level, err)
		}
		if sim, err = NewSimulation(s.cfg, w); err != nil {
			return nil, fmt.Errorf("level %d: %w", level, err)
		}
	}

	inst := NewInstance(level, sim, s.Hub)
	s.setCurrent(inst)
	s.log.WithFields(logrus.Fields{
		"level": level,
		"seed":  s.cfg.LevelSeed(level),
	}).Info("Level started")
	return inst, nil
}

func (s *GameService) setCurrent(inst *Instance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = inst
}

// Current возвращает запущенный инстанс или nil между уровнями.
func (s *GameService) Current() *Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, бот)
func (s *GameService) ProcessCommand(session uuid.UUID, cmd api.ClientCommand) {
	inst := s.Current()
	if inst == nil {
		s.log.WithField("action", cmd.Action).Debug("Command between levels dropped")
		return
	}
	inst.Submit(session, cmd)
}

// Snapshot снимает состояние текущего уровня.
func (s *GameService) Snapshot(ctx context.Context) (Snapshot, error) {
	inst := s.Current()
	if inst == nil {
		return Snapshot{}, ErrNoInstance
	}
	return inst.Snapshot(ctx)
}
