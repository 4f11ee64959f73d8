package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/engine/handlers"
	"github.com/gridbugs/gws/internal/engine/handlers/actions"
	"github.com/gridbugs/gws/internal/systems"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ErrNoPlayer - в мире нет игрока, симулировать нечего.
var ErrNoPlayer = errors.New("world has no player")

// EndKind - чем закончился уровень.
type EndKind uint8

const (
	EndPlayerDied EndKind = iota + 1
	EndExitLevel
)

func (k EndKind) String() string {
	switch k {
	case EndPlayerDied:
		return "PLAYER_DIED"
	case EndExitLevel:
		return "EXIT_LEVEL"
	default:
		return "NONE"
	}
}

// End - итог уровня. Для выхода по лестнице хранит упакованного игрока.
type End struct {
	Kind   EndKind
	Player domain.PackedEntity
}

// GameLog - строка игрового журнала.
type GameLog struct {
	Text string
	Type string
}

// TickResult - что произошло за тик.
type TickResult struct {
	Acted       bool           // Игрок потратил ход, NPC сходили
	Interaction types.EntityID // Игрок упёрся в объект взаимодействия
	End         *End
	Logs        []GameLog
}

func (r *TickResult) log(text, logType string) {
	if text != "" {
		r.Logs = append(r.Logs, GameLog{Text: text, Type: logType})
	}
}

// Simulation - единственный владелец мира уровня.
// Все методы вызываются из одной горутины (см. Instance).
type Simulation struct {
	cfg         Config
	world       *domain.World
	visibility  *systems.VisibilityField
	pathfinding *systems.PathfindingContext
	anim        *animator
	turn        uint64

	handlers map[domain.ActionType]handlers.HandlerFunc
	log      *logrus.Entry
}

// NewSimulation берёт мир во владение и считает первое поле зрения.
func NewSimulation(cfg Config, w *domain.World) (*Simulation, error) {
	if w.Player() == nil {
		return nil, ErrNoPlayer
	}
	s := newSimulation(cfg, w, systems.NewVisibilityField(w.Size(), cfg.visibilityConfig()))
	s.pathfinding.UpdatePlayerCoord(w.Player().Coord, w)
	s.visibility.Update(w.Player().Coord, w)
	return s, nil
}

func newSimulation(cfg Config, w *domain.World, vis *systems.VisibilityField) *Simulation {
	s := &Simulation{
		cfg:         cfg,
		world:       w,
		visibility:  vis,
		pathfinding: systems.NewPathfindingContext(w.Size(), cfg.MaxSearchDepth),
		anim:        newAnimator(),
		log:         logger.For("simulation"),
	}
	s.registerHandlers()
	return s
}

func (s *Simulation) registerHandlers() {
	s.handlers = map[domain.ActionType]handlers.HandlerFunc{
		domain.ActionInit:     handlers.WithEmptyPayload(actions.HandleInit),
		domain.ActionMove:     handlers.WithDirection(actions.HandleMove),
		domain.ActionWait:     handlers.WithEmptyPayload(actions.HandleWait),
		domain.ActionBlink:    handlers.WithTarget(actions.HandleBlink),
		domain.ActionSpark:    handlers.WithDirection(actions.HandleSpark),
		domain.ActionBump:     handlers.WithDirection(actions.HandleBump),
		domain.ActionHeal:     handlers.WithEmptyPayload(actions.HandleHeal),
		domain.ActionInteract: handlers.WithDirection(actions.HandleInteract),
	}
}

func (s *Simulation) World() *domain.World { return s.world }
func (s *Simulation) Visibility() *systems.VisibilityField { return s.visibility }
func (s *Simulation) Pathfinding() *systems.PathfindingContext { return s.pathfinding }
func (s *Simulation) Turn() uint64 { return s.turn }
func (s *Simulation) Clock() time.Duration { return s.anim.Clock() }
func (s *Simulation) Animating() bool { return s.anim.Len() > 0 }

// Tick - один вызов из цикла инстанса.
//
// 1. Действие игрока (если есть ввод). Отказ возвращается сразу: ни мир, ни часы анимаций,
// ни эпоха видимости не меняются.
// 2. Часы анимаций сдвигаются на period (только косметика).
// 3. Если ход потрачен: карта расстояний, резервации NPC, применение их действий.
// 4. Пересчёт видимости и проверка конца уровня.
func (s *Simulation) Tick(input *domain.Input, period time.Duration) (*TickResult, error) {
	res := &TickResult{}
	if input != nil {
		if err := s.playerTurn(*input, res); err != nil {
			return nil, err
		}
	}
	s.anim.Advance(period)

	if res.Acted {
		s.engineTurn(res)
	}

	s.anim.Advance(0)
	s.visibility.Update(s.world.Player().Coord, s.world)
	res.End = s.checkEnd()
	return res, nil
}

func (s *Simulation) playerTurn(in domain.Input, res *TickResult) error {
	handler, ok := s.handlers[in.Action]
	if !ok {
		return fmt.Errorf("action %s: %w", in.Action, domain.CancelInvalidInput)
	}

	player := s.world.Player()
	ctx := handlers.Context{
		World:         s.world,
		Visibility:    s.visibility,
		State:         s.visibility.Snapshot(),
		Actor:         player,
		MaxBlinkRange: s.cfg.MaxBlinkRange,
	}

	result, err := handler(ctx, in)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"action": in.Action,
			"reason": err,
		}).Warn("Player action rejected.")
		return err
	}
	res.log(result.Msg, result.MsgType)

	switch result.Apply.Kind {
	case domain.ApplyInteract:
		res.Interaction = result.Apply.Target
	default:
		if result.Free {
			return nil
		}
		s.resolve(player.ID, result.Apply)
		res.Acted = true
		s.turn++
	}
	return nil
}

// engineTurn - ход NPC в фиксированном порядке.
func (s *Simulation) engineTurn(res *TickResult) {
	player := s.world.Player()
	s.pathfinding.UpdatePlayerCoord(player.Coord, s.world)
	committed := systems.CommitNPCActions(s.pathfinding, s.world)

	for _, action := range s.pathfinding.CommittedActions() {
		// Сущность могла погибнуть от действия того, кто сходил раньше
		if _, ok := s.world.Entity(action.ID); !ok {
			continue
		}
		s.applyCommitted(action, res)
	}

	// Оглушённые пропустили этот ход
	for _, id := range s.world.NPCIDs() {
		if e, _ := s.world.Entity(id); e.Status.Frozen > 0 {
			e.Status.Frozen--
		}
	}

	s.log.WithFields(logrus.Fields{
		"turn":      s.turn,
		"committed": committed,
	}).Debug("Engine turn finished.")
}

func (s *Simulation) applyCommitted(action systems.CommittedAction, res *TickResult) {
	var (
		apply domain.ApplyAction
		err   error
	)
	switch action.Type {
	case enums.CommitMove:
		apply, err = systems.MoveEntityInDirectionWithAttackPolicy(s.world, action.ID, action.Direction)
	case enums.CommitCast:
		apply, err = systems.SparkInDirection(s.world, action.ID, action.Direction)
	case enums.CommitHeal:
		apply, err = s.healerTurn(action, res)
	}
	if err != nil {
		// Отказ NPC - не ошибка: мир за время хода изменился
		s.log.WithFields(logrus.Fields{
			"entity_id": action.ID,
			"intent":    action.Type,
			"reason":    err,
		}).Debug("Committed action cancelled.")
		return
	}
	if apply.Kind == domain.ApplyAnimation && apply.Animation.Kind == domain.AnimationDamage && apply.Animation.Entity == s.world.PlayerID() {
		res.log("Вас ранили.", "COMBAT")
	}
	s.resolve(action.ID, apply)
}

// healerTurn - заряд лекаря. Когда счётчик доходит до нуля, лечит раненых рядом.
func (s *Simulation) healerTurn(action systems.CommittedAction, res *TickResult) (domain.ApplyAction, error) {
	if action.Count > 0 {
		count := action.Count
		s.world.SetHealCountdown(action.ID, &count)
		return domain.Done(), nil
	}

	healer, _ := s.world.Entity(action.ID)
	healed := systems.HealWoundedAround(s.world, healer.Coord, domain.HealBurstRange, 1)
	s.world.SetHealCountdown(action.ID, nil)

	glow, err := s.world.AddEntity(healer.Coord, actions.HealGlow())
	if err != nil {
		return domain.ApplyAction{}, err
	}
	if healed > 0 {
		res.log(fmt.Sprintf("Лекарь восстанавливает силы союзников (%d).", healed), "COMBAT")
	}
	return domain.Animate(domain.AnimationSpec{
		Kind:   domain.AnimationGlowFade,
		Entity: glow,
		Frames: domain.GlowFadeFrames,
	}), nil
}

// checkEnd: игрок на лестнице проходит уровень, даже если здоровье на нуле.
func (s *Simulation) checkEnd() *End {
	player := s.world.Player()
	if s.world.HasForeground(player.Coord, enums.ForegroundStairs) {
		packed, err := s.world.PackEntity(player.ID)
		if err != nil {
			s.log.WithError(err).Error("Failed to pack player.")
			return nil
		}
		return &End{Kind: EndExitLevel, Player: packed}
	}
	if player.HitPoints != nil && player.HitPoints.IsDead() {
		return &End{Kind: EndPlayerDied}
	}
	return nil
}
