package systems

import (
	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ChooseIntent решает, что NPC заявит в этом ходу.
// Возвращает false, если NPC не видит игрока или пропускает ход.
//
// Кастер стреляет, если стоит с игроком на одной оси, ближе CasterRange и линия чистая.
// Лекарь заряжается (HealChargeTurns ходов), если рядом раненый NPC, и отсчитывает заряд.
// Остальные идут к игроку.
func ChooseIntent(w *domain.World, npc *domain.Entity, player domain.Coord) (Intent, bool) {
	if npc.Status.Frozen > 0 {
		return Intent{}, false
	}
	if !CanSee(w, npc.Coord, player, domain.NPCVisionSteps) {
		return Intent{}, false
	}

	switch npc.Foreground {
	case enums.ForegroundCaster:
		aligned := npc.Coord.X == player.X || npc.Coord.Y == player.Y
		if aligned && npc.Coord.ManhattanDistance(player) < domain.CasterRange && CleanShot(w, npc.Coord, player) {
			return CastIntent(), true
		}
		return MoveIntent(), true

	case enums.ForegroundHealer:
		if countdown := npc.Status.HealCountdown; countdown != nil {
			if *countdown == 0 {
				return Intent{}, false
			}
			return HealIntent(*countdown - 1), true
		}
		if woundedNear(w, npc.Coord, domain.HealerRange) {
			return HealIntent(domain.HealChargeTurns), true
		}
		return MoveIntent(), true

	default:
		return MoveIntent(), true
	}
}

func woundedNear(w *domain.World, c domain.Coord, radius int) bool {
	for _, id := range w.NPCIDs() {
		e, _ := w.Entity(id)
		if e.IsWounded() && c.ManhattanDistance(e.Coord) < radius {
			return true
		}
	}
	return false
}

// CommitNPCActions - проход резервирования: NPC по возрастанию ID выбирают намерение
// и резервируют шаг. Возвращает число заявленных действий.
func CommitNPCActions(pf *PathfindingContext, w *domain.World) int {
	player := w.Player()
	if player == nil {
		return 0
	}
	aiLogger := logger.For("ai_system")

	committed := 0
	for _, id := range w.NPCIDs() {
		npc, _ := w.Entity(id)
		intent, ok := ChooseIntent(w, npc, player.Coord)
		if !ok {
			continue
		}
		if pf.CommitAction(id, w, intent) {
			committed++
		}
	}

	aiLogger.WithFields(logrus.Fields{
		"npcs":      len(w.NPCIDs()),
		"committed": committed,
	}).Debug("Commit pass finished.")
	return committed
}
