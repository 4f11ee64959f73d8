package engine

import (
	"strconv"

	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/api"
)

// Цвета сущностей для клиента
var foregroundColours = map[enums.ForegroundTile]string{
	enums.ForegroundPlayer:   "#22D3EE",
	enums.ForegroundTree:     "#2F9E44",
	enums.ForegroundStairs:   "#FFFFFF",
	enums.ForegroundDemon:    "#E03131",
	enums.ForegroundCaster:   "#BE4BDB",
	enums.ForegroundHealer:   "#FAB005",
	enums.ForegroundBlock:    "#868E96",
	enums.ForegroundSpark:    "#FF8000",
	enums.ForegroundBlink:    "#00FFFF",
	enums.ForegroundGlow:     "#FFFF00",
	enums.ForegroundLamp:     "#FFF3BF",
	enums.ForegroundFountain: "#0040FF",
}

// BuildFrame создает "снимок" мира глазами игрока.
//
// Клиент получает только открытые клетки; сущности - только в видимых сейчас клетках.
func BuildFrame(sim *Simulation, level int, logs []api.LogEntry) *api.ServerResponse {
	w := sim.World()
	vis := sim.Visibility()
	state := vis.Snapshot()
	commitments := sim.Pathfinding().CommitmentGrid()
	size := w.Size()

	// 1. Карта (туман войны + свет + намерения NPC)
	var mapDTO []api.TileView
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			c := domain.Coord{X: x, Y: y}
			if !vis.IsDiscovered(c) {
				continue
			}
			cell, _ := w.Cell(c)
			tView := api.TileView{
				X: x, Y: y,
				Background: cell.Background.String(),
				IsVisible:  vis.IsVisible(c, state),
				IsExplored: true,
			}
			if tView.IsVisible {
				tView.Light = vis.LightColour(c, state).Hex()
				if cm, ok := commitments.Get(c); ok {
					tView.Commitment = &api.CommitmentView{
						Direction: cm.Direction.String(),
						Action:    cm.Type.String(),
					}
				}
			}
			mapDTO = append(mapDTO, tView)
		}
	}

	// 2. Сущности
	var viewEntities []api.EntityView
	for _, id := range w.EntityIDs() {
		e, _ := w.Entity(id)
		if !e.IsPlayer && !vis.IsVisible(e.Coord, state) {
			continue
		}
		viewEntities = append(viewEntities, toEntityView(e))
	}

	player := w.Player()
	return &api.ServerResponse{
		Type:     "UPDATE",
		Turn:     sim.Turn(),
		Level:    level,
		Grid:     &api.GridMeta{Width: size.Width, Height: size.Height},
		Map:      mapDTO,
		Entities: viewEntities,
		Player:   toStatsView(player.HitPoints),
		Logs:     logs,
	}
}

func toEntityView(e *domain.Entity) api.EntityView {
	view := api.EntityView{
		ID:         strconv.FormatUint(uint64(e.ID), 10),
		Foreground: e.Foreground.String(),
		Stats:      toStatsView(e.HitPoints),
	}
	view.Pos.X = e.Coord.X
	view.Pos.Y = e.Coord.Y
	view.Render.Symbol = e.Foreground.Symbol()
	view.Render.Color = foregroundColours[e.Foreground]
	// Копия: кадр сериализуется уже в другой горутине
	if countdown := e.Status.HealCountdown; countdown != nil {
		v := *countdown
		view.HealCountdown = &v
	}
	if e.Status.TakingDamage != nil {
		view.TakingDamage = e.Status.TakingDamage.String()
	}
	return view
}

func toStatsView(hp *domain.HitPoints) *api.StatsView {
	if hp == nil {
		return nil
	}
	return &api.StatsView{
		HP:     int(hp.Current),
		MaxHP:  int(hp.Max),
		IsDead: hp.IsDead(),
	}
}
