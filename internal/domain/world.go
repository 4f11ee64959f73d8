package domain

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/zyedidia/generic/mapset"
)

// ErrRemovePlayer - игрока нельзя удалить из мира.
var ErrRemovePlayer = errors.New("player entity cannot be removed")

// WorldCell - клетка арены: покрытие и множество сущностей, стоящих на ней.
type WorldCell struct {
	Background enums.BackgroundTile
	occupants  mapset.Set[types.EntityID]
}

func newWorldCell(bg enums.BackgroundTile) WorldCell {
	return WorldCell{Background: bg, occupants: mapset.New[types.EntityID]()}
}

// Has проверяет, стоит ли сущность в клетке.
func (c *WorldCell) Has(id types.EntityID) bool {
	return c.occupants.Has(id)
}

func (c *WorldCell) Len() int {
	return c.occupants.Size()
}

// Occupants возвращает сущности клетки в порядке создания.
func (c *WorldCell) Occupants() []types.EntityID {
	ids := make([]types.EntityID, 0, c.occupants.Size())
	c.occupants.Each(func(id types.EntityID) {
		ids = append(ids, id)
	})
	sortIDs(ids)
	return ids
}

// World - сетка клеток + арена сущностей + арена источников света.
// Все ссылки между ними только по целочисленным ID.
type World struct {
	grid      *Grid[WorldCell]
	entities  map[types.EntityID]*Entity
	lights    map[types.LightID]*Light
	npcIDs    mapset.Set[types.EntityID]
	playerID  types.EntityID
	nextIndex uint32
	nextLight types.LightID
}

// NewWorld создаёт арену, залитую полом.
func NewWorld(size Size) *World {
	return &World{
		grid:      NewGridFunc(size, func(Coord) WorldCell { return newWorldCell(enums.BackgroundFloor) }),
		entities:  make(map[types.EntityID]*Entity),
		lights:    make(map[types.LightID]*Light),
		npcIDs:    mapset.New[types.EntityID](),
		nextIndex: 1,
		nextLight: 1,
	}
}

func (w *World) Size() Size {
	return w.grid.Size()
}

// Cell возвращает клетку или false за пределами арены.
func (w *World) Cell(c Coord) (*WorldCell, bool) {
	return w.grid.Get(c)
}

func (w *World) PlayerID() types.EntityID {
	return w.playerID
}

// Player возвращает сущность игрока (nil, если игрок ещё не добавлен).
func (w *World) Player() *Entity {
	return w.entities[w.playerID]
}

func (w *World) Entity(id types.EntityID) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// EntityIDs - все сущности в порядке создания.
func (w *World) EntityIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids
}

// NPCIDs - NPC в порядке создания. Этот порядок задаёт очередь ходов.
func (w *World) NPCIDs() []types.EntityID {
	ids := make([]types.EntityID, 0, w.npcIDs.Size())
	w.npcIDs.Each(func(id types.EntityID) {
		ids = append(ids, id)
	})
	sortIDs(ids)
	return ids
}

// Lights возвращает источники света в стабильном порядке (по ID).
func (w *World) Lights() []*Light {
	lights := make([]*Light, 0, len(w.lights))
	for _, l := range w.lights {
		lights = append(lights, l)
	}
	slices.SortFunc(lights, func(a, b *Light) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return lights
}

func (w *World) Light(id types.LightID) (*Light, bool) {
	l, ok := w.lights[id]
	return l, ok
}

// --- МУТАЦИИ ---

// SetBackground меняет покрытие клетки.
func (w *World) SetBackground(c Coord, tile enums.BackgroundTile) error {
	cell, ok := w.grid.Get(c)
	if !ok {
		return fmt.Errorf("set background at %s: %w", c, CancelDestinationOutOfBounds)
	}
	cell.Background = tile
	return nil
}

// AddEntity создаёт сущность по шаблону в клетке c.
// Свет шаблона создаётся вместе с сущностью и привязывается к ней.
func (w *World) AddEntity(c Coord, packed PackedEntity) (types.EntityID, error) {
	cell, ok := w.grid.Get(c)
	if !ok {
		return types.NilEntityID, fmt.Errorf("add %s at %s: %w", packed.Foreground, c, CancelDestinationOutOfBounds)
	}
	if packed.IsPlayer && !w.playerID.IsNil() {
		return types.NilEntityID, fmt.Errorf("add player at %s: player %s already exists", c, w.playerID)
	}

	// 1. Выдаём ID (индексы не переиспользуются, поколение всегда 0)
	id := types.PackEntityID(uint8(packed.Foreground), 0, w.nextIndex)
	w.nextIndex++

	e := &Entity{
		ID:            id,
		Coord:         c,
		Foreground:    packed.Foreground,
		IsPlayer:      packed.IsPlayer,
		IsNPC:         packed.IsNPC,
		IsProjectile:  packed.IsProjectile,
		IsInteractive: packed.IsInteractive,
	}
	if packed.HitPoints != nil {
		h := *packed.HitPoints
		e.HitPoints = &h
	}

	// 2. Свет
	if packed.Light != nil {
		lightID := w.nextLight
		w.nextLight++
		l := packed.Light.At(c)
		l.ID = lightID
		l.Owner = id
		w.lights[lightID] = &l
		e.LightID = &lightID
	}

	// 3. Регистрация
	w.entities[id] = e
	cell.occupants.Put(id)
	if e.IsNPC {
		w.npcIDs.Put(id)
	}
	if e.IsPlayer {
		w.playerID = id
	}
	return id, nil
}

// RemoveEntity удаляет сущность вместе с её светом. Игрок не удаляется.
func (w *World) RemoveEntity(id types.EntityID) error {
	e, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("remove %s: %w", id, CancelNoSuchEntity)
	}
	if e.IsPlayer {
		return ErrRemovePlayer
	}
	if cell, ok := w.grid.Get(e.Coord); ok {
		cell.occupants.Remove(id)
	}
	if e.LightID != nil {
		delete(w.lights, *e.LightID)
	}
	w.npcIDs.Remove(id)
	delete(w.entities, id)
	return nil
}

// MoveEntityToCoord - единственный путь перемещения сущности.
// Обновляет множества клеток и координату привязанного света за один вызов.
func (w *World) MoveEntityToCoord(id types.EntityID, to Coord) error {
	e, ok := w.entities[id]
	if !ok {
		return fmt.Errorf("move %s: %w", id, CancelNoSuchEntity)
	}
	next, ok := w.grid.Get(to)
	if !ok {
		return fmt.Errorf("move %s to %s: %w", id, to, CancelDestinationOutOfBounds)
	}

	// 1. Удаляем из старой клетки
	if current, ok := w.grid.Get(e.Coord); ok {
		current.occupants.Remove(id)
	}

	// 2. Добавляем в новую
	next.occupants.Put(id)
	e.Coord = to

	// 3. Двигаем свет
	if e.LightID != nil {
		if l, ok := w.lights[*e.LightID]; ok {
			l.Coord = to
		}
	}
	return nil
}

// MoveEntityInDirection сдвигает сущность на одну клетку без проверок проходимости.
func (w *World) MoveEntityInDirection(id types.EntityID, dir CardinalDirection) (Coord, error) {
	e, ok := w.entities[id]
	if !ok {
		return Coord{}, fmt.Errorf("move %s: %w", id, CancelNoSuchEntity)
	}
	to := e.Coord.Add(dir.Coord())
	return to, w.MoveEntityToCoord(id, to)
}

// SetForeground меняет внешний вид сущности (например, стадии анимации).
func (w *World) SetForeground(id types.EntityID, tile enums.ForegroundTile) {
	if e, ok := w.entities[id]; ok {
		e.Foreground = tile
	}
}

// SetLightParams меняет цвет и затухание света сущности.
func (w *World) SetLightParams(id types.EntityID, colour types.Colour, falloff Rational) {
	if l := w.entityLight(id); l != nil {
		l.Colour = colour
		l.Falloff = falloff
	}
}

// SetLightFalloffDenom - используется затухающим свечением.
func (w *World) SetLightFalloffDenom(id types.EntityID, denom uint32) {
	if l := w.entityLight(id); l != nil {
		l.Falloff.Denom = denom
	}
}

func (w *World) entityLight(id types.EntityID) *Light {
	e, ok := w.entities[id]
	if !ok || e.LightID == nil {
		return nil
	}
	return w.lights[*e.LightID]
}

func (w *World) SetTakingDamage(id types.EntityID, dir *CardinalDirection) {
	if e, ok := w.entities[id]; ok {
		e.Status.TakingDamage = dir
	}
}

func (w *World) SetHealCountdown(id types.EntityID, countdown *uint32) {
	if e, ok := w.entities[id]; ok {
		e.Status.HealCountdown = countdown
	}
}

// --- ЗАПРОСЫ ---

// Opacity - непрозрачность клетки: максимум из покрытия и сущностей.
// За пределами арены клетка считается непрозрачной.
func (w *World) Opacity(c Coord) uint8 {
	cell, ok := w.grid.Get(c)
	if !ok {
		return 255
	}
	opacity := cell.Background.Opacity()
	cell.occupants.Each(func(id types.EntityID) {
		if e, ok := w.entities[id]; ok {
			opacity = max(opacity, e.Foreground.Opacity())
		}
	})
	return opacity
}

// IsSolid - нельзя войти (стена или временный блок). За пределами арены всё твёрдое.
func (w *World) IsSolid(c Coord) bool {
	cell, ok := w.grid.Get(c)
	if !ok {
		return true
	}
	if cell.Background.IsSolid() {
		return true
	}
	solid := false
	cell.occupants.Each(func(id types.EntityID) {
		if e, ok := w.entities[id]; ok && e.Foreground.IsSolid() {
			solid = true
		}
	})
	return solid
}

// NPCAt возвращает NPC в клетке (с наименьшим ID, если их несколько).
func (w *World) NPCAt(c Coord) (*Entity, bool) {
	return w.findAt(c, func(e *Entity) bool { return e.IsNPC })
}

func (w *World) ContainsNPC(c Coord) bool {
	_, ok := w.NPCAt(c)
	return ok
}

// CharacterAt - игрок или NPC в клетке.
func (w *World) CharacterAt(c Coord) (*Entity, bool) {
	return w.findAt(c, func(e *Entity) bool { return e.IsNPC || e.IsPlayer })
}

// InteractiveAt - фонтан и прочие объекты, с которыми можно взаимодействовать.
func (w *World) InteractiveAt(c Coord) (*Entity, bool) {
	return w.findAt(c, func(e *Entity) bool { return e.IsInteractive })
}

// HasForeground проверяет, есть ли в клетке сущность данного вида.
func (w *World) HasForeground(c Coord, tile enums.ForegroundTile) bool {
	_, ok := w.findAt(c, func(e *Entity) bool { return e.Foreground == tile })
	return ok
}

func (w *World) findAt(c Coord, match func(*Entity) bool) (*Entity, bool) {
	cell, ok := w.grid.Get(c)
	if !ok {
		return nil, false
	}
	for _, id := range cell.Occupants() {
		if e, ok := w.entities[id]; ok && match(e) {
			return e, true
		}
	}
	return nil, false
}

// PackEntity упаковывает сущность обратно в шаблон (для переноса игрока между уровнями).
func (w *World) PackEntity(id types.EntityID) (PackedEntity, error) {
	e, ok := w.entities[id]
	if !ok {
		return PackedEntity{}, fmt.Errorf("pack %s: %w", id, CancelNoSuchEntity)
	}
	packed := PackedEntity{
		Foreground:    e.Foreground,
		IsPlayer:      e.IsPlayer,
		IsNPC:         e.IsNPC,
		IsProjectile:  e.IsProjectile,
		IsInteractive: e.IsInteractive,
	}
	if e.HitPoints != nil {
		h := *e.HitPoints
		packed.HitPoints = &h
	}
	if l := w.entityLight(id); l != nil {
		packed.Light = &PackedLight{Colour: l.Colour, Range2: l.Range2, Falloff: l.Falloff}
	}
	return packed, nil
}

func sortIDs(ids []types.EntityID) {
	slices.SortFunc(ids, func(a, b types.EntityID) int {
		switch {
		case a.Index() < b.Index():
			return -1
		case a.Index() > b.Index():
			return 1
		default:
			return 0
		}
	})
}
