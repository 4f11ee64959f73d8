package domain

import (
	"fmt"

	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/zyedidia/generic/mapset"
)

// WorldDump - плоское представление мира для сохранения.
// Множества жильцов не хранятся: они восстанавливаются по координатам сущностей.
type WorldDump struct {
	Size        Size
	Backgrounds []enums.BackgroundTile
	Entities    []Entity
	Lights      []Light
	NextIndex   uint32
	NextLight   types.LightID
}

// Dump снимает копию мира.
func (w *World) Dump() WorldDump {
	d := WorldDump{
		Size:        w.Size(),
		Backgrounds: make([]enums.BackgroundTile, len(w.grid.Cells)),
		NextIndex:   w.nextIndex,
		NextLight:   w.nextLight,
	}
	for i := range w.grid.Cells {
		d.Backgrounds[i] = w.grid.Cells[i].Background
	}
	for _, id := range w.EntityIDs() {
		d.Entities = append(d.Entities, *w.entities[id])
	}
	for _, l := range w.Lights() {
		d.Lights = append(d.Lights, *l)
	}
	return d
}

// WorldFromDump восстанавливает мир и проверяет ссылочную целостность.
func WorldFromDump(d WorldDump) (*World, error) {
	if len(d.Backgrounds) != d.Size.Area() {
		return nil, fmt.Errorf("world dump: %d backgrounds for size %dx%d", len(d.Backgrounds), d.Size.Width, d.Size.Height)
	}
	w := &World{
		grid:      NewGridFunc(d.Size, func(Coord) WorldCell { return newWorldCell(enums.BackgroundFloor) }),
		entities:  make(map[types.EntityID]*Entity, len(d.Entities)),
		lights:    make(map[types.LightID]*Light, len(d.Lights)),
		npcIDs:    mapset.New[types.EntityID](),
		nextIndex: d.NextIndex,
		nextLight: d.NextLight,
	}
	for i, bg := range d.Backgrounds {
		w.grid.Cells[i].Background = bg
	}
	for i := range d.Lights {
		l := d.Lights[i]
		w.lights[l.ID] = &l
	}
	for i := range d.Entities {
		e := d.Entities[i]
		cell, ok := w.grid.Get(e.Coord)
		if !ok {
			return nil, fmt.Errorf("world dump: entity %s at %s is out of bounds", e.ID, e.Coord)
		}
		if e.LightID != nil {
			if _, ok := w.lights[*e.LightID]; !ok {
				return nil, fmt.Errorf("world dump: entity %s references missing light %d", e.ID, *e.LightID)
			}
		}
		w.entities[e.ID] = &e
		cell.occupants.Put(e.ID)
		if e.IsNPC {
			w.npcIDs.Put(e.ID)
		}
		if e.IsPlayer {
			w.playerID = e.ID
		}
	}
	return w, nil
}
