package agent

import (
	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/pkg/api"
)

// localMap - картина мира бота, собранная из кадра.
// Всё, что бот не видел, считается стеной, чтобы не строить пути в неизвестность.
type localMap struct {
	size     domain.Size
	open     *domain.Grid[bool]
	hostile  map[domain.Coord]bool
	entities map[string]domain.Coord
}

var hostileForegrounds = map[string]bool{
	enums.ForegroundDemon.String():  true,
	enums.ForegroundCaster.String(): true,
	enums.ForegroundHealer.String(): true,
}

func newLocalMap(frame api.ServerResponse) *localMap {
	size := domain.Size{Width: frame.Grid.Width, Height: frame.Grid.Height}
	m := &localMap{
		size:     size,
		open:     domain.NewGrid(size, false),
		hostile:  make(map[domain.Coord]bool),
		entities: make(map[string]domain.Coord),
	}

	// 1. Открытые клетки
	for _, tv := range frame.Map {
		bg, ok := enums.ParseBackgroundTile(tv.Background)
		if !ok || bg.IsSolid() {
			continue
		}
		if cell, ok := m.open.Get(domain.Coord{X: tv.X, Y: tv.Y}); ok {
			*cell = true
		}
	}

	// 2. Сущности: враги и блоки непроходимы, лестница и игрок запоминаются
	for _, ev := range frame.Entities {
		c := domain.Coord{X: ev.Pos.X, Y: ev.Pos.Y}
		switch {
		case hostileForegrounds[ev.Foreground]:
			m.hostile[c] = true
		case ev.Foreground == enums.ForegroundBlock.String():
			if cell, ok := m.open.Get(c); ok {
				*cell = false
			}
		}
		if _, seen := m.entities[ev.Foreground]; !seen {
			m.entities[ev.Foreground] = c
		}
	}
	return m
}

func (m *localMap) Size() domain.Size {
	return m.size
}

// IsSolid - закрытые и неизвестные клетки, а также клетки с врагами.
func (m *localMap) IsSolid(c domain.Coord) bool {
	open, ok := m.open.Get(c)
	return !ok || !*open || m.hostile[c]
}

func (m *localMap) find(foreground string) (domain.Coord, bool) {
	c, ok := m.entities[foreground]
	return c, ok
}
