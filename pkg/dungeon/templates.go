package dungeon

import (
	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/domain"
)

// EnemyTemplates - карта всех доступных врагов
var EnemyTemplates = map[string]func() domain.PackedEntity{
	"demon":  domain.PackedDemon,
	"caster": domain.PackedCaster,
	"healer": domain.PackedHealer,
}

// LampColours - палитра ламп. Нижняя граница каналов поднимается шаблоном лампы.
var LampColours = []types.Colour{
	types.RGB(255, 187, 63),
	types.RGB(255, 0, 0),
	types.RGB(0, 255, 0),
	types.RGB(0, 0, 255),
	types.Grey(200),
}
