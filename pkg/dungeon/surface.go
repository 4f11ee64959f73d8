package dungeon

import (
	"errors"
	"fmt"

	"github.com/gridbugs/gws/internal/core/types"
	"github.com/gridbugs/gws/internal/core/types/enums"
	"github.com/gridbugs/gws/internal/domain"
)

var (
	ErrEmptyTerrain   = errors.New("terrain has no rows")
	ErrRaggedTerrain  = errors.New("terrain rows differ in width")
	ErrNoPlayerMarker = errors.New("terrain has no '@' marker")
)

// ParseTerrain собирает уровень из ASCII-раскладки (арены и отладка).
//
//	. пол      , земля    # стена    ~ ледяная стена
//	& дерево   > лестница B блок     F фонтан
//	d демон    c кастер   h лекарь
//	1 2 3 красная, зелёная и синяя лампы
//	@ старт игрока (пол)
func ParseTerrain(rows []string) (Level, error) {
	if len(rows) == 0 {
		return Level{}, ErrEmptyTerrain
	}
	width := len(rows[0])
	lvl := Level{Size: domain.Size{Width: width, Height: len(rows)}}
	hasStart := false

	for y, row := range rows {
		if len(row) != width {
			return Level{}, fmt.Errorf("row %d: %w", y, ErrRaggedTerrain)
		}
		for x, ch := range []byte(row) {
			c := domain.Coord{X: x, Y: y}
			switch ch {
			case '.':
			case ',':
				lvl.Instructions = append(lvl.Instructions, domain.SetBackgroundAt(c, enums.BackgroundGround))
			case '#':
				lvl.Instructions = append(lvl.Instructions, domain.SetBackgroundAt(c, enums.BackgroundWall))
			case '~':
				lvl.Instructions = append(lvl.Instructions, domain.SetBackgroundAt(c, enums.BackgroundIceWall))
			case '&':
				lvl.Instructions = append(lvl.Instructions,
					domain.SetBackgroundAt(c, enums.BackgroundGround),
					domain.AddEntityAt(c, domain.PackedTree()))
			case '@':
				if hasStart {
					return Level{}, fmt.Errorf("second '@' at %v", c)
				}
				lvl.Start = c
				hasStart = true
			default:
				packed, ok := terrainEntity(ch)
				if !ok {
					return Level{}, fmt.Errorf("unexpected %q at %v", ch, c)
				}
				lvl.Instructions = append(lvl.Instructions, domain.AddEntityAt(c, packed))
			}
		}
	}

	if !hasStart {
		return Level{}, ErrNoPlayerMarker
	}
	return lvl, nil
}

func terrainEntity(ch byte) (domain.PackedEntity, bool) {
	switch ch {
	case '>':
		return domain.PackedStairs(), true
	case 'B':
		return domain.PackedBlock(), true
	case 'F':
		return domain.PackedFountain(), true
	case 'd':
		return domain.PackedDemon(), true
	case 'c':
		return domain.PackedCaster(), true
	case 'h':
		return domain.PackedHealer(), true
	case '1':
		return domain.PackedLamp(types.RGB(255, 0, 0)), true
	case '2':
		return domain.PackedLamp(types.RGB(0, 255, 0)), true
	case '3':
		return domain.PackedLamp(types.RGB(0, 0, 255)), true
	}
	return domain.PackedEntity{}, false
}
