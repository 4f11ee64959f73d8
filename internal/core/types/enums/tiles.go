package enums

import "strings"

// BackgroundTile - покрытие клетки. Задаётся генератором террейна один раз.
type BackgroundTile uint8

const (
	BackgroundFloor BackgroundTile = iota
	BackgroundGround
	BackgroundIceWall
	BackgroundWall
)

var backgroundToString = map[BackgroundTile]string{
	BackgroundFloor:   "FLOOR",
	BackgroundGround:  "GROUND",
	BackgroundIceWall: "ICE_WALL",
	BackgroundWall:    "WALL",
}

var backgroundStringToType = map[string]BackgroundTile{
	"FLOOR":    BackgroundFloor,
	"GROUND":   BackgroundGround,
	"ICE_WALL": BackgroundIceWall,
	"WALL":     BackgroundWall,
}

// String возвращает строковое представление (для логов и дебага)
func (b BackgroundTile) String() string {
	if val, ok := backgroundToString[b]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseBackgroundTile конвертирует строку в Enum (для YAML-раскладок арены).
func ParseBackgroundTile(s string) (BackgroundTile, bool) {
	val, ok := backgroundStringToType[strings.ToUpper(s)]
	return val, ok
}

// Opacity - непрозрачность покрытия (0 прозрачно, 255 полностью непрозрачно).
// Лёд пропускает половину света.
func (b BackgroundTile) Opacity() uint8 {
	switch b {
	case BackgroundIceWall:
		return 128
	case BackgroundWall:
		return 255
	default:
		return 0
	}
}

// IsSolid - можно ли войти в клетку.
func (b BackgroundTile) IsSolid() bool {
	switch b {
	case BackgroundIceWall, BackgroundWall:
		return true
	default:
		return false
	}
}

// ForegroundTile - визуальный вид сущности. Определяет её влияние на прозрачность и проходимость клетки.
type ForegroundTile uint8

const (
	ForegroundNone ForegroundTile = iota
	ForegroundPlayer
	ForegroundTree
	ForegroundStairs
	ForegroundDemon
	ForegroundCaster
	ForegroundHealer
	ForegroundBlock
	ForegroundSpark
	ForegroundBlink
	ForegroundGlow
	ForegroundLamp
	ForegroundFountain
)

var foregroundToString = map[ForegroundTile]string{
	ForegroundNone:     "NONE",
	ForegroundPlayer:   "PLAYER",
	ForegroundTree:     "TREE",
	ForegroundStairs:   "STAIRS",
	ForegroundDemon:    "DEMON",
	ForegroundCaster:   "CASTER",
	ForegroundHealer:   "HEALER",
	ForegroundBlock:    "BLOCK",
	ForegroundSpark:    "SPARK",
	ForegroundBlink:    "BLINK",
	ForegroundGlow:     "GLOW",
	ForegroundLamp:     "LAMP",
	ForegroundFountain: "FOUNTAIN",
}

func (f ForegroundTile) String() string {
	if val, ok := foregroundToString[f]; ok {
		return val
	}
	return "UNKNOWN"
}

// Opacity - вклад сущности в непрозрачность клетки.
func (f ForegroundTile) Opacity() uint8 {
	switch f {
	case ForegroundTree:
		return 128
	case ForegroundBlock:
		return 255
	default:
		return 0
	}
}

// IsSolid - временный блок непроходим даже на полу.
func (f ForegroundTile) IsSolid() bool {
	return f == ForegroundBlock
}

// Symbol - ASCII-символ для отладочного вывода.
func (f ForegroundTile) Symbol() string {
	switch f {
	case ForegroundPlayer:
		return "@"
	case ForegroundTree:
		return "&"
	case ForegroundStairs:
		return ">"
	case ForegroundDemon:
		return "d"
	case ForegroundCaster:
		return "c"
	case ForegroundHealer:
		return "h"
	case ForegroundBlock:
		return "#"
	case ForegroundSpark:
		return "*"
	case ForegroundBlink:
		return "o"
	case ForegroundGlow:
		return "+"
	case ForegroundLamp:
		return "!"
	case ForegroundFountain:
		return "{"
	default:
		return ""
	}
}
