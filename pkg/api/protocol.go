package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "кадр" мира, видимого игроку.
// Отправляется после каждого тика, в котором что-то изменилось.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE", "CANCEL", "END".
	Type string `json:"type"`

	// Turn номер хода игрока. Увеличивается с каждым потраченным ходом.
	Turn uint64 `json:"turn"`

	// Level номер уровня подземелья (с 1).
	Level int `json:"level"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map срез всех видимых и/или исследованных тайлов.
	Map []TileView `json:"map,omitempty"`

	// Entities срез всех видимых сущностей.
	Entities []EntityView `json:"entities,omitempty"`

	// Player состояние игрока.
	Player *StatsView `json:"player,omitempty"`

	// Logs срез новых сообщений, сгенерированных с прошлого кадра.
	Logs []LogEntry `json:"logs,omitempty"`

	// Cancel причина отказа в действии (для Type == "CANCEL").
	Cancel string `json:"cancel,omitempty"`

	// End итог уровня (для Type == "END"): PLAYER_DIED, EXIT_LEVEL.
	End string `json:"end,omitempty"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO (Data Transfer Object) для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Background покрытие клетки (FLOOR, WALL, ICE_WALL...).
	Background string `json:"background"`

	// Light цвет освещения в формате "#rrggbb". Для невидимых клеток пусто.
	Light string `json:"light,omitempty"`

	// IsVisible true, если тайл находится в текущем поле зрения. Рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// IsExplored true, если тайл когда-либо был увиден. Используется для "тумана войны".
	IsExplored bool `json:"isExplored"`

	// Commitment направление и тип действия, которое NPC заявил на эту клетку.
	Commitment *CommitmentView `json:"commitment,omitempty"`
}

// CommitmentView - стрелка намерения NPC над клеткой.
type CommitmentView struct {
	Direction string `json:"direction"` // N, E, S, W
	Action    string `json:"action"`    // MOVE, CAST, HEAL
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID         string `json:"id"`
	Foreground string `json:"foreground"` // PLAYER, DEMON, LAMP...

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
	} `json:"render"`

	// Stats здоровье сущности. Отсутствует у декораций и эффектов.
	Stats *StatsView `json:"stats,omitempty"`

	// TakingDamage откуда пришёл удар (для анимации), пусто если удара нет.
	TakingDamage string `json:"takingDamage,omitempty"`

	// HealCountdown сколько ходов лекарю осталось до лечения.
	HealCountdown *uint32 `json:"healCountdown,omitempty"`
}

// StatsView это DTO для характеристик сущности.
type StatsView struct {
	HP     int  `json:"hp"`
	MaxHP  int  `json:"maxHp"`
	IsDead bool `json:"isDead"`
}

// LogEntry представляет одну запись в игровом логе (чате).
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// DirectionPayload используется для действий, связанных с направлением (MOVE, SPARK, BUMP, INTERACT).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// PositionPayload используется для действий, нацеленных на точку на карте (BLINK).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}
