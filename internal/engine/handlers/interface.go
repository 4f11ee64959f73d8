package handlers

import (
	"github.com/gridbugs/gws/internal/domain"
	"github.com/gridbugs/gws/internal/systems"
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	World      *domain.World
	Visibility systems.VisibilityView  // Поле видимости игрока
	State      systems.VisibilityState // Снимок эпохи на начало хода
	Actor      *domain.Entity          // Тот, кто выполняет команду

	MaxBlinkRange int
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Apply   domain.ApplyAction // Что делать движку дальше (анимация, взаимодействие)
	Msg     string             // Текст лога
	MsgType string             // Тип лога (INFO, COMBAT, ERROR)
	Free    bool               // Действие не тратит ход
}

// HandlerFunc - это контракт для любой команды (MOVE, BLINK, etc).
// Ошибка - это отказ в действии (обычно domain.CancelAction), мир при этом не изменён.
type HandlerFunc func(ctx Context, in domain.Input) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{Apply: domain.Done()}
}
