package common

import (
	"errors"

	"github.com/Freeeeeet/tutor_scheduler/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNoSession     = errors.New("editor session expired")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound), errors.Is(err, service.ErrUserNotFound):
		return "❌ Пользователь не найден. Используйте /start"
	case errors.Is(err, service.ErrNotATutor):
		return "❌ Эта функция доступна только преподавателям"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat), errors.Is(err, service.ErrInvalidCell):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrNoSession), errors.Is(err, service.ErrNotEditable):
		return "⌛ Редактор закрыт. Откройте /availability заново"
	case errors.Is(err, service.ErrLoadFailed):
		return "❌ Не удалось загрузить расписание"
	case errors.Is(err, service.ErrSaveInProgress):
		return "⏳ Сохранение уже выполняется"
	case errors.Is(err, service.ErrSaveFailed):
		return "❌ Не удалось сохранить. Изменения не потеряны, попробуйте ещё раз"
	case errors.Is(err, service.ErrCellNotAvailable):
		return "❌ Это время уже недоступно"
	case errors.Is(err, service.ErrSelfBooking):
		return "❌ Нельзя записаться к самому себе"
	case errors.Is(err, service.ErrBookingNotFound):
		return "❌ Запись не найдена"
	case errors.Is(err, service.ErrBookingPast):
		return "❌ Занятие уже началось, отменить нельзя"
	default:
		return "❌ Произошла ошибка"
	}
}
