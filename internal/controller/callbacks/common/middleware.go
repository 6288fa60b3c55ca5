package common

import (
	"context"

	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// WithUser создаёт HandlerContext и загружает пользователя.
// При ошибке автоматически отвечает пользователю.
func WithUser(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	if err := hc.LoadUser(); err != nil {
		h.Logger.Error("Failed to load user",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Error(err))
		hc.AnswerAlert(ErrorMessage(err))
		return
	}

	handler(hc)
}

// WithTutor как WithUser, но только для преподавателей
func WithTutor(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext),
) {
	WithUser(ctx, b, callback, h, func(hc *HandlerContext) {
		if !hc.User.IsTutor() {
			h.Logger.Warn("Tutor check failed", zap.Int64("telegram_id", hc.TelegramID))
			hc.AnswerAlert(ErrorMessage(service.ErrNotATutor))
			return
		}
		handler(hc)
	})
}

// WithEditor передаёт открытую сессию редактора; если её нет, просит открыть редактор заново
func WithEditor(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	handler func(*HandlerContext, *service.ScheduleEditor),
) {
	hc := NewHandlerContext(ctx, b, callback, h)

	editor, ok := h.StateManager.Editor(hc.TelegramID)
	if !ok {
		hc.AnswerAlert(ErrorMessage(ErrNoSession))
		return
	}
	h.StateManager.Touch(hc.TelegramID)

	handler(hc, editor)
}
