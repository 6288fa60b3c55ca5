package tutor

import (
	"context"

	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Callback data подтверждения роли преподавателя
const (
	BecomeTutor       = "become_tutor"
	CancelBecomeTutor = "cancel_become_tutor"
)

// HandleBecomeTutorConfirm переводит студента в преподаватели и сразу открывает редактор
func HandleBecomeTutorConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	user, err := h.UserService.BecomeTutor(ctx, hc.TelegramID)
	if err != nil {
		h.Logger.Error("Failed to become tutor", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	hc.Answer("🎓 Готово!")
	if err := hc.EditMessage("🎓 <b>Теперь вы преподаватель.</b>\n\nОтметьте часы, когда вы свободны, и сохраните расписание.", nil); err != nil {
		h.Logger.Error("Failed to edit message", zap.Error(err))
	}

	OpenEditor(ctx, b, h, hc.ChatID, hc.TelegramID, user)
}

// HandleBecomeTutorCancel отмена
func HandleBecomeTutorCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.Answer("")
	if err := hc.EditMessage("Хорошо, вы остаётесь студентом. Найти преподавателя: /tutors", nil); err != nil {
		h.Logger.Error("Failed to edit message", zap.Error(err))
	}
}
