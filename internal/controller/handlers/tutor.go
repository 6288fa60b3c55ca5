package handlers

import (
	"context"

	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/tutor"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBecomeTutor обрабатывает команду /becometutor
func (h *Handlers) HandleBecomeTutor(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	if user.IsTutor() {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"✅ Вы уже преподаватель!\n\nРедактировать свободное время: /availability", nil)
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✅ Да, стать преподавателем", tutor.BecomeTutor)).
		Row(keyboard.Button("❌ Отмена", tutor.CancelBecomeTutor)).
		Build()

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🎓 <b>Стать преподавателем</b>\n\n"+
			"Как преподаватель вы сможете:\n"+
			"• Отмечать свободные часы на неделе\n"+
			"• Принимать записи студентов\n\n"+
			"Продолжить?",
		kb)
}

// HandleAvailability обрабатывает команду /availability: открывает редактор свободного времени
func (h *Handlers) HandleAvailability(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireTutor(ctx, b, update)
	if !ok {
		return
	}

	h.logger.Info("HandleAvailability called",
		zap.Int64("user_id", user.ID))

	tutor.OpenEditor(ctx, b, h.deps, update.Message.Chat.ID, update.Message.From.ID, user)
}
