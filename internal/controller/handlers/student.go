package handlers

import (
	"context"

	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/student"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleTutors обрабатывает команду /tutors
func (h *Handlers) HandleTutors(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	h.logger.Info("HandleTutors called",
		zap.Int64("telegram_id", update.Message.From.ID))

	student.ShowTutors(ctx, b, h.deps, update.Message.Chat.ID)
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	h.logger.Info("HandleMyBookings called",
		zap.Int64("user_id", user.ID))

	student.ShowBookings(ctx, b, h.deps, update.Message.Chat.ID, user)
}
