package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/student"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/tutor"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Noop кнопка без действия
const Noop = "noop"

// Handler принимает все callback query бота
type Handler struct {
	deps *callbacktypes.Handler
}

// NewHandler создаёт обработчик callback query
func NewHandler(deps *callbacktypes.Handler) *Handler {
	return &Handler{deps: deps}
}

// HandleCallbackQuery точка входа для bot.RegisterHandler
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	Route(ctx, b, update.CallbackQuery, h.deps)
}

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case data == Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Tutor: role =====
	case data == tutor.BecomeTutor:
		tutor.HandleBecomeTutorConfirm(ctx, b, callback, h)
	case data == tutor.CancelBecomeTutor:
		tutor.HandleBecomeTutorCancel(ctx, b, callback, h)

	// ===== Tutor: availability editor =====
	case hasArgs(data, tutor.EditorDay):
		tutor.HandleDay(ctx, b, callback, h)
	case hasArgs(data, tutor.EditorCell):
		tutor.HandleCell(ctx, b, callback, h)
	case data == tutor.EditorWeek:
		tutor.HandleWeek(ctx, b, callback, h)
	case data == tutor.EditorSave:
		tutor.HandleSave(ctx, b, callback, h)
	case data == tutor.EditorDiscard:
		tutor.HandleDiscard(ctx, b, callback, h)
	case data == tutor.EditorClear:
		tutor.HandleClear(ctx, b, callback, h)
	case data == tutor.EditorImage:
		tutor.HandleImage(ctx, b, callback, h)
	case data == tutor.EditorRetry:
		tutor.HandleRetry(ctx, b, callback, h)
	case data == tutor.EditorClose:
		tutor.HandleClose(ctx, b, callback, h)

	// ===== Student: browsing and booking =====
	case data == student.TutorList:
		student.HandleTutorList(ctx, b, callback, h)
	case hasArgs(data, student.TutorView):
		student.HandleTutorView(ctx, b, callback, h)
	case hasArgs(data, student.TutorDay):
		student.HandleTutorDay(ctx, b, callback, h)
	case hasArgs(data, student.TutorBook):
		student.HandleBook(ctx, b, callback, h)
	case data == student.BookingList:
		student.HandleBookingList(ctx, b, callback, h)
	case hasArgs(data, student.BookingCancel):
		student.HandleBookingCancel(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}

// hasArgs данные вида "prefix:..."
func hasArgs(data, prefix string) bool {
	return strings.HasPrefix(data, prefix+":")
}
