package student

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/render"
	"github.com/Freeeeeet/tutor_scheduler/internal/model"
	"github.com/Freeeeeet/tutor_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ShowTutors отправляет список преподавателей новым сообщением
func ShowTutors(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID int64) {
	tutors, err := h.UserService.ListTutors(ctx)
	if err != nil {
		h.Logger.Error("Failed to list tutors", zap.Error(err))
		common.SendMessage(ctx, b, chatID, common.ErrorMessage(err), nil)
		return
	}

	text, kb := TutorsScreen(tutors)
	if err := common.SendMessage(ctx, b, chatID, text, kb); err != nil {
		h.Logger.Error("Failed to send tutors", zap.Error(err))
	}
}

// ShowBookings отправляет занятия студента новым сообщением
func ShowBookings(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID int64, user *model.User) {
	text, kb, err := bookingsView(ctx, h, user)
	if err != nil {
		common.SendMessage(ctx, b, chatID, common.ErrorMessage(err), nil)
		return
	}
	if err := common.SendMessage(ctx, b, chatID, text, kb); err != nil {
		h.Logger.Error("Failed to send bookings", zap.Error(err))
	}
}

// HandleTutorList список преподавателей
func HandleTutorList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	tutors, err := h.UserService.ListTutors(ctx)
	if err != nil {
		h.Logger.Error("Failed to list tutors", zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}

	hc.Answer("")
	text, kb := TutorsScreen(tutors)
	if err := hc.EditMessage(text, kb); err != nil {
		h.Logger.Error("Failed to show tutors", zap.Error(err))
	}
}

// HandleTutorView картинка недели преподавателя и выбор дня
func HandleTutorView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseArgs(callback.Data, TutorView, 1)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		tutor, ok := loadTutor(hc, args[0])
		if !ok {
			return
		}

		cls, err := h.AvailabilityService.TutorWeek(hc.Ctx, tutor.ID)
		if err != nil {
			h.Logger.Error("Failed to load tutor week", zap.Int64("tutor_id", tutor.ID), zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		h.StateManager.StartBrowsing(hc.TelegramID, tutor.ID)
		hc.Answer("")

		png, err := render.WeekImage(tutor.DisplayName(), cls)
		if err != nil {
			h.Logger.Error("Failed to render tutor week", zap.Error(err))
		} else if err := hc.SendPhoto(png, fmt.Sprintf("🗓 <b>%s</b>", tutor.DisplayName()), nil); err != nil {
			h.Logger.Error("Failed to send tutor week", zap.Error(err))
		}

		text, kb := TutorWeekScreen(tutor, cls)
		if err := hc.SendMessage(text, kb); err != nil {
			h.Logger.Error("Failed to send day picker", zap.Error(err))
		}
	})
}

// HandleTutorDay свободные ячейки выбранного дня
func HandleTutorDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseArgs(callback.Data, TutorDay, 2)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		day, err := common.ParseDay(args[1])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		tutor, ok := loadTutor(hc, args[0])
		if !ok {
			return
		}

		cls, err := h.AvailabilityService.TutorWeek(hc.Ctx, tutor.ID)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		h.StateManager.SetDay(hc.TelegramID, &day)
		hc.Answer("")

		text, kb := TutorDayScreen(tutor, cls, day)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show tutor day", zap.Error(err))
		}
	})
}

// HandleBook записывает студента на ячейку
func HandleBook(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseArgs(callback.Data, TutorBook, 3)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		day, err := common.ParseDay(args[1])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		cfg := h.AvailabilityService.Config()
		cell, err := common.ParseCell(cfg.ViewWindow, args[2])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		booking, err := h.BookingService.Book(hc.Ctx, hc.User, args[0], day, cell)
		if err != nil {
			h.Logger.Warn("Booking rejected",
				zap.Int64("student_id", hc.User.ID),
				zap.Int64("tutor_id", args[0]),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("✅ Записано")
		text, kb := BookedScreen(booking, cfg.Location)
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show booking", zap.Error(err))
		}
	})
}

// HandleBookingList занятия студента
func HandleBookingList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		text, kb, err := bookingsView(hc.Ctx, h, hc.User)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		hc.Answer("")
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to show bookings", zap.Error(err))
		}
	})
}

// HandleBookingCancel отменяет будущее занятие; ячейка снова становится свободной
func HandleBookingCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseArgs(callback.Data, BookingCancel, 1)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		if err := h.BookingService.Cancel(hc.Ctx, hc.User.ID, args[0]); err != nil {
			h.Logger.Warn("Cancel rejected",
				zap.Int64("student_id", hc.User.ID),
				zap.Int64("record_id", args[0]),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("✅ Занятие отменено")
		text, kb, err := bookingsView(hc.Ctx, h, hc.User)
		if err != nil {
			return
		}
		if err := hc.EditMessage(text, kb); err != nil {
			h.Logger.Error("Failed to refresh bookings", zap.Error(err))
		}
	})
}

func bookingsView(ctx context.Context, h *callbacktypes.Handler, user *model.User) (string, *models.InlineKeyboardMarkup, error) {
	bookings, err := h.BookingService.StudentBookings(ctx, user.ID)
	if err != nil {
		h.Logger.Error("Failed to list bookings", zap.Int64("student_id", user.ID), zap.Error(err))
		return "", nil, err
	}

	text, kb := BookingsScreen(bookings, h.AvailabilityService.Config().Location, h.BookingService.Now())
	return text, kb, nil
}

func loadTutor(hc *common.HandlerContext, tutorID int64) (*model.User, bool) {
	tutor, err := hc.Handler.UserService.GetByID(hc.Ctx, tutorID)
	if err == nil && tutor == nil {
		err = service.ErrUserNotFound
	}
	if err == nil && !tutor.IsTutor() {
		err = service.ErrNotATutor
	}
	if err != nil {
		hc.Handler.Logger.Warn("Tutor lookup failed", zap.Int64("tutor_id", tutorID), zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return nil, false
	}
	return tutor, true
}
