package tutor

import (
	"context"
	"errors"
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

// OpenEditor открывает новую сессию редактора и отправляет экран недели.
// Прежняя сессия пользователя бросается без сохранения.
func OpenEditor(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID, telegramID int64, user *model.User) {
	editor, err := h.AvailabilityService.OpenEditor(ctx, user)
	if editor == nil {
		h.Logger.Warn("Failed to open editor", zap.Int64("telegram_id", telegramID), zap.Error(err))
		common.SendMessage(ctx, b, chatID, common.ErrorMessage(err), nil)
		return
	}

	h.StateManager.StartEditing(telegramID, editor)

	text, kb := WeekScreen(editor)
	if err := common.SendMessage(ctx, b, chatID, text, kb); err != nil {
		h.Logger.Error("Failed to send editor", zap.Error(err))
	}
}

// HandleRetry новая попытка загрузки после LoadError
func HandleRetry(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithTutor(ctx, b, callback, h, func(hc *common.HandlerContext) {
		editor, err := h.AvailabilityService.OpenEditor(hc.Ctx, hc.User)
		if editor == nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		h.StateManager.StartEditing(hc.TelegramID, editor)

		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
		} else {
			hc.Answer("✅ Загружено")
		}
		showWeek(hc, editor)
	})
}

// HandleWeek возврат к экрану недели
func HandleWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithEditor(ctx, b, callback, h, func(hc *common.HandlerContext, editor *service.ScheduleEditor) {
		h.StateManager.SetDay(hc.TelegramID, nil)
		hc.Answer("")
		showWeek(hc, editor)
	})
}

// HandleDay экран ячеек выбранного дня
func HandleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithEditor(ctx, b, callback, h, func(hc *common.HandlerContext, editor *service.ScheduleEditor) {
		args, err := common.ParseArgs(callback.Data, EditorDay, 1)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		day, err := common.ParseDay(args[0])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		h.StateManager.SetDay(hc.TelegramID, &day)
		hc.Answer("")
		showDay(hc, editor)
	})
}

// HandleCell переключает ячейку; занятая ячейка не меняется
func HandleCell(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithEditor(ctx, b, callback, h, func(hc *common.HandlerContext, editor *service.ScheduleEditor) {
		args, err := common.ParseArgs(callback.Data, EditorCell, 2)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		day, err := common.ParseDay(args[0])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		cell, err := common.ParseCell(editor.Window(), args[1])
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		changed, err := editor.Toggle(day, cell)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		if !changed {
			hc.Answer("🔒 Это время занято студентом")
			return
		}

		hc.Answer("")
		h.StateManager.SetDay(hc.TelegramID, &day)
		showDay(hc, editor)
	})
}

// HandleSave сохраняет рабочую копию целиком
func HandleSave(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithEditor(ctx, b, callback, h, func(hc *common.HandlerContext, editor *service.ScheduleEditor) {
		if editor.State() == service.EditorSaving {
			hc.Answer(common.ErrorMessage(service.ErrSaveInProgress))
			return
		}

		err := editor.Save(hc.Ctx)
		switch {
		case errors.Is(err, service.ErrSaveInProgress):
			hc.Answer(common.ErrorMessage(err))
			return
		case err != nil:
			h.Logger.Warn("Save failed",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
		default:
			hc.Answer("✅ Сохранено")
		}

		refresh(hc, editor)
	})
}

// HandleDiscard возвращает последнюю сохранённую версию
func HandleDiscard(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithEditor(ctx, b, callback, h, func(hc *common.HandlerContext, editor *service.ScheduleEditor) {
		if err := editor.Discard(); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		hc.Answer("↩️ Изменения отменены")
		refresh(hc, editor)
	})
}

// HandleClear очищает все дни рабочей копии
func HandleClear(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithEditor(ctx, b, callback, h, func(hc *common.HandlerContext, editor *service.ScheduleEditor) {
		if err := editor.ClearAll(); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		hc.Answer("🧹 Очищено, не забудьте сохранить")
		h.StateManager.SetDay(hc.TelegramID, nil)
		showWeek(hc, editor)
	})
}

// HandleImage присылает картинку рабочей копии
func HandleImage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithEditor(ctx, b, callback, h, func(hc *common.HandlerContext, editor *service.ScheduleEditor) {
		cls, err := editor.Classification()
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		png, err := render.WeekImage(fmt.Sprintf("Availability %s", editor.Window()), cls)
		if err != nil {
			h.Logger.Error("Failed to render week", zap.Error(err))
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		hc.Answer("")
		if err := hc.SendPhoto(png, "🖼 Текущая рабочая версия", nil); err != nil {
			h.Logger.Error("Failed to send week image", zap.Error(err))
		}
	})
}

// HandleClose закрывает редактор; несохранённые изменения теряются
func HandleClose(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	text := "Редактор закрыт."
	if editor, ok := h.StateManager.Editor(hc.TelegramID); ok && editor.HasChanges() {
		text = "Редактор закрыт, несохранённые изменения отброшены."
	}

	hc.ClearState()
	hc.Answer("")
	if err := hc.EditMessage(text, nil); err != nil {
		h.Logger.Error("Failed to close editor", zap.Error(err))
	}
}

func refresh(hc *common.HandlerContext, editor *service.ScheduleEditor) {
	if _, ok := hc.Handler.StateManager.Day(hc.TelegramID); ok {
		showDay(hc, editor)
		return
	}
	showWeek(hc, editor)
}

func showWeek(hc *common.HandlerContext, editor *service.ScheduleEditor) {
	text, kb := WeekScreen(editor)
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to show week", zap.Error(err))
	}
}

func showDay(hc *common.HandlerContext, editor *service.ScheduleEditor) {
	day, ok := hc.Handler.StateManager.Day(hc.TelegramID)
	if !ok {
		showWeek(hc, editor)
		return
	}

	text, kb, err := DayScreen(editor, day)
	if err != nil {
		hc.Handler.Logger.Error("Failed to build day screen", zap.Error(err))
		return
	}
	if err := hc.EditMessage(text, kb); err != nil {
		hc.Handler.Logger.Error("Failed to show day", zap.Error(err))
	}
}
