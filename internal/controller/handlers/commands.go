package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_scheduler/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 <b>Справка по командам</b>\n\n" +
	"Для студентов:\n" +
	"/tutors - Преподаватели и их свободное время\n" +
	"/mybookings - Мои занятия\n\n" +
	"Для преподавателей:\n" +
	"/becometutor - Стать преподавателем\n" +
	"/availability - Отметить свободные часы на неделе\n\n" +
	"/cancel - Закрыть открытый редактор\n" +
	"/help - Показать эту справку"

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	user := update.Message.From

	// Регистрируем пользователя
	registeredUser, err := h.userService.RegisterUser(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)

	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Здесь преподаватели отмечают свободные часы, а студенты записываются на занятия.\n\n",
		registeredUser.DisplayName(),
	)

	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText+helpText, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - закрывает редактор или просмотр
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.", nil)
		return
	}

	text := "✅ Операция отменена."
	if editor, ok := h.stateManager.Editor(telegramID); ok && editor.HasChanges() {
		text = "✅ Редактор закрыт, несохранённые изменения отброшены."
	}

	// Очищаем состояние
	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, update.Message.Chat.ID, text+"\n\nИспользуйте /help для просмотра доступных команд.", nil)
}

// HandleTextMessage отвечает на произвольный текст: весь ввод идёт через кнопки
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateEditingAvailability:
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"✏️ Редактор открыт выше: нажимайте на дни и ячейки. /cancel закроет его.", nil)
	default:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🤔 Не понимаю. Список команд: /help", nil)
	}
}
