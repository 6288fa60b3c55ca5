package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/handlers"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/state"
	"github.com/Freeeeeet/tutor_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	stateManager    *state.Manager
	sessionTTL      time.Duration
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	availabilityService *service.AvailabilityService,
	bookingService *service.BookingService,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	deps := &callbacktypes.Handler{
		UserService:         userService,
		AvailabilityService: availabilityService,
		BookingService:      bookingService,
		StateManager:        stateManager,
		Logger:              logger,
	}

	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(deps),
		callbackHandler: callbacks.NewHandler(deps),
		stateManager:    stateManager,
		sessionTTL:      sessionTTL,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Команды для студентов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tutors", bot.MatchTypeExact, c.handlers.HandleTutors)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/mybookings", bot.MatchTypeExact, c.handlers.HandleMyBookings)

	// Команды для преподавателей
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/becometutor", bot.MatchTypeExact, c.handlers.HandleBecomeTutor)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/availability", bot.MatchTypeExact, c.handlers.HandleAvailability)

	// Обработчик текстовых сообщений
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка по командам"},
		{Command: "tutors", Description: "👨‍🏫 Преподаватели"},
		{Command: "mybookings", Description: "📚 Мои занятия"},
		{Command: "becometutor", Description: "🎓 Стать преподавателем"},
		{Command: "availability", Description: "🗓 Моё свободное время (преподаватель)"},
		{Command: "cancel", Description: "✖️ Закрыть редактор"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота и очистку брошенных сессий; блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")

	if c.sessionTTL > 0 {
		go c.expireSessions(ctx)
	}

	c.bot.Start(ctx)
	return nil
}

func (c *BotController) expireSessions(ctx context.Context) {
	ticker := time.NewTicker(c.sessionTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.stateManager.Expire(c.sessionTTL); n > 0 {
				c.logger.Info("Expired idle sessions", zap.Int("count", n))
			}
		}
	}
}
