package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/tutor_scheduler/internal/app"
	"github.com/Freeeeeet/tutor_scheduler/internal/config"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller"
	"github.com/Freeeeeet/tutor_scheduler/internal/repository"
	"github.com/Freeeeeet/tutor_scheduler/internal/repository/memory"
	"github.com/Freeeeeet/tutor_scheduler/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// stores набор портов хранилища для сервисов
type stores struct {
	availability service.BookingStore
	rollover     service.RolloverStore
	users        service.UserStore
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting tutor scheduler bot",
		zap.String("storage", cfg.Storage),
		zap.String("timezone", cfg.Timezone),
		zap.Stringer("edit_window", cfg.EditWindow),
		zap.Stringer("view_window", cfg.ViewWindow))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer st.close()

	availabilityCfg := service.AvailabilityConfig{
		EditWindow: cfg.EditWindow,
		ViewWindow: cfg.ViewWindow,
		Location:   cfg.Location,
	}

	userService := service.NewUserService(st.users, logger)
	availabilityService := service.NewAvailabilityService(st.availability, st.rollover, availabilityCfg, nil, logger)
	bookingService := service.NewBookingService(st.availability, st.users, availabilityCfg, nil, logger)

	scheduler := app.NewScheduler(availabilityService, cfg.RolloverInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	b, err := bot.New(cfg.TelegramToken, bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		logger.Debug("Unhandled update", zap.Int64("update_id", update.ID))
	}))
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, userService, availabilityService, bookingService, cfg.SessionTTL, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Failed to register bot commands menu", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Shutting down")
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewStore(nil)
		return &stores{
			availability: store,
			rollover:     store,
			users:        store,
			close:        func() {},
		}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Info("Connected to database")

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	availabilityRepo := repository.NewAvailabilityRepository(pool)
	return &stores{
		availability: availabilityRepo,
		rollover:     availabilityRepo,
		users:        repository.NewUserRepository(pool),
		close:        pool.Close,
	}, nil
}
