package config

import (
	"fmt"
	"log"
	"os"
	"time"
	_ "time/tzdata" // база часовых поясов внутри бинарника

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	TelegramToken    string        `mapstructure:"TELEGRAM_TOKEN" validate:"required"`
	DBDSN            string        `mapstructure:"DB_DSN" validate:"required_if=Storage postgres"`
	Environment      string        `mapstructure:"ENV" validate:"oneof=development production test"`
	Storage          string        `mapstructure:"STORAGE" validate:"oneof=postgres memory"`
	MigrationsPath   string        `mapstructure:"MIGRATIONS_PATH"`
	Timezone         string        `mapstructure:"TIMEZONE" validate:"required,timezone"`
	RolloverInterval time.Duration `mapstructure:"ROLLOVER_INTERVAL" validate:"min=1m"`
	SessionTTL       time.Duration `mapstructure:"SESSION_TTL" validate:"min=1m"`

	EditWindow availability.Window `mapstructure:"EDIT_WINDOW"`
	ViewWindow availability.Window `mapstructure:"VIEW_WINDOW"`
	Location   *time.Location
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает и проверяет конфиг из произвольного источника переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		TelegramToken:  getenv("TELEGRAM_TOKEN"),
		DBDSN:          getenv("DB_DSN"),
		Environment:    withDefault(getenv("ENV"), "development"),
		Storage:        withDefault(getenv("STORAGE"), StoragePostgres),
		MigrationsPath: getenv("MIGRATIONS_PATH"),
		Timezone:       withDefault(getenv("TIMEZONE"), "UTC"),
	}

	var err error
	cfg.RolloverInterval, err = time.ParseDuration(withDefault(getenv("ROLLOVER_INTERVAL"), "24h"))
	if err != nil {
		return nil, fmt.Errorf("ROLLOVER_INTERVAL: %w", err)
	}

	cfg.SessionTTL, err = time.ParseDuration(withDefault(getenv("SESSION_TTL"), "30m"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL: %w", err)
	}

	cfg.EditWindow, err = availability.ParseWindow(withDefault(getenv("EDIT_WINDOW"), availability.EditWindow.String()))
	if err != nil {
		return nil, fmt.Errorf("EDIT_WINDOW: %w", err)
	}

	cfg.ViewWindow, err = availability.ParseWindow(withDefault(getenv("VIEW_WINDOW"), availability.ViewWindow.String()))
	if err != nil {
		return nil, fmt.Errorf("VIEW_WINDOW: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// IsProduction production окружение
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func withDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
