package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/model"
	"github.com/google/uuid"
)

// AvailabilityStore порт хранилища, с которым работает редактор расписания
type AvailabilityStore interface {
	// ListByTutor возвращает все записи преподавателя (AVAILABLE и BOOKED)
	ListByTutor(ctx context.Context, tutorID int64) ([]model.AvailabilityRecord, error)
	// ReplaceAvailable полностью заменяет набор AVAILABLE; BOOKED не трогает
	ReplaceAvailable(ctx context.Context, tutorID int64, batchID uuid.UUID, windows []model.AvailabilityWindow) error
}

// BookingStore порт для записей студентов
type BookingStore interface {
	AvailabilityStore
	CreateBooked(ctx context.Context, record *model.AvailabilityRecord) error
	ListBookedByStudent(ctx context.Context, studentID int64) ([]model.AvailabilityRecord, error)
	DeleteBooked(ctx context.Context, recordID, studentID int64) error
}

// RolloverStore порт фоновой задачи переноса прошедших интервалов
type RolloverStore interface {
	RolloverExpired(ctx context.Context, now time.Time) (int, error)
}

// UserStore порт пользователей
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]*model.User, error)
}
