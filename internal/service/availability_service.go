package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/model"
	"go.uber.org/zap"
)

// AvailabilityConfig окна сетки и часовой пояс расписаний
type AvailabilityConfig struct {
	EditWindow availability.Window
	ViewWindow availability.Window
	Location   *time.Location
}

type AvailabilityService struct {
	store    AvailabilityStore
	rollover RolloverStore
	cfg      AvailabilityConfig
	now      func() time.Time
	logger   *zap.Logger
}

func NewAvailabilityService(
	store AvailabilityStore,
	rollover RolloverStore,
	cfg AvailabilityConfig,
	now func() time.Time,
	logger *zap.Logger,
) *AvailabilityService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &AvailabilityService{
		store:    store,
		rollover: rollover,
		cfg:      cfg,
		now:      now,
		logger:   logger,
	}
}

// Config текущие окна и часовой пояс
func (s *AvailabilityService) Config() AvailabilityConfig {
	return s.cfg
}

// OpenEditor создаёт редактор для преподавателя и загружает его расписание.
// При ошибке загрузки редактор возвращается вместе с ошибкой в состоянии LoadError.
func (s *AvailabilityService) OpenEditor(ctx context.Context, tutor *model.User) (*ScheduleEditor, error) {
	if tutor == nil || !tutor.IsTutor() {
		return nil, ErrNotATutor
	}

	editor := NewScheduleEditor(tutor.ID, s.store, s.cfg.EditWindow, s.cfg.Location, s.now, s.logger)
	if err := editor.Load(ctx); err != nil {
		return editor, err
	}

	return editor, nil
}

// TutorWeek статусы ячеек расписания преподавателя для просмотра
func (s *AvailabilityService) TutorWeek(ctx context.Context, tutorID int64) (availability.Classification, error) {
	available, booked, err := s.load(ctx, tutorID)
	if err != nil {
		return availability.Classification{}, err
	}
	return availability.ClassifyWeek(s.cfg.ViewWindow, available, booked), nil
}

// RolloverExpired переносит прошедшие интервалы вперёд, чтобы расписание не исчезало
func (s *AvailabilityService) RolloverExpired(ctx context.Context) (int, error) {
	moved, err := s.rollover.RolloverExpired(ctx, s.now().In(s.cfg.Location))
	if err != nil {
		return 0, fmt.Errorf("rollover availability: %w", err)
	}

	if moved > 0 {
		s.logger.Info("Expired availability rolled over", zap.Int("records", moved))
	}

	return moved, nil
}

func (s *AvailabilityService) load(ctx context.Context, tutorID int64) (availability.WeekSchedule, availability.WeekSchedule, error) {
	records, err := s.store.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	available, booked, err := availability.FromRecords(availability.ActiveRecords(records, s.now()), s.cfg.Location)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	return available, booked, nil
}
