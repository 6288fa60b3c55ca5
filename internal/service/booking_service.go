package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/model"
	"github.com/Freeeeeet/tutor_scheduler/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService struct {
	store    BookingStore
	userRepo UserStore
	cfg      AvailabilityConfig
	now      func() time.Time
	logger   *zap.Logger
}

func NewBookingService(
	store BookingStore,
	userRepo UserStore,
	cfg AvailabilityConfig,
	now func() time.Time,
	logger *zap.Logger,
) *BookingService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		store:    store,
		userRepo: userRepo,
		cfg:      cfg,
		now:      now,
		logger:   logger,
	}
}

// Now текущее время сервиса
func (s *BookingService) Now() time.Time {
	return s.now()
}

// Book записывает студента на ближайшее занятие в свободной ячейке преподавателя
func (s *BookingService) Book(ctx context.Context, student *model.User, tutorID int64, day availability.Weekday, cell availability.TimeRange) (*model.Booking, error) {
	if student.ID == tutorID {
		return nil, ErrSelfBooking
	}

	tutor, err := s.userRepo.GetByID(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}
	if tutor == nil {
		return nil, ErrUserNotFound
	}
	if !tutor.IsTutor() {
		return nil, ErrNotATutor
	}

	if !day.Valid() || !s.cfg.ViewWindow.IsCell(cell) {
		return nil, fmt.Errorf("%w: %s %s", ErrInvalidCell, day, cell)
	}

	records, err := s.store.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, fmt.Errorf("list tutor records: %w", err)
	}

	available, booked, err := availability.FromRecords(availability.ActiveRecords(records, s.now()), s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("read tutor records: %w", err)
	}

	// Свободна только ячейка со статусом available: занятые и пустые отклоняем
	if availability.Classify(day, cell, available, booked) != availability.CellAvailable {
		return nil, ErrCellNotAvailable
	}

	start, end := availability.NextOccurrence(day, cell, s.now().In(s.cfg.Location))
	studentID := student.ID
	record := &model.AvailabilityRecord{
		BatchID:   uuid.New(),
		TutorID:   tutorID,
		StartTime: start,
		EndTime:   end,
		StudentID: &studentID,
	}

	err = s.store.CreateBooked(ctx, record)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyBooked) {
			return nil, ErrCellNotAvailable
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("Booking created",
		zap.Int64("record_id", record.ID),
		zap.Int64("student_id", student.ID),
		zap.Int64("tutor_id", tutorID),
		zap.Time("start_time", start),
	)

	booking := model.BookingFromRecord(record, s.now())
	booking.Tutor = tutor
	return booking, nil
}

// StudentBookings занятия студента, ближайшие первыми
func (s *BookingService) StudentBookings(ctx context.Context, studentID int64) ([]*model.Booking, error) {
	records, err := s.store.ListBookedByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student bookings: %w", err)
	}

	now := s.now()
	tutors := make(map[int64]*model.User)
	bookings := make([]*model.Booking, 0, len(records))
	for i := range records {
		booking := model.BookingFromRecord(&records[i], now)

		tutor, ok := tutors[booking.TutorID]
		if !ok {
			tutor, err = s.userRepo.GetByID(ctx, booking.TutorID)
			if err != nil {
				return nil, fmt.Errorf("get tutor: %w", err)
			}
			tutors[booking.TutorID] = tutor
		}
		booking.Tutor = tutor

		bookings = append(bookings, booking)
	}

	return bookings, nil
}

// Cancel отменяет будущее занятие студента
func (s *BookingService) Cancel(ctx context.Context, studentID, recordID int64) error {
	records, err := s.store.ListBookedByStudent(ctx, studentID)
	if err != nil {
		return fmt.Errorf("list student bookings: %w", err)
	}

	var target *model.AvailabilityRecord
	for i := range records {
		if records[i].ID == recordID {
			target = &records[i]
			break
		}
	}
	if target == nil {
		return ErrBookingNotFound
	}

	if !target.StartTime.After(s.now()) {
		return ErrBookingPast
	}

	err = s.store.DeleteBooked(ctx, recordID, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("record_id", recordID),
		zap.Int64("student_id", studentID),
		zap.Int64("tutor_id", target.TutorID),
	)

	return nil
}
