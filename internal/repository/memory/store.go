// Package memory хранилище в памяти процесса (STORAGE=memory и тесты).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/model"
	"github.com/Freeeeeet/tutor_scheduler/internal/repository"
	"github.com/google/uuid"
)

// Store повторяет поведение Postgres репозиториев, включая уникальность BOOKED по (tutor_id, start_time)
type Store struct {
	mu sync.RWMutex

	now     func() time.Time
	records map[int64]model.AvailabilityRecord
	users   map[int64]*model.User
	lastID  int64
	lastUID int64
}

// NewStore создаёт пустое хранилище
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:     now,
		records: make(map[int64]model.AvailabilityRecord),
		users:   make(map[int64]*model.User),
	}
}

// ListByTutor получает все записи преподавателя
func (s *Store) ListByTutor(_ context.Context, tutorID int64) ([]model.AvailabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter(func(r model.AvailabilityRecord) bool {
		return r.TutorID == tutorID
	}), nil
}

// ReplaceAvailable заменяет набор AVAILABLE целиком
func (s *Store) ReplaceAvailable(_ context.Context, tutorID int64, batchID uuid.UUID, windows []model.AvailabilityWindow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, r := range s.records {
		if r.TutorID == tutorID && r.Status == model.RecordStatusAvailable {
			delete(s.records, id)
		}
	}

	created := s.now()
	for _, w := range windows {
		s.lastID++
		s.records[s.lastID] = model.AvailabilityRecord{
			ID:        s.lastID,
			BatchID:   batchID,
			TutorID:   tutorID,
			Status:    model.RecordStatusAvailable,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
			CreatedAt: created,
		}
	}

	return nil
}

// CreateBooked создаёт BOOKED запись
func (s *Store) CreateBooked(_ context.Context, record *model.AvailabilityRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.Status == model.RecordStatusBooked && r.TutorID == record.TutorID && r.StartTime.Equal(record.StartTime) {
			return repository.ErrAlreadyBooked
		}
	}

	s.lastID++
	record.ID = s.lastID
	record.Status = model.RecordStatusBooked
	record.CreatedAt = s.now()

	stored := *record
	if record.StudentID != nil {
		id := *record.StudentID
		stored.StudentID = &id
	}
	s.records[stored.ID] = stored

	return nil
}

// ListBookedByStudent получает записи студента
func (s *Store) ListBookedByStudent(_ context.Context, studentID int64) ([]model.AvailabilityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filter(func(r model.AvailabilityRecord) bool {
		return r.Status == model.RecordStatusBooked && r.StudentID != nil && *r.StudentID == studentID
	}), nil
}

// DeleteBooked удаляет запись студента
func (s *Store) DeleteBooked(_ context.Context, recordID, studentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[recordID]
	if !ok || r.Status != model.RecordStatusBooked || r.StudentID == nil || *r.StudentID != studentID {
		return repository.ErrNotFound
	}

	delete(s.records, recordID)
	return nil
}

// RolloverExpired переносит прошедшие AVAILABLE записи на целое число недель.
// Недели считаются в локации now.
func (s *Store) RolloverExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := 0
	for id, r := range s.records {
		if r.Status != model.RecordStatusAvailable || r.EndTime.After(now) {
			continue
		}
		r.StartTime, r.EndTime = availability.RollForward(r.StartTime, r.EndTime, now)
		s.records[id] = r
		moved++
	}

	return moved, nil
}

// Create создаёт пользователя
func (s *Store) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUID++
	user.ID = s.lastUID
	user.CreatedAt = s.now()

	u := *user
	s.users[u.ID] = &u
	return nil
}

// Update обновляет пользователя
func (s *Store) Update(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}

	u := *user
	s.users[u.ID] = &u
	return nil
}

// GetByID получает пользователя; nil если не найден
func (s *Store) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

// GetByTelegramID получает пользователя по Telegram ID; nil если не найден
func (s *Store) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.TelegramID == telegramID {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

// ListByRole пользователи с ролью, по имени
func (s *Store) ListByRole(_ context.Context, role model.Role) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var users []*model.User
	for _, u := range s.users {
		if u.Role == role {
			c := *u
			users = append(users, &c)
		}
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].FirstName != users[j].FirstName {
			return users[i].FirstName < users[j].FirstName
		}
		if users[i].LastName != users[j].LastName {
			return users[i].LastName < users[j].LastName
		}
		return users[i].ID < users[j].ID
	})

	return users, nil
}

// filter копирует подходящие записи, отсортированные по началу (вызывать под mu)
func (s *Store) filter(keep func(model.AvailabilityRecord) bool) []model.AvailabilityRecord {
	var out []model.AvailabilityRecord
	for _, r := range s.records {
		if keep(r) {
			if r.StudentID != nil {
				id := *r.StudentID
				r.StudentID = &id
			}
			out = append(out, r)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})

	return out
}
