package state

import (
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/service"
)

// Manager управляет состояниями пользователей
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
	now    func() time.Time
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
		now:    time.Now,
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// StartEditing открывает новую сессию редактора; предыдущая сессия брошена без сохранения
func (sm *Manager) StartEditing(telegramID int64, editor *service.ScheduleEditor) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[telegramID] = &UserData{
		State:     StateEditingAvailability,
		Editor:    editor,
		UpdatedAt: sm.now(),
	}
}

// Editor возвращает открытую сессию редактора
func (sm *Manager) Editor(telegramID int64) (*service.ScheduleEditor, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	userData, exists := sm.states[telegramID]
	if !exists || userData.State != StateEditingAvailability || userData.Editor == nil {
		return nil, false
	}
	return userData.Editor, true
}

// StartBrowsing запоминает преподавателя, которого смотрит студент
func (sm *Manager) StartBrowsing(telegramID, tutorID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[telegramID] = &UserData{
		State:     StateBrowsingTutor,
		TutorID:   tutorID,
		UpdatedAt: sm.now(),
	}
}

// SetDay запоминает выбранный день (nil сбрасывает выбор)
func (sm *Manager) SetDay(telegramID int64, day *availability.Weekday) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.states[telegramID]; exists {
		userData.Day = day
		userData.UpdatedAt = sm.now()
	}
}

// Day выбранный день
func (sm *Manager) Day(telegramID int64) (availability.Weekday, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists && userData.Day != nil {
		return *userData.Day, true
	}
	return 0, false
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// Expire удаляет сессии без активности дольше ttl; сессии в процессе сохранения не трогает
func (sm *Manager) Expire(ttl time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	deadline := sm.now().Add(-ttl)
	removed := 0
	for telegramID, userData := range sm.states {
		if !userData.UpdatedAt.Before(deadline) {
			continue
		}
		if userData.Editor != nil && userData.Editor.State() == service.EditorSaving {
			continue
		}
		delete(sm.states, telegramID)
		removed++
	}
	return removed
}

// Touch продлевает сессию
func (sm *Manager) Touch(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.states[telegramID]; exists {
		userData.UpdatedAt = sm.now()
	}
}
