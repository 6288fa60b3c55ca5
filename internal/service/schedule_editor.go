package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EditorState состояние редактора расписания
type EditorState string

const (
	EditorLoading   EditorState = "loading"
	EditorClean     EditorState = "clean"
	EditorDirty     EditorState = "dirty"
	EditorSaving    EditorState = "saving"
	EditorLoadError EditorState = "load_error"
)

// ScheduleEditor рабочая копия расписания одного преподавателя в одном экране.
// Изменения сохраняются только целиком через Save.
type ScheduleEditor struct {
	mu sync.Mutex

	id       uuid.UUID
	tutorID  int64
	store    AvailabilityStore
	window   availability.Window
	loc      *time.Location
	now      func() time.Time
	validate *validator.Validate
	logger   *zap.Logger

	state    EditorState
	original availability.WeekSchedule
	working  availability.WeekSchedule
	booked   availability.WeekSchedule
	loadErr  error
	saveErr  error
}

// NewScheduleEditor создаёт редактор в состоянии Loading
func NewScheduleEditor(
	tutorID int64,
	store AvailabilityStore,
	window availability.Window,
	loc *time.Location,
	now func() time.Time,
	logger *zap.Logger,
) *ScheduleEditor {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	id := uuid.New()
	return &ScheduleEditor{
		id:       id,
		tutorID:  tutorID,
		store:    store,
		window:   window,
		loc:      loc,
		now:      now,
		validate: validator.New(),
		logger:   logger.With(zap.String("editor_id", id.String()), zap.Int64("tutor_id", tutorID)),
		state:    EditorLoading,
	}
}

// ID идентификатор сессии редактора
func (e *ScheduleEditor) ID() uuid.UUID {
	return e.id
}

// TutorID владелец расписания
func (e *ScheduleEditor) TutorID() int64 {
	return e.tutorID
}

// Window окно сетки редактора
func (e *ScheduleEditor) Window() availability.Window {
	return e.window
}

// Load загружает сохранённые наборы. Разрешён только из Loading.
// При ошибке редактор переходит в LoadError и не хранит частичных данных.
func (e *ScheduleEditor) Load(ctx context.Context) error {
	e.mu.Lock()
	if e.state != EditorLoading {
		e.mu.Unlock()
		return fmt.Errorf("%w: load from state %s", ErrNotEditable, e.state)
	}
	e.mu.Unlock()

	records, err := e.store.ListByTutor(ctx, e.tutorID)
	if err == nil {
		var available, booked availability.WeekSchedule
		available, booked, err = availability.FromRecords(availability.ActiveRecords(records, e.now()), e.loc)
		if err == nil {
			e.mu.Lock()
			e.original = available
			e.working = available.Clone()
			e.booked = booked
			e.state = EditorClean
			e.mu.Unlock()

			e.logger.Info("Schedule loaded",
				zap.Int("records", len(records)),
				zap.Int("total_slots", availability.TotalSlots(available)))
			return nil
		}
	}

	e.mu.Lock()
	e.state = EditorLoadError
	e.loadErr = err
	e.original, e.working, e.booked = nil, nil, nil
	e.mu.Unlock()

	e.logger.Error("Failed to load schedule", zap.Error(err))
	return fmt.Errorf("%w: %v", ErrLoadFailed, err)
}

// State текущее состояние
func (e *ScheduleEditor) State() EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// HasChanges рабочая копия отличается от последней загруженной или сохранённой
func (e *ScheduleEditor) HasChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == EditorDirty || e.state == EditorSaving
}

// LoadErr причина ошибки загрузки (nil вне LoadError)
func (e *ScheduleEditor) LoadErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadErr
}

// LastSaveErr причина последней неудачной попытки сохранения
func (e *ScheduleEditor) LastSaveErr() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveErr
}

// Working копия рабочего расписания
func (e *ScheduleEditor) Working() availability.WeekSchedule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.working.Clone()
}

// Original копия последнего загруженного или сохранённого расписания
func (e *ScheduleEditor) Original() availability.WeekSchedule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.original.Clone()
}

// Booked копия занятых диапазонов
func (e *ScheduleEditor) Booked() availability.WeekSchedule {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.booked.Clone()
}

// TotalSlots количество сохранённых диапазонов в рабочей копии
func (e *ScheduleEditor) TotalSlots() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return availability.TotalSlots(e.working)
}

// Classification статусы всех ячеек окна для рабочей копии
func (e *ScheduleEditor) Classification() (availability.Classification, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded() {
		return availability.Classification{}, fmt.Errorf("%w: state %s", ErrNotEditable, e.state)
	}
	return availability.ClassifyWeek(e.window, e.working, e.booked), nil
}

// Toggle добавляет или убирает ячейку в рабочей копии.
// Занятая ячейка не редактируется: возвращается false без ошибки и без изменений.
func (e *ScheduleEditor) Toggle(day availability.Weekday, cell availability.TimeRange) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mutable(); err != nil {
		return false, err
	}
	if !day.Valid() || !e.window.IsCell(cell) {
		return false, fmt.Errorf("%w: %s %s", ErrInvalidCell, day, cell)
	}

	if availability.Classify(day, cell, e.working, e.booked) == availability.CellBooked {
		e.logger.Debug("Toggle ignored on booked cell",
			zap.String("day", day.String()),
			zap.String("cell", cell.String()))
		return false, nil
	}

	if !e.working.Remove(day, cell) {
		e.working.Add(day, cell)
	}
	e.refreshState()

	e.logger.Debug("Cell toggled",
		zap.String("day", day.String()),
		zap.String("cell", cell.String()),
		zap.String("state", string(e.state)))
	return true, nil
}

// ClearAll очищает все дни рабочей копии
func (e *ScheduleEditor) ClearAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mutable(); err != nil {
		return err
	}

	e.working = availability.NewWeekSchedule()
	e.refreshState()

	e.logger.Info("Schedule cleared", zap.String("state", string(e.state)))
	return nil
}

// Discard возвращает рабочую копию к оригиналу
func (e *ScheduleEditor) Discard() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mutable(); err != nil {
		return err
	}
	if e.state == EditorClean {
		return nil
	}

	e.working = e.original.Clone()
	e.state = EditorClean

	e.logger.Info("Changes discarded")
	return nil
}

// Serialize датированные интервалы рабочей копии в том виде, как они уйдут в хранилище
func (e *ScheduleEditor) Serialize() ([]model.AvailabilityWindow, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded() {
		return nil, fmt.Errorf("%w: state %s", ErrNotEditable, e.state)
	}
	return e.serializeLocked()
}

// Save отправляет рабочую копию в хранилище целиком.
// Повторный вызов во время сохранения отклоняется. При ошибке рабочая копия и Dirty сохраняются.
func (e *ScheduleEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	if err := e.mutable(); err != nil {
		e.mu.Unlock()
		return err
	}
	if e.state == EditorClean {
		e.mu.Unlock()
		return nil
	}

	windows, err := e.serializeLocked()
	if err != nil {
		e.saveErr = err
		e.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	snapshot := e.working.Clone()
	e.state = EditorSaving
	e.mu.Unlock()

	batchID := uuid.New()
	err = e.store.ReplaceAvailable(ctx, e.tutorID, batchID, windows)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.state = EditorDirty
		e.saveErr = err
		e.logger.Error("Failed to save schedule",
			zap.String("batch_id", batchID.String()),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	e.original = snapshot
	e.working = snapshot.Clone()
	e.state = EditorClean
	e.saveErr = nil

	e.logger.Info("Schedule saved",
		zap.String("batch_id", batchID.String()),
		zap.Int("windows", len(windows)))
	return nil
}

func (e *ScheduleEditor) serializeLocked() ([]model.AvailabilityWindow, error) {
	windows, err := availability.Serialize(e.working, e.now().In(e.loc))
	if err != nil {
		return nil, err
	}
	for i := range windows {
		if err := e.validate.Struct(&windows[i]); err != nil {
			return nil, fmt.Errorf("%w: %v", availability.ErrMalformedRange, err)
		}
	}
	return windows, nil
}

func (e *ScheduleEditor) loaded() bool {
	return e.state == EditorClean || e.state == EditorDirty || e.state == EditorSaving
}

// mutable проверяет что рабочую копию можно менять (вызывать под mu)
func (e *ScheduleEditor) mutable() error {
	switch e.state {
	case EditorClean, EditorDirty:
		return nil
	case EditorSaving:
		return ErrSaveInProgress
	default:
		return fmt.Errorf("%w: state %s", ErrNotEditable, e.state)
	}
}

func (e *ScheduleEditor) refreshState() {
	if e.working.Equal(e.original) {
		e.state = EditorClean
	} else {
		e.state = EditorDirty
	}
}
