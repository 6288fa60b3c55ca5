package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/model"
	"github.com/Freeeeeet/tutor_scheduler/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	_ AvailabilityStore = (*memory.Store)(nil)
	_ BookingStore      = (*memory.Store)(nil)
	_ RolloverStore     = (*memory.Store)(nil)
	_ UserStore         = (*memory.Store)(nil)
)

// 2026-10-19 понедельник
var now = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

var errBackend = errors.New("backend unavailable")

// flakyStore хранилище с управляемыми ошибками и блокировкой сохранения
type flakyStore struct {
	*memory.Store
	listErr    error
	replaceErr error
	records    []model.AvailabilityRecord
	block      chan struct{}
	entered    chan struct{}
	saves      int
}

func (f *flakyStore) ListByTutor(ctx context.Context, tutorID int64) ([]model.AvailabilityRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.records != nil {
		return f.records, nil
	}
	return f.Store.ListByTutor(ctx, tutorID)
}

func (f *flakyStore) ReplaceAvailable(ctx context.Context, tutorID int64, batchID uuid.UUID, windows []model.AvailabilityWindow) error {
	f.saves++
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	if f.replaceErr != nil {
		return f.replaceErr
	}
	return f.Store.ReplaceAvailable(ctx, tutorID, batchID, windows)
}

func newFlaky() *flakyStore {
	return &flakyStore{Store: memory.NewStore(clock)}
}

func newEditor(t *testing.T, store AvailabilityStore) *ScheduleEditor {
	t.Helper()
	return NewScheduleEditor(1, store, availability.EditWindow, time.UTC, clock, zaptest.NewLogger(t))
}

func loadedEditor(t *testing.T, store AvailabilityStore) *ScheduleEditor {
	t.Helper()
	e := newEditor(t, store)
	require.NoError(t, e.Load(context.Background()))
	require.Equal(t, EditorClean, e.State())
	return e
}

func bookedRecord(start time.Time, hours int) model.AvailabilityRecord {
	student := int64(42)
	return model.AvailabilityRecord{
		TutorID:   1,
		Status:    model.RecordStatusBooked,
		StartTime: start,
		EndTime:   start.Add(time.Duration(hours) * time.Hour),
		StudentID: &student,
	}
}

func TestEditorToggleAndSave(t *testing.T) {
	ctx := context.Background()
	store := newFlaky()
	e := loadedEditor(t, store)
	assert.False(t, e.HasChanges())

	changed, err := e.Toggle(availability.Tuesday, availability.HourRange(14, 15))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, EditorDirty, e.State())
	assert.True(t, e.HasChanges())
	assert.Equal(t, map[string][]string{"Tuesday": {"14:00-15:00"}}, e.Working().Strings())

	require.NoError(t, e.Save(ctx))
	assert.Equal(t, EditorClean, e.State())
	assert.Equal(t, map[string][]string{"Tuesday": {"14:00-15:00"}}, e.Original().Strings())

	windows, err := e.Serialize()
	require.NoError(t, err)
	require.Len(t, windows, 1)
	// следующий вторник не раньше чем через 7 дней
	assert.True(t, windows[0].StartTime.Equal(time.Date(2026, 10, 27, 14, 0, 0, 0, time.UTC)))
	assert.True(t, windows[0].StartTime.After(now.Add(7*24*time.Hour)))

	records, err := store.Store.ListByTutor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.RecordStatusAvailable, records[0].Status)
	assert.True(t, records[0].StartTime.Equal(windows[0].StartTime))
}

func TestEditorToggleInvolution(t *testing.T) {
	store := newFlaky()
	require.NoError(t, store.Store.ReplaceAvailable(context.Background(), 1, uuid.New(), []model.AvailabilityWindow{
		{StartTime: time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC), EndTime: time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)},
		{StartTime: time.Date(2026, 10, 20, 16, 0, 0, 0, time.UTC), EndTime: time.Date(2026, 10, 20, 17, 0, 0, 0, time.UTC)},
	}))
	e := loadedEditor(t, store)
	before := e.Working()

	cells := []availability.TimeRange{
		availability.HourRange(12, 13), // новая ячейка между существующими
		availability.HourRange(9, 10),  // существующая
	}

	for _, cell := range cells {
		_, err := e.Toggle(availability.Tuesday, cell)
		require.NoError(t, err)
		assert.Equal(t, EditorDirty, e.State())

		_, err = e.Toggle(availability.Tuesday, cell)
		require.NoError(t, err)

		assert.Equal(t, before.Ranges(availability.Tuesday), e.Working().Ranges(availability.Tuesday))
		assert.Equal(t, EditorClean, e.State())
	}
}

func TestEditorToggleKeepsDaySorted(t *testing.T) {
	e := loadedEditor(t, newFlaky())

	for _, h := range []int{15, 8, 11} {
		_, err := e.Toggle(availability.Friday, availability.HourRange(h, h+1))
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"08:00-09:00", "11:00-12:00", "15:00-16:00"}, e.Working().Strings()["Friday"])
}

func TestEditorToggleBookedIsNoop(t *testing.T) {
	store := newFlaky()
	store.records = []model.AvailabilityRecord{
		{TutorID: 1, Status: model.RecordStatusAvailable,
			StartTime: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)},
		bookedRecord(time.Date(2026, 10, 26, 9, 0, 0, 0, time.UTC), 1),
		bookedRecord(time.Date(2026, 10, 21, 13, 0, 0, 0, time.UTC), 1),
	}
	e := loadedEditor(t, store)
	before := e.Working()

	tests := []struct {
		day  availability.Weekday
		cell availability.TimeRange
	}{
		{availability.Monday, availability.HourRange(9, 10)},
		{availability.Wednesday, availability.HourRange(13, 14)},
	}

	for _, tt := range tests {
		changed, err := e.Toggle(tt.day, tt.cell)
		require.NoError(t, err)
		assert.False(t, changed)
	}

	assert.True(t, before.Equal(e.Working()))
	assert.Equal(t, EditorClean, e.State())

	cls, err := e.Classification()
	require.NoError(t, err)
	assert.Equal(t, availability.CellAvailable, cls.At(availability.Monday, availability.HourRange(8, 9)))
	assert.Equal(t, availability.CellBooked, cls.At(availability.Monday, availability.HourRange(9, 10)))
}

func TestEditorToggleRejectsNonCell(t *testing.T) {
	e := loadedEditor(t, newFlaky())

	bad := []availability.TimeRange{
		availability.HourRange(6, 7),  // вне окна 07-21
		availability.HourRange(9, 11), // не одна ячейка
		{Start: 9*60 + 30, End: 10*60 + 30},
	}
	for _, cell := range bad {
		_, err := e.Toggle(availability.Monday, cell)
		assert.ErrorIs(t, err, ErrInvalidCell)
	}

	_, err := e.Toggle(availability.Weekday(7), availability.HourRange(9, 10))
	assert.ErrorIs(t, err, ErrInvalidCell)
	assert.Equal(t, EditorClean, e.State())
}

func TestEditorDiscard(t *testing.T) {
	store := newFlaky()
	store.records = []model.AvailabilityRecord{
		{TutorID: 1, Status: model.RecordStatusAvailable,
			StartTime: time.Date(2026, 10, 22, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 10, 22, 11, 0, 0, 0, time.UTC)},
	}
	e := loadedEditor(t, store)

	_, err := e.Toggle(availability.Thursday, availability.HourRange(10, 11))
	require.NoError(t, err)
	_, err = e.Toggle(availability.Saturday, availability.HourRange(12, 13))
	require.NoError(t, err)
	require.Equal(t, EditorDirty, e.State())

	require.NoError(t, e.Discard())
	assert.Equal(t, EditorClean, e.State())
	assert.True(t, e.Working().Equal(e.Original()))
	assert.Equal(t, map[string][]string{"Thursday": {"10:00-11:00"}}, e.Working().Strings())
}

func TestEditorClearAll(t *testing.T) {
	store := newFlaky()
	store.records = []model.AvailabilityRecord{
		{TutorID: 1, Status: model.RecordStatusAvailable,
			StartTime: time.Date(2026, 10, 22, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 10, 22, 11, 0, 0, 0, time.UTC)},
	}
	e := loadedEditor(t, store)

	require.NoError(t, e.ClearAll())
	assert.Equal(t, EditorDirty, e.State())
	assert.True(t, e.Working().IsEmpty())
	assert.Equal(t, 0, e.TotalSlots())

	// оригинал не меняется до сохранения
	assert.Equal(t, 1, availability.TotalSlots(e.Original()))
}

func TestEditorClearAllOnEmptyStaysClean(t *testing.T) {
	e := loadedEditor(t, newFlaky())

	require.NoError(t, e.ClearAll())
	assert.Equal(t, EditorClean, e.State())
	assert.False(t, e.HasChanges())
}

func TestEditorSaveFailureKeepsDirty(t *testing.T) {
	ctx := context.Background()
	store := newFlaky()
	store.replaceErr = errBackend
	e := loadedEditor(t, store)

	_, err := e.Toggle(availability.Tuesday, availability.HourRange(14, 15))
	require.NoError(t, err)

	err = e.Save(ctx)
	assert.ErrorIs(t, err, ErrSaveFailed)
	assert.Equal(t, EditorDirty, e.State())
	assert.ErrorIs(t, e.LastSaveErr(), errBackend)
	assert.Equal(t, map[string][]string{"Tuesday": {"14:00-15:00"}}, e.Working().Strings())
	assert.True(t, e.Original().IsEmpty())

	// повтор с той же рабочей копией
	store.replaceErr = nil
	require.NoError(t, e.Save(ctx))
	assert.Equal(t, EditorClean, e.State())
	assert.NoError(t, e.LastSaveErr())
	assert.Equal(t, 2, store.saves)
}

func TestEditorSaveFromCleanIsNoop(t *testing.T) {
	store := newFlaky()
	e := loadedEditor(t, store)

	require.NoError(t, e.Save(context.Background()))
	assert.Equal(t, 0, store.saves)
}

func TestEditorRejectsEditsWhileSaving(t *testing.T) {
	store := newFlaky()
	store.block = make(chan struct{})
	store.entered = make(chan struct{})
	e := loadedEditor(t, store)

	_, err := e.Toggle(availability.Tuesday, availability.HourRange(14, 15))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- e.Save(context.Background()) }()

	<-store.entered
	assert.Equal(t, EditorSaving, e.State())
	assert.True(t, e.HasChanges())

	_, err = e.Toggle(availability.Tuesday, availability.HourRange(15, 16))
	assert.ErrorIs(t, err, ErrSaveInProgress)
	assert.ErrorIs(t, e.Save(context.Background()), ErrSaveInProgress)
	assert.ErrorIs(t, e.ClearAll(), ErrSaveInProgress)
	assert.ErrorIs(t, e.Discard(), ErrSaveInProgress)

	close(store.block)
	require.NoError(t, <-done)
	assert.Equal(t, EditorClean, e.State())
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, map[string][]string{"Tuesday": {"14:00-15:00"}}, e.Original().Strings())
}

func TestEditorLoadFailure(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*flakyStore)
	}{
		{name: "backend error", setup: func(f *flakyStore) { f.listErr = errBackend }},
		{name: "malformed record", setup: func(f *flakyStore) {
			f.records = []model.AvailabilityRecord{
				{Status: model.RecordStatusAvailable,
					StartTime: time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC),
					EndTime:   time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFlaky()
			tt.setup(store)
			e := newEditor(t, store)

			err := e.Load(context.Background())
			assert.ErrorIs(t, err, ErrLoadFailed)
			assert.Equal(t, EditorLoadError, e.State())
			assert.Error(t, e.LoadErr())
			assert.True(t, e.Working().IsEmpty())
			assert.True(t, e.Original().IsEmpty())
			assert.True(t, e.Booked().IsEmpty())

			_, err = e.Toggle(availability.Monday, availability.HourRange(9, 10))
			assert.ErrorIs(t, err, ErrNotEditable)
			_, err = e.Classification()
			assert.ErrorIs(t, err, ErrNotEditable)
			assert.ErrorIs(t, e.Save(context.Background()), ErrNotEditable)

			// повторная загрузка того же экземпляра запрещена
			assert.ErrorIs(t, e.Load(context.Background()), ErrNotEditable)
		})
	}
}

func TestEditorNotEditableBeforeLoad(t *testing.T) {
	e := newEditor(t, newFlaky())

	assert.Equal(t, EditorLoading, e.State())
	_, err := e.Toggle(availability.Monday, availability.HourRange(9, 10))
	assert.ErrorIs(t, err, ErrNotEditable)
	_, err = e.Serialize()
	assert.ErrorIs(t, err, ErrNotEditable)
}

func TestEditorClassificationTotal(t *testing.T) {
	e := loadedEditor(t, newFlaky())

	cls, err := e.Classification()
	require.NoError(t, err)
	assert.Len(t, cls.Cells, 14)
	assert.Equal(t, 14*7, cls.Count(availability.CellEmpty))
}
