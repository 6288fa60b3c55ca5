package availability

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/Freeeeeet/tutor_scheduler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-19 понедельник
var monday = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func record(status model.RecordStatus, start, end time.Time) model.AvailabilityRecord {
	return model.AvailabilityRecord{Status: status, StartTime: start, EndTime: end}
}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, time.UTC)
}

func TestFromRecordsPartitionsDedupesAndSorts(t *testing.T) {
	records := []model.AvailabilityRecord{
		record(model.RecordStatusAvailable, at(20, 14, 0), at(20, 15, 0)), // Tuesday
		record(model.RecordStatusAvailable, at(20, 9, 0), at(20, 10, 0)),
		record(model.RecordStatusAvailable, at(27, 14, 0), at(27, 15, 0)), // следующий вторник, тот же диапазон
		record(model.RecordStatusBooked, at(21, 11, 0), at(21, 12, 0)),    // Wednesday
		record(model.RecordStatusAvailable, at(25, 23, 0), at(26, 0, 0)),  // Sunday до полуночи
	}

	available, booked, err := FromRecords(records, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []TimeRange{HourRange(9, 10), HourRange(14, 15)}, available.Ranges(Tuesday))
	assert.Equal(t, []TimeRange{HourRange(23, 24)}, available.Ranges(Sunday))
	assert.Equal(t, []TimeRange{HourRange(11, 12)}, booked.Ranges(Wednesday))
	assert.Nil(t, available.Ranges(Wednesday))
}

func TestFromRecordsUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 22:00 UTC понедельника = 01:00 вторника по UTC+3
	records := []model.AvailabilityRecord{
		record(model.RecordStatusAvailable, at(19, 22, 0), at(19, 23, 0)),
	}

	available, _, err := FromRecords(records, loc)
	require.NoError(t, err)
	assert.Equal(t, []TimeRange{HourRange(1, 2)}, available.Ranges(Tuesday))
}

func TestFromRecordsRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		rec  model.AvailabilityRecord
	}{
		{name: "empty", rec: record(model.RecordStatusAvailable, at(20, 9, 0), at(20, 9, 0))},
		{name: "reversed", rec: record(model.RecordStatusAvailable, at(20, 10, 0), at(20, 9, 0))},
		{name: "cross midnight", rec: record(model.RecordStatusAvailable, at(20, 23, 0), at(21, 1, 0))},
		{name: "unknown status", rec: record("PENDING", at(20, 9, 0), at(20, 10, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := FromRecords([]model.AvailabilityRecord{tt.rec}, time.UTC)
			assert.ErrorIs(t, err, ErrMalformedRange)
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name  string
		day   Weekday
		r     TimeRange
		after time.Time
		want  time.Time
	}{
		{name: "later this week", day: Wednesday, r: HourRange(9, 10), after: monday, want: at(21, 9, 0)},
		{name: "same day later", day: Monday, r: HourRange(14, 15), after: monday, want: at(19, 14, 0)},
		{name: "same day earlier rolls over", day: Monday, r: HourRange(9, 10), after: monday, want: at(26, 9, 0)},
		{name: "same instant rolls over", day: Monday, r: HourRange(10, 11), after: monday, want: at(26, 10, 0)},
		{name: "sunday", day: Sunday, r: HourRange(20, 21), after: monday, want: at(25, 20, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := NextOccurrence(tt.day, tt.r, tt.after)
			assert.True(t, start.Equal(tt.want), "got %s", start)
			assert.Equal(t, tt.r.Duration(), int(end.Sub(start).Minutes()))
			assert.Equal(t, tt.day, FromTime(start.Weekday()))
		})
	}
}

func TestSerializeAnchorsAtLeastOneWeekOut(t *testing.T) {
	s := WeekSchedule{Tuesday: {HourRange(14, 15)}}

	windows, err := Serialize(s, monday)
	require.NoError(t, err)
	require.Len(t, windows, 1)

	// вторник 2026-10-27: ближайший вторник позже чем now + 7 дней
	assert.True(t, windows[0].StartTime.Equal(at(27, 14, 0)), "got %s", windows[0].StartTime)
	assert.True(t, windows[0].EndTime.Equal(at(27, 15, 0)))
	assert.True(t, windows[0].StartTime.After(monday.Add(AnchorLead)))
}

func TestSerializeSameWeekdayEarlierHourSkipsTwoWeeks(t *testing.T) {
	// понедельник 09:00 через 7 дней уже раньше now + 7 дней
	windows, err := Serialize(WeekSchedule{Monday: {HourRange(9, 10)}}, monday)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.True(t, windows[0].StartTime.Equal(time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)))
}

func TestSerializeMidnightCell(t *testing.T) {
	windows, err := Serialize(WeekSchedule{Sunday: {HourRange(23, 24)}}, monday)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.True(t, windows[0].EndTime.Equal(time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)))
}

func TestSerializeRejectsMalformed(t *testing.T) {
	_, err := Serialize(WeekSchedule{Monday: {{Start: 600, End: 540}}}, monday)
	assert.ErrorIs(t, err, ErrMalformedRange)
}

func TestSerializeRoundTrip(t *testing.T) {
	// Закон проверяется для любых корректных нормализованных наборов:
	// диапазоны сохраняются целиком и не дробятся на ячейки.
	tests := []struct {
		name string
		s    WeekSchedule
	}{
		{name: "empty", s: NewWeekSchedule()},
		{name: "cell aligned", s: WeekSchedule{
			Monday:    {HourRange(7, 8), HourRange(9, 10)},
			Tuesday:   {HourRange(14, 15)},
			Sunday:    {HourRange(20, 21)},
			Wednesday: {HourRange(23, 24)},
		}},
		{name: "multi cell and partial", s: WeekSchedule{
			Thursday: {HourRange(8, 12), {Start: 13*60 + 30, End: 14*60 + 30}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows, err := Serialize(tt.s, monday)
			require.NoError(t, err)
			assert.Len(t, windows, TotalSlots(tt.s))

			records := make([]model.AvailabilityRecord, len(windows))
			for i, w := range windows {
				records[i] = record(model.RecordStatusAvailable, w.StartTime, w.EndTime)
			}

			available, booked, err := FromRecords(records, time.UTC)
			require.NoError(t, err)
			assert.True(t, booked.IsEmpty())
			assert.True(t, tt.s.Equal(available), "got %v", available.Strings())
		})
	}
}

func TestActiveRecordsDropsFinishedBookings(t *testing.T) {
	records := []model.AvailabilityRecord{
		record(model.RecordStatusBooked, at(12, 9, 0), at(12, 10, 0)),    // прошлый понедельник
		record(model.RecordStatusBooked, at(19, 9, 0), at(19, 10, 0)),    // закончилось ровно в now
		record(model.RecordStatusBooked, at(19, 10, 0), at(19, 11, 0)),   // идёт сейчас
		record(model.RecordStatusAvailable, at(12, 9, 0), at(12, 10, 0)), // AVAILABLE не фильтруется
		record(model.RecordStatusBooked, at(20, 14, 0), at(20, 15, 0)),   // впереди
	}

	active := ActiveRecords(records, monday)
	require.Len(t, active, 3)
	assert.Equal(t, records[2], active[0])
	assert.Equal(t, records[3], active[1])
	assert.Equal(t, records[4], active[2])

	_, booked, err := FromRecords(active, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []TimeRange{HourRange(10, 11)}, booked.Ranges(Monday))
	assert.Equal(t, []TimeRange{HourRange(14, 15)}, booked.Ranges(Tuesday))
}

func TestRollForwardKeepsWallClockAcrossDST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// понедельник 09:00 CEST, через переход на CET 2026-10-25
	start := time.Date(2026, 10, 5, 9, 0, 0, 0, berlin)
	now := time.Date(2026, 10, 27, 12, 0, 0, 0, berlin)

	gotStart, gotEnd := RollForward(start, start.Add(time.Hour), now)
	assert.True(t, gotStart.Equal(time.Date(2026, 11, 2, 9, 0, 0, 0, berlin)), "got %s", gotStart)
	assert.True(t, gotEnd.Equal(time.Date(2026, 11, 2, 10, 0, 0, 0, berlin)), "got %s", gotEnd)
}

func TestRollForwardKeepsCurrentOccurrence(t *testing.T) {
	// занятие идёт в момент переноса: остаётся на этой неделе
	start, end := RollForward(at(12, 9, 30), at(12, 10, 30), monday)
	assert.True(t, start.Equal(at(19, 9, 30)), "got %s", start)
	assert.True(t, end.Equal(at(19, 10, 30)))
}

func TestNextOccurrenceSkipsMissingHour(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 2027-03-28 в 02:00 часы переводятся на 03:00
	after := time.Date(2027, 3, 27, 12, 0, 0, 0, berlin)
	start, end := NextOccurrence(Sunday, HourRange(2, 3), after)
	assert.True(t, start.Equal(time.Date(2027, 4, 4, 2, 0, 0, 0, berlin)), "got %s", start)
	assert.Equal(t, time.Hour, end.Sub(start))

	s := WeekSchedule{Sunday: {HourRange(2, 3)}}
	windows, err := Serialize(s, time.Date(2027, 3, 20, 12, 0, 0, 0, berlin))
	require.NoError(t, err)
	require.Len(t, windows, 1)

	records := []model.AvailabilityRecord{record(model.RecordStatusAvailable, windows[0].StartTime, windows[0].EndTime)}
	available, _, err := FromRecords(records, berlin)
	require.NoError(t, err)
	assert.Equal(t, s[Sunday], available.Ranges(Sunday))
}
