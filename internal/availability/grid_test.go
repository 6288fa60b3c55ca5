package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, s string) TimeRange {
	t.Helper()
	r, err := ParseTimeRange(s)
	require.NoError(t, err)
	return r
}

func TestWindowCells(t *testing.T) {
	tests := []struct {
		name   string
		window Window
		count  int
		first  string
		last   string
	}{
		{name: "edit window", window: EditWindow, count: 14, first: "07:00-08:00", last: "20:00-21:00"},
		{name: "view window", window: ViewWindow, count: 24, first: "00:00-01:00", last: "23:00-24:00"},
		{name: "two cells", window: Window{StartHour: 8, EndHour: 10}, count: 2, first: "08:00-09:00", last: "09:00-10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := tt.window.Cells()
			require.Len(t, cells, tt.count)
			assert.Equal(t, tt.first, cells[0].String())
			assert.Equal(t, tt.last, cells[len(cells)-1].String())

			for i := 1; i < len(cells); i++ {
				assert.Equal(t, cells[i-1].End, cells[i].Start, "cells must be contiguous")
				assert.Equal(t, 60, cells[i].Duration())
			}
		})
	}
}

func TestWindowCellsRestartable(t *testing.T) {
	first := EditWindow.Cells()
	first[0] = HourRange(0, 1)

	assert.Equal(t, "07:00-08:00", EditWindow.Cells()[0].String())
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("07-21")
	require.NoError(t, err)
	assert.Equal(t, EditWindow, w)

	for _, bad := range []string{"", "7", "21-07", "00-25", "a-b", "05-05"} {
		_, err := ParseWindow(bad)
		assert.ErrorIs(t, err, ErrInvalidWindow, bad)
	}
}

func TestWindowIsCell(t *testing.T) {
	assert.True(t, EditWindow.IsCell(mustRange(t, "07:00-08:00")))
	assert.True(t, EditWindow.IsCell(mustRange(t, "20:00-21:00")))
	assert.False(t, EditWindow.IsCell(mustRange(t, "21:00-22:00")))
	assert.False(t, EditWindow.IsCell(mustRange(t, "06:00-07:00")))
	assert.False(t, EditWindow.IsCell(mustRange(t, "09:30-10:30")))
	assert.False(t, EditWindow.IsCell(mustRange(t, "09:00-11:00")))
}

func TestCovers(t *testing.T) {
	cell := mustRange(t, "09:00-10:00")

	tests := []struct {
		stored string
		want   bool
	}{
		{stored: "09:00-10:00", want: true},
		{stored: "08:00-12:00", want: true},
		{stored: "09:00-11:00", want: true},
		{stored: "09:30-10:30", want: false},
		{stored: "08:30-09:30", want: false},
		{stored: "09:00-09:30", want: false},
		{stored: "10:00-11:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			assert.Equal(t, tt.want, Covers(mustRange(t, tt.stored), cell))
		})
	}
}

func TestCoversMultiCellRangeIdentically(t *testing.T) {
	stored := mustRange(t, "08:00-11:00")
	for _, cell := range (Window{StartHour: 8, EndHour: 11}).Cells() {
		assert.True(t, Covers(stored, cell), cell.String())
	}
	assert.False(t, Covers(stored, HourRange(11, 12)))
	assert.False(t, Covers(stored, HourRange(7, 8)))
}

func TestTotalSlotsCountsStoredRanges(t *testing.T) {
	s := NewWeekSchedule()
	s.Add(Monday, mustRange(t, "08:00-12:00"))
	s.Add(Monday, mustRange(t, "14:00-15:00"))
	s.Add(Friday, mustRange(t, "09:00-10:00"))

	assert.Equal(t, 3, TotalSlots(s))
	assert.Equal(t, 0, TotalSlots(NewWeekSchedule()))
}

func TestParseTimeRange(t *testing.T) {
	r, err := ParseTimeRange("23:00-24:00")
	require.NoError(t, err)
	assert.Equal(t, 23*60, r.Start)
	assert.Equal(t, 24*60, r.End)
	assert.Equal(t, "23:00-24:00", r.String())

	for _, bad := range []string{"10:00-10:00", "11:00-10:00", "10:00", "25:00-26:00", "10:60-11:00", "x-y", "24:30-24:45"} {
		_, err := ParseTimeRange(bad)
		assert.ErrorIs(t, err, ErrMalformedRange, bad)
	}
}

func TestTimeRangeLabel(t *testing.T) {
	assert.Equal(t, "12:00 AM - 1:00 AM", HourRange(0, 1).Label())
	assert.Equal(t, "11:00 AM - 12:00 PM", HourRange(11, 12).Label())
	assert.Equal(t, "2:00 PM - 3:30 PM", TimeRange{Start: 14 * 60, End: 15*60 + 30}.Label())
	assert.Equal(t, "11:00 PM - 12:00 AM", HourRange(23, 24).Label())
}

func TestWeekdayConversions(t *testing.T) {
	for _, day := range Weekdays {
		assert.Equal(t, day, FromTime(day.Time()))

		parsed, err := ParseWeekday(day.String())
		require.NoError(t, err)
		assert.Equal(t, day, parsed)
	}

	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Sun", Sunday.Short())

	_, err := ParseWeekday("monday")
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}
