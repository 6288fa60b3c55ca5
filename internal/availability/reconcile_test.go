package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBasicGrid(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 10}
	available := WeekSchedule{Monday: {HourRange(8, 9)}}
	booked := WeekSchedule{}

	cells := w.Cells()
	require.Len(t, cells, 2)

	assert.Equal(t, CellAvailable, Classify(Monday, cells[0], available, booked))
	assert.Equal(t, CellEmpty, Classify(Monday, cells[1], available, booked))
	assert.Equal(t, CellEmpty, Classify(Tuesday, cells[0], available, booked))
}

func TestClassifyBookedOverridesAvailable(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 10}
	available := WeekSchedule{Monday: {HourRange(8, 10)}}
	booked := WeekSchedule{Monday: {HourRange(9, 10)}}

	cells := w.Cells()
	assert.Equal(t, CellAvailable, Classify(Monday, cells[0], available, booked))
	assert.Equal(t, CellBooked, Classify(Monday, cells[1], available, booked))
}

func TestClassifyPartialOverlapIsEmpty(t *testing.T) {
	available := WeekSchedule{Monday: {{Start: 9*60 + 30, End: 10*60 + 30}}}

	assert.Equal(t, CellEmpty, Classify(Monday, HourRange(9, 10), available, nil))
	assert.Equal(t, CellEmpty, Classify(Monday, HourRange(10, 11), available, nil))
}

func TestClassifyWeekIsTotal(t *testing.T) {
	sets := []struct {
		name      string
		available WeekSchedule
		booked    WeekSchedule
	}{
		{name: "both empty", available: NewWeekSchedule(), booked: NewWeekSchedule()},
		{name: "nil sets", available: nil, booked: nil},
		{
			name:      "mixed",
			available: WeekSchedule{Monday: {HourRange(7, 12)}, Sunday: {HourRange(20, 21)}},
			booked:    WeekSchedule{Monday: {HourRange(9, 10)}, Wednesday: {HourRange(13, 14)}},
		},
	}

	for _, window := range []Window{EditWindow, ViewWindow} {
		for _, tt := range sets {
			t.Run(window.String()+"/"+tt.name, func(t *testing.T) {
				c := ClassifyWeek(window, tt.available, tt.booked)

				require.Len(t, c.Status, 7)
				total := 0
				for _, day := range Weekdays {
					require.Len(t, c.Status[day], len(window.Cells()))
					for _, status := range c.Status[day] {
						assert.Contains(t, []CellStatus{CellEmpty, CellAvailable, CellBooked}, status)
					}
					total += len(c.Status[day])
				}
				assert.Equal(t, total, c.Count(CellEmpty)+c.Count(CellAvailable)+c.Count(CellBooked))
			})
		}
	}
}

func TestClassifyWeekBookedPrecedence(t *testing.T) {
	available := WeekSchedule{}
	booked := WeekSchedule{}
	for _, day := range Weekdays {
		available[day] = []TimeRange{HourRange(7, 21)}
		booked[day] = []TimeRange{HourRange(10, 12)}
	}

	c := ClassifyWeek(EditWindow, available, booked)
	for _, day := range Weekdays {
		for i, cell := range c.Cells {
			if cell.Start >= 10*60 && cell.End <= 12*60 {
				assert.Equal(t, CellBooked, c.Status[day][i], "%s %s", day, cell)
			} else {
				assert.Equal(t, CellAvailable, c.Status[day][i], "%s %s", day, cell)
			}
		}
	}
	assert.Equal(t, 14, c.Count(CellBooked))
}

func TestClassificationAt(t *testing.T) {
	c := ClassifyWeek(EditWindow, WeekSchedule{Friday: {HourRange(15, 16)}}, nil)

	assert.Equal(t, CellAvailable, c.At(Friday, HourRange(15, 16)))
	assert.Equal(t, CellEmpty, c.At(Friday, HourRange(16, 17)))
	assert.Equal(t, CellEmpty, c.At(Friday, HourRange(22, 23)))
}
