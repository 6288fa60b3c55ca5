package availability

// CellStatus производный статус ячейки, не хранится
type CellStatus string

const (
	CellEmpty     CellStatus = "empty"
	CellAvailable CellStatus = "available"
	CellBooked    CellStatus = "booked"
)

// Classify определяет статус ячейки с приоритетом booked > available > empty
func Classify(day Weekday, cell TimeRange, available, booked WeekSchedule) CellStatus {
	if coveredBy(booked[day], cell) {
		return CellBooked
	}
	if coveredBy(available[day], cell) {
		return CellAvailable
	}
	return CellEmpty
}

func coveredBy(ranges []TimeRange, cell TimeRange) bool {
	for _, r := range ranges {
		if Covers(r, cell) {
			return true
		}
	}
	return false
}

// Classification статусы всех ячеек сетки за один проход
type Classification struct {
	Window Window
	Cells  []TimeRange
	Status map[Weekday][]CellStatus
}

// ClassifyWeek классифицирует каждую ячейку окна; пустые наборы дают сплошной empty
func ClassifyWeek(w Window, available, booked WeekSchedule) Classification {
	cells := w.Cells()
	c := Classification{
		Window: w,
		Cells:  cells,
		Status: make(map[Weekday][]CellStatus, len(Weekdays)),
	}
	for _, day := range Weekdays {
		statuses := make([]CellStatus, len(cells))
		for i, cell := range cells {
			statuses[i] = Classify(day, cell, available, booked)
		}
		c.Status[day] = statuses
	}
	return c
}

// At статус конкретной ячейки; для диапазона вне сетки возвращает empty
func (c Classification) At(day Weekday, cell TimeRange) CellStatus {
	for i, candidate := range c.Cells {
		if candidate == cell {
			return c.Status[day][i]
		}
	}
	return CellEmpty
}

// Count количество ячеек с указанным статусом по всей неделе
func (c Classification) Count(status CellStatus) int {
	n := 0
	for _, statuses := range c.Status {
		for _, s := range statuses {
			if s == status {
				n++
			}
		}
	}
	return n
}
