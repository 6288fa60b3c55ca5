package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidWindow окно сетки не укладывается в 0..24 или пустое
var ErrInvalidWindow = errors.New("invalid grid window")

// Window конфигурация сетки: часовые ячейки с StartHour до EndHour.
// Сетка статична и задаётся только конфигурацией.
type Window struct {
	StartHour int
	EndHour   int
}

var (
	// EditWindow рабочее окно редактора преподавателя
	EditWindow = Window{StartHour: 7, EndHour: 21}
	// ViewWindow полные сутки для экранов чтения
	ViewWindow = Window{StartHour: 0, EndHour: 24}
)

// ParseWindow разбирает окно вида "07-21"
func ParseWindow(s string) (Window, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: %v", ErrInvalidWindow, s, err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q: %v", ErrInvalidWindow, s, err)
	}

	w := Window{StartHour: start, EndHour: end}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// Validate проверяет границы окна
func (w Window) Validate() error {
	if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
		return fmt.Errorf("%w: %02d-%02d", ErrInvalidWindow, w.StartHour, w.EndHour)
	}
	return nil
}

// String формат "07-21"
func (w Window) String() string {
	return fmt.Sprintf("%02d-%02d", w.StartHour, w.EndHour)
}

// Cells возвращает упорядоченные часовые ячейки окна.
// Результат зависит только от конфигурации, каждый вызов отдаёт новый срез.
func (w Window) Cells() []TimeRange {
	if w.Validate() != nil {
		return nil
	}
	cells := make([]TimeRange, 0, w.EndHour-w.StartHour)
	for h := w.StartHour; h < w.EndHour; h++ {
		cells = append(cells, HourRange(h, h+1))
	}
	return cells
}

// IsCell проверяет что диапазон совпадает с одной из ячеек окна
func (w Window) IsCell(r TimeRange) bool {
	if r.Duration() != minutesPerHour || r.Start%minutesPerHour != 0 {
		return false
	}
	h := r.Start / minutesPerHour
	return h >= w.StartHour && h < w.EndHour
}

// Covers истинно только при полном вхождении ячейки в сохранённый диапазон.
// Частичное пересечение (09:30-10:30 против 09:00-10:00) ячейку не покрывает.
func Covers(stored, cell TimeRange) bool {
	return stored.Start <= cell.Start && stored.End >= cell.End
}

// TotalSlots считает сохранённые диапазоны, а не покрытые ими ячейки:
// диапазон на несколько часов учитывается один раз.
func TotalSlots(s WeekSchedule) int {
	total := 0
	for _, ranges := range s {
		total += len(ranges)
	}
	return total
}
