package availability

import (
	"fmt"
	"sort"
)

// WeekSchedule набор диапазонов по дням недели (AvailabilitySet или BookedSet).
// Повторяется еженедельно и не привязан к датам.
type WeekSchedule map[Weekday][]TimeRange

// NewWeekSchedule создаёт пустое расписание
func NewWeekSchedule() WeekSchedule {
	return make(WeekSchedule)
}

// Ranges возвращает диапазоны дня (nil если день пуст)
func (s WeekSchedule) Ranges(day Weekday) []TimeRange {
	return s[day]
}

// Contains проверяет точное (структурное) наличие диапазона в дне
func (s WeekSchedule) Contains(day Weekday, r TimeRange) bool {
	for _, existing := range s[day] {
		if existing == r {
			return true
		}
	}
	return false
}

// Add добавляет диапазон и сохраняет сортировку дня по началу.
// Повторное добавление того же диапазона ничего не меняет.
func (s WeekSchedule) Add(day Weekday, r TimeRange) {
	if s.Contains(day, r) {
		return
	}
	s[day] = append(s[day], r)
	sortRanges(s[day])
}

// Remove удаляет диапазон по значению, возвращает true если он был
func (s WeekSchedule) Remove(day Weekday, r TimeRange) bool {
	ranges := s[day]
	for i, existing := range ranges {
		if existing == r {
			s[day] = append(ranges[:i:i], ranges[i+1:]...)
			if len(s[day]) == 0 {
				delete(s, day)
			}
			return true
		}
	}
	return false
}

// Clone глубокая копия
func (s WeekSchedule) Clone() WeekSchedule {
	out := make(WeekSchedule, len(s))
	for day, ranges := range s {
		if len(ranges) == 0 {
			continue
		}
		cp := make([]TimeRange, len(ranges))
		copy(cp, ranges)
		out[day] = cp
	}
	return out
}

// Equal структурное сравнение; пустой день и отсутствующий день равны
func (s WeekSchedule) Equal(other WeekSchedule) bool {
	for _, day := range Weekdays {
		a, b := s[day], other[day]
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}

// IsEmpty истинно если ни в одном дне нет диапазонов
func (s WeekSchedule) IsEmpty() bool {
	for _, ranges := range s {
		if len(ranges) > 0 {
			return false
		}
	}
	return true
}

// Normalize сортирует дни, убирает дубли и пустые дни
func (s WeekSchedule) Normalize() {
	for day, ranges := range s {
		if len(ranges) == 0 {
			delete(s, day)
			continue
		}
		sortRanges(ranges)
		uniq := ranges[:1]
		for _, r := range ranges[1:] {
			if r != uniq[len(uniq)-1] {
				uniq = append(uniq, r)
			}
		}
		s[day] = uniq
	}
}

// Validate проверяет дни и диапазоны
func (s WeekSchedule) Validate() error {
	for day, ranges := range s {
		if !day.Valid() {
			return fmt.Errorf("%w: %d", ErrUnknownWeekday, int(day))
		}
		for _, r := range ranges {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("%s: %w", day, err)
			}
		}
	}
	return nil
}

// Strings представление для логов и ответов: день -> ["HH:MM-HH:MM", ...]
func (s WeekSchedule) Strings() map[string][]string {
	out := make(map[string][]string, len(s))
	for _, day := range Weekdays {
		ranges := s[day]
		if len(ranges) == 0 {
			continue
		}
		labels := make([]string, len(ranges))
		for i, r := range ranges {
			labels[i] = r.String()
		}
		out[day.String()] = labels
	}
	return out
}

func sortRanges(ranges []TimeRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].End < ranges[j].End
	})
}
