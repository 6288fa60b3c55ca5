package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatSessionTime "Tuesday 27.10, 2:00 PM - 3:00 PM" в часовом поясе loc
func FormatSessionTime(start, end time.Time, loc *time.Location) string {
	day, r, err := availability.RecordRange(start, end, loc)
	if err != nil {
		return FormatDateTime(start.In(loc)) + " - " + FormatDateTime(end.In(loc))
	}
	return fmt.Sprintf("%s %s, %s", day, start.In(loc).Format("02.01"), r.Label())
}

// GetMonthName возвращает название месяца на русском
func GetMonthName(month time.Month) string {
	names := map[time.Month]string{
		time.January:   "Январь",
		time.February:  "Февраль",
		time.March:     "Март",
		time.April:     "Апрель",
		time.May:       "Май",
		time.June:      "Июнь",
		time.July:      "Июль",
		time.August:    "Август",
		time.September: "Сентябрь",
		time.October:   "Октябрь",
		time.November:  "Ноябрь",
		time.December:  "Декабрь",
	}
	return names[month]
}
