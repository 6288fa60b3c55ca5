package availability

import (
	"errors"
	"fmt"
	"time"
)

// Weekday день недели в порядке сетки: понедельник первый
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// ErrUnknownWeekday возвращается при разборе неизвестного названия дня
var ErrUnknownWeekday = errors.New("unknown weekday")

// Weekdays фиксированный порядок дней в сетке
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [...]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// String возвращает полное английское название дня
func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Short возвращает трёхбуквенное название для кнопок и картинки
func (d Weekday) Short() string {
	return d.String()[:3]
}

// Valid проверяет что день входит в Monday..Sunday
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// ParseWeekday разбирает полное английское название дня
func ParseWeekday(name string) (Weekday, error) {
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
}

// FromTime переводит time.Weekday (воскресенье = 0) в порядок сетки
func FromTime(wd time.Weekday) Weekday {
	if wd == time.Sunday {
		return Sunday
	}
	return Weekday(wd - 1)
}

// Time переводит день сетки обратно в time.Weekday
func (d Weekday) Time() time.Weekday {
	if d == Sunday {
		return time.Sunday
	}
	return time.Weekday(d + 1)
}
