package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// ErrMalformedRange диапазон с start >= end или выходящий за пределы суток
var ErrMalformedRange = errors.New("malformed time range")

// TimeRange полуоткрытый интервал [Start, End) внутри одних суток, в минутах от полуночи.
// End может быть равен 1440 (24:00) для последней ячейки суточной сетки.
type TimeRange struct {
	Start int
	End   int
}

// NewTimeRange создаёт диапазон и проверяет его корректность
func NewTimeRange(start, end int) (TimeRange, error) {
	r := TimeRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}

// HourRange диапазон из целых часов, например HourRange(9, 10) = 09:00-10:00
func HourRange(startHour, endHour int) TimeRange {
	return TimeRange{Start: startHour * minutesPerHour, End: endHour * minutesPerHour}
}

// Validate отклоняет пустые, перевёрнутые и переходящие через полночь диапазоны
func (r TimeRange) Validate() error {
	if r.Start < 0 || r.End > minutesPerDay {
		return fmt.Errorf("%w: %s outside of a single day", ErrMalformedRange, r)
	}
	if r.Start >= r.End {
		return fmt.Errorf("%w: %s start must be before end", ErrMalformedRange, r)
	}
	return nil
}

// String формат "HH:MM-HH:MM" в 24-часовой записи; служит и ключом сравнения
func (r TimeRange) String() string {
	return formatClock(r.Start) + "-" + formatClock(r.End)
}

// Label формат для экранов чтения: 12-часовой с AM/PM
func (r TimeRange) Label() string {
	return formatClock12(r.Start) + " - " + formatClock12(r.End)
}

// Duration длительность в минутах
func (r TimeRange) Duration() int {
	return r.End - r.Start
}

// ParseTimeRange разбирает строку "HH:MM-HH:MM"
func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("%w: %q", ErrMalformedRange, s)
	}

	start, err := parseClock(parts[0])
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q: %v", ErrMalformedRange, s, err)
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: %q: %v", ErrMalformedRange, s, err)
	}

	return NewTimeRange(start, end)
}

func parseClock(s string) (int, error) {
	hm := strings.Split(strings.TrimSpace(s), ":")
	if len(hm) != 2 {
		return 0, fmt.Errorf("clock %q must be HH:MM", s)
	}
	h, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0, fmt.Errorf("hour %q: %w", hm[0], err)
	}
	m, err := strconv.Atoi(hm[1])
	if err != nil {
		return 0, fmt.Errorf("minute %q: %w", hm[1], err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	return h*minutesPerHour + m, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)
}

func formatClock12(minutes int) string {
	h := (minutes / minutesPerHour) % 24
	m := minutes % minutesPerHour

	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, suffix)
}
