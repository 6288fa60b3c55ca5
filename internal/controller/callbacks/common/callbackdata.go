package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
)

// CallbackData собирает данные кнопки вида "prefix:a:b"
func CallbackData(prefix string, args ...int64) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, a := range args {
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatInt(a, 10))
	}
	return sb.String()
}

// ParseArgs разбирает числовые аргументы после префикса; ожидается ровно n аргументов
func ParseArgs(data, prefix string, n int) ([]int64, error) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	rest = strings.TrimPrefix(rest, ":")

	parts := strings.Split(rest, ":")
	if rest == "" || len(parts) != n {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}

	args := make([]int64, n)
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
		args[i] = v
	}
	return args, nil
}

// ParseDay проверяет номер дня недели из callback
func ParseDay(v int64) (availability.Weekday, error) {
	day := availability.Weekday(v)
	if !day.Valid() {
		return 0, fmt.Errorf("%w: day %d", ErrInvalidFormat, v)
	}
	return day, nil
}

// ParseCell ячейка сетки по часу начала
func ParseCell(w availability.Window, hour int64) (availability.TimeRange, error) {
	cell := availability.HourRange(int(hour), int(hour)+1)
	if !w.IsCell(cell) {
		return availability.TimeRange{}, fmt.Errorf("%w: hour %d", ErrInvalidFormat, hour)
	}
	return cell, nil
}
