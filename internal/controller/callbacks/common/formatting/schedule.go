package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/model"
)

// Отметки статусов ячеек на кнопках
const (
	MarkAvailable = "🟢"
	MarkBooked    = "🔒"
	MarkEmpty     = "⚪"
)

// StatusMark отметка статуса ячейки
func StatusMark(status availability.CellStatus) string {
	switch status {
	case availability.CellAvailable:
		return MarkAvailable
	case availability.CellBooked:
		return MarkBooked
	default:
		return MarkEmpty
	}
}

// WeekSummary список диапазонов по дням в 24-часовом формате
func WeekSummary(s availability.WeekSchedule) string {
	if s.IsEmpty() {
		return "<i>Нет свободного времени</i>"
	}

	var sb strings.Builder
	for _, day := range availability.Weekdays {
		ranges := s.Ranges(day)
		if len(ranges) == 0 {
			continue
		}
		labels := make([]string, len(ranges))
		for i, r := range ranges {
			labels[i] = r.String()
		}
		fmt.Fprintf(&sb, "<b>%s</b>: %s\n", day, strings.Join(labels, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// AvailableCells свободные ячейки дня в 12-часовом формате для экранов чтения
func AvailableCells(cls availability.Classification, day availability.Weekday) []string {
	var labels []string
	for i, status := range cls.Status[day] {
		if status == availability.CellAvailable {
			labels = append(labels, cls.Cells[i].Label())
		}
	}
	return labels
}

// SessionStatusName название статуса занятия
func SessionStatusName(status model.SessionStatus) string {
	switch status {
	case model.SessionStatusPending:
		return "⏳ ожидает подтверждения"
	case model.SessionStatusConfirmed:
		return "✅ подтверждено"
	case model.SessionStatusCompleted:
		return "✔️ завершено"
	case model.SessionStatusCancelled:
		return "❌ отменено"
	case model.SessionStatusDeclined:
		return "🚫 отклонено"
	default:
		return string(status)
	}
}
