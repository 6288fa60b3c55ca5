package tutor

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_scheduler/internal/service"
	"github.com/go-telegram/bot/models"
)

// Callback data редактора расписания
const (
	EditorDay     = "ed:day"  // ed:day:<weekday>
	EditorCell    = "ed:cell" // ed:cell:<weekday>:<hour>
	EditorWeek    = "ed:week"
	EditorSave    = "ed:save"
	EditorDiscard = "ed:discard"
	EditorClear   = "ed:clear"
	EditorImage   = "ed:image"
	EditorRetry   = "ed:retry"
	EditorClose   = "ed:close"
)

// WeekScreen экран недели: сводка рабочей копии и выбор дня
func WeekScreen(editor *service.ScheduleEditor) (string, *models.InlineKeyboardMarkup) {
	if editor.State() == service.EditorLoadError {
		return LoadErrorScreen(editor)
	}

	working := editor.Working()
	total := editor.TotalSlots()

	var sb strings.Builder
	sb.WriteString("🗓 <b>Моё свободное время</b>\n")
	fmt.Fprintf(&sb, "Окно редактирования: %s\n\n", editor.Window())
	sb.WriteString(formatting.WeekSummary(working))
	fmt.Fprintf(&sb, "\n\nTotal slots: <b>%d</b> %s", total, formatting.PluralizeSlots(total))
	sb.WriteString(stateLine(editor))

	kb := keyboard.NewBuilder()

	days := make([]models.InlineKeyboardButton, 0, len(availability.Weekdays))
	for _, day := range availability.Weekdays {
		label := day.Short()
		if n := len(working.Ranges(day)); n > 0 {
			label = fmt.Sprintf("%s (%d)", label, n)
		}
		days = append(days, keyboard.Button(label, common.CallbackData(EditorDay, int64(day))))
	}
	kb.Grid(4, days...)

	actionRow(kb, editor)
	kb.Row(
		keyboard.Button("🧹 Clear all", EditorClear),
		keyboard.Button("🖼 Картинка", EditorImage),
	)
	kb.Row(keyboard.Button("✖️ Закрыть", EditorClose))

	return sb.String(), kb.Build()
}

// DayScreen ячейки одного дня со статусами; нажатие переключает ячейку
func DayScreen(editor *service.ScheduleEditor, day availability.Weekday) (string, *models.InlineKeyboardMarkup, error) {
	cls, err := editor.Classification()
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>%s</b>\n\n", day)
	fmt.Fprintf(&sb, "%s свободно  %s занято студентом  %s пусто\n", formatting.MarkAvailable, formatting.MarkBooked, formatting.MarkEmpty)
	sb.WriteString("Нажмите на ячейку, чтобы добавить или убрать её.")
	sb.WriteString(stateLine(editor))

	cells := make([]models.InlineKeyboardButton, 0, len(cls.Cells))
	for i, cell := range cls.Cells {
		status := cls.Status[day][i]
		label := formatting.StatusMark(status) + " " + cell.String()
		cells = append(cells, keyboard.Button(label, common.CallbackData(EditorCell, int64(day), int64(cell.Start/60))))
	}

	kb := keyboard.NewBuilder().Grid(2, cells...)
	actionRow(kb, editor)
	kb.Row(keyboard.Button("◀️ К неделе", EditorWeek))

	return sb.String(), kb.Build(), nil
}

// LoadErrorScreen расписание не загрузилось: только повтор или выход
func LoadErrorScreen(editor *service.ScheduleEditor) (string, *models.InlineKeyboardMarkup) {
	text := "❌ <b>Не удалось загрузить расписание</b>\n\n" +
		"Редактирование недоступно, пока данные не загружены."

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("🔄 Повторить", EditorRetry)).
		Row(keyboard.Button("✖️ Закрыть", EditorClose)).
		Build()

	return text, kb
}

// actionRow Save и Discard видны только при несохранённых изменениях
func actionRow(kb *keyboard.Builder, editor *service.ScheduleEditor) {
	switch editor.State() {
	case service.EditorDirty:
		kb.Row(
			keyboard.Button("💾 Save", EditorSave),
			keyboard.Button("↩️ Discard", EditorDiscard),
		)
	case service.EditorSaving:
		kb.Row(keyboard.Button("⏳ Сохранение...", EditorSave))
	}
}

func stateLine(editor *service.ScheduleEditor) string {
	switch editor.State() {
	case service.EditorDirty:
		line := "\n\n✏️ Есть несохранённые изменения"
		if editor.LastSaveErr() != nil {
			line += "\n⚠️ Последнее сохранение не удалось"
		}
		return line
	case service.EditorSaving:
		return "\n\n⏳ Сохраняю..."
	default:
		return "\n\n✅ Всё сохранено"
	}
}
