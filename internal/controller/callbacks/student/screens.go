package student

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/common"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/tutor_scheduler/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/tutor_scheduler/internal/model"
	"github.com/go-telegram/bot/models"
)

// Callback data студента
const (
	TutorList     = "tu:list"
	TutorView     = "tu:view"   // tu:view:<tutorID>
	TutorDay      = "tu:day"    // tu:day:<tutorID>:<weekday>
	TutorBook     = "tu:book"   // tu:book:<tutorID>:<weekday>:<hour>
	BookingList   = "bk:list"
	BookingCancel = "bk:cancel" // bk:cancel:<recordID>
)

// TutorsScreen список преподавателей
func TutorsScreen(tutors []*model.User) (string, *models.InlineKeyboardMarkup) {
	if len(tutors) == 0 {
		return "👨‍🏫 Пока нет ни одного преподавателя.", nil
	}

	text := fmt.Sprintf("👨‍🏫 <b>Преподаватели</b>\n\nДоступно %d %s. Выберите, чьё расписание открыть:",
		len(tutors), formatting.PluralizeTutors(len(tutors)))

	kb := keyboard.NewBuilder()
	for _, tutor := range tutors {
		kb.Row(keyboard.Button(tutor.DisplayName(), common.CallbackData(TutorView, tutor.ID)))
	}
	return text, kb.Build()
}

// TutorWeekScreen свободные ячейки по дням и выбор дня для записи
func TutorWeekScreen(tutor *model.User, cls availability.Classification) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>%s</b>\n", tutor.DisplayName())
	fmt.Fprintf(&sb, "Свободные часы (%s):\n\n", cls.Window)

	days := make([]models.InlineKeyboardButton, 0, len(availability.Weekdays))
	for _, day := range availability.Weekdays {
		free := len(formatting.AvailableCells(cls, day))
		if free == 0 {
			continue
		}
		fmt.Fprintf(&sb, "<b>%s</b>: %d %s\n", day, free, formatting.PluralizeSlots(free))
		days = append(days, keyboard.Button(
			fmt.Sprintf("%s (%d)", day.Short(), free),
			common.CallbackData(TutorDay, tutor.ID, int64(day)),
		))
	}

	if len(days) == 0 {
		sb.WriteString("<i>Нет свободного времени</i>")
	} else {
		sb.WriteString("\nВыберите день:")
	}

	kb := keyboard.NewBuilder().
		Grid(4, days...).
		Row(keyboard.Button("◀️ К преподавателям", TutorList)).
		Build()

	return sb.String(), kb
}

// TutorDayScreen свободные ячейки одного дня в 12-часовом формате
func TutorDayScreen(tutor *model.User, cls availability.Classification, day availability.Weekday) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗓 <b>%s</b>, %s\n\n", tutor.DisplayName(), day)

	labels := formatting.AvailableCells(cls, day)
	if len(labels) == 0 {
		sb.WriteString("<i>Нет свободного времени</i>")
	} else {
		sb.WriteString("Нажмите на время, чтобы записаться на ближайшее занятие:")
	}

	kb := keyboard.NewBuilder()
	for _, cell := range cls.Cells {
		if cls.At(day, cell) != availability.CellAvailable {
			continue
		}
		kb.Row(keyboard.Button("📌 "+cell.Label(),
			common.CallbackData(TutorBook, tutor.ID, int64(day), int64(cell.Start/60))))
	}
	kb.Row(keyboard.Button("◀️ К неделе", common.CallbackData(TutorView, tutor.ID)))

	return sb.String(), kb.Build()
}

// BookedScreen подтверждение записи
func BookedScreen(booking *model.Booking, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	tutorName := ""
	if booking.Tutor != nil {
		tutorName = booking.Tutor.DisplayName()
	}

	text := fmt.Sprintf("✅ <b>Вы записаны</b>\n\n👨‍🏫 %s\n🕐 %s",
		tutorName, formatting.FormatSessionTime(booking.StartTime, booking.EndTime, loc))

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📚 Мои занятия", BookingList)).
		Row(keyboard.Button("◀️ К неделе", common.CallbackData(TutorView, booking.TutorID))).
		Build()

	return text, kb
}

// BookingsScreen занятия студента; отменить можно только будущие
func BookingsScreen(bookings []*model.Booking, loc *time.Location, now time.Time) (string, *models.InlineKeyboardMarkup) {
	if len(bookings) == 0 {
		return "📚 У вас пока нет занятий.\n\nНайти преподавателя: /tutors", nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📚 <b>Мои занятия</b> (%d %s)\n", len(bookings), formatting.PluralizeBookings(len(bookings)))

	kb := keyboard.NewBuilder()
	for i, booking := range bookings {
		tutorName := "-"
		if booking.Tutor != nil {
			tutorName = booking.Tutor.DisplayName()
		}
		fmt.Fprintf(&sb, "\n%d. %s\n   👨‍🏫 %s\n   %s\n",
			i+1,
			formatting.FormatSessionTime(booking.StartTime, booking.EndTime, loc),
			tutorName,
			formatting.SessionStatusName(booking.Status))

		if booking.StartTime.After(now) {
			kb.Row(keyboard.Button(fmt.Sprintf("❌ Отменить №%d", i+1),
				common.CallbackData(BookingCancel, booking.RecordID)))
		}
	}

	return sb.String(), kb.Build()
}
