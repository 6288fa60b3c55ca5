package state

import (
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/service"
)

// UserState представляет текущий экран пользователя
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	StateEditingAvailability UserState = "editing_availability" // Преподаватель в редакторе расписания
	StateBrowsingTutor       UserState = "browsing_tutor"       // Студент смотрит неделю преподавателя
)

// UserData хранит данные пользователя между нажатиями кнопок
type UserData struct {
	State UserState

	// Editor сессия редактора; принадлежит одному экрану
	Editor *service.ScheduleEditor
	// Day выбранный день в редакторе или в просмотре
	Day *availability.Weekday
	// TutorID просматриваемый студентом преподаватель
	TutorID int64

	UpdatedAt time.Time
}
