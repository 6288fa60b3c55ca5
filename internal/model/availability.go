package model

import (
	"time"

	"github.com/google/uuid"
)

type RecordStatus string

const (
	RecordStatusAvailable RecordStatus = "AVAILABLE" // Объявлено преподавателем
	RecordStatusBooked    RecordStatus = "BOOKED"    // Занято подтверждённой записью студента
)

// Valid проверяет что статус из закрытого набора
func (s RecordStatus) Valid() bool {
	return s == RecordStatusAvailable || s == RecordStatusBooked
}

// AvailabilityRecord строка availability_records: датированный интервал преподавателя
type AvailabilityRecord struct {
	ID        int64        `json:"id"`
	BatchID   uuid.UUID    `json:"batch_id"` // идентификатор сохранения, в рамках которого создана запись
	TutorID   int64        `json:"tutor_id"`
	Status    RecordStatus `json:"status"`
	StartTime time.Time    `json:"startTime"`
	EndTime   time.Time    `json:"endTime"`
	StudentID *int64       `json:"student_id"` // только для BOOKED
	CreatedAt time.Time    `json:"created_at"`
}

// AvailabilityWindow интервал, который редактор отдаёт на сохранение (статус всегда AVAILABLE)
type AvailabilityWindow struct {
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
}
