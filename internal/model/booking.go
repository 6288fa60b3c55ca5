package model

import "time"

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"   // Ожидает подтверждения преподавателя
	SessionStatusConfirmed SessionStatus = "confirmed" // Подтверждено
	SessionStatusCompleted SessionStatus = "completed" // Завершено
	SessionStatusCancelled SessionStatus = "cancelled" // Отменено
	SessionStatusDeclined  SessionStatus = "declined"  // Отклонено преподавателем
)

// Valid проверяет что статус из закрытого набора
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusPending, SessionStatusConfirmed, SessionStatusCompleted,
		SessionStatusCancelled, SessionStatusDeclined:
		return true
	}
	return false
}

// Booking занятие студента, построенное по BOOKED записи
type Booking struct {
	RecordID  int64         `json:"record_id"`
	TutorID   int64         `json:"tutor_id"`
	StudentID int64         `json:"student_id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Status    SessionStatus `json:"status"`

	// Дополнительные поля для удобства (не из БД)
	Tutor *User `json:"tutor,omitempty"`
}

// BookingFromRecord строит занятие; прошедшие занятия считаются завершёнными
func BookingFromRecord(r *AvailabilityRecord, now time.Time) *Booking {
	b := &Booking{
		RecordID:  r.ID,
		TutorID:   r.TutorID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    SessionStatusConfirmed,
	}
	if r.StudentID != nil {
		b.StudentID = *r.StudentID
	}
	if !r.EndTime.After(now) {
		b.Status = SessionStatusCompleted
	}
	return b
}
