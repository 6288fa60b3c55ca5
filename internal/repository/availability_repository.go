package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_scheduler/internal/availability"
	"github.com/Freeeeeet/tutor_scheduler/internal/model"
	"github.com/Freeeeeet/tutor_scheduler/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recordColumns = `id, batch_id, tutor_id, status, start_time, end_time, student_id, created_at`

type AvailabilityRepository struct {
	*base.Repository
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{Repository: base.NewRepository(pool)}
}

// ListByTutor получает все записи преподавателя
func (r *AvailabilityRepository) ListByTutor(ctx context.Context, tutorID int64) ([]model.AvailabilityRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM availability_records
		WHERE tutor_id = $1
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("list availability by tutor: %w", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("list availability by tutor: %w", err)
	}

	return records, nil
}

// ReplaceAvailable удаляет все AVAILABLE записи преподавателя и вставляет новые в одной транзакции
func (r *AvailabilityRepository) ReplaceAvailable(ctx context.Context, tutorID int64, batchID uuid.UUID, windows []model.AvailabilityWindow) error {
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM availability_records
			WHERE tutor_id = $1 AND status = $2
		`, tutorID, model.RecordStatusAvailable)
		if err != nil {
			return fmt.Errorf("delete available: %w", err)
		}

		if len(windows) == 0 {
			return nil
		}

		rows := make([][]interface{}, 0, len(windows))
		for _, w := range windows {
			rows = append(rows, []interface{}{batchID, tutorID, string(model.RecordStatusAvailable), w.StartTime, w.EndTime})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"availability_records"},
			[]string{"batch_id", "tutor_id", "status", "start_time", "end_time"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("insert available: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("replace availability: %w", err)
	}

	return nil
}

// CreateBooked создаёт BOOKED запись студента
func (r *AvailabilityRepository) CreateBooked(ctx context.Context, record *model.AvailabilityRecord) error {
	query := `
		INSERT INTO availability_records (batch_id, tutor_id, status, start_time, end_time, student_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	record.Status = model.RecordStatusBooked
	err := r.QueryRow(
		ctx, query,
		record.BatchID,
		record.TutorID,
		record.Status,
		record.StartTime,
		record.EndTime,
		record.StudentID,
	).Scan(&record.ID, &record.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrAlreadyBooked
		}
		return fmt.Errorf("create booked: %w", err)
	}

	return nil
}

// ListBookedByStudent получает записи студента, ближайшие первыми
func (r *AvailabilityRepository) ListBookedByStudent(ctx context.Context, studentID int64) ([]model.AvailabilityRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM availability_records
		WHERE student_id = $1 AND status = $2
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, studentID, model.RecordStatusBooked)
	if err != nil {
		return nil, fmt.Errorf("list booked by student: %w", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("list booked by student: %w", err)
	}

	return records, nil
}

// DeleteBooked удаляет запись студента
func (r *AvailabilityRepository) DeleteBooked(ctx context.Context, recordID, studentID int64) error {
	affected, err := r.ExecAffected(ctx, `
		DELETE FROM availability_records
		WHERE id = $1 AND student_id = $2 AND status = $3
	`, recordID, studentID, model.RecordStatusBooked)
	if err != nil {
		return fmt.Errorf("delete booked: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// RolloverExpired переносит прошедшие AVAILABLE записи на целое число недель вперёд.
// Недели считаются в локации now, чтобы время на часах не сдвигалось при переходе
// на летнее время. BOOKED записи не переносятся.
func (r *AvailabilityRepository) RolloverExpired(ctx context.Context, now time.Time) (int, error) {
	moved := 0
	err := r.InTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id, start_time, end_time
			FROM availability_records
			WHERE status = $1 AND end_time <= $2
			FOR UPDATE
		`, model.RecordStatusAvailable, now)
		if err != nil {
			return fmt.Errorf("select expired: %w", err)
		}

		type expired struct {
			id         int64
			start, end time.Time
		}
		var list []expired
		for rows.Next() {
			var e expired
			if err := rows.Scan(&e.id, &e.start, &e.end); err != nil {
				rows.Close()
				return fmt.Errorf("scan expired: %w", err)
			}
			list = append(list, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate expired: %w", err)
		}

		batch := &pgx.Batch{}
		for _, e := range list {
			start, end := availability.RollForward(e.start, e.end, now)
			batch.Queue(`UPDATE availability_records SET start_time = $1, end_time = $2 WHERE id = $3`, start, end, e.id)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("update expired: %w", err)
		}

		moved = len(list)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("rollover expired: %w", err)
	}

	return moved, nil
}

func scanRecords(rows pgx.Rows) ([]model.AvailabilityRecord, error) {
	defer rows.Close()

	var records []model.AvailabilityRecord
	for rows.Next() {
		var rec model.AvailabilityRecord
		err := rows.Scan(
			&rec.ID,
			&rec.BatchID,
			&rec.TutorID,
			&rec.Status,
			&rec.StartTime,
			&rec.EndTime,
			&rec.StudentID,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}
