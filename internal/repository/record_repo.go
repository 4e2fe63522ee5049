package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yusufkecer/workout-recorder-backend/internal/domain"
)

const recordColumns = `id, user_id, exercise_date, exercise, weight, reps, set_reps, notes, created_at, updated_at`

var recordUpdateColumns = map[string]bool{
	"exercise_date": true, "exercise": true, "weight": true,
	"reps": true, "set_reps": true, "notes": true,
}

type RecordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Create(ctx context.Context, rec *domain.WorkoutRecord) (*domain.WorkoutRecord, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO workout_records (user_id, exercise_date, exercise, weight, reps, set_reps, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.ExerciseDate, rec.Exercise, rec.Weight, rec.Reps, rec.SetReps, rec.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read record id: %w", err)
	}

	created, err := r.Get(ctx, id, rec.UserID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("failed to read back record %d", id)
	}
	return created, nil
}

// Get returns the record only when it belongs to userID.
func (r *RecordRepository) Get(ctx context.Context, id, userID int64) (*domain.WorkoutRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM workout_records WHERE id = ? AND user_id = ?",
		id, userID,
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return rec, nil
}

func (r *RecordRepository) List(ctx context.Context, userID int64, skip, limit int) ([]domain.WorkoutRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recordColumns+` FROM workout_records
		 WHERE user_id = ?
		 ORDER BY id ASC
		 LIMIT ? OFFSET ?`,
		userID, limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.WorkoutRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Update applies fields to the record if userID owns it. It returns nil when
// the record does not exist or belongs to someone else.
func (r *RecordRepository) Update(ctx context.Context, id, userID int64, fields map[string]interface{}) (*domain.WorkoutRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := lockRecord(ctx, tx, id, userID)
	if err != nil || current == nil {
		return nil, err
	}

	setClause, args := buildSet(fields, recordUpdateColumns)
	if setClause == "" {
		return current, tx.Commit()
	}

	args = append(args, id, userID)
	if _, err := tx.ExecContext(ctx,
		"UPDATE workout_records SET "+setClause+" WHERE id = ? AND user_id = ?",
		args...,
	); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	updated, err := scanRecord(tx.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM workout_records WHERE id = ?", id,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to reload record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit record update: %w", err)
	}
	return updated, nil
}

// Delete removes the record if userID owns it and returns the row as it was
// just before deletion.
func (r *RecordRepository) Delete(ctx context.Context, id, userID int64) (*domain.WorkoutRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	snapshot, err := lockRecord(ctx, tx, id, userID)
	if err != nil || snapshot == nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM workout_records WHERE id = ? AND user_id = ?",
		id, userID,
	); err != nil {
		return nil, fmt.Errorf("failed to delete record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit record delete: %w", err)
	}
	return snapshot, nil
}

func lockRecord(ctx context.Context, tx *sql.Tx, id, userID int64) (*domain.WorkoutRecord, error) {
	rec, err := scanRecord(tx.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM workout_records WHERE id = ? AND user_id = ? FOR UPDATE",
		id, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock record: %w", err)
	}
	return rec, nil
}

func scanRecord(s rowScanner) (*domain.WorkoutRecord, error) {
	var rec domain.WorkoutRecord
	err := s.Scan(
		&rec.ID, &rec.UserID, &rec.ExerciseDate, &rec.Exercise, &rec.Weight,
		&rec.Reps, &rec.SetReps, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
