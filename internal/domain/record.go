package domain

import (
	"encoding/json"
	"time"
)

// WorkoutRecord is a single logged exercise. UserID is the owner and is
// always taken from the authenticated identity, never from a request body.
type WorkoutRecord struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ExerciseDate Date      `json:"exercise_date"`
	Exercise     string    `json:"exercise"`
	Weight       float64   `json:"weight"`
	Reps         int       `json:"reps"`
	SetReps      int       `json:"set_reps"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecordCreate is the body of a create request. Reps and SetReps are bounded
// by the signed INT columns they are stored in.
type RecordCreate struct {
	ExerciseDate *Date    `json:"exercise_date" validate:"required"`
	Exercise     string   `json:"exercise" validate:"required,max=100"`
	Weight       *float64 `json:"weight" validate:"required,gte=0"`
	Reps         *int     `json:"reps" validate:"required,gte=0,lte=2147483647"`
	SetReps      *int     `json:"set_reps" validate:"required,gte=0,lte=2147483647"`
	Notes        *string  `json:"notes" validate:"omitempty,max=1000"`
}

// Record builds the row to insert for owner. Call it only on validated input.
func (in RecordCreate) Record(ownerID int64) *WorkoutRecord {
	return &WorkoutRecord{
		UserID:       ownerID,
		ExerciseDate: *in.ExerciseDate,
		Exercise:     in.Exercise,
		Weight:       *in.Weight,
		Reps:         *in.Reps,
		SetReps:      *in.SetReps,
		Notes:        in.Notes,
	}
}

// RecordUpdate is a partial record update with exclude-unset semantics.
// There is no user_id field: ownership cannot be transferred.
type RecordUpdate struct {
	ExerciseDate *Date    `json:"exercise_date"`
	Exercise     *string  `json:"exercise" validate:"omitempty,min=1,max=100"`
	Weight       *float64 `json:"weight" validate:"omitempty,gte=0"`
	Reps         *int     `json:"reps" validate:"omitempty,gte=0,lte=2147483647"`
	SetReps      *int     `json:"set_reps" validate:"omitempty,gte=0,lte=2147483647"`
	Notes        *string  `json:"notes" validate:"omitempty,max=1000"`

	present presentFields
}

func (u *RecordUpdate) UnmarshalJSON(data []byte) error {
	type plain RecordUpdate
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	present, err := decodePresent(data)
	if err != nil {
		return err
	}
	*u = RecordUpdate(p)
	u.present = present
	return nil
}

func (u RecordUpdate) Changes() (map[string]interface{}, error) {
	changes := make(map[string]interface{})
	if err := setRequired(changes, u.present, "exercise_date", u.ExerciseDate); err != nil {
		return nil, err
	}
	if err := setRequired(changes, u.present, "exercise", u.Exercise); err != nil {
		return nil, err
	}
	if err := setRequired(changes, u.present, "weight", u.Weight); err != nil {
		return nil, err
	}
	if err := setRequired(changes, u.present, "reps", u.Reps); err != nil {
		return nil, err
	}
	if err := setRequired(changes, u.present, "set_reps", u.SetReps); err != nil {
		return nil, err
	}
	setNullable(changes, u.present, "notes", u.Notes)
	return changes, nil
}
