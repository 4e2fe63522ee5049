package domain

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	FitnessBeginner     = "beginner"
	FitnessIntermediate = "intermediate"
	FitnessAdvanced     = "advanced"

	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

type Profile struct {
	FirstName      *string  `json:"first_name"`
	LastName       *string  `json:"last_name"`
	DateOfBirth    *Date    `json:"date_of_birth"`
	Height         *float64 `json:"height"`
	Weight         *float64 `json:"weight"`
	FitnessLevel   *string  `json:"fitness_level"`
	FitnessGoals   *string  `json:"fitness_goals"`
	PreferredUnits string   `json:"preferred_units"`
}

// User is an account. HashedPassword is never serialized.
type User struct {
	ID             int64   `json:"id"`
	Email          string  `json:"email"`
	Username       *string `json:"username"`
	HashedPassword string  `json:"-"`
	IsActive       bool    `json:"is_active"`
	IsSuperuser    bool    `json:"is_superuser"`
	Profile
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterInput struct {
	Email    string  `json:"email" validate:"required,email,max=255"`
	Username *string `json:"username" validate:"omitempty,max=50"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
}

// Normalize lower-cases the email and turns a blank username into no username.
func (in *RegisterInput) Normalize() {
	in.Email = NormalizeEmail(in.Email)
	if in.Username != nil {
		u := strings.TrimSpace(*in.Username)
		if u == "" {
			in.Username = nil
		} else {
			in.Username = &u
		}
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfileUpdate is a partial profile update: only the keys present in the
// request body are applied.
type ProfileUpdate struct {
	FirstName      *string  `json:"first_name" validate:"omitempty,max=50"`
	LastName       *string  `json:"last_name" validate:"omitempty,max=50"`
	DateOfBirth    *Date    `json:"date_of_birth"`
	Height         *float64 `json:"height" validate:"omitempty,gt=0,lte=300"`
	Weight         *float64 `json:"weight" validate:"omitempty,gt=0,lte=1000"`
	FitnessLevel   *string  `json:"fitness_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	FitnessGoals   *string  `json:"fitness_goals" validate:"omitempty,max=500"`
	PreferredUnits *string  `json:"preferred_units" validate:"omitempty,oneof=metric imperial"`

	present presentFields
}

func (u *ProfileUpdate) UnmarshalJSON(data []byte) error {
	type plain ProfileUpdate
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	present, err := decodePresent(data)
	if err != nil {
		return err
	}
	*u = ProfileUpdate(p)
	u.present = present
	return nil
}

// Changes maps column names to the new values of the fields that were sent.
func (u ProfileUpdate) Changes() (map[string]interface{}, error) {
	changes := make(map[string]interface{})
	setNullable(changes, u.present, "first_name", u.FirstName)
	setNullable(changes, u.present, "last_name", u.LastName)
	setNullable(changes, u.present, "date_of_birth", u.DateOfBirth)
	setNullable(changes, u.present, "height", u.Height)
	setNullable(changes, u.present, "weight", u.Weight)
	setNullable(changes, u.present, "fitness_level", u.FitnessLevel)
	setNullable(changes, u.present, "fitness_goals", u.FitnessGoals)
	if err := setRequired(changes, u.present, "preferred_units", u.PreferredUnits); err != nil {
		return nil, err
	}
	return changes, nil
}
