package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yusufkecer/workout-recorder-backend/internal/domain"
)

type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[int64]*domain.User)}
}

func (m *memoryUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return nil, domain.ErrDuplicate
		}
		if u.Username != nil && existing.Username != nil && *existing.Username == *u.Username {
			return nil, domain.ErrDuplicate
		}
	}

	m.nextID++
	stored := *u
	stored.ID = m.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	m.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username != nil && *u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memoryUsers) UpdateProfile(_ context.Context, id int64, fields map[string]interface{}) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	for k, v := range fields {
		switch k {
		case "first_name":
			u.FirstName = optString(v)
		case "last_name":
			u.LastName = optString(v)
		case "fitness_level":
			u.FitnessLevel = optString(v)
		case "fitness_goals":
			u.FitnessGoals = optString(v)
		case "height":
			u.Height = optFloat(v)
		case "weight":
			u.Weight = optFloat(v)
		case "date_of_birth":
			if v == nil {
				u.DateOfBirth = nil
			} else {
				d := v.(domain.Date)
				u.DateOfBirth = &d
			}
		case "preferred_units":
			u.PreferredUnits = v.(string)
		}
	}
	out := *u
	return &out, nil
}

type memoryRecords struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]*domain.WorkoutRecord
}

func newMemoryRecords() *memoryRecords {
	return &memoryRecords{records: make(map[int64]*domain.WorkoutRecord)}
}

func (m *memoryRecords) Create(_ context.Context, rec *domain.WorkoutRecord) (*domain.WorkoutRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	stored := *rec
	stored.ID = m.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	m.records[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *memoryRecords) Get(_ context.Context, id, userID int64) (*domain.WorkoutRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok || rec.UserID != userID {
		return nil, nil
	}
	out := *rec
	return &out, nil
}

func (m *memoryRecords) List(_ context.Context, userID int64, skip, limit int) ([]domain.WorkoutRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	owned := make([]domain.WorkoutRecord, 0)
	for _, rec := range m.records {
		if rec.UserID == userID {
			owned = append(owned, *rec)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	if skip >= len(owned) {
		return []domain.WorkoutRecord{}, nil
	}
	end := skip + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[skip:end], nil
}

func (m *memoryRecords) Update(_ context.Context, id, userID int64, fields map[string]interface{}) (*domain.WorkoutRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok || rec.UserID != userID {
		return nil, nil
	}
	for k, v := range fields {
		switch k {
		case "exercise_date":
			rec.ExerciseDate = v.(domain.Date)
		case "exercise":
			rec.Exercise = v.(string)
		case "weight":
			rec.Weight = v.(float64)
		case "reps":
			rec.Reps = v.(int)
		case "set_reps":
			rec.SetReps = v.(int)
		case "notes":
			rec.Notes = optString(v)
		}
	}
	out := *rec
	return &out, nil
}

func (m *memoryRecords) Delete(_ context.Context, id, userID int64) (*domain.WorkoutRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok || rec.UserID != userID {
		return nil, nil
	}
	delete(m.records, id)
	return rec, nil
}

func optString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}

func optFloat(v interface{}) *float64 {
	if v == nil {
		return nil
	}
	f := v.(float64)
	return &f
}
