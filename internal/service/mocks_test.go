package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yusufkecer/workout-recorder-backend/internal/domain"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id int64, fields map[string]interface{}) (*domain.User, error) {
	args := m.Called(ctx, id, fields)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type mockRecordRepo struct {
	mock.Mock
}

func (m *mockRecordRepo) Create(ctx context.Context, rec *domain.WorkoutRecord) (*domain.WorkoutRecord, error) {
	args := m.Called(ctx, rec)
	out, _ := args.Get(0).(*domain.WorkoutRecord)
	return out, args.Error(1)
}

func (m *mockRecordRepo) Get(ctx context.Context, id, userID int64) (*domain.WorkoutRecord, error) {
	args := m.Called(ctx, id, userID)
	out, _ := args.Get(0).(*domain.WorkoutRecord)
	return out, args.Error(1)
}

func (m *mockRecordRepo) List(ctx context.Context, userID int64, skip, limit int) ([]domain.WorkoutRecord, error) {
	args := m.Called(ctx, userID, skip, limit)
	out, _ := args.Get(0).([]domain.WorkoutRecord)
	return out, args.Error(1)
}

func (m *mockRecordRepo) Update(ctx context.Context, id, userID int64, fields map[string]interface{}) (*domain.WorkoutRecord, error) {
	args := m.Called(ctx, id, userID, fields)
	out, _ := args.Get(0).(*domain.WorkoutRecord)
	return out, args.Error(1)
}

func (m *mockRecordRepo) Delete(ctx context.Context, id, userID int64) (*domain.WorkoutRecord, error) {
	args := m.Called(ctx, id, userID)
	out, _ := args.Get(0).(*domain.WorkoutRecord)
	return out, args.Error(1)
}
