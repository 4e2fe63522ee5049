package service

import (
	"context"

	"github.com/yusufkecer/workout-recorder-backend/internal/domain"
	"go.uber.org/zap"
)

const DefaultPageLimit = 100

type RecordRepository interface {
	Create(ctx context.Context, rec *domain.WorkoutRecord) (*domain.WorkoutRecord, error)
	Get(ctx context.Context, id, userID int64) (*domain.WorkoutRecord, error)
	List(ctx context.Context, userID int64, skip, limit int) ([]domain.WorkoutRecord, error)
	Update(ctx context.Context, id, userID int64, fields map[string]interface{}) (*domain.WorkoutRecord, error)
	Delete(ctx context.Context, id, userID int64) (*domain.WorkoutRecord, error)
}

// RecordService scopes every operation to the owning user. A record that
// exists but belongs to someone else is reported as domain.ErrNotFound.
type RecordService struct {
	repo     RecordRepository
	maxLimit int
	log      *zap.Logger
}

func NewRecordService(repo RecordRepository, maxLimit int, log *zap.Logger) *RecordService {
	if maxLimit <= 0 {
		maxLimit = DefaultPageLimit
	}
	return &RecordService{repo: repo, maxLimit: maxLimit, log: log}
}

func (s *RecordService) Create(ctx context.Context, in domain.RecordCreate, ownerID int64) (*domain.WorkoutRecord, error) {
	rec, err := s.repo.Create(ctx, in.Record(ownerID))
	if err != nil {
		return nil, err
	}
	s.log.Debug("record created", zap.Int64("record_id", rec.ID), zap.Int64("user_id", ownerID))
	return rec, nil
}

func (s *RecordService) Get(ctx context.Context, id, ownerID int64) (*domain.WorkoutRecord, error) {
	rec, err := s.repo.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// List returns up to limit of the owner's records after skipping skip, in
// ascending id order. limit is capped at the configured maximum.
func (s *RecordService) List(ctx context.Context, ownerID int64, skip, limit int) ([]domain.WorkoutRecord, error) {
	if skip < 0 {
		return nil, domain.NewValidationError("skip", "must be greater than or equal to 0")
	}
	if limit < 1 {
		return nil, domain.NewValidationError("limit", "must be greater than or equal to 1")
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return s.repo.List(ctx, ownerID, skip, limit)
}

func (s *RecordService) Update(ctx context.Context, id, ownerID int64, update domain.RecordUpdate) (*domain.WorkoutRecord, error) {
	changes, err := update.Changes()
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.Update(ctx, id, ownerID, changes)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// Delete removes the record and returns it as it was before removal.
func (s *RecordService) Delete(ctx context.Context, id, ownerID int64) (*domain.WorkoutRecord, error) {
	rec, err := s.repo.Delete(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	s.log.Debug("record deleted", zap.Int64("record_id", id), zap.Int64("user_id", ownerID))
	return rec, nil
}
