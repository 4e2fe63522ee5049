package service

import (
	"context"
	"fmt"

	"github.com/yusufkecer/workout-recorder-backend/internal/domain"
	"github.com/yusufkecer/workout-recorder-backend/internal/security"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, fields map[string]interface{}) (*domain.User, error)
}

type UserService struct {
	repo      UserRepository
	hasher    *security.PasswordHasher
	log       *zap.Logger
	dummyHash string
}

func NewUserService(repo UserRepository, hasher *security.PasswordHasher, log *zap.Logger) (*UserService, error) {
	// Compared against when the account does not exist, so a login for an
	// unknown email costs the same as one with a wrong password.
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hasher: %w", err)
	}
	return &UserService{repo: repo, hasher: hasher, log: log, dummyHash: dummy}, nil
}

// Register creates an active, non-superuser account. A taken email or
// username returns domain.ErrDuplicate.
func (s *UserService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	in.Normalize()

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &domain.User{
		Email:          in.Email,
		Username:       in.Username,
		HashedPassword: hash,
		IsActive:       true,
		Profile:        domain.Profile{PreferredUnits: domain.UnitsMetric},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// Authenticate returns domain.ErrInvalidCredentials for an unknown email, a
// wrong password and an inactive account alike.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.hasher.Verify(password, s.dummyHash)
		return nil, domain.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.HashedPassword) {
		s.log.Info("login rejected", zap.Int64("user_id", user.ID), zap.String("reason", "password mismatch"))
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.log.Info("login rejected", zap.Int64("user_id", user.ID), zap.Error(domain.ErrInactiveUser))
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) (*domain.User, error) {
	changes, err := update.Changes()
	if err != nil {
		return nil, err
	}

	user, err := s.repo.UpdateProfile(ctx, userID, changes)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	s.log.Info("profile updated", zap.Int64("user_id", userID), zap.Int("fields", len(changes)))
	return user, nil
}
