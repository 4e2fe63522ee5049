package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/yusufkecer/workout-recorder-backend/internal/domain"
)

const mysqlDuplicateEntry = 1062

const userColumns = `id, email, username, hashed_password, is_active, is_superuser,
	first_name, last_name, date_of_birth, height, weight, fitness_level, fitness_goals,
	preferred_units, created_at, updated_at`

var profileColumns = map[string]bool{
	"first_name": true, "last_name": true, "date_of_birth": true,
	"height": true, "weight": true, "fitness_level": true,
	"fitness_goals": true, "preferred_units": true,
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts u and returns the stored row. A taken email or username
// yields domain.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	units := u.PreferredUnits
	if units == "" {
		units = domain.UnitsMetric
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, username, hashed_password, is_active, is_superuser, preferred_units)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Email, u.Username, u.HashedPassword, u.IsActive, u.IsSuperuser, units,
	)
	if err != nil {
		if isDuplicate(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read user id: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, nil
	}
	return r.getOne(ctx, "username = ?", username)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+where, arg)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// UpdateProfile applies the profile columns in fields and returns the
// updated user, or nil when no such user exists.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, fields map[string]interface{}) (*domain.User, error) {
	setClause, args := buildSet(fields, profileColumns)
	if setClause != "" {
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, "UPDATE users SET "+setClause+" WHERE id = ?", args...); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}
	return r.GetByID(ctx, id)
}

func scanUser(s rowScanner) (*domain.User, error) {
	var u domain.User
	err := s.Scan(
		&u.ID, &u.Email, &u.Username, &u.HashedPassword, &u.IsActive, &u.IsSuperuser,
		&u.FirstName, &u.LastName, &u.DateOfBirth, &u.Height, &u.Weight, &u.FitnessLevel, &u.FitnessGoals,
		&u.PreferredUnits, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// buildSet renders "col = ?" pairs for the allowed keys of fields in a
// stable order. Unknown keys are dropped.
func buildSet(fields map[string]interface{}, allowed map[string]bool) (string, []interface{}) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if allowed[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	setClauses := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys)+2)
	for _, k := range keys {
		setClauses = append(setClauses, k+" = ?")
		args = append(args, fields[k])
	}
	return strings.Join(setClauses, ", "), args
}

func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
