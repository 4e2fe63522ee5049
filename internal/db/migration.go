package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// migration is one schema version. Its statements run in order inside a
// single transaction; MySQL commits DDL implicitly, so a failure part way
// through may leave earlier statements applied.
type migration struct {
	version    string
	statements []string
}

var migrations = []migration{
	{
		version: "001_create_users",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS users (
				id              BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				email           VARCHAR(255) NOT NULL,
				username        VARCHAR(50) NULL,
				hashed_password VARCHAR(255) NOT NULL,
				is_active       TINYINT(1) NOT NULL DEFAULT 1,
				is_superuser    TINYINT(1) NOT NULL DEFAULT 0,
				first_name      VARCHAR(50) NULL,
				last_name       VARCHAR(50) NULL,
				date_of_birth   DATE NULL,
				height          DOUBLE NULL,
				weight          DOUBLE NULL,
				fitness_level   VARCHAR(20) NULL,
				fitness_goals   VARCHAR(500) NULL,
				preferred_units VARCHAR(10) NOT NULL DEFAULT 'metric',
				created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				UNIQUE KEY uq_users_email (email),
				UNIQUE KEY uq_users_username (username)
			)`},
	},
	{
		version: "002_create_workout_records",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS workout_records (
				id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
				user_id       BIGINT UNSIGNED NOT NULL,
				exercise_date DATE NOT NULL,
				exercise      VARCHAR(100) NOT NULL,
				weight        DOUBLE NOT NULL,
				reps          INT NOT NULL,
				set_reps      INT NOT NULL,
				notes         TEXT NULL,
				created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
				INDEX idx_workout_records_user_id (user_id),
				INDEX idx_workout_records_exercise (exercise),
				CONSTRAINT fk_workout_records_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`},
	},
}

const createSchemaMigrations = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    VARCHAR(255) PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`

// RunMigrations applies, in order, every migration not yet recorded in
// schema_migrations. It stops before the next migration once ctx is done.
func RunMigrations(ctx context.Context, db *sql.DB, log *zap.Logger) error {
	if _, err := db.ExecContext(ctx, createSchemaMigrations); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	pending := 0
	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("migration %s not started: %w", m.version, err)
		}

		start := time.Now()
		if err := applyMigration(ctx, db, m); err != nil {
			return err
		}
		pending++
		log.Info("applied migration",
			zap.String("version", m.version),
			zap.Duration("took", time.Since(start)),
		)
	}

	log.Debug("schema up to date", zap.Int("applied", pending), zap.Int("known", len(migrations)))
	return nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("read schema_migrations: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func applyMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migration %s: begin: %w", m.version, err)
	}
	defer tx.Rollback()

	for i, stmt := range m.statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %s: statement %d: %w", m.version, i+1, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
		return fmt.Errorf("migration %s: record version: %w", m.version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %s: commit: %w", m.version, err)
	}
	return nil
}
