// Package db provides persistence for users and their job applications,
// backed by PostgreSQL (pgx) or SQLite.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonathan/jobtracker/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the tables and indexes if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	schema, err := loadSchema("postgres.sql")
	if err != nil {
		return err
	}
	// Exec without arguments uses the simple protocol, which accepts multiple statements.
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// CreateUser inserts a user and returns its ID
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		uuid.New(), name, strings.ToLower(email), passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

const userColumns = `id, name, email, password_hash, created_at, updated_at`

func (db *DB) getUserWhere(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetUser retrieves a user by ID
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return db.getUserWhere(ctx, `id = $1`, id)
}

// GetUserByEmail retrieves a user by email, ignoring case
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, nil
	}
	return db.getUserWhere(ctx, `LOWER(email) = LOWER($1)`, email)
}

// CheckEmailExists reports whether an account already uses email
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// UpdatePassword replaces a user's password hash
func (db *DB) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s: %w", id, ErrNotFound)
	}
	return nil
}

const applicationColumns = `id, user_id, company, position, location, status, date_applied,
	notes, job_url, salary, job_description, created_at, updated_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var (
		a      Application
		status string
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Company, &a.Position, &a.Location, &status, &a.DateApplied,
		&a.Notes, &a.JobURL, &a.Salary, &a.JobDescription, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = types.ApplicationStatus(status)
	return &a, nil
}

// CreateApplication inserts a new application for app.UserID
func (db *DB) CreateApplication(ctx context.Context, app *Application) (*Application, error) {
	app.applyDefaults(time.Now().UTC())
	created, err := scanApplication(db.pool.QueryRow(ctx,
		`INSERT INTO applications (id, user_id, company, position, location, status, date_applied,
		                           notes, job_url, salary, job_description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+applicationColumns,
		app.ID, app.UserID, app.Company, app.Position, app.Location, string(app.Status), app.DateApplied,
		app.Notes, app.JobURL, app.Salary, app.JobDescription,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return created, nil
}

// GetApplication retrieves one of userID's applications
func (db *DB) GetApplication(ctx context.Context, userID, id uuid.UUID) (*Application, error) {
	app, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ListApplications returns userID's applications, most recently applied first
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE user_id = $1
		 ORDER BY date_applied DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// UpdateApplication overwrites the mutable fields of an existing application
func (db *DB) UpdateApplication(ctx context.Context, app *Application) (*Application, error) {
	updated, err := scanApplication(db.pool.QueryRow(ctx,
		`UPDATE applications
		 SET company = $3, position = $4, location = $5, status = $6, date_applied = $7,
		     notes = $8, job_url = $9, salary = $10, job_description = $11, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+applicationColumns,
		app.ID, app.UserID, app.Company, app.Position, app.Location, string(app.Status), app.DateApplied,
		app.Notes, app.JobURL, app.Salary, app.JobDescription,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", app.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	return updated, nil
}

// DeleteApplication removes one of userID's applications
func (db *DB) DeleteApplication(ctx context.Context, userID, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM applications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return nil
}
