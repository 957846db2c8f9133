package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobtracker/internal/types"
	_ "modernc.org/sqlite"
)

// sqliteTimeFormat is fixed-width so stored timestamps sort lexically.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite is a single-file Store for local use and tests.
type SQLite struct {
	pool *sql.DB
	now  func() time.Time
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// sqlite allows one writer at a time
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return NewSQLite(pool), nil
}

// NewSQLite wraps an already-open *sql.DB.
func NewSQLite(pool *sql.DB) *SQLite {
	return &SQLite{pool: pool, now: func() time.Time { return time.Now().UTC() }}
}

// Close closes the underlying pool
func (s *SQLite) Close() {
	if s.pool != nil {
		_ = s.pool.Close()
	}
}

// Migrate applies the schema once, tracked by PRAGMA user_version.
func (s *SQLite) Migrate(ctx context.Context) error {
	schema, err := loadSchema("sqlite.sql")
	if err != nil {
		return err
	}

	tx, err := s.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var version int
	if err := tx.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version >= 1 {
		return tx.Commit()
	}

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, `PRAGMA user_version = 1`); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return tx.Commit()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeFormat)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}

// CreateUser inserts a user and returns its ID
func (s *SQLite) CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	now := formatTime(s.now())
	_, err := s.pool.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), name, strings.ToLower(email), passwordHash, now, now,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (s *SQLite) getUserWhere(ctx context.Context, where string, arg any) (*User, error) {
	var (
		u                    User
		id                   string
		createdAt, updatedAt string
	)
	err := s.pool.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg,
	).Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid stored user id %q: %w", id, err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser retrieves a user by ID
func (s *SQLite) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.getUserWhere(ctx, `id = ?`, id.String())
}

// GetUserByEmail retrieves a user by email, ignoring case
func (s *SQLite) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, nil
	}
	return s.getUserWhere(ctx, `LOWER(email) = LOWER(?)`, email)
}

// CheckEmailExists reports whether an account already uses email
func (s *SQLite) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists int
	err := s.pool.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER(?))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists == 1, nil
}

// UpdatePassword replaces a user's password hash
func (s *SQLite) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := s.pool.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, formatTime(s.now()), id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	} else if n == 0 {
		return fmt.Errorf("user not found: %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteApplication(row rowScanner) (*Application, error) {
	var (
		a                                 Application
		id, userID, status                string
		dateApplied, createdAt, updatedAt string
	)
	err := row.Scan(&id, &userID, &a.Company, &a.Position, &a.Location, &status, &dateApplied,
		&a.Notes, &a.JobURL, &a.Salary, &a.JobDescription, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if a.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid stored application id %q: %w", id, err)
	}
	if a.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid stored user id %q: %w", userID, err)
	}
	a.Status = types.ApplicationStatus(status)
	if a.DateApplied, err = parseTime(dateApplied); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts a new application for app.UserID
func (s *SQLite) CreateApplication(ctx context.Context, app *Application) (*Application, error) {
	now := s.now()
	app.applyDefaults(now)
	_, err := s.pool.ExecContext(ctx,
		`INSERT INTO applications (id, user_id, company, position, location, status, date_applied,
		                           notes, job_url, salary, job_description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID.String(), app.UserID.String(), app.Company, app.Position, app.Location, string(app.Status),
		formatTime(app.DateApplied), app.Notes, app.JobURL, app.Salary, app.JobDescription,
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return s.GetApplication(ctx, app.UserID, app.ID)
}

// GetApplication retrieves one of userID's applications
func (s *SQLite) GetApplication(ctx context.Context, userID, id uuid.UUID) (*Application, error) {
	app, err := scanSQLiteApplication(s.pool.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = ? AND user_id = ?`,
		id.String(), userID.String(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ListApplications returns userID's applications, most recently applied first
func (s *SQLite) ListApplications(ctx context.Context, userID uuid.UUID) ([]Application, error) {
	rows, err := s.pool.QueryContext(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE user_id = ?
		 ORDER BY date_applied DESC, created_at DESC`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		app, err := scanSQLiteApplication(rows)
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
func (s *SQLite) UpdateApplication(ctx context.Context, app *Application) (*Application, error) {
	result, err := s.pool.ExecContext(ctx,
		`UPDATE applications
		 SET company = ?, position = ?, location = ?, status = ?, date_applied = ?,
		     notes = ?, job_url = ?, salary = ?, job_description = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		app.Company, app.Position, app.Location, string(app.Status), formatTime(app.DateApplied),
		app.Notes, app.JobURL, app.Salary, app.JobDescription, formatTime(s.now()),
		app.ID.String(), app.UserID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("application %s: %w", app.ID, ErrNotFound)
	}
	return s.GetApplication(ctx, app.UserID, app.ID)
}

// DeleteApplication removes one of userID's applications
func (s *SQLite) DeleteApplication(ctx context.Context, userID, id uuid.UUID) error {
	result, err := s.pool.ExecContext(ctx,
		`DELETE FROM applications WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return nil
}
