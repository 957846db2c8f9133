package db

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/jobtracker/internal/config"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// ErrNotFound is returned by updates and deletes that match no row.
var ErrNotFound = errors.New("not found")

// Store is the persistence contract shared by the Postgres and SQLite backends.
// Single-row reads return nil, nil when nothing matches. Application reads are
// always scoped to the owning user.
type Store interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	CreateApplication(ctx context.Context, app *Application) (*Application, error)
	GetApplication(ctx context.Context, userID, id uuid.UUID) (*Application, error)
	ListApplications(ctx context.Context, userID uuid.UUID) ([]Application, error)
	UpdateApplication(ctx context.Context, app *Application) (*Application, error)
	DeleteApplication(ctx context.Context, userID, id uuid.UUID) error

	Migrate(ctx context.Context) error
	Close()
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*SQLite)(nil)
)

// Open connects to the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return Connect(ctx, cfg.URL)
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func loadSchema(name string) (string, error) {
	b, err := schemaFS.ReadFile("schema/" + name)
	if err != nil {
		return "", fmt.Errorf("failed to read schema %s: %w", name, err)
	}
	return string(b), nil
}
