package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobtracker/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	store  *db.SQLite
	userID uuid.UUID
	email  string
}

// setupCLI points the commands at a fresh SQLite file and registers one user.
func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOG_LEVEL", "error")

	out, err := runCLI(t, "migrate")
	require.NoError(t, err, out)

	ctx := context.Background()
	store, err := db.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	email := "cli@example.com"
	userID, err := store.CreateUser(ctx, "CLI User", email, "hash")
	require.NoError(t, err)
	return &cliEnv{store: store, userID: userID, email: email}
}

func (e *cliEnv) addApplication(t *testing.T, app db.Application) *db.Application {
	t.Helper()
	app.UserID = e.userID
	created, err := e.store.CreateApplication(context.Background(), &app)
	require.NoError(t, err)
	return created
}

func (e *cliEnv) applications(t *testing.T) []db.Application {
	t.Helper()
	apps, err := e.store.ListApplications(context.Background(), e.userID)
	require.NoError(t, err)
	return apps
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range newRootCmd().Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "analyze", "import", "fetch-posting"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestMigrateCmd(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "migrate")

	require.NoError(t, err)
	assert.Contains(t, out, "Schema applied (sqlite)")
}

func TestMigrateCmd_InvalidConfig(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mongo")

	_, err := runCLI(t, "migrate")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown database driver")
}

func TestEvaluationTime(t *testing.T) {
	at, err := evaluationTime("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), at)

	at, err = evaluationTime("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), at, time.Minute)

	_, err = evaluationTime("15/03/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --now")
}

func TestUserByEmail(t *testing.T) {
	env := setupCLI(t)
	rt, err := openRuntime(context.Background(), "")
	require.NoError(t, err)
	defer rt.Close()

	user, err := rt.userByEmail(context.Background(), "  CLI@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, env.userID, user.ID)

	_, err = rt.userByEmail(context.Background(), "")
	assert.Error(t, err)

	_, err = rt.userByEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user registered")

}
