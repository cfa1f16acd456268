//go:build integration

// Package postgres_test provides integration tests for the CompileRunRepository
// backed by a real PostgreSQL instance. Tests require Docker and are gated
// behind the "integration" build tag.
package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/sbgnqual/internal/infrastructure/database/postgres"
)

// startPostgres launches a PostgreSQL 16 container and returns a connected
// pool with the compile_runs schema applied.
func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "sbgnqual_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/sbgnqual_test?sslmode=disable", host, port.Port())
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applyCompileRunSchema(t, pool)
	return pool
}

func applyCompileRunSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	const ddl = `
	CREATE TABLE IF NOT EXISTS compile_runs (
		run_id         TEXT PRIMARY KEY,
		input_path     TEXT NOT NULL DEFAULT '',
		output_path    TEXT NOT NULL DEFAULT '',
		species_count  INT NOT NULL DEFAULT 0,
		reaction_count INT NOT NULL DEFAULT 0,
		warning_count  INT NOT NULL DEFAULT 0,
		succeeded      BOOLEAN NOT NULL DEFAULT FALSE,
		error_message  TEXT NOT NULL DEFAULT '',
		started_at     TIMESTAMPTZ NOT NULL,
		finished_at    TIMESTAMPTZ NOT NULL
	);
	`
	_, err := pool.Exec(ctx, ddl)
	require.NoError(t, err)
}

func newTestRun(suffix string) postgres.CompileRun {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return postgres.CompileRun{
		RunID:         "run-" + suffix,
		InputPath:     "testdata/" + suffix + ".xml",
		OutputPath:    "testdata/" + suffix + ".sbml",
		SpeciesCount:  12,
		ReactionCount: 7,
		WarningCount:  1,
		Succeeded:     true,
		StartedAt:     now.Add(-time.Second),
		FinishedAt:    now,
	}
}

func TestCompileRunRepository_InsertAndGet(t *testing.T) {
	pool := startPostgres(t)
	repo := postgres.NewCompileRunRepository(pool)
	ctx := context.Background()

	run := newTestRun("001")
	require.NoError(t, repo.Insert(ctx, run))

	found, err := repo.Get(ctx, run.RunID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, run.InputPath, found.InputPath)
	assert.Equal(t, run.SpeciesCount, found.SpeciesCount)
	assert.True(t, found.Succeeded)
}

func TestCompileRunRepository_GetMissing(t *testing.T) {
	pool := startPostgres(t)
	repo := postgres.NewCompileRunRepository(pool)
	ctx := context.Background()

	found, err := repo.Get(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCompileRunRepository_InsertFailedRun(t *testing.T) {
	pool := startPostgres(t)
	repo := postgres.NewCompileRunRepository(pool)
	ctx := context.Background()

	run := newTestRun("002")
	run.Succeeded = false
	run.ErrorMessage = "dangling reference: r1->s9"
	require.NoError(t, repo.Insert(ctx, run))

	found, err := repo.Get(ctx, run.RunID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Succeeded)
	assert.Equal(t, run.ErrorMessage, found.ErrorMessage)
}

func TestCompileRunRepository_ListRecent(t *testing.T) {
	pool := startPostgres(t)
	repo := postgres.NewCompileRunRepository(pool)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		run := newTestRun(fmt.Sprintf("recent-%d", i))
		run.StartedAt = base.Add(time.Duration(i) * time.Minute)
		run.FinishedAt = run.StartedAt.Add(time.Second)
		require.NoError(t, repo.Insert(ctx, run))
	}

	runs, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
	// Newest first.
	assert.True(t, runs[0].StartedAt.After(runs[1].StartedAt) || runs[0].StartedAt.Equal(runs[1].StartedAt))
}
