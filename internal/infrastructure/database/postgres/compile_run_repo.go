package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	cerrors "github.com/turtacn/sbgnqual/pkg/errors"
)

// CompileRun is one audited invocation of the compile pipeline.
type CompileRun struct {
	RunID          string
	InputPath      string
	OutputPath     string
	SpeciesCount   int
	ReactionCount  int
	WarningCount   int
	Succeeded      bool
	ErrorMessage   string
	StartedAt      time.Time
	FinishedAt     time.Time
}

// CompileRunRepository persists CompileRun audit rows.
type CompileRunRepository struct {
	pool *pgxpool.Pool
}

// NewCompileRunRepository constructs a CompileRunRepository over pool.
func NewCompileRunRepository(pool *pgxpool.Pool) *CompileRunRepository {
	return &CompileRunRepository{pool: pool}
}

// Insert records a finished (successful or failed) compile run.
func (r *CompileRunRepository) Insert(ctx context.Context, run CompileRun) error {
	const q = `
INSERT INTO compile_runs
	(run_id, input_path, output_path, species_count, reaction_count, warning_count, succeeded, error_message, started_at, finished_at)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, q,
		run.RunID, run.InputPath, run.OutputPath, run.SpeciesCount, run.ReactionCount,
		run.WarningCount, run.Succeeded, run.ErrorMessage, run.StartedAt, run.FinishedAt)
	if err != nil {
		return cerrors.Wrap(cerrors.CodeDBConnectionError, "postgres: insert compile_runs", err)
	}
	return nil
}

// Get fetches a CompileRun by its run id.
func (r *CompileRunRepository) Get(ctx context.Context, runID string) (*CompileRun, error) {
	const q = `
SELECT run_id, input_path, output_path, species_count, reaction_count, warning_count, succeeded, error_message, started_at, finished_at
FROM compile_runs WHERE run_id = $1`
	row := r.pool.QueryRow(ctx, q, runID)

	var run CompileRun
	err := row.Scan(&run.RunID, &run.InputPath, &run.OutputPath, &run.SpeciesCount, &run.ReactionCount,
		&run.WarningCount, &run.Succeeded, &run.ErrorMessage, &run.StartedAt, &run.FinishedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, cerrors.Wrap(cerrors.CodeDBConnectionError, "postgres: select compile_runs", err)
	}
	return &run, nil
}

// ListRecent returns the most recent compile runs, newest first.
func (r *CompileRunRepository) ListRecent(ctx context.Context, limit int) ([]CompileRun, error) {
	const q = `
SELECT run_id, input_path, output_path, species_count, reaction_count, warning_count, succeeded, error_message, started_at, finished_at
FROM compile_runs ORDER BY started_at DESC LIMIT $1`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.CodeDBConnectionError, "postgres: list compile_runs", err)
	}
	defer rows.Close()

	var runs []CompileRun
	for rows.Next() {
		var run CompileRun
		if err := rows.Scan(&run.RunID, &run.InputPath, &run.OutputPath, &run.SpeciesCount, &run.ReactionCount,
			&run.WarningCount, &run.Succeeded, &run.ErrorMessage, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, cerrors.Wrap(cerrors.CodeDBConnectionError, "postgres: scan compile_runs", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
