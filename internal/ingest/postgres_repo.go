package ingest

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository records load runs.
type Repository interface {
	CreateRun(ctx context.Context, run *Run) error
	UpdateRun(ctx context.Context, run *Run) error
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) error {
	const sql = `
		INSERT INTO ingest_runs (id, started_at, status, authors_path, works_path)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, sql, run.ID, run.StartedAt, run.Status, run.AuthorsPath, run.WorksPath)
	return err
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE ingest_runs SET
			finished_at = $1,
			status = $2,
			authors_read = $3,
			authors_loaded = $4,
			authors_skipped = $5,
			authors_failed = $6,
			works_read = $7,
			works_loaded = $8,
			works_skipped = $9,
			works_failed = $10,
			error = $11
		WHERE id = $12`

	_, err := r.db.Exec(ctx, sql,
		run.FinishedAt, run.Status,
		run.Authors.Read, run.Authors.Loaded, run.Authors.Skipped, run.Authors.Failed,
		run.Works.Read, run.Works.Loaded, run.Works.Skipped, run.Works.Failed,
		run.Error, run.ID)
	return err
}
