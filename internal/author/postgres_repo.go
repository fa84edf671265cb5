package author

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// toRow lists the column values of a in author_by_id column order.
func toRow(a Author) []any {
	return []any{a.ID, a.Name, a.PersonalName}
}

func fromRow(row pgx.Row) (Author, error) {
	var a Author
	err := row.Scan(&a.ID, &a.Name, &a.PersonalName)
	return a, err
}

func (r *PostgresRepo) Upsert(ctx context.Context, a Author) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		INSERT INTO author_by_id (author_id, author_name, personal_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (author_id) DO UPDATE SET
			author_name = EXCLUDED.author_name,
			personal_name = EXCLUDED.personal_name`

	if _, err := r.db.Exec(ctx, query, toRow(a)...); err != nil {
		return fmt.Errorf("upsert author %s: %w", a.ID, err)
	}
	return nil
}

func (r *PostgresRepo) FindByID(ctx context.Context, id string) (Author, bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT author_id, author_name, personal_name
		FROM author_by_id
		WHERE author_id = $1`

	a, err := fromRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Author{}, false, nil
		}
		return Author{}, false, fmt.Errorf("find author %s: %w", id, err)
	}
	return a, true, nil
}
