package book

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

// toRow lists the column values of b in book_by_id column order. Nil fields
// become NULL.
func toRow(b Book) []any {
	return []any{b.ID, b.Name, b.Description, b.PublishedDate, b.CoverIDs, b.AuthorIDs, b.AuthorNames}
}

func fromRow(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Name, &b.Description, &b.PublishedDate, &b.CoverIDs, &b.AuthorIDs, &b.AuthorNames)
	return b, err
}

func (r *PostgresRepo) Upsert(ctx context.Context, b Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		INSERT INTO book_by_id (book_id, book_name, book_description, published_date, cover_ids, author_ids, author_names)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (book_id) DO UPDATE SET
			book_name = EXCLUDED.book_name,
			book_description = EXCLUDED.book_description,
			published_date = EXCLUDED.published_date,
			cover_ids = EXCLUDED.cover_ids,
			author_ids = EXCLUDED.author_ids,
			author_names = EXCLUDED.author_names`

	if _, err := r.db.Exec(ctx, query, toRow(b)...); err != nil {
		return fmt.Errorf("upsert book %s: %w", b.ID, err)
	}
	return nil
}

func (r *PostgresRepo) FindByID(ctx context.Context, id string) (Book, bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	const query = `
		SELECT book_id, book_name, book_description, published_date, cover_ids, author_ids, author_names
		FROM book_by_id
		WHERE book_id = $1`

	b, err := fromRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, false, nil
		}
		return Book{}, false, fmt.Errorf("find book %s: %w", id, err)
	}
	return b, true, nil
}
