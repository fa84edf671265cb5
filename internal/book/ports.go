package book

import (
	"context"

	"bookloader/internal/author"
)

// Repository defines the contract for book storage.
type Repository interface {
	Upsert(ctx context.Context, b Book) error
	FindByID(ctx context.Context, id string) (b Book, found bool, err error)
}

// AuthorLookup is the read-only view of already loaded authors used to
// resolve author names. author.Repository satisfies it.
type AuthorLookup interface {
	FindByID(ctx context.Context, id string) (a author.Author, found bool, err error)
}
