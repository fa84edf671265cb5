// Package author loads Open Library author records into the author_by_id
// table.
package author

import (
	"context"

	"bookloader/internal/dump"
)

// KeyPrefix is the path segment stripped from author keys.
const KeyPrefix = "/authors/"

// Author is one row of author_by_id.
type Author struct {
	ID           string
	Name         string
	PersonalName string
}

// Repository stores authors keyed by ID.
type Repository interface {
	// Upsert writes a, replacing any author with the same ID.
	Upsert(ctx context.Context, a Author) error
	// FindByID returns the author with the given ID. found is false when no
	// such author exists.
	FindByID(ctx context.Context, id string) (a Author, found bool, err error)
}

// FromDump builds an Author from a decoded author dump record. The key field
// is required; name and personal_name default to "".
func FromDump(obj dump.Object) (Author, error) {
	key, err := obj.RequiredString("key")
	if err != nil {
		return Author{}, err
	}
	return Author{
		ID:           dump.StripKey(key, KeyPrefix),
		Name:         obj.String("name"),
		PersonalName: obj.String("personal_name"),
	}, nil
}
