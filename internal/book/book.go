// Package book loads Open Library works into the book_by_id table, resolving
// author ids to names on the way.
package book

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"bookloader/internal/author"
	"bookloader/internal/dump"
)

const (
	// KeyPrefix is the path segment stripped from work keys.
	KeyPrefix = "/works/"
	// UnknownAuthor stands in for an author id with no author record.
	UnknownAuthor = "Unknown Author"
	// CreatedLayout is the layout of created.value, six fractional digits.
	CreatedLayout = "2006-01-02T15:04:05.000000"
	dateLayout    = "2006-01-02"
)

// Book is one row of book_by_id. AuthorNames runs parallel to AuthorIDs.
type Book struct {
	ID            string
	Name          string
	Description   *string
	PublishedDate *time.Time
	CoverIDs      []string
	AuthorIDs     []string
	AuthorNames   []string
}

// FromDump builds a Book from a decoded works dump record. Author names are
// left for ResolveAuthorNames.
//
// A bare-string description is ignored. A created value that does not match
// CreatedLayout leaves PublishedDate nil and is reported on logger.
func FromDump(obj dump.Object, logger *log.Logger) (Book, error) {
	key, err := obj.RequiredString("key")
	if err != nil {
		return Book{}, err
	}
	b := Book{
		ID:   dump.StripKey(key, KeyPrefix),
		Name: obj.String("title"),
	}

	if desc, ok := obj.Object("description"); ok {
		v := desc.String("value")
		b.Description = &v
	}

	if created, ok := obj.Object("created"); ok {
		d, err := ParseCreated(created.String("value"))
		if err != nil {
			logger.Printf("book %s: leaving published date empty: %v", b.ID, err)
		} else {
			b.PublishedDate = &d
		}
	}

	if covers, ok := obj.Array("covers"); ok {
		if b.CoverIDs, err = coverIDs(covers); err != nil {
			return Book{}, err
		}
	}

	if authors, ok := obj.Array("authors"); ok {
		if b.AuthorIDs, err = authorIDs(authors); err != nil {
			return Book{}, err
		}
	}
	return b, nil
}

// ParseCreated parses a created.value timestamp and keeps only its calendar
// date, as UTC midnight.
func ParseCreated(value string) (time.Time, error) {
	t, err := time.Parse(CreatedLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func coverIDs(covers []any) ([]string, error) {
	ids := make([]string, len(covers))
	for i, c := range covers {
		n, ok := dump.AsInt64(c)
		if !ok {
			return nil, fmt.Errorf("%w: covers[%d] is not an integer", dump.ErrMalformed, i)
		}
		ids[i] = strconv.FormatInt(n, 10)
	}
	return ids, nil
}

func authorIDs(authors []any) ([]string, error) {
	ids := make([]string, len(authors))
	for i, e := range authors {
		ref, ok := dump.AsObject(e)
		if !ok {
			return nil, fmt.Errorf("%w: authors[%d] is not an object", dump.ErrMalformed, i)
		}
		a, ok := ref.Object("author")
		if !ok {
			return nil, fmt.Errorf("%w: authors[%d] has no author object", dump.ErrMalformed, i)
		}
		key, err := a.RequiredString("key")
		if err != nil {
			return nil, fmt.Errorf("authors[%d]: %w", i, err)
		}
		ids[i] = dump.StripKey(key, author.KeyPrefix)
	}
	return ids, nil
}

// ResolveAuthorNames looks up every id, in order, and returns one name per
// id. Ids without an author record resolve to UnknownAuthor.
func ResolveAuthorNames(ctx context.Context, lookup AuthorLookup, ids []string) ([]string, error) {
	names := make([]string, len(ids))
	for i, id := range ids {
		a, found, err := lookup.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if found {
			names[i] = a.Name
		} else {
			names[i] = UnknownAuthor
		}
	}
	return names, nil
}
