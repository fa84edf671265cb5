package book

import (
	"context"
	"testing"
	"time"

	"bookloader/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestPostgresRepo(t *testing.T) {
	db := testutil.StartPostgres(t)
	repo := NewPostgresRepo(db, 5*time.Second)
	ctx := context.Background()

	t.Run("upsert then find", func(t *testing.T) {
		desc := "A tale of two cities."
		published := time.Date(1990, time.January, 5, 0, 0, 0, 0, time.UTC)
		b := Book{
			ID:            "W1",
			Name:          "Book One",
			Description:   &desc,
			PublishedDate: &published,
			CoverIDs:      []string{"8739161", "12"},
			AuthorIDs:     []string{"A1", "A2"},
			AuthorNames:   []string{"Jane Doe", UnknownAuthor},
		}
		require.NoError(t, repo.Upsert(ctx, b))

		got, found, err := repo.FindByID(ctx, "W1")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, b.ID, got.ID)
		require.Equal(t, b.Name, got.Name)
		require.Equal(t, desc, *got.Description)
		require.Equal(t, "1990-01-05", got.PublishedDate.Format(dateLayout))
		require.Equal(t, b.CoverIDs, got.CoverIDs)
		require.Equal(t, b.AuthorIDs, got.AuthorIDs)
		require.Equal(t, b.AuthorNames, got.AuthorNames)
	})

	t.Run("absent fields are stored as null", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, Book{ID: "W2", Name: "Two"}))

		got, found, err := repo.FindByID(ctx, "W2")
		require.NoError(t, err)
		require.True(t, found)
		require.Nil(t, got.Description)
		require.Nil(t, got.PublishedDate)
		require.Nil(t, got.CoverIDs)
		require.Nil(t, got.AuthorNames)
	})

	t.Run("upsert overwrites by key", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, Book{ID: "W3", Name: "Old", AuthorIDs: []string{"A1"}, AuthorNames: []string{UnknownAuthor}}))
		require.NoError(t, repo.Upsert(ctx, Book{ID: "W3", Name: "New", AuthorIDs: []string{"A1"}, AuthorNames: []string{"Jane Doe"}}))

		got, _, err := repo.FindByID(ctx, "W3")
		require.NoError(t, err)
		require.Equal(t, "New", got.Name)
		require.Equal(t, []string{"Jane Doe"}, got.AuthorNames)
	})

	t.Run("missing book", func(t *testing.T) {
		_, found, err := repo.FindByID(ctx, "W404")
		require.NoError(t, err)
		require.False(t, found)
	})
}
