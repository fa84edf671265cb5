package main

import (
	"context"

	"bookloader/internal/author"
	"bookloader/internal/book"
	"bookloader/internal/config"
	"bookloader/internal/ingest"
	"bookloader/internal/platform/dynamo"
	"bookloader/internal/platform/postgres"
)

// stores holds the repositories of the configured backend.
type stores struct {
	authors author.Repository
	books   book.Repository
	runs    ingest.Repository
	close   func()
}

func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	switch cfg.Backend {
	case config.BackendDynamoDB:
		client, err := dynamo.NewClient(ctx, cfg.AWSRegion, cfg.DynamoDBEndpoint)
		if err != nil {
			return nil, err
		}
		return &stores{
			authors: author.NewDynamoRepo(client, cfg.AuthorTable),
			books:   book.NewDynamoRepo(client, cfg.BookTable),
			close:   func() {},
		}, nil

	case config.BackendMemory:
		return &stores{
			authors: author.NewMemoryRepo(),
			books:   book.NewMemoryRepo(),
			close:   func() {},
		}, nil

	default:
		pool, err := postgres.Open(ctx, cfg.DSN, cfg.DBTimeout)
		if err != nil {
			return nil, err
		}
		return &stores{
			authors: author.NewPostgresRepo(pool, cfg.DBTimeout),
			books:   book.NewPostgresRepo(pool, cfg.DBTimeout),
			runs:    ingest.NewPostgresRepo(pool),
			close:   pool.Close,
		}, nil
	}
}
