package book

import (
	"context"
	"log"

	"bookloader/internal/dump"
)

// Loader reads a works dump and upserts one Book per line.
type Loader struct {
	repo      Repository
	authors   AuthorLookup
	processor *dump.Processor
	logger    *log.Logger
}

// NewLoader creates a Loader that resolves author names through authors.
func NewLoader(repo Repository, authors AuthorLookup, processor *dump.Processor, logger *log.Logger) *Loader {
	return &Loader{repo: repo, authors: authors, processor: processor, logger: logger}
}

// Load processes the works dump at path. Each author reference costs one
// lookup; lookups are not cached across lines.
func (l *Loader) Load(ctx context.Context, path string) (dump.Stats, error) {
	return l.processor.ProcessFile(ctx, path, l.handle)
}

func (l *Loader) handle(ctx context.Context, obj dump.Object) error {
	b, err := FromDump(obj, l.logger)
	if err != nil {
		return err
	}
	if b.AuthorIDs != nil {
		if b.AuthorNames, err = ResolveAuthorNames(ctx, l.authors, b.AuthorIDs); err != nil {
			return err
		}
	}
	l.logger.Printf("saving book %s...", b.Name)
	return l.repo.Upsert(ctx, b)
}
