package author

import (
	"context"
	"log"

	"bookloader/internal/dump"
)

// Loader reads an author dump and upserts every record.
type Loader struct {
	repo      Repository
	processor *dump.Processor
	logger    *log.Logger
}

// NewLoader creates a Loader writing to repo.
func NewLoader(repo Repository, processor *dump.Processor, logger *log.Logger) *Loader {
	return &Loader{repo: repo, processor: processor, logger: logger}
}

// Load processes the dump at path, one store write per line.
func (l *Loader) Load(ctx context.Context, path string) (dump.Stats, error) {
	return l.processor.ProcessFile(ctx, path, l.handle)
}

func (l *Loader) handle(ctx context.Context, obj dump.Object) error {
	a, err := FromDump(obj)
	if err != nil {
		return err
	}
	l.logger.Printf("saving author %s...", a.Name)
	return l.repo.Upsert(ctx, a)
}
