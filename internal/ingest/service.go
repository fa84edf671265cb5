package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"bookloader/internal/dump"
)

// ErrInvalidConfig is returned when a run has nothing to do.
var ErrInvalidConfig = errors.New("invalid ingest config")

type Config struct {
	AuthorsPath string
	WorksPath   string
	SkipAuthors bool
	SkipWorks   bool
}

// FileLoader loads one dump file.
type FileLoader interface {
	Load(ctx context.Context, path string) (dump.Stats, error)
}

type Service struct {
	authors FileLoader
	works   FileLoader
	runs    Repository
	cfg     Config
	logger  *log.Logger
}

// NewService creates a Service. runs may be nil, in which case runs are only
// logged.
func NewService(authors, works FileLoader, runs Repository, cfg Config, logger *log.Logger) *Service {
	return &Service{
		authors: authors,
		works:   works,
		runs:    runs,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run loads the author dump to completion and then the works dump. A failed
// author load does not prevent the works load; both errors are reported.
func (s *Service) Run(ctx context.Context) (run *Run, err error) {
	if s.cfg.SkipAuthors && s.cfg.SkipWorks {
		return nil, fmt.Errorf("%w: both loads skipped", ErrInvalidConfig)
	}

	run = &Run{
		ID:        uuid.NewString(),
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	if !s.cfg.SkipAuthors {
		run.AuthorsPath = s.cfg.AuthorsPath
	}
	if !s.cfg.SkipWorks {
		run.WorksPath = s.cfg.WorksPath
	}

	if s.runs != nil {
		if err := s.runs.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("create ingest run: %w", err)
		}
	}

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil {
			run.Status = StatusFailed
			run.Error = err.Error()
		} else {
			run.Status = StatusCompleted
		}
		s.logger.Printf("ingest run %s %s in %s: authors %s; works %s",
			run.ID, run.Status, now.Sub(run.StartedAt).Round(time.Millisecond), run.Authors, run.Works)

		if s.runs == nil {
			return
		}
		// The run context may already be cancelled; the final status is still recorded.
		if updateErr := s.runs.UpdateRun(context.WithoutCancel(ctx), run); updateErr != nil {
			s.logger.Printf("Failed to update ingest run %s: %v", run.ID, updateErr)
		}
	}()

	var authorsErr error
	if !s.cfg.SkipAuthors {
		run.Authors, authorsErr = s.authors.Load(ctx, s.cfg.AuthorsPath)
		if authorsErr != nil {
			authorsErr = fmt.Errorf("load authors: %w", authorsErr)
			if ctx.Err() != nil {
				return run, authorsErr
			}
			s.logger.Printf("%v; continuing with works", authorsErr)
		}
	}

	var worksErr error
	if !s.cfg.SkipWorks {
		run.Works, worksErr = s.works.Load(ctx, s.cfg.WorksPath)
		if worksErr != nil {
			worksErr = fmt.Errorf("load works: %w", worksErr)
		}
	}

	return run, errors.Join(authorsErr, worksErr)
}
