package dump

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/time/rate"
)

// Stats counts what happened to the lines of one dump file.
type Stats struct {
	Read    int
	Loaded  int
	Skipped int
	Failed  int
}

func (s Stats) String() string {
	return fmt.Sprintf("read=%d loaded=%d skipped=%d failed=%d", s.Read, s.Loaded, s.Skipped, s.Failed)
}

// HandlerFunc turns one decoded record into a store write.
type HandlerFunc func(ctx context.Context, obj Object) error

// Processor drives a HandlerFunc over every line of a dump file, one line at
// a time.
//
// Lines without a JSON payload are skipped. A line whose handler fails is
// logged and counted; in strict mode it also stops the file and its error is
// returned.
type Processor struct {
	kind    string
	strict  bool
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewProcessor creates a Processor. kind names the records in log lines
// ("author", "book"). A writesPerSecond of 0 disables throttling.
func NewProcessor(kind string, strict bool, writesPerSecond int, logger *log.Logger) *Processor {
	p := &Processor{kind: kind, strict: strict, logger: logger}
	if writesPerSecond > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(writesPerSecond), 1)
	}
	return p
}

// ProcessFile opens path and feeds each record to handle. The file is closed
// before ProcessFile returns.
func (p *Processor) ProcessFile(ctx context.Context, path string, handle HandlerFunc) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		p.logger.Printf("cannot open %s dump: %v", p.kind, err)
		return Stats{}, fmt.Errorf("open %s dump: %w", p.kind, err)
	}
	defer f.Close()

	stats, err := p.process(ctx, path, f, handle)
	p.logger.Printf("%s load finished (%s): %s", p.kind, path, stats)
	return stats, err
}

func (p *Processor) process(ctx context.Context, path string, f *os.File, handle HandlerFunc) (Stats, error) {
	var stats Stats
	for line, err := range Lines(f) {
		if err != nil {
			p.logger.Printf("%s: %v", path, err)
			return stats, err
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Read++

		obj, err := Parse(line.Text)
		if errors.Is(err, ErrNoPayload) {
			stats.Skipped++
			continue
		}
		if err == nil {
			err = p.wait(ctx)
		}
		if err == nil {
			err = handle(ctx, obj)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stats, ctxErr
			}
			stats.Failed++
			p.logger.Printf("%s:%d: %s failed: %v", path, line.Number, p.kind, err)
			if p.strict {
				return stats, fmt.Errorf("%s:%d: %w", path, line.Number, err)
			}
			continue
		}
		stats.Loaded++
	}
	return stats, nil
}

func (p *Processor) wait(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
