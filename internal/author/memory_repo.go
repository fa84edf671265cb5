package author

import (
	"context"
	"sync"
)

// MemoryRepo keeps authors in process memory. It backs dry runs, where dumps
// are validated without touching a real store.
type MemoryRepo struct {
	mu      sync.RWMutex
	authors map[string]Author
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{authors: make(map[string]Author)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, a Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authors[a.ID] = a
	return nil
}

func (r *MemoryRepo) FindByID(ctx context.Context, id string) (Author, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.authors[id]
	return a, ok, nil
}

// Len reports the number of stored authors.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.authors)
}
