package book

import (
	"context"
	"sync"
)

// MemoryRepo keeps books in process memory for dry runs.
type MemoryRepo struct {
	mu    sync.RWMutex
	books map[string]Book
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{books: make(map[string]Book)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, b Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[b.ID] = b
	return nil
}

func (r *MemoryRepo) FindByID(ctx context.Context, id string) (Book, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[id]
	return b, ok, nil
}

func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books)
}
