package quota

import (
	"context"
	"sync"
	"time"
)

// InMemoryRepository is used in tests and local development without a
// database.
type InMemoryRepository struct {
	mu    sync.Mutex
	usage map[string]int // key: userID + "|" + day
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{usage: make(map[string]int)}
}

func key(userID string, day time.Time) string {
	return userID + "|" + day.Format("2006-01-02")
}

func (r *InMemoryRepository) Used(_ context.Context, userID string, day time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.usage[key(userID, day)], nil
}

func (r *InMemoryRepository) Increment(_ context.Context, userID string, day time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.usage[key(userID, day)]++
	return nil
}
