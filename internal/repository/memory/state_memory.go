package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/easysocial/easysocial-server/internal/models"
	"github.com/easysocial/easysocial-server/internal/repository"
)

type stateEntry struct {
	provider models.Provider
	expiry   time.Time
}

// MemoryStateRepository implements StateRepository in memory. Entries are
// lost on restart, which callers treat the same as expiry.
type MemoryStateRepository struct {
	ttl    time.Duration
	states map[string]stateEntry
	mutex  sync.Mutex
	done   chan struct{}
}

// NewMemoryStateRepository creates a state store with the given TTL. A
// janitor goroutine purges expired entries every checkInterval until
// Close is called; Consume also checks expiry itself, so the janitor is
// purely housekeeping.
func NewMemoryStateRepository(ttl, checkInterval time.Duration) *MemoryStateRepository {
	r := &MemoryStateRepository{
		ttl:    ttl,
		states: make(map[string]stateEntry),
		done:   make(chan struct{}),
	}
	go r.janitor(checkInterval)
	return r
}

func (r *MemoryStateRepository) Issue(ctx context.Context, provider models.Provider) (string, error) {
	token := uuid.NewString()

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.states[token] = stateEntry{provider: provider, expiry: time.Now().Add(r.ttl)}
	return token, nil
}

func (r *MemoryStateRepository) Consume(ctx context.Context, token string, provider models.Provider) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry, exists := r.states[token]
	if !exists {
		return false, nil
	}
	if time.Now().After(entry.expiry) {
		delete(r.states, token)
		return false, nil
	}
	if entry.provider != provider {
		// Leave the entry alone: the real client may still complete the
		// flow against the correct provider.
		return false, nil
	}
	delete(r.states, token)
	return true, nil
}

// Close stops the janitor goroutine.
func (r *MemoryStateRepository) Close() {
	close(r.done)
}

func (r *MemoryStateRepository) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			now := time.Now()
			r.mutex.Lock()
			for token, entry := range r.states {
				if now.After(entry.expiry) {
					delete(r.states, token)
				}
			}
			r.mutex.Unlock()
		}
	}
}

var _ repository.StateRepository = (*MemoryStateRepository)(nil)
