package pendingredirect

import (
	"fmt"
	"sync"
	"time"
)

var _ Repo = (*InMemoryRepo)(nil)

type entry struct {
	target    string
	createdAt time.Time
}

// InMemoryRepo is an in-memory implementation of Repo with a TTL:
// entries older than ttl behave as if they were never stashed.
type InMemoryRepo struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	nowTime func() time.Time
}

func NewInMemoryRepo(ttl time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		entries: make(map[string]entry),
		ttl:     ttl,
		nowTime: time.Now,
	}
}

// WithNowTime overrides the clock (for testing).
func (r *InMemoryRepo) WithNowTime(nowFunc func() time.Time) *InMemoryRepo {
	r.nowTime = nowFunc
	return r
}

func (r *InMemoryRepo) Put(flowID, target string) error {
	if flowID == "" {
		return fmt.Errorf("flowID is required")
	}
	if target == "" {
		return fmt.Errorf("target is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweep()
	r.entries[flowID] = entry{target: target, createdAt: r.nowTime()}
	return nil
}

func (r *InMemoryRepo) Consume(flowID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[flowID]
	if !ok {
		return "", ErrNotFound
	}
	delete(r.entries, flowID)

	if r.nowTime().Sub(e.createdAt) > r.ttl {
		return "", ErrNotFound
	}
	return e.target, nil
}

// sweep drops expired entries. Called with the lock held.
func (r *InMemoryRepo) sweep() {
	now := r.nowTime()
	for id, e := range r.entries {
		if now.Sub(e.createdAt) > r.ttl {
			delete(r.entries, id)
		}
	}
}
