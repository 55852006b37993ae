package loginflow

import (
	"errors"
	"sync"
	"time"
)

var ErrNotFound = errors.New("flow not found")

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu    sync.RWMutex
	flows map[string]*Flow
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		flows: make(map[string]*Flow),
	}
}

// Upsert stores or replaces a flow
func (r *InMemoryRepo) Upsert(flowID string, flow *Flow) error {
	if flowID == "" {
		return errors.New("flow id cannot be empty")
	}
	if flow == nil {
		return errors.New("flow cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to prevent external modifications
	stored := *flow
	r.flows[flowID] = &stored
	return nil
}

func (r *InMemoryRepo) Get(flowID string) (*Flow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flow, ok := r.flows[flowID]
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent external modifications
	out := *flow
	return &out, nil
}

func (r *InMemoryRepo) Delete(flowID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.flows[flowID]; !ok {
		return ErrNotFound
	}
	delete(r.flows, flowID)
	return nil
}

// DeleteExpired removes flows created before the cutoff and returns how many
// were dropped.
func (r *InMemoryRepo) DeleteExpired(before time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, flow := range r.flows {
		if flow.CreatedAt.Before(before) {
			delete(r.flows, id)
			n++
		}
	}
	return n
}

func (r *InMemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flows)
}
