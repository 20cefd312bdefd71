package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/mockcoach/pkg/plan"
	"github.com/aretw0/mockcoach/pkg/ports"
)

// Store implements ports.ResultStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*plan.Result
	mu   sync.RWMutex
}

var _ ports.ResultStore = (*Store)(nil)

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*plan.Result),
	}
}

// Save persists a copy of the result in memory.
func (s *Store) Save(ctx context.Context, id string, res *plan.Result) error {
	copied := clone(res)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load retrieves a copy of the result, so callers can't mutate the stored one.
func (s *Store) Load(ctx context.Context, id string) (*plan.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.data[id]
	if !ok {
		return nil, ports.ErrResultNotFound
	}
	return clone(res), nil
}

// Delete removes the result.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored ids in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func clone(res *plan.Result) *plan.Result {
	out := *res
	out.Steps = make([]plan.StepResult, len(res.Steps))
	for i, sr := range res.Steps {
		if sr.Calls != nil {
			sr.Calls = append(make([]plan.Call, 0, len(sr.Calls)), sr.Calls...)
		}
		out.Steps[i] = sr
	}
	return &out
}
