package address

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// ErrNotFound is returned when no address has the requested id.
var ErrNotFound = errors.New("address: not found")

// Store persists addresses.
type Store interface {
	Create(ctx context.Context, a Address) (Address, error)
	Get(ctx context.Context, id string) (Address, error)
	List(ctx context.Context) ([]Address, error)
}

// MemoryStore is a Store kept in memory, safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	seq   int
	order []string
	items map[string]Address
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: map[string]Address{}}
}

func (s *MemoryStore) Create(ctx context.Context, a Address) (Address, error) {
	if err := ctx.Err(); err != nil {
		return Address{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	a.ID = "addr-" + strconv.Itoa(s.seq)
	s.items[a.ID] = a
	s.order = append(s.order, a.ID)
	return a, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Address, error) {
	if err := ctx.Err(); err != nil {
		return Address{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.items[strings.TrimSpace(id)]
	if !ok {
		return Address{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return a, nil
}

// List returns addresses in creation order.
func (s *MemoryStore) List(ctx context.Context) ([]Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Address, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out, nil
}
