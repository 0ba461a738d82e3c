package reviews

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used by unit tests. Malformed
// review ids surface as backend errors, matching the Mongo repository.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Review
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Review)}
}

func (m *MemoryRepository) List(ctx context.Context) ([]*Review, error) {
	return m.collect(func(*Review) bool { return true }), nil
}

func (m *MemoryRepository) ListByGame(ctx context.Context, gameID string) ([]*Review, error) {
	return m.collect(func(rv *Review) bool { return rv.GameID == gameID }), nil
}

func (m *MemoryRepository) collect(keep func(*Review) bool) []*Review {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Review{}
	for _, rv := range m.store {
		if keep(rv) {
			cp := *rv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (m *MemoryRepository) Create(ctx context.Context, rv *Review) (*Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rv.ID.IsZero() {
		rv.ID = primitive.NewObjectID()
	}
	cp := *rv
	m.store[rv.ID.Hex()] = &cp
	return rv, nil
}

func (m *MemoryRepository) Update(ctx context.Context, id string, in *UpdateInput) (*Review, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rv, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	if in.GameID != nil {
		rv.GameID = *in.GameID
	}
	if in.Title != nil {
		rv.Title = *in.Title
	}
	if in.Content != nil {
		rv.Content = *in.Content
	}
	if in.Rating != nil {
		rv.Rating = in.Rating
	}
	cp := *rv
	return &cp, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func checkID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("invalid review id %q: %w", id, err)
	}
	return nil
}

func (m *MemoryRepository) DeleteByGame(ctx context.Context, gameID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, rv := range m.store {
		if rv.GameID == gameID {
			delete(m.store, id)
			n++
		}
	}
	return n, nil
}

var _ Repository = (*MemoryRepository)(nil)
