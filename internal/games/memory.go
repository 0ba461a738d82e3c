package games

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used by unit tests. It mirrors
// the Mongo repository's semantics, including id generation and the
// treatment of malformed ids as backend errors rather than not-found.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Game
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Game)}
}

func (m *MemoryRepository) List(ctx context.Context) ([]*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Game, 0, len(m.store))
	for _, g := range m.store {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateAdded.After(out[j].DateAdded) })
	return out, nil
}

func (m *MemoryRepository) Get(ctx context.Context, id string) (*Game, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.store[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]*Game, len(ids))
	for _, id := range ids {
		if g, ok := m.store[id]; ok {
			cp := *g
			out[id] = &cp
		}
	}
	return out, nil
}

func (m *MemoryRepository) Create(ctx context.Context, g *Game) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	cp := *g
	m.store[g.ID.Hex()] = &cp
	return g, nil
}

func (m *MemoryRepository) Update(ctx context.Context, id string, in *UpdateInput) (*Game, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	if in.Title != nil {
		g.Title = *in.Title
	}
	if in.Platform != nil {
		g.Platform = *in.Platform
	}
	if in.Genre != nil {
		g.Genre = *in.Genre
	}
	if in.Completed != nil {
		g.Completed = *in.Completed
	}
	if in.Rating != nil {
		g.Rating = *in.Rating
	}
	if in.HoursPlayed != nil {
		g.HoursPlayed = *in.HoursPlayed
	}
	if in.CoverURL != nil {
		g.CoverURL = *in.CoverURL
	}
	cp := *g
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
		return fmt.Errorf("invalid game id %q: %w", id, err)
	}
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
