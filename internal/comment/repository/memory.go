package repository

import (
	"context"
	"sync"

	"github.com/gogotex/gogotex/backend/go-comments/internal/comment"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory comment store used for local development and
// unit tests. Ids are ObjectID hex strings, as in MongoRepo.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*comment.Comment
	order []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*comment.Comment)}
}

func (m *MemoryRepo) Insert(ctx context.Context, c *comment.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = primitive.NewObjectID().Hex()
	m.store[c.ID] = c.Clone()
	m.order = append(m.order, c.ID)
	return nil
}

func (m *MemoryRepo) FindByID(ctx context.Context, id string) (*comment.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.store[id]; ok {
		return c.Clone(), nil
	}
	return nil, comment.ErrNotFound
}

// FindAll returns comments in insertion order.
func (m *MemoryRepo) FindAll(ctx context.Context) ([]*comment.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*comment.Comment, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.store[id].Clone())
	}
	return out, nil
}

func (m *MemoryRepo) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return comment.ErrNotFound
	}
	delete(m.store, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
