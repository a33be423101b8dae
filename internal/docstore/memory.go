package docstore

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Memory keeps collections in process. Used by tests and local development.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

type memCollection struct {
	order []string
	docs  map[string]map[string]any
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memCollection)}
}

func (m *Memory) collection(name string) *memCollection {
	c, ok := m.collections[name]
	if !ok {
		c = &memCollection{docs: make(map[string]map[string]any)}
		m.collections[name] = c
	}
	return c
}

func (m *Memory) All(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[collection]
	if !ok {
		return []Document{}, nil
	}

	out := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, Document{ID: id, Data: cloneData(c.docs[id])})
	}
	return out, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.collections[collection]
	if !ok {
		return Document{}, ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return Document{ID: id, Data: cloneData(data)}, nil
}

func (m *Memory) Where(ctx context.Context, collection, field string, value any) ([]Document, error) {
	all, err := m.All(ctx, collection)
	if err != nil {
		return nil, err
	}

	out := make([]Document, 0)
	for _, d := range all {
		if v, ok := d.Data[field]; ok && valuesEqual(v, value) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *Memory) Insert(ctx context.Context, collection string, data map[string]any) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	id := uuid.NewString()
	stored := cloneData(data)

	m.mu.Lock()
	c := m.collection(collection)
	c.order = append(c.order, id)
	c.docs[id] = stored
	m.mu.Unlock()

	return Document{ID: id, Data: cloneData(stored)}, nil
}

func (m *Memory) Merge(ctx context.Context, collection, id string, data map[string]any) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[collection]
	if !ok {
		return Document{}, ErrNotFound
	}
	current, ok := c.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}

	merged := cloneData(current)
	for k, v := range data {
		merged[k] = v
	}
	c.docs[id] = merged

	return Document{ID: id, Data: cloneData(merged)}, nil
}

func (m *Memory) Delete(ctx context.Context, collection, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[collection]
	if !ok {
		return Document{}, ErrNotFound
	}
	data, ok := c.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}

	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	return Document{ID: id, Data: data}, nil
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close() error { return nil }
