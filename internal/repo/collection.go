// Package repo maps docstore documents onto typed entities.
package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/geocoder89/vallas-api/internal/docstore"
)

// Collection is a typed view over one docstore collection. T must be a
// struct whose id field is tagged `json:"id"`.
type Collection[T any] struct {
	store docstore.Store
	name  string
}

func NewCollection[T any](store docstore.Store, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name}
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	docs, err := c.store.All(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	return decodeAll[T](docs)
}

// Get returns docstore.ErrNotFound (wrapped) when id is absent.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	doc, err := c.store.Get(ctx, c.name, id)
	if err != nil {
		return zero, fmt.Errorf("get %s/%s: %w", c.name, id, err)
	}
	return decode[T](doc)
}

func (c *Collection[T]) FindBy(ctx context.Context, field string, value any) ([]T, error) {
	docs, err := c.store.Where(ctx, c.name, field, value)
	if err != nil {
		return nil, fmt.Errorf("find %s by %s: %w", c.name, field, err)
	}
	return decodeAll[T](docs)
}

// Create stores v (its id is ignored) and returns it with the new id.
func (c *Collection[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T

	data, err := encode(v)
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", c.name, err)
	}

	doc, err := c.store.Insert(ctx, c.name, data)
	if err != nil {
		return zero, fmt.Errorf("insert %s: %w", c.name, err)
	}
	return decode[T](doc)
}

func (c *Collection[T]) Update(ctx context.Context, id string, fields map[string]any) (T, error) {
	var zero T

	doc, err := c.store.Merge(ctx, c.name, id, fields)
	if err != nil {
		return zero, fmt.Errorf("update %s/%s: %w", c.name, id, err)
	}
	return decode[T](doc)
}

func (c *Collection[T]) Delete(ctx context.Context, id string) (T, error) {
	var zero T

	doc, err := c.store.Delete(ctx, c.name, id)
	if err != nil {
		return zero, fmt.Errorf("delete %s/%s: %w", c.name, id, err)
	}
	return decode[T](doc)
}

func encode[T any](v T) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	data := make(map[string]any)
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, err
	}
	delete(data, "id")
	return data, nil
}

func decode[T any](doc docstore.Document) (T, error) {
	var out T

	data := make(map[string]any, len(doc.Data)+1)
	for k, v := range doc.Data {
		data[k] = v
	}
	data["id"] = doc.ID

	b, err := json.Marshal(data)
	if err != nil {
		return out, fmt.Errorf("decode %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", doc.ID, err)
	}
	return out, nil
}

func decodeAll[T any](docs []docstore.Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := decode[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
