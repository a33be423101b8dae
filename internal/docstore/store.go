// Package docstore is a small document-store abstraction: named collections
// of flat JSON-like documents addressed by a store-generated string id.
package docstore

import (
	"context"
	"errors"
	"reflect"
)

var ErrNotFound = errors.New("document not found")

type Document struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

type Store interface {
	// All returns every document of a collection in a stable order.
	All(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	// Where returns documents whose field equals value.
	Where(ctx context.Context, collection, field string, value any) ([]Document, error)
	Insert(ctx context.Context, collection string, data map[string]any) (Document, error)
	// Merge overwrites only the given fields and returns the merged document.
	// ErrNotFound when id does not exist.
	Merge(ctx context.Context, collection, id string, data map[string]any) (Document, error)
	// Delete removes a document and returns what was stored.
	Delete(ctx context.Context, collection, id string) (Document, error)
	Ping(ctx context.Context) error
	Close() error
}

func cloneData(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// valuesEqual compares scalar field values, treating all numeric kinds as
// numbers so an int filter matches a float64 decoded from JSON.
func valuesEqual(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
