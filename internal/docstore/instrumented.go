package docstore

import (
	"context"
	"errors"
)

// Observer times a logical store operation. observability.Prom satisfies it.
type Observer interface {
	ObserveStore(op string, fn func() error) error
}

type instrumented struct {
	next Store
	obs  Observer
}

// WithMetrics reports every operation on next to obs, labelled
// "<collection>.<op>". A miss (ErrNotFound) is not counted as an error.
func WithMetrics(next Store, obs Observer) Store {
	return &instrumented{next: next, obs: obs}
}

func (s *instrumented) observe(collection, op string, fn func() error) error {
	var opErr error
	_ = s.obs.ObserveStore(collection+"."+op, func() error {
		opErr = fn()
		if errors.Is(opErr, ErrNotFound) {
			return nil
		}
		return opErr
	})
	return opErr
}

func (s *instrumented) All(ctx context.Context, collection string) (docs []Document, err error) {
	err = s.observe(collection, "all", func() error {
		docs, err = s.next.All(ctx, collection)
		return err
	})
	return docs, err
}

func (s *instrumented) Get(ctx context.Context, collection, id string) (doc Document, err error) {
	err = s.observe(collection, "get", func() error {
		doc, err = s.next.Get(ctx, collection, id)
		return err
	})
	return doc, err
}

func (s *instrumented) Where(ctx context.Context, collection, field string, value any) (docs []Document, err error) {
	err = s.observe(collection, "where", func() error {
		docs, err = s.next.Where(ctx, collection, field, value)
		return err
	})
	return docs, err
}

func (s *instrumented) Insert(ctx context.Context, collection string, data map[string]any) (doc Document, err error) {
	err = s.observe(collection, "insert", func() error {
		doc, err = s.next.Insert(ctx, collection, data)
		return err
	})
	return doc, err
}

func (s *instrumented) Merge(ctx context.Context, collection, id string, data map[string]any) (doc Document, err error) {
	err = s.observe(collection, "merge", func() error {
		doc, err = s.next.Merge(ctx, collection, id, data)
		return err
	})
	return doc, err
}

func (s *instrumented) Delete(ctx context.Context, collection, id string) (doc Document, err error) {
	err = s.observe(collection, "delete", func() error {
		doc, err = s.next.Delete(ctx, collection, id)
		return err
	})
	return doc, err
}

func (s *instrumented) Ping(ctx context.Context) error { return s.next.Ping(ctx) }

func (s *instrumented) Close() error { return s.next.Close() }
