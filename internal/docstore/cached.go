package docstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// ByteCache is the subset of cache.Memory / cache.Redis the list cache needs.
type ByteCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte)
	Delete(ctx context.Context, key string)
}

// CacheRecorder is told about hits and misses. May be nil.
type CacheRecorder interface {
	CacheLookup(collection string, hit bool)
}

type cached struct {
	Store
	cache ByteCache
	rec   CacheRecorder
	log   *slog.Logger

	// gen counts successful writes per collection. A list read only fills
	// the cache when no write landed while it was reading.
	mu  sync.Mutex
	gen map[string]uint64
}

// Cached serves All from cache and drops a collection's entry on every write
// to it. Other reads go straight to next.
func Cached(next Store, c ByteCache, rec CacheRecorder, log *slog.Logger) Store {
	return &cached{Store: next, cache: c, rec: rec, log: log, gen: map[string]uint64{}}
}

func listKey(collection string) string {
	return "docstore:" + collection + ":all"
}

func (s *cached) All(ctx context.Context, collection string) ([]Document, error) {
	key := listKey(collection)

	if raw, ok := s.cache.Get(ctx, key); ok {
		var docs []Document
		if err := json.Unmarshal(raw, &docs); err == nil {
			s.record(collection, true)
			return docs, nil
		}
		s.cache.Delete(ctx, key)
	}
	s.record(collection, false)

	s.mu.Lock()
	seen := s.gen[collection]
	s.mu.Unlock()

	docs, err := s.Store.All(ctx, collection)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(docs)
	if err != nil {
		s.log.WarnContext(ctx, "list cache encode failed", "collection", collection, "err", err)
		return docs, nil
	}
	s.mu.Lock()
	if s.gen[collection] == seen {
		s.cache.Set(ctx, key, raw)
	}
	s.mu.Unlock()

	return docs, nil
}

func (s *cached) Insert(ctx context.Context, collection string, data map[string]any) (Document, error) {
	doc, err := s.Store.Insert(ctx, collection, data)
	if err == nil {
		s.invalidate(ctx, collection)
	}
	return doc, err
}

func (s *cached) Merge(ctx context.Context, collection, id string, data map[string]any) (Document, error) {
	doc, err := s.Store.Merge(ctx, collection, id, data)
	if err == nil {
		s.invalidate(ctx, collection)
	}
	return doc, err
}

func (s *cached) Delete(ctx context.Context, collection, id string) (Document, error) {
	doc, err := s.Store.Delete(ctx, collection, id)
	if err == nil {
		s.invalidate(ctx, collection)
	}
	return doc, err
}

func (s *cached) invalidate(ctx context.Context, collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen[collection]++
	s.cache.Delete(ctx, listKey(collection))
}

func (s *cached) record(collection string, hit bool) {
	if s.rec != nil {
		s.rec.CacheLookup(collection, hit)
	}
}
