package docstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/geocoder89/vallas-api/internal/cache"
	"github.com/geocoder89/vallas-api/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	Store
	allCalls int
}

func (c *countingStore) All(ctx context.Context, collection string) ([]Document, error) {
	c.allCalls++
	return c.Store.All(ctx, collection)
}

type recorder struct{ hits, misses int }

func (r *recorder) CacheLookup(_ string, hit bool) {
	if hit {
		r.hits++
		return
	}
	r.misses++
}

func TestCached_ServesListsAndInvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemory()}
	rec := &recorder{}
	s := Cached(inner, cache.NewMemory(time.Minute), rec, observability.Discard())

	doc, err := s.Insert(ctx, "vallas", map[string]any{"codigo": "V-1"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		all, err := s.All(ctx, "vallas")
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "V-1", all[0].Data["codigo"])
	}
	assert.Equal(t, 1, inner.allCalls)
	assert.Equal(t, 2, rec.hits)
	assert.Equal(t, 1, rec.misses)

	_, err = s.Merge(ctx, "vallas", doc.ID, map[string]any{"codigo": "V-2"})
	require.NoError(t, err)

	all, err := s.All(ctx, "vallas")
	require.NoError(t, err)
	assert.Equal(t, "V-2", all[0].Data["codigo"])
	assert.Equal(t, 2, inner.allCalls)

	_, err = s.Delete(ctx, "vallas", doc.ID)
	require.NoError(t, err)

	all, err = s.All(ctx, "vallas")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCached_FailedWriteKeepsEntry(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemory()}
	s := Cached(inner, cache.NewMemory(time.Minute), nil, observability.Discard())

	_, err := s.All(ctx, "vallas")
	require.NoError(t, err)

	_, err = s.Delete(ctx, "vallas", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.All(ctx, "vallas")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.allCalls)
}

// pausingStore holds the first All after it has read, so a write can land
// between the read and the cache fill.
type pausingStore struct {
	Store
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func (p *pausingStore) All(ctx context.Context, collection string) ([]Document, error) {
	docs, err := p.Store.All(ctx, collection)
	p.once.Do(func() {
		close(p.read)
		<-p.release
	})
	return docs, err
}

func TestCached_WriteDuringListReadIsNotMaskedByStaleFill(t *testing.T) {
	ctx := context.Background()
	inner := &pausingStore{Store: NewMemory(), read: make(chan struct{}), release: make(chan struct{})}
	s := Cached(inner, cache.NewMemory(time.Minute), nil, observability.Discard())

	type result struct {
		docs []Document
		err  error
	}
	done := make(chan result, 1)
	go func() {
		docs, err := s.All(ctx, "vallas")
		done <- result{docs, err}
	}()

	<-inner.read
	_, err := s.Insert(ctx, "vallas", map[string]any{"codigo": "V-1"})
	require.NoError(t, err)
	close(inner.release)

	first := <-done
	require.NoError(t, first.err)
	assert.Empty(t, first.docs)

	all, err := s.All(ctx, "vallas")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "V-1", all[0].Data["codigo"])
}

type fakeObserver struct {
	ops    []string
	failed []string
}

func (f *fakeObserver) ObserveStore(op string, fn func() error) error {
	f.ops = append(f.ops, op)
	err := fn()
	if err != nil {
		f.failed = append(f.failed, op)
	}
	return err
}

type brokenStore struct{ Store }

func (brokenStore) All(context.Context, string) ([]Document, error) {
	return nil, errors.New("connection refused")
}

func TestWithMetrics_LabelsAndNotFound(t *testing.T) {
	ctx := context.Background()
	obs := &fakeObserver{}
	s := WithMetrics(NewMemory(), obs)

	doc, err := s.Insert(ctx, "empleados", map[string]any{"dni": "12345678"})
	require.NoError(t, err)
	_, err = s.Get(ctx, "empleados", doc.ID)
	require.NoError(t, err)
	_, err = s.Get(ctx, "empleados", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, []string{"empleados.insert", "empleados.get", "empleados.get"}, obs.ops)
	assert.Empty(t, obs.failed, "a miss is not a store failure")

	broken := WithMetrics(brokenStore{NewMemory()}, obs)
	_, err = broken.All(ctx, "vallas")
	assert.Error(t, err)
	assert.Equal(t, []string{"vallas.all"}, obs.failed)
}
