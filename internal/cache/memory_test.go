package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_GetSetExpire(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set(ctx, "docstore:vallas:all", []byte(`[]`))

	got, ok := c.Get(ctx, "docstore:vallas:all")
	if !ok || string(got) != `[]` {
		t.Fatalf("expected cached value, got %q ok=%v", got, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, "docstore:vallas:all"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestMemory_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(0)

	c.Set(ctx, "a", []byte("1"))
	c.Set(ctx, "b", []byte("2"))

	c.Delete(ctx, "a")
	if _, ok := c.Get(ctx, "a"); ok {
		t.Fatalf("expected a to be deleted")
	}

	c.Clear()
	if _, ok := c.Get(ctx, "b"); ok {
		t.Fatalf("expected clear to drop b")
	}
}
