package docstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	data JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
)`

func setupPostgres(t *testing.T) *Postgres {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, testSchema)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `DELETE FROM documents WHERE collection LIKE 'test_%'`)
	require.NoError(t, err)

	return NewPostgres(pool)
}

func TestPostgres_CRUD(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	doc, err := s.Insert(ctx, "test_camiones", map[string]any{"patente": "AB123CD", "capacidad": 20})
	require.NoError(t, err)

	got, err := s.Get(ctx, "test_camiones", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "AB123CD", got.Data["patente"])
	assert.Equal(t, float64(20), got.Data["capacidad"])

	merged, err := s.Merge(ctx, "test_camiones", doc.ID, map[string]any{"modelo": "Iveco"})
	require.NoError(t, err)
	assert.Equal(t, "AB123CD", merged.Data["patente"])
	assert.Equal(t, "Iveco", merged.Data["modelo"])

	found, err := s.Where(ctx, "test_camiones", "patente", "AB123CD")
	require.NoError(t, err)
	require.Len(t, found, 1)

	all, err := s.All(ctx, "test_camiones")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = s.Delete(ctx, "test_camiones", doc.ID)
	require.NoError(t, err)
	_, err = s.Delete(ctx, "test_camiones", doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Merge(ctx, "test_camiones", doc.ID, map[string]any{"modelo": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}
