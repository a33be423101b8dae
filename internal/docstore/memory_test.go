package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_InsertGetAll(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	first, err := s.Insert(ctx, "vallas", map[string]any{"codigo": "V-001", "cantidad": 10})
	require.NoError(t, err)
	second, err := s.Insert(ctx, "vallas", map[string]any{"codigo": "V-002", "cantidad": 5})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	got, err := s.Get(ctx, "vallas", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "V-001", got.Data["codigo"])

	all, err := s.All(ctx, "vallas")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID, "insertion order is kept")

	empty, err := s.All(ctx, "camiones")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemory_ReturnedDataIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	input := map[string]any{"codigo": "V-001"}
	doc, err := s.Insert(ctx, "vallas", input)
	require.NoError(t, err)

	input["codigo"] = "mutated"
	doc.Data["codigo"] = "mutated too"

	got, err := s.Get(ctx, "vallas", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "V-001", got.Data["codigo"])
}

func TestMemory_MergeKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	doc, err := s.Insert(ctx, "camiones", map[string]any{"patente": "AB123CD", "modelo": "Iveco"})
	require.NoError(t, err)

	merged, err := s.Merge(ctx, "camiones", doc.ID, map[string]any{"modelo": "Scania"})
	require.NoError(t, err)
	assert.Equal(t, "AB123CD", merged.Data["patente"])
	assert.Equal(t, "Scania", merged.Data["modelo"])

	_, err = s.Merge(ctx, "camiones", "missing", map[string]any{"modelo": "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_DeleteTwice(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	doc, err := s.Insert(ctx, "operativos", map[string]any{"nombre": "Maratón"})
	require.NoError(t, err)

	deleted, err := s.Delete(ctx, "operativos", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maratón", deleted.Data["nombre"])

	_, err = s.Delete(ctx, "operativos", doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, "operativos", doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.All(ctx, "operativos")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemory_WhereMatchesAcrossNumericTypes(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Insert(ctx, "movimientos", map[string]any{"fecha": "2024-05-01", "cantidad": float64(3)})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "movimientos", map[string]any{"fecha": "2024-05-02", "cantidad": float64(4)})
	require.NoError(t, err)

	byDate, err := s.Where(ctx, "movimientos", "fecha", "2024-05-01")
	require.NoError(t, err)
	require.Len(t, byDate, 1)

	byQty, err := s.Where(ctx, "movimientos", "cantidad", 4)
	require.NoError(t, err)
	require.Len(t, byQty, 1)
	assert.Equal(t, "2024-05-02", byQty[0].Data["fecha"])

	none, err := s.Where(ctx, "movimientos", "fecha", "1999-01-01")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemory_HonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemory().All(ctx, "vallas")
	assert.ErrorIs(t, err, context.Canceled)
}
