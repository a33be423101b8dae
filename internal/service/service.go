// Package service holds the business rules between handlers and
// repositories. Expected failures are returned as *apperr.Error.
package service

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/geocoder89/vallas-api/internal/dates"
	"github.com/geocoder89/vallas-api/internal/docstore"
)

// Repository is the typed collection every entity service works against.
// *repo.Collection[T] implements it.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	FindBy(ctx context.Context, field string, value any) ([]T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id string, fields map[string]any) (T, error)
	Delete(ctx context.Context, id string) (T, error)
}

// Clock returns the current time. Tests replace it.
type Clock func() time.Time

func (c Clock) createdAt() string {
	return c().UTC().Format(time.RFC3339)
}

func (c Clock) today() string {
	return c().UTC().Format(dates.Layout)
}

var (
	errMissingID   = apperr.BadRequest("missing_id", "El id es obligatorio")
	errEmptyUpdate = apperr.BadRequest("empty_update", "No se enviaron campos para actualizar")
)

// crud is the List/Get/Update/Delete shared by every entity service.
type crud[T any] struct {
	repo     Repository[T]
	log      *slog.Logger
	now      Clock
	entity   string
	notFound string
}

func (c crud[T]) List(ctx context.Context) ([]T, error) {
	items, err := c.repo.List(ctx)
	if err != nil {
		return nil, c.internal("list", err)
	}
	return items, nil
}

func (c crud[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	id = strings.TrimSpace(id)
	if id == "" {
		return zero, errMissingID
	}

	v, err := c.repo.Get(ctx, id)
	if err != nil {
		return zero, c.storeErr("get", err)
	}
	return v, nil
}

func (c crud[T]) update(ctx context.Context, id string, fields map[string]any) (T, error) {
	var zero T

	id = strings.TrimSpace(id)
	if id == "" {
		return zero, errMissingID
	}
	if len(fields) == 0 {
		return zero, errEmptyUpdate
	}
	if err := blankField(fields); err != nil {
		return zero, err
	}

	v, err := c.repo.Update(ctx, id, fields)
	if err != nil {
		return zero, c.storeErr("update", err)
	}
	return v, nil
}

func (c crud[T]) create(ctx context.Context, v T) (T, error) {
	created, err := c.repo.Create(ctx, v)
	if err != nil {
		return created, c.internal("create", err)
	}
	return created, nil
}

func (c crud[T]) Delete(ctx context.Context, id string) (T, error) {
	var zero T

	id = strings.TrimSpace(id)
	if id == "" {
		return zero, errMissingID
	}

	v, err := c.repo.Delete(ctx, id)
	if err != nil {
		return zero, c.storeErr("delete", err)
	}

	c.log.InfoContext(ctx, c.entity+" deleted", "id", id)
	return v, nil
}

// ensureExists is used before validations that only make sense for an
// existing record.
func (c crud[T]) ensureExists(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errMissingID
	}
	if _, err := c.repo.Get(ctx, id); err != nil {
		return c.storeErr("get", err)
	}
	return nil
}

func (c crud[T]) storeErr(op string, err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return apperr.NotFound(c.notFound)
	}
	return c.internal(op, err)
}

func (c crud[T]) internal(op string, err error) error {
	c.log.Error(c.entity+" store failure", "op", op, "err", err)
	return apperr.Internal("Error al acceder a "+c.entity, err)
}

// unique fails with a BadRequest carrying code when another record (not
// selfID) already has field == value. Read-then-write, so two concurrent
// writers can still race past it.
func unique[T any](ctx context.Context, c crud[T], idOf func(T) string, field string, value any, selfID, code, message string) error {
	matches, err := c.repo.FindBy(ctx, field, value)
	if err != nil {
		return c.internal("find", err)
	}

	for _, m := range matches {
		if idOf(m) != selfID {
			return apperr.BadRequest(code, message)
		}
	}
	return nil
}

// blankField rejects string fields that trimming or normalising left empty.
// Required text fields can be changed but never cleared.
func blankField(fields map[string]any) error {
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if v, ok := fields[k].(string); ok && strings.TrimSpace(v) == "" {
			return apperr.BadRequest("empty_field", "El campo '"+k+"' no puede estar vacío").
				WithDetails(map[string]string{"field": k})
		}
	}
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
