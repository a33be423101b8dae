package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/geocoder89/vallas-api/internal/domain/operativo"
)

type OperativosService struct {
	crud[operativo.Operativo]
}

func NewOperativosService(repo Repository[operativo.Operativo], log *slog.Logger) *OperativosService {
	return &OperativosService{crud[operativo.Operativo]{
		repo:     repo,
		log:      log,
		now:      time.Now,
		entity:   "operativos",
		notFound: "Operativo no encontrado",
	}}
}

func presentOperativos(items []operativo.Operativo) []operativo.Operativo {
	for i := range items {
		items[i] = items[i].Present()
	}
	return items
}

func (s *OperativosService) List(ctx context.Context) ([]operativo.Operativo, error) {
	items, err := s.crud.List(ctx)
	if err != nil {
		return nil, err
	}
	return presentOperativos(items), nil
}

func (s *OperativosService) Get(ctx context.Context, id string) (operativo.Operativo, error) {
	o, err := s.crud.Get(ctx, id)
	if err != nil {
		return o, err
	}
	return o.Present(), nil
}

func (s *OperativosService) Create(ctx context.Context, req operativo.CreateRequest) (operativo.Operativo, error) {
	o := operativo.New(req, s.now.createdAt())
	if o.Nombre == "" {
		return operativo.Operativo{}, apperr.BadRequest("", "El nombre es obligatorio")
	}

	created, err := s.create(ctx, o)
	if err != nil {
		return created, err
	}
	return created.Present(), nil
}

func (s *OperativosService) Update(ctx context.Context, id string, req operativo.UpdateRequest) (operativo.Operativo, error) {
	o, err := s.update(ctx, id, req.Fields())
	if err != nil {
		return o, err
	}
	return o.Present(), nil
}

func (s *OperativosService) Delete(ctx context.Context, id string) (operativo.Operativo, error) {
	o, err := s.crud.Delete(ctx, id)
	if err != nil {
		return o, err
	}
	return o.Present(), nil
}

func (s *OperativosService) Search(ctx context.Context, nombre string) ([]operativo.Operativo, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, apperr.BadRequest("missing_filter", "Falta el parámetro de búsqueda 'nombre'")
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	return filter(all, func(o operativo.Operativo) bool {
		return containsFold(o.Nombre, nombre)
	}), nil
}
