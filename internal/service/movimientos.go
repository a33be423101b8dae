package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/geocoder89/vallas-api/internal/dates"
	"github.com/geocoder89/vallas-api/internal/domain/movimiento"
)

// MovimientosService does not touch the referenced valla's cantidad/estado:
// a movement is a log entry only.
type MovimientosService struct {
	crud[movimiento.Movimiento]
}

func NewMovimientosService(repo Repository[movimiento.Movimiento], log *slog.Logger) *MovimientosService {
	return &MovimientosService{crud[movimiento.Movimiento]{
		repo:     repo,
		log:      log,
		now:      time.Now,
		entity:   "movimientos",
		notFound: "Movimiento no encontrado",
	}}
}

func presentMovimientos(items []movimiento.Movimiento) []movimiento.Movimiento {
	for i := range items {
		items[i] = items[i].Present()
	}
	return items
}

func (s *MovimientosService) List(ctx context.Context) ([]movimiento.Movimiento, error) {
	items, err := s.crud.List(ctx)
	if err != nil {
		return nil, err
	}
	return presentMovimientos(items), nil
}

func (s *MovimientosService) Get(ctx context.Context, id string) (movimiento.Movimiento, error) {
	m, err := s.crud.Get(ctx, id)
	if err != nil {
		return m, err
	}
	return m.Present(), nil
}

var errSameEstado = apperr.BadRequest("same_estado", "El estado de origen y destino deben ser distintos")

func (s *MovimientosService) Create(ctx context.Context, req movimiento.CreateRequest) (movimiento.Movimiento, error) {
	m := movimiento.New(req, s.now.createdAt(), s.now.today())
	if m.EstadoOrigen == m.EstadoDestino {
		return movimiento.Movimiento{}, errSameEstado
	}

	created, err := s.create(ctx, m)
	if err != nil {
		return created, err
	}

	s.log.InfoContext(ctx, "movimiento registrado",
		"id", created.ID, "valla", created.VallaCodigo, "cantidad", created.Cantidad,
		"origen", created.EstadoOrigen, "destino", created.EstadoDestino)
	return created.Present(), nil
}

// Update merges req into the stored movement. When an estado changes, the
// merged origen and destino must still differ.
func (s *MovimientosService) Update(ctx context.Context, id string, req movimiento.UpdateRequest) (movimiento.Movimiento, error) {
	if req.EstadoOrigen != nil || req.EstadoDestino != nil {
		current, err := s.crud.Get(ctx, id)
		if err != nil {
			return movimiento.Movimiento{}, err
		}

		origen, destino := current.EstadoOrigen, current.EstadoDestino
		if req.EstadoOrigen != nil {
			origen = *req.EstadoOrigen
		}
		if req.EstadoDestino != nil {
			destino = *req.EstadoDestino
		}
		if origen == destino {
			return movimiento.Movimiento{}, errSameEstado
		}
	}

	m, err := s.update(ctx, id, req.Fields())
	if err != nil {
		return m, err
	}
	return m.Present(), nil
}

func (s *MovimientosService) Delete(ctx context.Context, id string) (movimiento.Movimiento, error) {
	m, err := s.crud.Delete(ctx, id)
	if err != nil {
		return m, err
	}
	return m.Present(), nil
}

// Search narrows by exact fecha at the store, then by a substring of the
// valla codigo, empleado legajo or camion patente. Both filters AND. A term
// that is itself a date is taken as the fecha filter, as older clients send
// ?term=YYYY-MM-DD.
func (s *MovimientosService) Search(ctx context.Context, f movimiento.SearchFilter) ([]movimiento.Movimiento, error) {
	fecha := strings.TrimSpace(f.Fecha)
	term := strings.TrimSpace(f.Term)

	if fecha == "" && term != "" {
		if _, ok := dates.Parse(term); ok {
			fecha, term = term, ""
		}
	}

	if fecha == "" && term == "" {
		return nil, apperr.BadRequest("missing_filter", "Debe indicar 'fecha' o 'term' para buscar")
	}

	var (
		items []movimiento.Movimiento
		err   error
	)
	if fecha != "" {
		if _, ok := dates.Parse(fecha); !ok {
			return nil, apperr.BadRequest("invalid_fecha", "La fecha debe tener formato YYYY-MM-DD")
		}
		items, err = s.repo.FindBy(ctx, "fecha", dates.FormatString(fecha))
		if err != nil {
			return nil, s.internal("find", err)
		}
	} else {
		items, err = s.crud.List(ctx)
		if err != nil {
			return nil, err
		}
	}

	if term != "" {
		items = filter(items, func(m movimiento.Movimiento) bool {
			return containsFold(m.VallaCodigo, term) ||
				containsFold(m.EmpleadoLegajo, term) ||
				containsFold(m.CamionPatente, term)
		})
	}

	return presentMovimientos(items), nil
}
