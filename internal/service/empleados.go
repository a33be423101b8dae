package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/geocoder89/vallas-api/internal/domain/empleado"
)

type EmpleadosService struct {
	crud[empleado.Empleado]
}

func NewEmpleadosService(repo Repository[empleado.Empleado], log *slog.Logger) *EmpleadosService {
	return &EmpleadosService{crud[empleado.Empleado]{
		repo:     repo,
		log:      log,
		now:      time.Now,
		entity:   "empleados",
		notFound: "Empleado no encontrado",
	}}
}

func empleadoID(e empleado.Empleado) string { return e.ID }

func (s *EmpleadosService) Create(ctx context.Context, req empleado.CreateRequest) (empleado.Empleado, error) {
	e := empleado.New(req, s.now.createdAt())
	if e.DNI == "" || e.Legajo == "" {
		return empleado.Empleado{}, apperr.BadRequest("", "DNI y legajo son obligatorios")
	}

	if err := s.checkDNI(ctx, e.DNI, ""); err != nil {
		return empleado.Empleado{}, err
	}
	if err := s.checkLegajo(ctx, e.Legajo, ""); err != nil {
		return empleado.Empleado{}, err
	}
	return s.create(ctx, e)
}

func (s *EmpleadosService) Update(ctx context.Context, id string, req empleado.UpdateRequest) (empleado.Empleado, error) {
	fields := req.Fields()
	if err := blankField(fields); err != nil {
		return empleado.Empleado{}, err
	}
	selfID := strings.TrimSpace(id)

	dni, hasDNI := fields["dni"].(string)
	legajo, hasLegajo := fields["legajo"].(string)

	if hasDNI || hasLegajo {
		if err := s.ensureExists(ctx, id); err != nil {
			return empleado.Empleado{}, err
		}
	}
	if hasDNI {
		if err := s.checkDNI(ctx, dni, selfID); err != nil {
			return empleado.Empleado{}, err
		}
	}
	if hasLegajo {
		if err := s.checkLegajo(ctx, legajo, selfID); err != nil {
			return empleado.Empleado{}, err
		}
	}
	return s.update(ctx, id, fields)
}

// Search matches empleados where any provided field contains its term.
func (s *EmpleadosService) Search(ctx context.Context, f empleado.SearchFilter) ([]empleado.Empleado, error) {
	f = empleado.SearchFilter{
		Nombre:   strings.TrimSpace(f.Nombre),
		Apellido: strings.TrimSpace(f.Apellido),
		DNI:      strings.TrimSpace(f.DNI),
	}
	if f.Empty() {
		return nil, apperr.BadRequest("missing_filter", "Debe indicar nombre, apellido o dni para buscar")
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	return filter(all, func(e empleado.Empleado) bool {
		return (f.Nombre != "" && containsFold(e.Nombre, f.Nombre)) ||
			(f.Apellido != "" && containsFold(e.Apellido, f.Apellido)) ||
			(f.DNI != "" && strings.Contains(e.DNI, f.DNI))
	}), nil
}

func (s *EmpleadosService) checkDNI(ctx context.Context, dni, selfID string) error {
	return unique(ctx, s.crud, empleadoID, "dni", dni, selfID,
		"duplicate_dni", "Ya existe un empleado con ese DNI")
}

func (s *EmpleadosService) checkLegajo(ctx context.Context, legajo, selfID string) error {
	return unique(ctx, s.crud, empleadoID, "legajo", legajo, selfID,
		"duplicate_legajo", "Ya existe un empleado con ese legajo")
}
