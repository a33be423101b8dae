package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/geocoder89/vallas-api/internal/domain/camion"
)

type CamionesService struct {
	crud[camion.Camion]
}

func NewCamionesService(repo Repository[camion.Camion], log *slog.Logger) *CamionesService {
	return &CamionesService{crud[camion.Camion]{
		repo:     repo,
		log:      log,
		now:      time.Now,
		entity:   "camiones",
		notFound: "Camión no encontrado",
	}}
}

func camionID(c camion.Camion) string { return c.ID }

func (s *CamionesService) Create(ctx context.Context, req camion.CreateRequest) (camion.Camion, error) {
	c := camion.New(req, s.now.createdAt())
	if c.Patente == "" {
		return camion.Camion{}, apperr.BadRequest("", "La patente es obligatoria")
	}

	if err := s.checkPatente(ctx, c.Patente, ""); err != nil {
		return camion.Camion{}, err
	}
	return s.create(ctx, c)
}

func (s *CamionesService) Update(ctx context.Context, id string, req camion.UpdateRequest) (camion.Camion, error) {
	fields := req.Fields()
	if err := blankField(fields); err != nil {
		return camion.Camion{}, err
	}

	if p, ok := fields["patente"].(string); ok {
		if err := s.ensureExists(ctx, id); err != nil {
			return camion.Camion{}, err
		}
		if err := s.checkPatente(ctx, p, strings.TrimSpace(id)); err != nil {
			return camion.Camion{}, err
		}
	}
	return s.update(ctx, id, fields)
}

func (s *CamionesService) Search(ctx context.Context, patente string) ([]camion.Camion, error) {
	patente = strings.Join(strings.Fields(patente), "")
	if patente == "" {
		return nil, apperr.BadRequest("missing_filter", "Falta el parámetro de búsqueda 'patente'")
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	return filter(all, func(c camion.Camion) bool {
		return containsFold(c.Patente, patente)
	}), nil
}

func (s *CamionesService) checkPatente(ctx context.Context, patente, selfID string) error {
	return unique(ctx, s.crud, camionID, "patente", patente, selfID,
		"duplicate_patente", "Ya existe un camión con esa patente")
}
