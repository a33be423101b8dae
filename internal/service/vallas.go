package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/geocoder89/vallas-api/internal/domain/valla"
)

type VallasService struct {
	crud[valla.Valla]
}

func NewVallasService(repo Repository[valla.Valla], log *slog.Logger) *VallasService {
	return &VallasService{crud[valla.Valla]{
		repo:     repo,
		log:      log,
		now:      time.Now,
		entity:   "vallas",
		notFound: "Valla no encontrada",
	}}
}

func (s *VallasService) Create(ctx context.Context, req valla.CreateRequest) (valla.Valla, error) {
	v := valla.New(req, s.now.createdAt())
	if v.Codigo == "" {
		return valla.Valla{}, apperr.BadRequest("", "El código es obligatorio")
	}
	return s.create(ctx, v)
}

func (s *VallasService) Update(ctx context.Context, id string, req valla.UpdateRequest) (valla.Valla, error) {
	return s.update(ctx, id, req.Fields())
}

// Search returns vallas whose codigo contains the term, ignoring case.
func (s *VallasService) Search(ctx context.Context, codigo string) ([]valla.Valla, error) {
	codigo = strings.TrimSpace(codigo)
	if codigo == "" {
		return nil, apperr.BadRequest("missing_filter", "Falta el parámetro de búsqueda 'codigo'")
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	return filter(all, func(v valla.Valla) bool {
		return containsFold(v.Codigo, codigo)
	}), nil
}
