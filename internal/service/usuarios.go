package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/geocoder89/vallas-api/internal/dates"
	"github.com/geocoder89/vallas-api/internal/domain/usuario"
	"github.com/geocoder89/vallas-api/internal/security"
)

// UsuariosService manages accounts. Every method returns usuario.Response so
// stored passwords never leave the service.
type UsuariosService struct {
	crud[usuario.Usuario]
}

func NewUsuariosService(repo Repository[usuario.Usuario], log *slog.Logger) *UsuariosService {
	return &UsuariosService{crud[usuario.Usuario]{
		repo:     repo,
		log:      log,
		now:      time.Now,
		entity:   "usuarios",
		notFound: "Usuario no encontrado",
	}}
}

func usuarioID(u usuario.Usuario) string { return u.ID }

func (s *UsuariosService) List(ctx context.Context) ([]usuario.Response, error) {
	users, err := s.crud.List(ctx)
	if err != nil {
		return nil, err
	}
	return usuario.ToResponses(users), nil
}

func (s *UsuariosService) Get(ctx context.Context, id string) (usuario.Response, error) {
	u, err := s.crud.Get(ctx, id)
	if err != nil {
		return usuario.Response{}, err
	}
	return u.ToResponse(), nil
}

func (s *UsuariosService) Create(ctx context.Context, req usuario.CreateRequest) (usuario.Response, error) {
	if strings.TrimSpace(req.Password) == "" {
		return usuario.Response{}, apperr.BadRequest("", "La contraseña es obligatoria")
	}

	email := usuario.NormalizeEmail(req.Email)
	if err := s.checkEmail(ctx, email, ""); err != nil {
		return usuario.Response{}, err
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return usuario.Response{}, apperr.Internal("No se pudo crear el usuario", err)
	}

	createdAt := s.now.createdAt()
	if req.CreatedAt != "" {
		if t, ok := dates.Parse(req.CreatedAt); ok {
			createdAt = t.UTC().Format(time.RFC3339)
		}
	}

	created, err := s.create(ctx, usuario.New(req, hash, createdAt))
	if err != nil {
		return usuario.Response{}, err
	}

	s.log.InfoContext(ctx, "usuario created", "id", created.ID, "rol", created.Rol)
	return created.ToResponse(), nil
}

func (s *UsuariosService) Update(ctx context.Context, id string, req usuario.UpdateRequest) (usuario.Response, error) {
	fields := req.Fields()
	if err := blankField(fields); err != nil {
		return usuario.Response{}, err
	}

	if email, ok := fields["email"].(string); ok {
		if err := s.ensureExists(ctx, id); err != nil {
			return usuario.Response{}, err
		}
		if err := s.checkEmail(ctx, email, strings.TrimSpace(id)); err != nil {
			return usuario.Response{}, err
		}
	}

	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password)
		if err != nil {
			return usuario.Response{}, apperr.Internal("No se pudo actualizar el usuario", err)
		}
		fields["password"] = hash
	}

	u, err := s.update(ctx, id, fields)
	if err != nil {
		return usuario.Response{}, err
	}
	return u.ToResponse(), nil
}

// ResetPassword replaces a user's password with a fresh bcrypt hash.
func (s *UsuariosService) ResetPassword(ctx context.Context, id, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apperr.BadRequest("", "La nueva contraseña es obligatoria")
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal("No se pudo actualizar la contraseña", err)
	}

	if _, err := s.update(ctx, id, map[string]any{"password": hash}); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "password reset", "id", strings.TrimSpace(id))
	return nil
}

func (s *UsuariosService) Delete(ctx context.Context, id string) (usuario.Response, error) {
	u, err := s.crud.Delete(ctx, id)
	if err != nil {
		return usuario.Response{}, err
	}
	return u.ToResponse(), nil
}

// Search matches q against email or username, ignoring case.
func (s *UsuariosService) Search(ctx context.Context, q string) ([]usuario.Response, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.BadRequest("missing_filter", "Falta el parámetro de búsqueda 'q'")
	}

	users, err := s.crud.List(ctx)
	if err != nil {
		return nil, err
	}

	matches := filter(users, func(u usuario.Usuario) bool {
		return containsFold(u.Email, q) || containsFold(u.Username, q)
	})
	return usuario.ToResponses(matches), nil
}

// EnsureAdmin creates an admin account for email when none exists yet.
// It reports whether a user was created.
func (s *UsuariosService) EnsureAdmin(ctx context.Context, email, password, username string) (bool, error) {
	email = usuario.NormalizeEmail(email)

	existing, err := s.repo.FindBy(ctx, "email", email)
	if err != nil {
		return false, s.internal("find", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	_, err = s.Create(ctx, usuario.CreateRequest{
		Username: username,
		Email:    email,
		Password: password,
		Rol:      usuario.RolAdmin,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *UsuariosService) checkEmail(ctx context.Context, email, selfID string) error {
	return unique(ctx, s.crud, usuarioID, "email", email, selfID,
		"email_taken", "El email ya está registrado")
}
