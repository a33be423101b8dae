package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/geocoder89/vallas-api/internal/domain/usuario"
	"github.com/geocoder89/vallas-api/internal/security"
)

type UserStore interface {
	FindBy(ctx context.Context, field string, value any) ([]usuario.Usuario, error)
	Update(ctx context.Context, id string, fields map[string]any) (usuario.Usuario, error)
}

type TokenIssuer interface {
	GenerateToken(userID, email, rol, username string) (string, error)
}

// LoginRecorder counts login outcomes. May be nil.
type LoginRecorder interface {
	LoginResult(result string)
}

type LoginResult struct {
	Token string
	User  usuario.Response
}

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	rec    LoginRecorder
	log    *slog.Logger
}

func NewAuthService(users UserStore, tokens TokenIssuer, rec LoginRecorder, log *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, rec: rec, log: log}
}

var errInvalidCredentials = apperr.Unauthorized("invalid_credentials", "Credenciales inválidas")

// Login verifies email/password and issues a token. Accounts still holding a
// plaintext password are migrated to bcrypt on their first successful login.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return LoginResult{}, apperr.BadRequest("", "Email y contraseña son obligatorios")
	}

	u, found, err := s.findByEmail(ctx, email)
	if err != nil {
		s.log.ErrorContext(ctx, "login lookup failed", "err", err)
		return LoginResult{}, apperr.Internal("Error al iniciar sesión", err)
	}
	if !found {
		s.record("invalid")
		return LoginResult{}, errInvalidCredentials
	}

	if security.IsHashed(u.Password) {
		if err := security.CheckPassword(u.Password, password); err != nil {
			s.record("invalid")
			return LoginResult{}, errInvalidCredentials
		}
		s.record("ok")
	} else {
		if !security.MatchLegacy(u.Password, password) {
			s.record("invalid")
			return LoginResult{}, errInvalidCredentials
		}
		s.migratePassword(ctx, u.ID, password)
		s.record("migrated")
	}

	token, err := s.tokens.GenerateToken(u.ID, u.Email, u.Rol, u.Username)
	if err != nil {
		return LoginResult{}, apperr.Internal("No se pudo generar el token", err)
	}

	s.log.InfoContext(ctx, "login ok", "user_id", u.ID, "rol", u.Rol)
	return LoginResult{Token: token, User: u.ToResponse()}, nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (usuario.Usuario, bool, error) {
	candidates := []string{usuario.NormalizeEmail(email)}
	if email != candidates[0] {
		// accounts stored before emails were lower-cased
		candidates = append(candidates, email)
	}

	for _, c := range candidates {
		users, err := s.users.FindBy(ctx, "email", c)
		if err != nil {
			return usuario.Usuario{}, false, err
		}
		if len(users) > 0 {
			return users[0], true, nil
		}
	}
	return usuario.Usuario{}, false, nil
}

// migratePassword replaces a plaintext password with its bcrypt hash. A
// failure is logged; the login itself already succeeded.
func (s *AuthService) migratePassword(ctx context.Context, id, plain string) {
	hash, err := security.HashPassword(plain)
	if err != nil {
		s.log.WarnContext(ctx, "legacy password rehash failed", "user_id", id, "err", err)
		return
	}

	if _, err := s.users.Update(ctx, id, map[string]any{"password": hash}); err != nil {
		s.log.WarnContext(ctx, "legacy password migration not persisted", "user_id", id, "err", err)
		return
	}

	s.log.InfoContext(ctx, "legacy password migrated to bcrypt", "user_id", id)
}

func (s *AuthService) record(result string) {
	if s.rec != nil {
		s.rec.LoginResult(result)
	}
}
