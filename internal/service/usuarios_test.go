package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/geocoder89/vallas-api/internal/domain/usuario"
	"github.com/geocoder89/vallas-api/internal/repo"
	"github.com/geocoder89/vallas-api/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsuarios_CreateHashesAndHidesPassword(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	resp, err := svc.usuarios.Create(ctx, usuario.CreateRequest{Username: "ana", Email: "Ana@Vallas.com", Password: "123456"})
	require.NoError(t, err)
	assert.Equal(t, usuario.RolUser, resp.Rol)
	assert.Equal(t, "ana@vallas.com", resp.Email)
	require.NotNil(t, resp.CreatedAt)
	assert.Equal(t, "2024-06-01", *resp.CreatedAt)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")

	stored, err := repo.NewUsuarios(svc.store).Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.True(t, security.IsHashed(stored.Password))
	assert.NoError(t, security.CheckPassword(stored.Password, "123456"))
}

func TestUsuarios_EmailTakenAndCustomCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := newServices().usuarios

	resp, err := s.Create(ctx, usuario.CreateRequest{Username: "ana", Email: "ana@vallas.com", Password: "123456", CreatedAt: "2023-01-15"})
	require.NoError(t, err)
	assert.Equal(t, "2023-01-15", *resp.CreatedAt)

	_, err = s.Create(ctx, usuario.CreateRequest{Username: "otra", Email: "ANA@vallas.com", Password: "123456"})
	assert.Equal(t, "email_taken", codeOf(err))
}

func TestUsuarios_UpdateAndResetPassword(t *testing.T) {
	ctx := context.Background()
	svc := newServices()

	resp, err := svc.usuarios.Create(ctx, usuario.CreateRequest{Username: "ana", Email: "ana@vallas.com", Password: "123456"})
	require.NoError(t, err)

	updated, err := svc.usuarios.Update(ctx, resp.ID, usuario.UpdateRequest{Rol: strPtr(usuario.RolAdmin), Password: strPtr("nueva123")})
	require.NoError(t, err)
	assert.Equal(t, usuario.RolAdmin, updated.Rol)
	assert.Equal(t, "ana", updated.Username)

	users := repo.NewUsuarios(svc.store)
	stored, err := users.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.NoError(t, security.CheckPassword(stored.Password, "nueva123"))

	require.NoError(t, svc.usuarios.ResetPassword(ctx, resp.ID, "otra-clave"))
	stored, err = users.Get(ctx, resp.ID)
	require.NoError(t, err)
	assert.NoError(t, security.CheckPassword(stored.Password, "otra-clave"))

	err = svc.usuarios.ResetPassword(ctx, "missing", "otra-clave")
	assert.Equal(t, "not_found", codeOf(err))
}

func TestUsuarios_SearchMatchesEmailOrUsername(t *testing.T) {
	ctx := context.Background()
	s := newServices().usuarios

	_, err := s.Create(ctx, usuario.CreateRequest{Username: "operador1", Email: "juan@vallas.com", Password: "123456"})
	require.NoError(t, err)
	_, err = s.Create(ctx, usuario.CreateRequest{Username: "JuanAdmin", Email: "admin@vallas.com", Password: "123456"})
	require.NoError(t, err)
	_, err = s.Create(ctx, usuario.CreateRequest{Username: "pedro", Email: "pedro@vallas.com", Password: "123456"})
	require.NoError(t, err)

	got, err := s.Search(ctx, "JUAN")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = s.Search(ctx, "")
	assert.Equal(t, "missing_filter", codeOf(err))
}

func TestUsuarios_EnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newServices().usuarios

	created, err := s.EnsureAdmin(ctx, "admin@vallas.com", "admin123", "admin")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.EnsureAdmin(ctx, "ADMIN@vallas.com", "admin123", "admin")
	require.NoError(t, err)
	assert.False(t, created)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, usuario.RolAdmin, all[0].Rol)
	assert.False(t, strings.Contains(all[0].Email, "ADMIN"))
}
