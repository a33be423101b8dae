package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/vallas-api/internal/domain/usuario"
	"github.com/gin-gonic/gin"
)

type UsuariosService interface {
	List(ctx context.Context) ([]usuario.Response, error)
	Get(ctx context.Context, id string) (usuario.Response, error)
	Create(ctx context.Context, req usuario.CreateRequest) (usuario.Response, error)
	Update(ctx context.Context, id string, req usuario.UpdateRequest) (usuario.Response, error)
	Delete(ctx context.Context, id string) (usuario.Response, error)
	Search(ctx context.Context, q string) ([]usuario.Response, error)
	ResetPassword(ctx context.Context, id, newPassword string) error
}

type UsuariosHandler struct {
	svc UsuariosService
}

func NewUsuariosHandler(svc UsuariosService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

func (h *UsuariosHandler) List(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.List(cctx)
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

// Search handles GET /usuarios/search?q= over email and username.
func (h *UsuariosHandler) Search(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.Search(cctx, ctx.Query("q"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

func (h *UsuariosHandler) Get(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Get(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, v)
}

func (h *UsuariosHandler) Create(ctx *gin.Context) {
	var req usuario.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Create(cctx, req)
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, v)
}

func (h *UsuariosHandler) Update(ctx *gin.Context) {
	var req usuario.UpdateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Update(cctx, ctx.Param("id"), req)
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, v)
}

func (h *UsuariosHandler) Delete(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Delete(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondDeleted(ctx, v)
}

// ResetPassword handles PUT /usuarios/password/:id
func (h *UsuariosHandler) ResetPassword(ctx *gin.Context) {
	var req usuario.PasswordResetRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := requestCtx(ctx)
	defer cancel()

	if err := h.svc.ResetPassword(cctx, ctx.Param("id"), req.NewPassword); err != nil {
		RespondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Contraseña actualizada correctamente"})
}
