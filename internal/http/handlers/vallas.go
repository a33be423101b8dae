package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/vallas-api/internal/domain/valla"
	"github.com/gin-gonic/gin"
)

type VallasService interface {
	List(ctx context.Context) ([]valla.Valla, error)
	Get(ctx context.Context, id string) (valla.Valla, error)
	Create(ctx context.Context, req valla.CreateRequest) (valla.Valla, error)
	Update(ctx context.Context, id string, req valla.UpdateRequest) (valla.Valla, error)
	Delete(ctx context.Context, id string) (valla.Valla, error)
	Search(ctx context.Context, codigo string) ([]valla.Valla, error)
}

type VallasHandler struct {
	svc VallasService
}

func NewVallasHandler(svc VallasService) *VallasHandler {
	return &VallasHandler{svc: svc}
}

func (h *VallasHandler) List(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.List(cctx)
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

// Search handles GET /vallas/search?codigo=
func (h *VallasHandler) Search(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.Search(cctx, ctx.Query("codigo"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

func (h *VallasHandler) Get(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Get(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, v)
}

func (h *VallasHandler) Create(ctx *gin.Context) {
	var req valla.CreateRequest

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

func (h *VallasHandler) Update(ctx *gin.Context) {
	var req valla.UpdateRequest

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

func (h *VallasHandler) Delete(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Delete(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondDeleted(ctx, v)
}
