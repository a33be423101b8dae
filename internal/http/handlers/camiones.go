package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/vallas-api/internal/domain/camion"
	"github.com/gin-gonic/gin"
)

type CamionesService interface {
	List(ctx context.Context) ([]camion.Camion, error)
	Get(ctx context.Context, id string) (camion.Camion, error)
	Create(ctx context.Context, req camion.CreateRequest) (camion.Camion, error)
	Update(ctx context.Context, id string, req camion.UpdateRequest) (camion.Camion, error)
	Delete(ctx context.Context, id string) (camion.Camion, error)
	Search(ctx context.Context, patente string) ([]camion.Camion, error)
}

type CamionesHandler struct {
	svc CamionesService
}

func NewCamionesHandler(svc CamionesService) *CamionesHandler {
	return &CamionesHandler{svc: svc}
}

func (h *CamionesHandler) List(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.List(cctx)
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

// Search handles GET /camiones/search?patente=
func (h *CamionesHandler) Search(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.Search(cctx, ctx.Query("patente"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

func (h *CamionesHandler) Get(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Get(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, v)
}

func (h *CamionesHandler) Create(ctx *gin.Context) {
	var req camion.CreateRequest

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

func (h *CamionesHandler) Update(ctx *gin.Context) {
	var req camion.UpdateRequest

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

func (h *CamionesHandler) Delete(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Delete(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondDeleted(ctx, v)
}
