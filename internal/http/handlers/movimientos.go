package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/vallas-api/internal/domain/movimiento"
	"github.com/gin-gonic/gin"
)

type MovimientosService interface {
	List(ctx context.Context) ([]movimiento.Movimiento, error)
	Get(ctx context.Context, id string) (movimiento.Movimiento, error)
	Create(ctx context.Context, req movimiento.CreateRequest) (movimiento.Movimiento, error)
	Update(ctx context.Context, id string, req movimiento.UpdateRequest) (movimiento.Movimiento, error)
	Delete(ctx context.Context, id string) (movimiento.Movimiento, error)
	Search(ctx context.Context, f movimiento.SearchFilter) ([]movimiento.Movimiento, error)
}

type MovimientosHandler struct {
	svc MovimientosService
}

func NewMovimientosHandler(svc MovimientosService) *MovimientosHandler {
	return &MovimientosHandler{svc: svc}
}

func (h *MovimientosHandler) List(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.List(cctx)
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

// Search handles GET /movimientos/search?fecha=&term=
func (h *MovimientosHandler) Search(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.Search(cctx, movimiento.SearchFilter{
		Fecha: ctx.Query("fecha"),
		Term:  ctx.Query("term"),
	})
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

func (h *MovimientosHandler) Get(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Get(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, v)
}

func (h *MovimientosHandler) Create(ctx *gin.Context) {
	var req movimiento.CreateRequest

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

func (h *MovimientosHandler) Update(ctx *gin.Context) {
	var req movimiento.UpdateRequest

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

func (h *MovimientosHandler) Delete(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Delete(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondDeleted(ctx, v)
}
