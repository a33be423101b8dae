package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/vallas-api/internal/domain/operativo"
	"github.com/gin-gonic/gin"
)

type OperativosService interface {
	List(ctx context.Context) ([]operativo.Operativo, error)
	Get(ctx context.Context, id string) (operativo.Operativo, error)
	Create(ctx context.Context, req operativo.CreateRequest) (operativo.Operativo, error)
	Update(ctx context.Context, id string, req operativo.UpdateRequest) (operativo.Operativo, error)
	Delete(ctx context.Context, id string) (operativo.Operativo, error)
	Search(ctx context.Context, nombre string) ([]operativo.Operativo, error)
}

type OperativosHandler struct {
	svc OperativosService
}

func NewOperativosHandler(svc OperativosService) *OperativosHandler {
	return &OperativosHandler{svc: svc}
}

func (h *OperativosHandler) List(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.List(cctx)
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

// Search handles GET /operativos/search?nombre=
func (h *OperativosHandler) Search(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.Search(cctx, ctx.Query("nombre"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

func (h *OperativosHandler) Get(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Get(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, v)
}

func (h *OperativosHandler) Create(ctx *gin.Context) {
	var req operativo.CreateRequest

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

func (h *OperativosHandler) Update(ctx *gin.Context) {
	var req operativo.UpdateRequest

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

func (h *OperativosHandler) Delete(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Delete(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondDeleted(ctx, v)
}
