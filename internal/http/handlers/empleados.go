package handlers

import (
	"context"
	"net/http"

	"github.com/geocoder89/vallas-api/internal/domain/empleado"
	"github.com/gin-gonic/gin"
)

type EmpleadosService interface {
	List(ctx context.Context) ([]empleado.Empleado, error)
	Get(ctx context.Context, id string) (empleado.Empleado, error)
	Create(ctx context.Context, req empleado.CreateRequest) (empleado.Empleado, error)
	Update(ctx context.Context, id string, req empleado.UpdateRequest) (empleado.Empleado, error)
	Delete(ctx context.Context, id string) (empleado.Empleado, error)
	Search(ctx context.Context, f empleado.SearchFilter) ([]empleado.Empleado, error)
}

type EmpleadosHandler struct {
	svc EmpleadosService
}

func NewEmpleadosHandler(svc EmpleadosService) *EmpleadosHandler {
	return &EmpleadosHandler{svc: svc}
}

func (h *EmpleadosHandler) List(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.List(cctx)
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

// Search handles GET /empleados/search?nombre=&apellido=&dni=; any
// field matching is enough.
func (h *EmpleadosHandler) Search(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	items, err := h.svc.Search(cctx, empleado.SearchFilter{
		Nombre:   ctx.Query("nombre"),
		Apellido: ctx.Query("apellido"),
		DNI:      ctx.Query("dni"),
	})
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondList(ctx, items)
}

func (h *EmpleadosHandler) Get(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Get(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, v)
}

func (h *EmpleadosHandler) Create(ctx *gin.Context) {
	var req empleado.CreateRequest

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

func (h *EmpleadosHandler) Update(ctx *gin.Context) {
	var req empleado.UpdateRequest

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

func (h *EmpleadosHandler) Delete(ctx *gin.Context) {
	cctx, cancel := requestCtx(ctx)
	defer cancel()

	v, err := h.svc.Delete(cctx, ctx.Param("id"))
	if err != nil {
		RespondErr(ctx, err)
		return
	}

	RespondDeleted(ctx, v)
}
