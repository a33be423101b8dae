package valla

import "strings"

const (
	EstadoDisponible = "disponible"
	EstadoInstalada  = "instalada"
	EstadoTransito   = "transito"
)

type Valla struct {
	ID        string `json:"id"`
	Codigo    string `json:"codigo"`
	Cantidad  int    `json:"cantidad"`
	Estado    string `json:"estado"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type CreateRequest struct {
	Codigo   string `json:"codigo" binding:"required,max=60"`
	Cantidad *int   `json:"cantidad" binding:"required,min=0"`
	Estado   string `json:"estado" binding:"required,oneof=disponible instalada transito"`
}

// UpdateRequest is a partial update: nil fields are left untouched.
type UpdateRequest struct {
	Codigo   *string `json:"codigo" binding:"omitempty,min=1,max=60"`
	Cantidad *int    `json:"cantidad" binding:"omitempty,min=0"`
	Estado   *string `json:"estado" binding:"omitempty,oneof=disponible instalada transito"`
}

func New(req CreateRequest, createdAt string) Valla {
	return Valla{
		Codigo:    strings.TrimSpace(req.Codigo),
		Cantidad:  *req.Cantidad,
		Estado:    req.Estado,
		CreatedAt: createdAt,
	}
}

// Fields returns the stored fields the request changes.
func (r UpdateRequest) Fields() map[string]any {
	f := make(map[string]any, 3)
	if r.Codigo != nil {
		f["codigo"] = strings.TrimSpace(*r.Codigo)
	}
	if r.Cantidad != nil {
		f["cantidad"] = *r.Cantidad
	}
	if r.Estado != nil {
		f["estado"] = *r.Estado
	}
	return f
}
