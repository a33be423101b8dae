package operativo

import (
	"strings"

	"github.com/geocoder89/vallas-api/internal/dates"
)

type Operativo struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Fecha     string `json:"fecha"`
	Lugar     string `json:"lugar"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type CreateRequest struct {
	Nombre string `json:"nombre" binding:"required,max=120"`
	Fecha  string `json:"fecha" binding:"required,fecha"`
	Lugar  string `json:"lugar" binding:"required,max=160"`
}

type UpdateRequest struct {
	Nombre *string `json:"nombre" binding:"omitempty,min=1,max=120"`
	Fecha  *string `json:"fecha" binding:"omitempty,fecha"`
	Lugar  *string `json:"lugar" binding:"omitempty,min=1,max=160"`
}

func New(req CreateRequest, createdAt string) Operativo {
	return Operativo{
		Nombre:    strings.TrimSpace(req.Nombre),
		Fecha:     dates.FormatString(req.Fecha),
		Lugar:     strings.TrimSpace(req.Lugar),
		CreatedAt: createdAt,
	}
}

func (r UpdateRequest) Fields() map[string]any {
	f := make(map[string]any, 3)
	if r.Nombre != nil {
		f["nombre"] = strings.TrimSpace(*r.Nombre)
	}
	if r.Fecha != nil {
		f["fecha"] = dates.FormatString(*r.Fecha)
	}
	if r.Lugar != nil {
		f["lugar"] = strings.TrimSpace(*r.Lugar)
	}
	return f
}

// Present returns o with its date fields as YYYY-MM-DD.
func (o Operativo) Present() Operativo {
	o.Fecha = dates.FormatString(o.Fecha)
	o.CreatedAt = dates.FormatString(o.CreatedAt)
	return o
}
