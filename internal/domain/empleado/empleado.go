package empleado

import "strings"

type Empleado struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Apellido  string `json:"apellido"`
	DNI       string `json:"dni"`
	Legajo    string `json:"legajo"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type CreateRequest struct {
	Nombre   string `json:"nombre" binding:"required,max=80"`
	Apellido string `json:"apellido" binding:"required,max=80"`
	DNI      string `json:"dni" binding:"required,max=20"`
	Legajo   string `json:"legajo" binding:"required,max=40"`
}

type UpdateRequest struct {
	Nombre   *string `json:"nombre" binding:"omitempty,min=1,max=80"`
	Apellido *string `json:"apellido" binding:"omitempty,min=1,max=80"`
	DNI      *string `json:"dni" binding:"omitempty,min=1,max=20"`
	Legajo   *string `json:"legajo" binding:"omitempty,min=1,max=40"`
}

// SearchFilter holds the trimmed query params; empty means not provided.
type SearchFilter struct {
	Nombre   string
	Apellido string
	DNI      string
}

func (f SearchFilter) Empty() bool {
	return f.Nombre == "" && f.Apellido == "" && f.DNI == ""
}

func New(req CreateRequest, createdAt string) Empleado {
	return Empleado{
		Nombre:    strings.TrimSpace(req.Nombre),
		Apellido:  strings.TrimSpace(req.Apellido),
		DNI:       strings.TrimSpace(req.DNI),
		Legajo:    strings.TrimSpace(req.Legajo),
		CreatedAt: createdAt,
	}
}

func (r UpdateRequest) Fields() map[string]any {
	f := make(map[string]any, 4)
	if r.Nombre != nil {
		f["nombre"] = strings.TrimSpace(*r.Nombre)
	}
	if r.Apellido != nil {
		f["apellido"] = strings.TrimSpace(*r.Apellido)
	}
	if r.DNI != nil {
		f["dni"] = strings.TrimSpace(*r.DNI)
	}
	if r.Legajo != nil {
		f["legajo"] = strings.TrimSpace(*r.Legajo)
	}
	return f
}
