package camion

import "strings"

type Camion struct {
	ID        string `json:"id"`
	Patente   string `json:"patente"`
	Modelo    string `json:"modelo"`
	Capacidad int    `json:"capacidad"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type CreateRequest struct {
	Patente   string `json:"patente" binding:"required,max=15"`
	Modelo    string `json:"modelo" binding:"required,max=80"`
	Capacidad *int   `json:"capacidad" binding:"required,min=0"`
}

type UpdateRequest struct {
	Patente   *string `json:"patente" binding:"omitempty,min=1,max=15"`
	Modelo    *string `json:"modelo" binding:"omitempty,min=1,max=80"`
	Capacidad *int    `json:"capacidad" binding:"omitempty,min=0"`
}

// NormalizePatente upper-cases and strips blanks so "ab 123 cd" and
// "AB123CD" are the same plate.
func NormalizePatente(p string) string {
	return strings.ToUpper(strings.Join(strings.Fields(p), ""))
}

func New(req CreateRequest, createdAt string) Camion {
	return Camion{
		Patente:   NormalizePatente(req.Patente),
		Modelo:    strings.TrimSpace(req.Modelo),
		Capacidad: *req.Capacidad,
		CreatedAt: createdAt,
	}
}

func (r UpdateRequest) Fields() map[string]any {
	f := make(map[string]any, 3)
	if r.Patente != nil {
		f["patente"] = NormalizePatente(*r.Patente)
	}
	if r.Modelo != nil {
		f["modelo"] = strings.TrimSpace(*r.Modelo)
	}
	if r.Capacidad != nil {
		f["capacidad"] = *r.Capacidad
	}
	return f
}
