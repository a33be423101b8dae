// Package movimiento records barrier movements between states. Vallas,
// empleados and camiones are referenced by natural key (codigo, legajo,
// patente) and are not checked or adjusted when a movement is written.
package movimiento

import (
	"strings"

	"github.com/geocoder89/vallas-api/internal/dates"
)

type Movimiento struct {
	ID             string `json:"id"`
	VallaCodigo    string `json:"vallaCodigo"`
	EmpleadoLegajo string `json:"empleadoLegajo"`
	CamionPatente  string `json:"camionPatente"`
	Cantidad       int    `json:"cantidad"`
	EstadoOrigen   string `json:"estadoOrigen"`
	EstadoDestino  string `json:"estadoDestino"`
	Fecha          string `json:"fecha"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

type CreateRequest struct {
	VallaCodigo    string `json:"vallaCodigo" binding:"required,max=60"`
	EmpleadoLegajo string `json:"empleadoLegajo" binding:"required,max=40"`
	CamionPatente  string `json:"camionPatente" binding:"required,max=15"`
	Cantidad       *int   `json:"cantidad" binding:"required,min=1"`
	EstadoOrigen   string `json:"estadoOrigen" binding:"required,oneof=disponible instalada transito"`
	EstadoDestino  string `json:"estadoDestino" binding:"required,oneof=disponible instalada transito,nefield=EstadoOrigen"`
	Fecha          string `json:"fecha" binding:"omitempty,fecha"`
}

type UpdateRequest struct {
	VallaCodigo    *string `json:"vallaCodigo" binding:"omitempty,min=1,max=60"`
	EmpleadoLegajo *string `json:"empleadoLegajo" binding:"omitempty,min=1,max=40"`
	CamionPatente  *string `json:"camionPatente" binding:"omitempty,min=1,max=15"`
	Cantidad       *int    `json:"cantidad" binding:"omitempty,min=1"`
	EstadoOrigen   *string `json:"estadoOrigen" binding:"omitempty,oneof=disponible instalada transito"`
	EstadoDestino  *string `json:"estadoDestino" binding:"omitempty,oneof=disponible instalada transito"`
	Fecha          *string `json:"fecha" binding:"omitempty,fecha"`
}

// SearchFilter: Fecha is an exact date, Term a substring of the referenced
// keys. At least one must be set.
type SearchFilter struct {
	Fecha string
	Term  string
}

// New builds a movement; today is used when the request carries no fecha.
func New(req CreateRequest, createdAt, today string) Movimiento {
	fecha := today
	if strings.TrimSpace(req.Fecha) != "" {
		fecha = dates.FormatString(req.Fecha)
	}

	return Movimiento{
		VallaCodigo:    strings.TrimSpace(req.VallaCodigo),
		EmpleadoLegajo: strings.TrimSpace(req.EmpleadoLegajo),
		CamionPatente:  strings.TrimSpace(req.CamionPatente),
		Cantidad:       *req.Cantidad,
		EstadoOrigen:   req.EstadoOrigen,
		EstadoDestino:  req.EstadoDestino,
		Fecha:          fecha,
		CreatedAt:      createdAt,
	}
}

func (r UpdateRequest) Fields() map[string]any {
	f := make(map[string]any, 7)
	if r.VallaCodigo != nil {
		f["vallaCodigo"] = strings.TrimSpace(*r.VallaCodigo)
	}
	if r.EmpleadoLegajo != nil {
		f["empleadoLegajo"] = strings.TrimSpace(*r.EmpleadoLegajo)
	}
	if r.CamionPatente != nil {
		f["camionPatente"] = strings.TrimSpace(*r.CamionPatente)
	}
	if r.Cantidad != nil {
		f["cantidad"] = *r.Cantidad
	}
	if r.EstadoOrigen != nil {
		f["estadoOrigen"] = *r.EstadoOrigen
	}
	if r.EstadoDestino != nil {
		f["estadoDestino"] = *r.EstadoDestino
	}
	if r.Fecha != nil {
		f["fecha"] = dates.FormatString(*r.Fecha)
	}
	return f
}

// Present returns m with its date fields as YYYY-MM-DD.
func (m Movimiento) Present() Movimiento {
	m.Fecha = dates.FormatString(m.Fecha)
	m.CreatedAt = dates.FormatString(m.CreatedAt)
	return m
}
