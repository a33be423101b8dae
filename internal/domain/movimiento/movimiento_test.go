package movimiento

import "testing"

func TestNew_DefaultsFechaToToday(t *testing.T) {
	qty := 4
	req := CreateRequest{
		VallaCodigo:    "V-001",
		EmpleadoLegajo: "EMP001",
		CamionPatente:  "AB123CD",
		Cantidad:       &qty,
		EstadoOrigen:   "disponible",
		EstadoDestino:  "transito",
	}

	m := New(req, "2024-06-01T12:00:00Z", "2024-06-01")
	if m.Fecha != "2024-06-01" {
		t.Fatalf("got fecha %q, want today", m.Fecha)
	}

	req.Fecha = "2024-05-20T08:30:00Z"
	m = New(req, "2024-06-01T12:00:00Z", "2024-06-01")
	if m.Fecha != "2024-05-20" {
		t.Fatalf("got fecha %q, want normalized request date", m.Fecha)
	}
}

func TestUpdateRequestFields_OnlySetFields(t *testing.T) {
	qty := 2
	f := UpdateRequest{Cantidad: &qty}.Fields()

	if len(f) != 1 || f["cantidad"] != 2 {
		t.Fatalf("unexpected fields: %v", f)
	}
	if len(UpdateRequest{}.Fields()) != 0 {
		t.Fatalf("empty request must produce no fields")
	}
}
