package service

import (
	"time"

	"github.com/geocoder89/vallas-api/internal/apperr"
	"github.com/geocoder89/vallas-api/internal/docstore"
	"github.com/geocoder89/vallas-api/internal/observability"
	"github.com/geocoder89/vallas-api/internal/repo"
)

var fixedNow = time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type services struct {
	store       *docstore.Memory
	vallas      *VallasService
	camiones    *CamionesService
	empleados   *EmpleadosService
	operativos  *OperativosService
	movimientos *MovimientosService
	usuarios    *UsuariosService
}

func newServices() services {
	store := docstore.NewMemory()
	log := observability.Discard()

	s := services{
		store:       store,
		vallas:      NewVallasService(repo.NewVallas(store), log),
		camiones:    NewCamionesService(repo.NewCamiones(store), log),
		empleados:   NewEmpleadosService(repo.NewEmpleados(store), log),
		operativos:  NewOperativosService(repo.NewOperativos(store), log),
		movimientos: NewMovimientosService(repo.NewMovimientos(store), log),
		usuarios:    NewUsuariosService(repo.NewUsuarios(store), log),
	}
	s.vallas.now = fixedClock
	s.camiones.now = fixedClock
	s.empleados.now = fixedClock
	s.operativos.now = fixedClock
	s.movimientos.now = fixedClock
	s.usuarios.now = fixedClock
	return s
}

func kindOf(err error) apperr.Kind {
	if e := apperr.From(err); e != nil {
		return e.Kind
	}
	return -1
}

func codeOf(err error) string {
	if e := apperr.From(err); e != nil {
		return e.Code
	}
	return ""
}

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }
