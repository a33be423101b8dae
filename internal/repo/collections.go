package repo

import (
	"github.com/geocoder89/vallas-api/internal/docstore"
	"github.com/geocoder89/vallas-api/internal/domain/camion"
	"github.com/geocoder89/vallas-api/internal/domain/empleado"
	"github.com/geocoder89/vallas-api/internal/domain/movimiento"
	"github.com/geocoder89/vallas-api/internal/domain/operativo"
	"github.com/geocoder89/vallas-api/internal/domain/usuario"
	"github.com/geocoder89/vallas-api/internal/domain/valla"
)

// Collection names as stored.
const (
	Vallas      = "vallas"
	Camiones    = "camiones"
	Empleados   = "empleados"
	Operativos  = "operativos"
	Movimientos = "movimientos"
	Usuarios    = "usuarios"
)

func NewVallas(s docstore.Store) *Collection[valla.Valla] {
	return NewCollection[valla.Valla](s, Vallas)
}

func NewCamiones(s docstore.Store) *Collection[camion.Camion] {
	return NewCollection[camion.Camion](s, Camiones)
}

func NewEmpleados(s docstore.Store) *Collection[empleado.Empleado] {
	return NewCollection[empleado.Empleado](s, Empleados)
}

func NewOperativos(s docstore.Store) *Collection[operativo.Operativo] {
	return NewCollection[operativo.Operativo](s, Operativos)
}

func NewMovimientos(s docstore.Store) *Collection[movimiento.Movimiento] {
	return NewCollection[movimiento.Movimiento](s, Movimientos)
}

func NewUsuarios(s docstore.Store) *Collection[usuario.Usuario] {
	return NewCollection[usuario.Usuario](s, Usuarios)
}
