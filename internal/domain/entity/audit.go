package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryAudit cabecera de una toma física. Inmutable tras insertarse.
type InventoryAudit struct {
	ID       int64
	Fecha    time.Time
	Usuarios []string
}

// AuditDetail línea de una toma física con la diferencia ya calculada.
type AuditDetail struct {
	ID                  int64
	AuditID             int64
	ProductoID          int64
	CantidadEncontrada  int
	CantidadTeorica     int
	DiferenciaUnidades  int
	CostoUnitario       decimal.Decimal
	DiferenciaMonetaria decimal.Decimal
}

// AuditDifference detalle unido a los datos del producto.
type AuditDifference struct {
	Descripcion         string
	Marca               string
	CodigoBarras        string
	CantidadEncontrada  int
	CantidadTeorica     int
	DiferenciaUnidades  int
	CostoUnitario       decimal.Decimal
	DiferenciaMonetaria decimal.Decimal
}
