package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryEntryRequest entrada de mercadería.
type InventoryEntryRequest struct {
	ProductoID    int64           `json:"producto_id" validate:"required"`
	Cantidad      int             `json:"cantidad" validate:"gt=0"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"gt=0"`
}

// InventoryEntryResponse entrada registrada.
type InventoryEntryResponse struct {
	ID            int64           `json:"id"`
	ProductoID    int64           `json:"producto_id"`
	Cantidad      int             `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Fecha         time.Time       `json:"fecha"`
}

// PhysicalCountLine línea contada en una toma física.
type PhysicalCountLine struct {
	ProductoID         int64 `json:"producto_id"`
	CantidadEncontrada int   `json:"cantidad_encontrada"`
}

// PhysicalCountRequest toma física: participantes y líneas contadas.
type PhysicalCountRequest struct {
	Usuarios []string            `json:"usuarios"`
	Detalles []PhysicalCountLine `json:"detalles"`
}

// PhysicalCountResponse resultado de registrar la toma física.
type PhysicalCountResponse struct {
	Mensaje     string  `json:"mensaje"`
	AuditID     int64   `json:"audit_id"`
	Registrados int     `json:"registrados"`
	Omitidos    []int64 `json:"omitidos"`
}

// DiferenciaInventario línea de diferencias de una auditoría.
type DiferenciaInventario struct {
	Descripcion         string          `json:"descripcion"`
	Marca               string          `json:"marca"`
	CodigoBarras        string          `json:"codigo_barras"`
	CantidadEncontrada  int             `json:"cantidad_encontrada"`
	CantidadTeorica     int             `json:"cantidad_teorica"`
	DiferenciaUnidades  int             `json:"diferencia_unidades"`
	CostoUnitario       decimal.Decimal `json:"costo_unitario"`
	DiferenciaMonetaria decimal.Decimal `json:"diferencia_monetaria"`
}
