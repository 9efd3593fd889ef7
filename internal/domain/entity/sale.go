package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta viva.
const (
	SaleStatusRegistrada = "registrada"
)

// Sale venta de un usuario. PrecioUnitario es el snapshot del precio al momento de la venta.
// PeriodoCobroID queda en nil hasta que un periodo de cobro la reclama.
type Sale struct {
	ID             int64
	Usuario        string
	ProductoID     int64
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Total          decimal.Decimal
	Fecha          time.Time
	Estado         string
	PeriodoCobroID *int64
}

// Claimed indica si la venta ya fue asignada a un periodo de cobro.
func (s *Sale) Claimed() bool {
	return s.PeriodoCobroID != nil
}

// HistoricalSale copia de una venta liquidada, con la fecha de liquidación.
type HistoricalSale struct {
	Sale
	FechaLiquidacion time.Time
}

// SaleLine venta con la descripción del producto (vistas de detalle).
type SaleLine struct {
	VentaID        int64
	Fecha          time.Time
	Usuario        string
	UserID         int64
	Producto       string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Total          decimal.Decimal
}
