package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de una venta.
type SaleItemRequest struct {
	ProductoID int64 `json:"producto_id"`
	Cantidad   int   `json:"cantidad"`
}

// CreateSaleRequest venta con uno o más productos (todo o nada).
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items"`
}

// CreateSaleResponse ids de las ventas creadas, en el orden de los items.
type CreateSaleResponse struct {
	Mensaje string  `json:"mensaje"`
	VentaID []int64 `json:"venta_id"`
}

// SaleResponse venta de un usuario.
type SaleResponse struct {
	ID             int64           `json:"id"`
	Usuario        string          `json:"usuario"`
	ProductoID     int64           `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Total          decimal.Decimal `json:"total"`
	Fecha          time.Time       `json:"fecha"`
	Estado         string          `json:"estado"`
	PeriodoCobroID *int64          `json:"periodo_cobro_id"`
}
