package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Si PrecioVenta es nil se deriva de costo y margen.
type CreateProductRequest struct {
	Descripcion    string           `json:"descripcion" validate:"required"`
	Marca          string           `json:"marca"`
	Presentacion   string           `json:"presentacion"`
	CodigoBarras   string           `json:"codigo_barras"`
	Costo          decimal.Decimal  `json:"costo"`
	MargenUtilidad decimal.Decimal  `json:"margen_utilidad"`
	PrecioVenta    *decimal.Decimal `json:"precio_venta"`
}

// UpdateProductRequest actualización parcial (sin stock).
type UpdateProductRequest struct {
	Descripcion    *string          `json:"descripcion"`
	Marca          *string          `json:"marca"`
	Presentacion   *string          `json:"presentacion"`
	CodigoBarras   *string          `json:"codigo_barras"`
	Costo          *decimal.Decimal `json:"costo"`
	MargenUtilidad *decimal.Decimal `json:"margen_utilidad"`
	PrecioVenta    *decimal.Decimal `json:"precio_venta"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             int64           `json:"id"`
	Descripcion    string          `json:"descripcion"`
	Marca          string          `json:"marca"`
	Presentacion   string          `json:"presentacion"`
	CodigoBarras   string          `json:"codigo_barras"`
	Costo          decimal.Decimal `json:"costo"`
	MargenUtilidad decimal.Decimal `json:"margen_utilidad"`
	PrecioVenta    decimal.Decimal `json:"precio_venta"`
	Stock          int             `json:"stock"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
