package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Es la fuente de verdad del stock.
type Product struct {
	ID             int64
	Descripcion    string
	Marca          string
	Presentacion   string
	CodigoBarras   string
	Costo          decimal.Decimal
	MargenUtilidad decimal.Decimal // porcentaje, 25 = 25%
	PrecioVenta    decimal.Decimal
	Stock          int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProductPatch campos opcionales para actualización parcial. nil = no cambia.
type ProductPatch struct {
	Descripcion    *string
	Marca          *string
	Presentacion   *string
	CodigoBarras   *string
	Costo          *decimal.Decimal
	MargenUtilidad *decimal.Decimal
	PrecioVenta    *decimal.Decimal
}

// Empty indica si el patch no trae ningún campo.
func (p ProductPatch) Empty() bool {
	return p.Descripcion == nil && p.Marca == nil && p.Presentacion == nil && p.CodigoBarras == nil &&
		p.Costo == nil && p.MargenUtilidad == nil && p.PrecioVenta == nil
}

// Apply copia al producto los campos presentes en el patch.
func (p ProductPatch) Apply(prod *Product) {
	if p.Descripcion != nil {
		prod.Descripcion = *p.Descripcion
	}
	if p.Marca != nil {
		prod.Marca = *p.Marca
	}
	if p.Presentacion != nil {
		prod.Presentacion = *p.Presentacion
	}
	if p.CodigoBarras != nil {
		prod.CodigoBarras = *p.CodigoBarras
	}
	if p.Costo != nil {
		prod.Costo = *p.Costo
	}
	if p.MargenUtilidad != nil {
		prod.MargenUtilidad = *p.MargenUtilidad
	}
	if p.PrecioVenta != nil {
		prod.PrecioVenta = *p.PrecioVenta
	}
}
