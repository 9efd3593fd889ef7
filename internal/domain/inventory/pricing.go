package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SalePrice calcula el precio de venta a partir del costo y el margen (porcentaje).
// PrecioVenta = round(Costo * (1 + Margen/100), 2), redondeo half-up.
func SalePrice(costo, margen decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(margen.Div(hundred))
	return costo.Mul(factor).Round(2)
}

// ValidEntry valida los valores de una entrada de inventario.
func ValidEntry(cantidad int, costoUnitario decimal.Decimal) bool {
	return cantidad > 0 && costoUnitario.GreaterThan(decimal.Zero)
}

// LineTotal total de una línea de venta: precio unitario por cantidad, sin redondear.
func LineTotal(precio decimal.Decimal, cantidad int) decimal.Decimal {
	return precio.Mul(decimal.NewFromInt(int64(cantidad)))
}
