package entity

import "github.com/shopspring/decimal"

// TopSeller producto con unidades vendidas y monto recaudado.
type TopSeller struct {
	ProductoID       int64
	Descripcion      string
	UnidadesVendidas int
	TotalRecaudado   decimal.Decimal
}

// DemandForecast estimación ingenua de unidades por venta.
type DemandForecast struct {
	ProductoID        int64
	Descripcion       string
	UnidadesEstimadas int
	Periodo           string
}
