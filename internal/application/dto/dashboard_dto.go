package dto

import "github.com/shopspring/decimal"

// ProductoMasVendido fila del top de ventas.
type ProductoMasVendido struct {
	ProductoID       int64           `json:"producto_id"`
	Descripcion      string          `json:"descripcion"`
	UnidadesVendidas int             `json:"unidades_vendidas"`
	TotalRecaudado   decimal.Decimal `json:"total_recaudado"`
}

// PronosticoDemanda estimación de unidades por producto.
type PronosticoDemanda struct {
	ProductoID        int64  `json:"producto_id"`
	Descripcion       string `json:"descripcion"`
	UnidadesEstimadas int    `json:"unidades_estimadas"`
	Periodo           string `json:"periodo"`
}

// DashboardResumen vista combinada del dashboard.
type DashboardResumen struct {
	MasVendidos []ProductoMasVendido `json:"mas_vendidos"`
	Pronostico  []PronosticoDemanda  `json:"pronostico"`
}
