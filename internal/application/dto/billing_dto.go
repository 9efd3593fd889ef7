package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodRangeRequest rango de fechas (YYYY-MM-DD, ambos inclusive).
type PeriodRangeRequest struct {
	Inicio string `json:"inicio"`
	Fin    string `json:"fin"`
}

// PeriodRange rango devuelto en previews.
type PeriodRange struct {
	Inicio string `json:"inicio"`
	Fin    string `json:"fin"`
}

// ResumenUsuarioPeriodo agregado por usuario dentro de un rango.
type ResumenUsuarioPeriodo struct {
	UserID int64           `json:"user_id"`
	Nombre string          `json:"nombre"`
	Ventas int             `json:"ventas"`
	Items  int             `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

// DetalleVenta venta dentro de un preview o periodo.
type DetalleVenta struct {
	VentaID  int64           `json:"venta_id"`
	Fecha    time.Time       `json:"fecha"`
	Usuario  string          `json:"usuario"`
	Producto string          `json:"producto"`
	Cantidad int             `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
	Total    decimal.Decimal `json:"total"`
}

// PreviewResponse agregación sin efectos de un rango.
type PreviewResponse struct {
	Periodo        PeriodRange             `json:"periodo"`
	Resumen        []ResumenUsuarioPeriodo `json:"resumen"`
	Detalle        []DetalleVenta          `json:"detalle"`
	TotalPeriodo   decimal.Decimal         `json:"total_periodo"`
	TotalAsociados int                     `json:"total_asociados"`
	TotalVentas    int                     `json:"total_ventas"`
}

// GenerateTotals totales del periodo generado.
type GenerateTotals struct {
	Total     decimal.Decimal `json:"total"`
	Asociados int             `json:"asociados"`
	Ventas    int             `json:"ventas"`
}

// GenerateResponse periodo recién creado.
type GenerateResponse struct {
	PeriodoID int64          `json:"periodo_id"`
	Totales   GenerateTotals `json:"totales"`
}

// PeriodoResponse periodo en el listado.
type PeriodoResponse struct {
	ID           int64           `json:"id"`
	Inicio       string          `json:"inicio"`
	Fin          string          `json:"fin"`
	Total        decimal.Decimal `json:"total"`
	Estado       string          `json:"estado"`
	Asociados    int             `json:"asociados"`
	Cobros       int             `json:"cobros"`
	CreatedAt    time.Time       `json:"created_at"`
	DescontadoAt *time.Time      `json:"descontado_at"`
}

// CobroResumen fila por usuario del resumen de un periodo.
type CobroResumen struct {
	CobroID int64           `json:"cobro_id"`
	UserID  int64           `json:"user_id"`
	Nombre  string          `json:"nombre"`
	Ventas  int             `json:"ventas"`
	Items   int             `json:"items"`
	Total   decimal.Decimal `json:"total"`
	Estado  string          `json:"estado"`
}

// MarkSettledResponse resultado de marcar descontado.
type MarkSettledResponse struct {
	OK           bool       `json:"ok"`
	Estado       string     `json:"estado"`
	DescontadoAt *time.Time `json:"descontado_at"`
	Already      bool       `json:"already"`
}

// CuentaPendiente total pendiente por usuario (ventas sin periodo).
type CuentaPendiente struct {
	Usuario        string          `json:"usuario"`
	TotalPendiente decimal.Decimal `json:"total_pendiente"`
}

// ResumenUsuario resumen de quincena por usuario.
type ResumenUsuario struct {
	Usuario string          `json:"usuario"`
	Ventas  int             `json:"ventas"`
	Total   decimal.Decimal `json:"total"`
}

// LineaDetalle venta pendiente de un usuario.
type LineaDetalle struct {
	VentaID  int64           `json:"venta_id"`
	Fecha    time.Time       `json:"fecha"`
	Producto string          `json:"producto"`
	Cantidad int             `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
	Total    decimal.Decimal `json:"total"`
}

// PagoRequest pago en caja de la cuenta de un usuario.
type PagoRequest struct {
	Usuario string          `json:"usuario"`
	Monto   decimal.Decimal `json:"monto"`
}

// PagoResponse resultado de un pago: total saldado y vuelto.
type PagoResponse struct {
	Mensaje string          `json:"mensaje"`
	Total   decimal.Decimal `json:"total"`
	Vuelto  decimal.Decimal `json:"vuelto"`
}
