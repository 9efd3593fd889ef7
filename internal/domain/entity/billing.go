package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de periodos y cobros. La transición es pendiente -> descontado, sin retorno.
const (
	BillingStatusPendiente  = "pendiente"
	BillingStatusDescontado = "descontado"
)

// BillingPeriod periodo de cobro: agrupa las ventas de un rango de fechas.
type BillingPeriod struct {
	ID           int64
	Inicio       time.Time
	Fin          time.Time
	Total        decimal.Decimal
	Estado       string
	CreatedAt    time.Time
	DescontadoAt *time.Time
}

// Settled indica si el periodo ya fue descontado.
func (p *BillingPeriod) Settled() bool {
	return p.Estado == BillingStatusDescontado
}

// BillingPeriodListing periodo con conteos de asociados y cobros.
type BillingPeriodListing struct {
	BillingPeriod
	Asociados int
	Cobros    int
}

// Collection cobro: la parte de un usuario dentro de un periodo.
type Collection struct {
	ID           int64
	PeriodoID    int64
	UserID       int64
	Total        decimal.Decimal
	Estado       string
	CreatedAt    time.Time
	DescontadoAt *time.Time
}

// CollectionItem venta incluida en un cobro, con el monto congelado.
type CollectionItem struct {
	ID      int64
	CobroID int64
	VentaID int64
	Monto   decimal.Decimal
}

// CollectionSummary fila de resumen por usuario de un periodo.
type CollectionSummary struct {
	CobroID int64
	UserID  int64
	Nombre  string
	Ventas  int
	Items   int
	Total   decimal.Decimal
	Estado  string
}

// PendingAccount total pendiente de un usuario fuera de periodos.
type PendingAccount struct {
	Usuario        string
	Ventas         int
	TotalPendiente decimal.Decimal
}
