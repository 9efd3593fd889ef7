package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
)

// BillingRepository puerto para periodos de cobro, cobros e ítems.
type BillingRepository interface {
	CreatePeriod(ctx context.Context, p *entity.BillingPeriod) error
	CreateCollection(ctx context.Context, c *entity.Collection) error
	AddItems(ctx context.Context, items []entity.CollectionItem) (int64, error)
	// RecomputePeriodTotal fija periodos_cobro.total = suma de sus cobros y lo devuelve.
	RecomputePeriodTotal(ctx context.Context, periodID int64) (decimal.Decimal, error)
	ItemsTotal(ctx context.Context, periodID int64) (decimal.Decimal, error)

	GetPeriod(ctx context.Context, id int64) (*entity.BillingPeriod, error)
	ListPeriods(ctx context.Context) ([]entity.BillingPeriodListing, error)
	PeriodSummary(ctx context.Context, periodID int64) ([]entity.CollectionSummary, error)
	PeriodDetail(ctx context.Context, periodID int64) ([]entity.SaleLine, error)
	// MarkSettled pasa periodo y cobros de pendiente a descontado. false = ya estaba descontado.
	MarkSettled(ctx context.Context, periodID int64, at time.Time) (bool, error)
}
