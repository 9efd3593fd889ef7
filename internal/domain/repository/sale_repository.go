package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
)

// SaleRepository puerto para ventas vivas y su archivo histórico.
// "Unclaimed" = periodo_cobro_id IS NULL.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	ListByUser(ctx context.Context, usuario string) ([]*entity.Sale, error)
	// DeleteUnclaimed borra la venta sólo si no fue reclamada por un periodo.
	DeleteUnclaimed(ctx context.Context, id int64) (bool, error)

	// ListPending ventas registradas, sin periodo, con fecha en [from, until).
	ListPending(ctx context.Context, from, until time.Time) ([]entity.SaleLine, error)
	// ClaimForPeriod asigna el periodo a las ventas aún libres y devuelve cuántas reclamó.
	ClaimForPeriod(ctx context.Context, periodID int64, ids []int64) (int64, error)

	PendingAccounts(ctx context.Context) ([]entity.PendingAccount, error)
	ListUnclaimedByUser(ctx context.Context, usuario string) ([]entity.SaleLine, error)
	SumUnclaimedByUser(ctx context.Context, usuario string) (int, decimal.Decimal, error)
	// MoveToHistory copia las ventas libres del usuario a ventas_hist y las borra de ventas.
	MoveToHistory(ctx context.Context, usuario string, at time.Time) (int64, decimal.Decimal, error)
}
