package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Update nunca toca stock: el stock sólo se mueve con ApplyEntry, DecrementStock e IncrementStock.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ApplyEntry(ctx context.Context, id int64, costo, precioVenta decimal.Decimal, cantidad int) error
	// DecrementStock resta cantidad sólo si stock >= cantidad. false = guard no satisfecho.
	DecrementStock(ctx context.Context, id int64, cantidad int) (bool, error)
	IncrementStock(ctx context.Context, id int64, cantidad int) error
}
