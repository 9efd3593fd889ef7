package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/inventory"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/usecase"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUC(store *memory.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(store, store.Repos().Products)
}

func TestCreate_DerivaPrecio(t *testing.T) {
	uc := newUC(memory.New())

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Descripcion: "Frijoles", Marca: "Ducal", Costo: dec("1000"), MargenUtilidad: dec("20"),
	})
	require.NoError(t, err)
	assert.True(t, dec("1200").Equal(p.PrecioVenta))
	assert.Zero(t, p.Stock)
}

func TestUpdate_Parcial(t *testing.T) {
	ctx := context.Background()
	uc := newUC(memory.New())
	p, err := uc.Create(ctx, dto.CreateProductRequest{Descripcion: "Café", Costo: dec("10"), MargenUtilidad: dec("10")})
	require.NoError(t, err)

	marca := "Britt"
	got, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Marca: &marca})
	require.NoError(t, err)
	assert.Equal(t, "Britt", got.Marca)
	assert.Equal(t, "Café", got.Descripcion)
	assert.True(t, dec("11").Equal(got.PrecioVenta))

	margen := dec("50")
	got, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{MargenUtilidad: &margen})
	require.NoError(t, err)
	assert.True(t, dec("15").Equal(got.PrecioVenta), "cambiar margen recalcula el precio")

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Britt", list[0].Marca)
}

func TestUpdate_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newUC(memory.New())

	_, err := uc.Update(ctx, 1, dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin campos")

	marca := "x"
	_, err = uc.Update(ctx, 99, dto.UpdateProductRequest{Marca: &marca})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update y entradas concurrentes
// ──────────────────────────────────────────────────────────────────────────────

// lockingTx registra las transacciones y los bloqueos de fila que pide el caso de uso.
type lockingTx struct {
	store  *memory.Store
	runs   int
	locked []int64
}

func (tx *lockingTx) Run(ctx context.Context, fn func(repository.Repos) error) error {
	tx.runs++
	return tx.store.Run(ctx, func(r repository.Repos) error {
		r.Products = &lockSpy{ProductRepository: r.Products, tx: tx}
		return fn(r)
	})
}

type lockSpy struct {
	repository.ProductRepository
	tx *lockingTx
}

func (l *lockSpy) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	l.tx.locked = append(l.tx.locked, id)
	return l.ProductRepository.GetForUpdate(ctx, id)
}

func TestUpdate_BloqueaLaFilaEnTransaccion(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	tx := &lockingTx{store: store}
	uc := usecase.NewProductUseCase(tx, store.Repos().Products)

	p, err := uc.Create(ctx, dto.CreateProductRequest{Descripcion: "Azúcar", Costo: dec("800"), MargenUtilidad: dec("25")})
	require.NoError(t, err)

	desc := "Azúcar 2kg"
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Descripcion: &desc})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.runs, "la actualización corre en una transacción")
	assert.Equal(t, []int64{p.ID}, tx.locked, "con la fila bloqueada, igual que una entrada")
}

func TestUpdate_ConservaCostoDeEntrada(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	uc := newUC(store)
	entries := inventory.NewEntryUseCase(store, store.Repos().Entries)

	p, err := uc.Create(ctx, dto.CreateProductRequest{Descripcion: "Atún", Costo: dec("1000"), MargenUtilidad: dec("20")})
	require.NoError(t, err)
	_, err = entries.RegisterEntry(ctx, dto.InventoryEntryRequest{ProductoID: p.ID, Cantidad: 6, CostoUnitario: dec("1500")})
	require.NoError(t, err)

	desc := "Atún en aceite"
	got, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Descripcion: &desc})
	require.NoError(t, err)
	assert.True(t, dec("1500").Equal(got.Costo), "el costo de la entrada se mantiene")
	assert.True(t, dec("1800").Equal(got.PrecioVenta))
	assert.Equal(t, 6, got.Stock)
}
