package sales_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/sales"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/infrastructure/memory"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store *memory.Store
	uc    *sales.SaleUseCase
}

func newFixture(t *testing.T, users ...string) *fixture {
	t.Helper()
	store := memory.New()
	for _, u := range users {
		require.NoError(t, store.Repos().Users.Create(context.Background(), &entity.User{Username: u, Email: u + "@local.test", Role: entity.RoleCliente}))
	}
	return &fixture{store: store, uc: sales.NewSaleUseCase(store, store.Repos().Sales, logger.Nop())}
}

func (f *fixture) product(t *testing.T, precio string, stock int) int64 {
	t.Helper()
	ctx := context.Background()
	p := &entity.Product{Descripcion: "Producto", PrecioVenta: decimal.RequireFromString(precio)}
	require.NoError(t, f.store.Repos().Products.Create(ctx, p))
	require.NoError(t, f.store.Repos().Products.IncrementStock(ctx, p.ID, stock))
	return p.ID
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.store.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_Escenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "ana")
	pid := f.product(t, "750.50", 5)

	s, err := f.uc.CreateSale(ctx, "ana", dto.SaleItemRequest{ProductoID: pid, Cantidad: 3})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2251.50").Equal(s.Total))
	assert.Equal(t, entity.SaleStatusRegistrada, s.Estado)
	assert.Equal(t, 2, f.stock(t, pid))

	_, err = f.uc.CreateSale(ctx, "ana", dto.SaleItemRequest{ProductoID: pid, Cantidad: 3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.stock(t, pid), "el stock no cambia tras el fallo")
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	f := newFixture(t, "ana")
	_, err := f.uc.CreateSale(context.Background(), "ana", dto.SaleItemRequest{ProductoID: 77, Cantidad: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_ConcurrenciaUltimaUnidad(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "ana", "beto")
	pid := f.product(t, "100", 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, u := range []string{"ana", "beto"} {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			_, errs[i] = f.uc.CreateSale(ctx, u, dto.SaleItemRequest{ProductoID: pid, Cantidad: 1})
		}(i, u)
	}
	wg.Wait()

	ok, insuf := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insuf++
		}
	}
	assert.Equal(t, 1, ok, "exactamente una venta gana")
	assert.Equal(t, 1, insuf)
	assert.Zero(t, f.stock(t, pid), "el stock nunca queda negativo")
}

func TestCreateSaleBatch_TodoONada(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "ana")
	p1 := f.product(t, "10", 5)
	p2 := f.product(t, "20", 1)

	_, err := f.uc.CreateSaleBatch(ctx, "ana", []dto.SaleItemRequest{
		{ProductoID: p1, Cantidad: 2},
		{ProductoID: p2, Cantidad: 2},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.stock(t, p1), "la primera línea se revierte")
	assert.Equal(t, 1, f.stock(t, p2))

	mine, err := f.uc.ListMySales(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, mine)

	resp, err := f.uc.CreateSaleBatch(ctx, "ana", []dto.SaleItemRequest{
		{ProductoID: p1, Cantidad: 2},
		{ProductoID: p2, Cantidad: 1},
	})
	require.NoError(t, err)
	assert.Len(t, resp.VentaID, 2)
	assert.Equal(t, "Venta registrada correctamente", resp.Mensaje)
}

func TestCreateSaleBatch_Validaciones(t *testing.T) {
	f := newFixture(t, "ana")
	_, err := f.uc.CreateSaleBatch(context.Background(), "ana", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateSaleBatch(context.Background(), "ana", []dto.SaleItemRequest{{ProductoID: 1, Cantidad: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteSale_RestauraStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "ana", "beto")
	pid := f.product(t, "10", 8)

	s, err := f.uc.CreateSale(ctx, "ana", dto.SaleItemRequest{ProductoID: pid, Cantidad: 3})
	require.NoError(t, err)

	_, err = f.uc.DeleteSale(ctx, s.ID, "beto")
	assert.ErrorIs(t, err, domain.ErrNotFound, "otro usuario no puede borrarla")

	msg, err := f.uc.DeleteSale(ctx, s.ID, "ana")
	require.NoError(t, err)
	assert.Equal(t, "Venta eliminada y stock restaurado", msg.Mensaje)
	assert.Equal(t, 8, f.stock(t, pid))

	_, err = f.uc.DeleteSale(ctx, s.ID, "ana")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSale_ReclamadaPorPeriodo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "ana")
	pid := f.product(t, "10", 8)
	s, err := f.uc.CreateSale(ctx, "ana", dto.SaleItemRequest{ProductoID: pid, Cantidad: 1})
	require.NoError(t, err)

	period := &entity.BillingPeriod{}
	require.NoError(t, f.store.Repos().Billing.CreatePeriod(ctx, period))
	n, err := f.store.Repos().Sales.ClaimForPeriod(ctx, period.ID, []int64{s.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = f.uc.DeleteSale(ctx, s.ID, "ana")
	assert.ErrorIs(t, err, domain.ErrSaleLocked)
	assert.Equal(t, 7, f.stock(t, pid))
}

func TestListMySales_Orden(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "ana", "beto")
	pid := f.product(t, "1", 10)
	for _, u := range []string{"ana", "beto", "ana"} {
		_, err := f.uc.CreateSale(ctx, u, dto.SaleItemRequest{ProductoID: pid, Cantidad: 1})
		require.NoError(t, err)
	}
	mine, err := f.uc.ListMySales(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Greater(t, mine[0].ID, mine[1].ID, "la más reciente primero")
}
