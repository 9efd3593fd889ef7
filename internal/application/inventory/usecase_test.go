package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/inventory"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRegisterEntry_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()
	p := &entity.Product{Descripcion: "Atún", MargenUtilidad: dec("25"), Costo: dec("3")}
	require.NoError(t, repos.Products.Create(ctx, p))
	require.NoError(t, repos.Products.IncrementStock(ctx, p.ID, 4))

	uc := inventory.NewEntryUseCase(store, repos.Entries)
	e, err := uc.RegisterEntry(ctx, dto.InventoryEntryRequest{ProductoID: p.ID, Cantidad: 10, CostoUnitario: dec("5.0")})
	require.NoError(t, err)
	assert.NotZero(t, e.ID)

	got, err := repos.Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 14, got.Stock, "el stock sube exactamente en la cantidad")
	assert.True(t, dec("5").Equal(got.Costo))
	assert.True(t, dec("6.25").Equal(got.PrecioVenta), "round(5*(1+25/100), 2)")
}

func TestRegisterEntry_ProductoInexistente(t *testing.T) {
	store := memory.New()
	uc := inventory.NewEntryUseCase(store, store.Repos().Entries)

	_, err := uc.RegisterEntry(context.Background(), dto.InventoryEntryRequest{ProductoID: 42, Cantidad: 1, CostoUnitario: dec("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "no debe quedar una entrada huérfana")
}

func TestRegisterEntry_Invalida(t *testing.T) {
	store := memory.New()
	uc := inventory.NewEntryUseCase(store, store.Repos().Entries)

	for _, in := range []dto.InventoryEntryRequest{
		{ProductoID: 1, Cantidad: 0, CostoUnitario: dec("1")},
		{ProductoID: 1, Cantidad: 2, CostoUnitario: dec("0")},
		{ProductoID: 0, Cantidad: 2, CostoUnitario: dec("1")},
	} {
		_, err := uc.RegisterEntry(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestListEntries_MasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	p := &entity.Product{Descripcion: "Sal"}
	require.NoError(t, store.Repos().Products.Create(ctx, p))
	uc := inventory.NewEntryUseCase(store, store.Repos().Entries)

	for i := 1; i <= 3; i++ {
		_, err := uc.RegisterEntry(ctx, dto.InventoryEntryRequest{ProductoID: p.ID, Cantidad: i, CostoUnitario: dec("1")})
		require.NoError(t, err)
	}
	list, err := uc.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 3, list[0].Cantidad)
	assert.Equal(t, 1, list[2].Cantidad)
}
