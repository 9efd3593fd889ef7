package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/infrastructure/memory"
)

func TestRun_RollbackDescartaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	p := &entity.Product{Descripcion: "Arroz", Costo: decimal.NewFromInt(1)}
	require.NoError(t, s.Repos().Products.Create(ctx, p))
	require.NoError(t, s.Repos().Products.IncrementStock(ctx, p.ID, 5))

	boom := errors.New("boom")
	err := s.Run(ctx, func(r repository.Repos) error {
		ok, err := r.Products.DecrementStock(ctx, p.ID, 3)
		require.NoError(t, err)
		require.True(t, ok)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Repos().Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock, "el rollback debe restaurar el stock")
}

func TestDecrementStock_Guard(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	p := &entity.Product{Descripcion: "Leche"}
	require.NoError(t, s.Repos().Products.Create(ctx, p))
	require.NoError(t, s.Repos().Products.IncrementStock(ctx, p.ID, 2))

	ok, err := s.Repos().Products.DecrementStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Repos().Products.DecrementStock(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUsers_Unicos(t *testing.T) {
	ctx := context.Background()
	users := memory.New().Repos().Users

	require.NoError(t, users.Create(ctx, &entity.User{Username: "ana", Email: "ana@x.com", Role: "cliente"}))
	err := users.Create(ctx, &entity.User{Username: "otra", Email: "ANA@x.com", Role: "cliente"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	u, err := users.GetByUsername(ctx, "nadie")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestBillingAddItems_VentaInexistenteEsConflicto(t *testing.T) {
	ctx := context.Background()
	r := memory.New().Repos()
	require.NoError(t, r.Users.Create(ctx, &entity.User{Username: "ana", Email: "ana@x.com", Role: "cliente"}))
	ana, err := r.Users.GetByUsername(ctx, "ana")
	require.NoError(t, err)

	period := &entity.BillingPeriod{}
	require.NoError(t, r.Billing.CreatePeriod(ctx, period))
	cobro := &entity.Collection{PeriodoID: period.ID, UserID: ana.ID}
	require.NoError(t, r.Billing.CreateCollection(ctx, cobro))

	_, err = r.Billing.AddItems(ctx, []entity.CollectionItem{{CobroID: cobro.ID, VentaID: 99, Monto: decimal.NewFromInt(1)}})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
