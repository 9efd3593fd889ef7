package audit_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/audit"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/infrastructure/memory"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/logger"
)

func TestRecordPhysicalCount_OmiteInexistentes(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	p := &entity.Product{Descripcion: "Azúcar", Marca: "Doña María", CodigoBarras: "744", Costo: decimal.RequireFromString("2.50")}
	require.NoError(t, store.Repos().Products.Create(ctx, p))
	require.NoError(t, store.Repos().Products.IncrementStock(ctx, p.ID, 10))

	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})
	uc := audit.NewCountUseCase(store, store.Repos().Audits, log)

	res, err := uc.RecordPhysicalCount(ctx, dto.PhysicalCountRequest{
		Usuarios: []string{"ana", "beto"},
		Detalles: []dto.PhysicalCountLine{
			{ProductoID: p.ID, CantidadEncontrada: 8},
			{ProductoID: 999, CantidadEncontrada: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Registrados)
	assert.Equal(t, []int64{999}, res.Omitidos)
	assert.Contains(t, buf.String(), "omitidos", "el salto queda registrado como warning")

	diffs, err := uc.GetDifferences(ctx, res.AuditID)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, "Azúcar", diffs[0].Descripcion)
	assert.Equal(t, 10, diffs[0].CantidadTeorica)
	assert.Equal(t, -2, diffs[0].DiferenciaUnidades)
	assert.True(t, decimal.RequireFromString("5.00").Equal(diffs[0].DiferenciaMonetaria))
}

func TestRecordPhysicalCount_Validaciones(t *testing.T) {
	store := memory.New()
	uc := audit.NewCountUseCase(store, store.Repos().Audits, logger.Nop())

	_, err := uc.RecordPhysicalCount(context.Background(), dto.PhysicalCountRequest{
		Usuarios: []string{" "},
		Detalles: []dto.PhysicalCountLine{{ProductoID: 1, CantidadEncontrada: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RecordPhysicalCount(context.Background(), dto.PhysicalCountRequest{
		Usuarios: []string{"ana"},
		Detalles: []dto.PhysicalCountLine{{ProductoID: 1, CantidadEncontrada: -1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetDifferences_AuditoriaInexistente(t *testing.T) {
	store := memory.New()
	uc := audit.NewCountUseCase(store, store.Repos().Audits, logger.Nop())

	_, err := uc.GetDifferences(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
