// Package analytics contiene los casos de uso del dashboard: productos más
// vendidos y pronóstico de demanda sobre ventas vivas e históricas.
package analytics

import (
	"context"
	"fmt"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

const (
	topSellersLimit = 10
	forecastPeriod  = "próximo mes"
)

// DashboardUseCase consultas de sólo lectura para el dashboard.
//
// Fuente de datos: AnalyticsRepository. No escribe nada.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// TopSellers los 10 productos con más unidades vendidas.
func (uc *DashboardUseCase) TopSellers(ctx context.Context) ([]dto.ProductoMasVendido, error) {
	rows, err := uc.analyticsRepo.TopSellers(ctx, topSellersLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: más vendidos: %w", err)
	}
	out := make([]dto.ProductoMasVendido, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductoMasVendido{
			ProductoID:       r.ProductoID,
			Descripcion:      r.Descripcion,
			UnidadesVendidas: r.UnidadesVendidas,
			TotalRecaudado:   r.TotalRecaudado.Round(2),
		})
	}
	return out, nil
}

// Forecast promedio de unidades por venta de cada producto, proyectado al próximo mes.
func (uc *DashboardUseCase) Forecast(ctx context.Context) ([]dto.PronosticoDemanda, error) {
	rows, err := uc.analyticsRepo.Forecast(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: pronóstico: %w", err)
	}
	out := make([]dto.PronosticoDemanda, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.PronosticoDemanda{
			ProductoID:        r.ProductoID,
			Descripcion:       r.Descripcion,
			UnidadesEstimadas: r.UnidadesEstimadas,
			Periodo:           forecastPeriod,
		})
	}
	return out, nil
}

// Summary ambas consultas en paralelo.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardResumen, error) {
	type topResult struct {
		rows []dto.ProductoMasVendido
		err  error
	}
	type forecastResult struct {
		rows []dto.PronosticoDemanda
		err  error
	}

	topCh := make(chan topResult, 1)
	fcCh := make(chan forecastResult, 1)

	go func() {
		rows, err := uc.TopSellers(ctx)
		topCh <- topResult{rows, err}
	}()
	go func() {
		rows, err := uc.Forecast(ctx)
		fcCh <- forecastResult{rows, err}
	}()

	top := <-topCh
	fc := <-fcCh
	if top.err != nil {
		return nil, top.err
	}
	if fc.err != nil {
		return nil, fc.err
	}
	return &dto.DashboardResumen{MasVendidos: top.rows, Pronostico: fc.rows}, nil
}
