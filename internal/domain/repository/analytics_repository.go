package repository

import (
	"context"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
)

// AnalyticsRepository consultas de lectura sobre ventas vivas e históricas.
type AnalyticsRepository interface {
	TopSellers(ctx context.Context, limit int) ([]entity.TopSeller, error)
	Forecast(ctx context.Context) ([]entity.DemandForecast, error)
}
