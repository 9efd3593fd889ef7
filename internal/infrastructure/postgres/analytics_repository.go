package postgres

import (
	"context"
	"fmt"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// salesFacts ventas vivas más las liquidadas.
const salesFacts = `
	SELECT producto_id, cantidad, total FROM ventas
	UNION ALL
	SELECT producto_id, cantidad, total FROM ventas_hist`

// AnalyticsRepo consultas de sólo lectura del dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// TopSellers productos con más unidades vendidas.
func (r *AnalyticsRepo) TopSellers(ctx context.Context, limit int) ([]entity.TopSeller, error) {
	query := `
	SELECT p.id, p.descripcion, SUM(f.cantidad) AS unidades, SUM(f.total) AS recaudado
	FROM (` + salesFacts + `) f
	JOIN products p ON p.id = f.producto_id
	GROUP BY p.id, p.descripcion
	ORDER BY unidades DESC, p.id
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top sellers: %w", err)
	}
	defer rows.Close()

	var out []entity.TopSeller
	for rows.Next() {
		var t entity.TopSeller
		if err := rows.Scan(&t.ProductoID, &t.Descripcion, &t.UnidadesVendidas, &t.TotalRecaudado); err != nil {
			return nil, fmt.Errorf("scan top seller: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Forecast promedio redondeado de unidades por venta de cada producto.
func (r *AnalyticsRepo) Forecast(ctx context.Context) ([]entity.DemandForecast, error) {
	query := `
	SELECT p.id, p.descripcion, ROUND(AVG(f.cantidad))::INT
	FROM (` + salesFacts + `) f
	JOIN products p ON p.id = f.producto_id
	GROUP BY p.id, p.descripcion
	ORDER BY p.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("demand forecast: %w", err)
	}
	defer rows.Close()

	var out []entity.DemandForecast
	for rows.Next() {
		var f entity.DemandForecast
		if err := rows.Scan(&f.ProductoID, &f.Descripcion, &f.UnidadesEstimadas); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
