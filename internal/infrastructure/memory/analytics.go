package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas del dashboard sobre ventas vivas e históricas.
type AnalyticsRepo struct{ v view }

type saleFact struct {
	producto int64
	cantidad int
	total    decimal.Decimal
}

func (s *state) facts() []saleFact {
	var out []saleFact
	for _, v := range s.sales {
		out = append(out, saleFact{v.ProductoID, v.Cantidad, v.Total})
	}
	for _, h := range s.hist {
		out = append(out, saleFact{h.ProductoID, h.Cantidad, h.Total})
	}
	return out
}

func (r *AnalyticsRepo) TopSellers(_ context.Context, limit int) ([]entity.TopSeller, error) {
	var out []entity.TopSeller
	err := r.v.do(func(st *state) error {
		idx := map[int64]int{}
		for _, f := range st.facts() {
			p, ok := st.products[f.producto]
			if !ok {
				continue
			}
			i, seen := idx[f.producto]
			if !seen {
				i = len(out)
				idx[f.producto] = i
				out = append(out, entity.TopSeller{ProductoID: p.ID, Descripcion: p.Descripcion, TotalRecaudado: decimal.Zero})
			}
			out[i].UnidadesVendidas += f.cantidad
			out[i].TotalRecaudado = out[i].TotalRecaudado.Add(f.total)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].UnidadesVendidas != out[j].UnidadesVendidas {
				return out[i].UnidadesVendidas > out[j].UnidadesVendidas
			}
			return out[i].ProductoID < out[j].ProductoID
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) Forecast(_ context.Context) ([]entity.DemandForecast, error) {
	var out []entity.DemandForecast
	err := r.v.do(func(st *state) error {
		sum := map[int64]int{}
		count := map[int64]int{}
		for _, f := range st.facts() {
			if _, ok := st.products[f.producto]; !ok {
				continue
			}
			sum[f.producto] += f.cantidad
			count[f.producto]++
		}
		for id, n := range count {
			avg := decimal.NewFromInt(int64(sum[id])).Div(decimal.NewFromInt(int64(n))).Round(0)
			out = append(out, entity.DemandForecast{
				ProductoID:        id,
				Descripcion:       st.products[id].Descripcion,
				UnidadesEstimadas: int(avg.IntPart()),
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ProductoID < out[j].ProductoID })
		return nil
	})
	return out, err
}
