package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

var _ repository.BillingRepository = (*BillingRepo)(nil)

// BillingRepo periodos, cobros e ítems en memoria.
type BillingRepo struct{ v view }

func (r *BillingRepo) CreatePeriod(_ context.Context, p *entity.BillingPeriod) error {
	return r.v.do(func(st *state) error {
		p.ID = st.next("periodos_cobro")
		if p.CreatedAt.IsZero() {
			p.CreatedAt = time.Now().UTC()
		}
		if p.Estado == "" {
			p.Estado = entity.BillingStatusPendiente
		}
		c := *p
		st.periods[c.ID] = &c
		return nil
	})
}

func (r *BillingRepo) CreateCollection(_ context.Context, c *entity.Collection) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.periods[c.PeriodoID]; !ok {
			return domain.ErrNotFound
		}
		for _, x := range st.cobros {
			if x.PeriodoID == c.PeriodoID && x.UserID == c.UserID {
				return domain.ErrConflict
			}
		}
		c.ID = st.next("cobros")
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
		if c.Estado == "" {
			c.Estado = entity.BillingStatusPendiente
		}
		cp := *c
		st.cobros[cp.ID] = &cp
		return nil
	})
}

func (r *BillingRepo) AddItems(_ context.Context, items []entity.CollectionItem) (int64, error) {
	var n int64
	err := r.v.do(func(st *state) error {
		used := map[int64]bool{}
		for _, it := range st.items {
			used[it.VentaID] = true
		}
		for _, it := range items {
			// mismas claves foráneas que cobro_items en PostgreSQL
			if _, ok := st.cobros[it.CobroID]; !ok {
				return domain.ErrConflict
			}
			if _, ok := st.sales[it.VentaID]; !ok {
				return domain.ErrConflict
			}
			if used[it.VentaID] {
				return domain.ErrConflict
			}
			used[it.VentaID] = true
			it.ID = st.next("cobro_items")
			st.items = append(st.items, it)
			n++
		}
		return nil
	})
	return n, err
}

func (r *BillingRepo) RecomputePeriodTotal(_ context.Context, periodID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.v.do(func(st *state) error {
		p, ok := st.periods[periodID]
		if !ok {
			return domain.ErrNotFound
		}
		for _, c := range st.cobros {
			if c.PeriodoID == periodID {
				total = total.Add(c.Total)
			}
		}
		p.Total = total
		return nil
	})
	return total, err
}

func (r *BillingRepo) ItemsTotal(_ context.Context, periodID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.v.do(func(st *state) error {
		for _, it := range st.items {
			if c, ok := st.cobros[it.CobroID]; ok && c.PeriodoID == periodID {
				total = total.Add(it.Monto)
			}
		}
		return nil
	})
	return total, err
}

func (r *BillingRepo) GetPeriod(_ context.Context, id int64) (*entity.BillingPeriod, error) {
	var out *entity.BillingPeriod
	err := r.v.do(func(st *state) error {
		if p, ok := st.periods[id]; ok {
			c := *p
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *BillingRepo) ListPeriods(_ context.Context) ([]entity.BillingPeriodListing, error) {
	var out []entity.BillingPeriodListing
	err := r.v.do(func(st *state) error {
		for _, p := range st.periods {
			l := entity.BillingPeriodListing{BillingPeriod: *p}
			users := map[int64]bool{}
			for _, c := range st.cobros {
				if c.PeriodoID == p.ID {
					l.Cobros++
					users[c.UserID] = true
				}
			}
			l.Asociados = len(users)
			out = append(out, l)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
		return nil
	})
	return out, err
}

func (r *BillingRepo) PeriodSummary(_ context.Context, periodID int64) ([]entity.CollectionSummary, error) {
	var out []entity.CollectionSummary
	err := r.v.do(func(st *state) error {
		for _, c := range st.cobros {
			if c.PeriodoID != periodID {
				continue
			}
			row := entity.CollectionSummary{CobroID: c.ID, UserID: c.UserID, Total: c.Total, Estado: c.Estado}
			if u, ok := st.users[c.UserID]; ok {
				row.Nombre = u.Username
			}
			for _, it := range st.items {
				if it.CobroID != c.ID {
					continue
				}
				row.Ventas++
				if s, ok := st.sales[it.VentaID]; ok {
					row.Items += s.Cantidad
				}
			}
			out = append(out, row)
		}
		sort.Slice(out, func(i, j int) bool {
			if c := out[i].Total.Cmp(out[j].Total); c != 0 {
				return c > 0
			}
			return out[i].Nombre < out[j].Nombre
		})
		return nil
	})
	return out, err
}

func (r *BillingRepo) PeriodDetail(_ context.Context, periodID int64) ([]entity.SaleLine, error) {
	var out []entity.SaleLine
	err := r.v.do(func(st *state) error {
		out = st.lines(func(s *entity.Sale) bool {
			return s.PeriodoCobroID != nil && *s.PeriodoCobroID == periodID
		})
		sort.Slice(out, func(i, j int) bool {
			if out[i].Usuario != out[j].Usuario {
				return out[i].Usuario < out[j].Usuario
			}
			if !out[i].Fecha.Equal(out[j].Fecha) {
				return out[i].Fecha.Before(out[j].Fecha)
			}
			return out[i].VentaID < out[j].VentaID
		})
		return nil
	})
	return out, err
}

func (r *BillingRepo) MarkSettled(_ context.Context, periodID int64, at time.Time) (bool, error) {
	var changed bool
	err := r.v.do(func(st *state) error {
		p, ok := st.periods[periodID]
		if !ok {
			return domain.ErrNotFound
		}
		if p.Estado != entity.BillingStatusPendiente {
			return nil
		}
		ts := at
		p.Estado = entity.BillingStatusDescontado
		p.DescontadoAt = &ts
		for _, c := range st.cobros {
			if c.PeriodoID == periodID && c.Estado == entity.BillingStatusPendiente {
				cts := at
				c.Estado = entity.BillingStatusDescontado
				c.DescontadoAt = &cts
			}
		}
		changed = true
		return nil
	})
	return changed, err
}
