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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct{ v view }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.products[s.ProductoID]; !ok {
			return domain.ErrNotFound
		}
		if st.userByName(s.Usuario) == nil {
			return domain.ErrNotFound
		}
		s.ID = st.next("ventas")
		if s.Estado == "" {
			s.Estado = entity.SaleStatusRegistrada
		}
		st.sales[s.ID] = copySale(s)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id int64) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.do(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = copySale(s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) ListByUser(_ context.Context, usuario string) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.v.do(func(st *state) error {
		for _, s := range st.sales {
			if s.Usuario == usuario {
				out = append(out, copySale(s))
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Fecha.Equal(out[j].Fecha) {
				return out[i].Fecha.After(out[j].Fecha)
			}
			return out[i].ID > out[j].ID
		})
		return nil
	})
	return out, err
}

func (r *SaleRepo) DeleteUnclaimed(_ context.Context, id int64) (bool, error) {
	var ok bool
	err := r.v.do(func(st *state) error {
		if s, found := st.sales[id]; found && !s.Claimed() {
			delete(st.sales, id)
			ok = true
		}
		return nil
	})
	return ok, err
}

func (r *SaleRepo) ListPending(_ context.Context, from, until time.Time) ([]entity.SaleLine, error) {
	var out []entity.SaleLine
	err := r.v.do(func(st *state) error {
		out = st.lines(func(s *entity.Sale) bool {
			return s.Estado == entity.SaleStatusRegistrada && !s.Claimed() &&
				!s.Fecha.Before(from) && s.Fecha.Before(until)
		})
		sortAsc(out)
		return nil
	})
	return out, err
}

func (r *SaleRepo) ClaimForPeriod(_ context.Context, periodID int64, ids []int64) (int64, error) {
	var n int64
	err := r.v.do(func(st *state) error {
		for _, id := range ids {
			s, ok := st.sales[id]
			if !ok || s.Claimed() {
				continue
			}
			pid := periodID
			s.PeriodoCobroID = &pid
			n++
		}
		return nil
	})
	return n, err
}

func (r *SaleRepo) PendingAccounts(_ context.Context) ([]entity.PendingAccount, error) {
	var out []entity.PendingAccount
	err := r.v.do(func(st *state) error {
		idx := map[string]int{}
		for _, s := range st.sales {
			if s.Claimed() {
				continue
			}
			i, ok := idx[s.Usuario]
			if !ok {
				i = len(out)
				idx[s.Usuario] = i
				out = append(out, entity.PendingAccount{Usuario: s.Usuario, TotalPendiente: decimal.Zero})
			}
			out[i].Ventas++
			out[i].TotalPendiente = out[i].TotalPendiente.Add(s.Total)
		}
		kept := out[:0]
		for _, a := range out {
			if a.TotalPendiente.GreaterThan(decimal.Zero) {
				kept = append(kept, a)
			}
		}
		out = kept
		sort.Slice(out, func(i, j int) bool {
			if c := out[i].TotalPendiente.Cmp(out[j].TotalPendiente); c != 0 {
				return c > 0
			}
			return out[i].Usuario < out[j].Usuario
		})
		return nil
	})
	return out, err
}

func (r *SaleRepo) ListUnclaimedByUser(_ context.Context, usuario string) ([]entity.SaleLine, error) {
	var out []entity.SaleLine
	err := r.v.do(func(st *state) error {
		out = st.lines(func(s *entity.Sale) bool { return s.Usuario == usuario && !s.Claimed() })
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Fecha.Equal(out[j].Fecha) {
				return out[i].Fecha.After(out[j].Fecha)
			}
			return out[i].VentaID > out[j].VentaID
		})
		return nil
	})
	return out, err
}

func (r *SaleRepo) SumUnclaimedByUser(_ context.Context, usuario string) (int, decimal.Decimal, error) {
	n, total := 0, decimal.Zero
	err := r.v.do(func(st *state) error {
		for _, s := range st.sales {
			if s.Usuario == usuario && !s.Claimed() {
				n++
				total = total.Add(s.Total)
			}
		}
		return nil
	})
	return n, total, err
}

func (r *SaleRepo) MoveToHistory(_ context.Context, usuario string, at time.Time) (int64, decimal.Decimal, error) {
	var n int64
	total := decimal.Zero
	err := r.v.do(func(st *state) error {
		ids := make([]int64, 0)
		for id, s := range st.sales {
			if s.Usuario == usuario && !s.Claimed() {
				ids = append(ids, id)
			}
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			s := st.sales[id]
			st.hist = append(st.hist, entity.HistoricalSale{Sale: *copySale(s), FechaLiquidacion: at})
			delete(st.sales, id)
			n++
			total = total.Add(s.Total)
		}
		return nil
	})
	return n, total, err
}

// History devuelve las ventas liquidadas (para inspección en tests).
func (s *Store) History() []entity.HistoricalSale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.HistoricalSale(nil), s.st.hist...)
}

// lines une ventas con usuario y producto (inner join, como en SQL).
func (s *state) lines(match func(*entity.Sale) bool) []entity.SaleLine {
	var out []entity.SaleLine
	for _, v := range s.sales {
		if !match(v) {
			continue
		}
		u := s.userByName(v.Usuario)
		p, ok := s.products[v.ProductoID]
		if u == nil || !ok {
			continue
		}
		out = append(out, entity.SaleLine{
			VentaID:        v.ID,
			Fecha:          v.Fecha,
			Usuario:        v.Usuario,
			UserID:         u.ID,
			Producto:       p.Descripcion,
			Cantidad:       v.Cantidad,
			PrecioUnitario: v.PrecioUnitario,
			Total:          v.Total,
		})
	}
	return out
}

func sortAsc(ls []entity.SaleLine) {
	sort.Slice(ls, func(i, j int) bool {
		if !ls[i].Fecha.Equal(ls[j].Fecha) {
			return ls[i].Fecha.Before(ls[j].Fecha)
		}
		return ls[i].VentaID < ls[j].VentaID
	})
}
