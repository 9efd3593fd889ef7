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

var (
	_ repository.ProductRepository        = (*ProductRepo)(nil)
	_ repository.InventoryEntryRepository = (*EntryRepo)(nil)
)

// ProductRepo productos en memoria.
type ProductRepo struct{ v view }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		p.ID = st.next("products")
		now := time.Now().UTC()
		p.CreatedAt, p.UpdatedAt = now, now
		c := *p
		st.products[c.ID] = &c
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			c := *p
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: las transacciones en memoria ya son exclusivas.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.do(func(st *state) error {
		for _, p := range st.products {
			c := *p
			out = append(out, &c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.do(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		stock := cur.Stock
		c := *p
		c.Stock = stock
		c.CreatedAt = cur.CreatedAt
		c.UpdatedAt = time.Now().UTC()
		st.products[p.ID] = &c
		return nil
	})
}

func (r *ProductRepo) ApplyEntry(_ context.Context, id int64, costo, precioVenta decimal.Decimal, cantidad int) error {
	return r.v.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Costo = costo
		p.PrecioVenta = precioVenta
		p.Stock += cantidad
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
}

func (r *ProductRepo) DecrementStock(_ context.Context, id int64, cantidad int) (bool, error) {
	var ok bool
	err := r.v.do(func(st *state) error {
		p, found := st.products[id]
		if found && p.Stock >= cantidad {
			p.Stock -= cantidad
			ok = true
		}
		return nil
	})
	return ok, err
}

func (r *ProductRepo) IncrementStock(_ context.Context, id int64, cantidad int) error {
	return r.v.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Stock += cantidad
		return nil
	})
}

// EntryRepo entradas de inventario en memoria.
type EntryRepo struct{ v view }

func (r *EntryRepo) Create(_ context.Context, e *entity.InventoryEntry) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.products[e.ProductoID]; !ok {
			return domain.ErrNotFound
		}
		e.ID = st.next("inventory_entries")
		c := *e
		st.entries = append(st.entries, &c)
		return nil
	})
}

func (r *EntryRepo) List(_ context.Context) ([]*entity.InventoryEntry, error) {
	var out []*entity.InventoryEntry
	err := r.v.do(func(st *state) error {
		for _, e := range st.entries {
			c := *e
			out = append(out, &c)
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
