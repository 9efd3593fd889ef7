// Package memory implementa los repositorios sobre estructuras en memoria.
// Run serializa las transacciones y restaura el estado previo si fn falla, así
// los casos de uso y handlers se prueban con la misma semántica que en PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

type state struct {
	seq      map[string]int64
	users    map[int64]*entity.User
	products map[int64]*entity.Product
	entries  []*entity.InventoryEntry
	sales    map[int64]*entity.Sale
	hist     []entity.HistoricalSale
	audits   map[int64]*entity.InventoryAudit
	details  []*entity.AuditDetail
	periods  map[int64]*entity.BillingPeriod
	cobros   map[int64]*entity.Collection
	items    []entity.CollectionItem
}

func newState() *state {
	return &state{
		seq:      map[string]int64{},
		users:    map[int64]*entity.User{},
		products: map[int64]*entity.Product{},
		sales:    map[int64]*entity.Sale{},
		audits:   map[int64]*entity.InventoryAudit{},
		periods:  map[int64]*entity.BillingPeriod{},
		cobros:   map[int64]*entity.Collection{},
	}
}

func (s *state) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.seq {
		c.seq[k] = v
	}
	for k, v := range s.users {
		u := *v
		c.users[k] = &u
	}
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for _, v := range s.entries {
		e := *v
		c.entries = append(c.entries, &e)
	}
	for k, v := range s.sales {
		c.sales[k] = copySale(v)
	}
	c.hist = append(c.hist, s.hist...)
	for k, v := range s.audits {
		a := *v
		a.Usuarios = append([]string(nil), v.Usuarios...)
		c.audits[k] = &a
	}
	for _, v := range s.details {
		d := *v
		c.details = append(c.details, &d)
	}
	for k, v := range s.periods {
		p := *v
		c.periods[k] = &p
	}
	for k, v := range s.cobros {
		cb := *v
		c.cobros[k] = &cb
	}
	c.items = append(c.items, s.items...)
	return c
}

func copySale(v *entity.Sale) *entity.Sale {
	s := *v
	if v.PeriodoCobroID != nil {
		id := *v.PeriodoCobroID
		s.PeriodoCobroID = &id
	}
	return &s
}

// view acceso al estado; fuera de una tx cada llamada toma el lock.
type view struct {
	s    *Store
	inTx bool
}

func (v view) do(fn func(st *state) error) error {
	if !v.inTx {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	return fn(v.s.st)
}

// Repos devuelve repositorios no transaccionales (cada operación es atómica por sí sola).
func (s *Store) Repos() repository.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) repository.Repos {
	v := view{s: s, inTx: inTx}
	return repository.Repos{
		Users:    &UserRepo{v},
		Products: &ProductRepo{v},
		Entries:  &EntryRepo{v},
		Sales:    &SaleRepo{v},
		Audits:   &AuditRepo{v},
		Billing:  &BillingRepo{v},
	}
}

// Analytics devuelve el repositorio de consultas del dashboard.
func (s *Store) Analytics() *AnalyticsRepo {
	return &AnalyticsRepo{view{s: s}}
}

// Run ejecuta fn en exclusión mutua; si fn falla se descartan todos sus cambios.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(s.repos(true)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}
