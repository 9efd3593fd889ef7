package memory

import (
	"context"
	"time"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo tomas físicas en memoria.
type AuditRepo struct{ v view }

func (r *AuditRepo) Create(_ context.Context, a *entity.InventoryAudit) error {
	return r.v.do(func(st *state) error {
		a.ID = st.next("inventory_audits")
		if a.Fecha.IsZero() {
			a.Fecha = time.Now().UTC()
		}
		c := *a
		c.Usuarios = append([]string(nil), a.Usuarios...)
		st.audits[c.ID] = &c
		return nil
	})
}

func (r *AuditRepo) AddDetail(_ context.Context, d *entity.AuditDetail) error {
	return r.v.do(func(st *state) error {
		if _, ok := st.audits[d.AuditID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.products[d.ProductoID]; !ok {
			return domain.ErrNotFound
		}
		d.ID = st.next("inventory_audit_details")
		c := *d
		st.details = append(st.details, &c)
		return nil
	})
}

func (r *AuditRepo) GetByID(_ context.Context, id int64) (*entity.InventoryAudit, error) {
	var out *entity.InventoryAudit
	err := r.v.do(func(st *state) error {
		if a, ok := st.audits[id]; ok {
			c := *a
			c.Usuarios = append([]string(nil), a.Usuarios...)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *AuditRepo) Differences(_ context.Context, auditID int64) ([]entity.AuditDifference, error) {
	var out []entity.AuditDifference
	err := r.v.do(func(st *state) error {
		for _, d := range st.details {
			if d.AuditID != auditID {
				continue
			}
			p, ok := st.products[d.ProductoID]
			if !ok {
				continue
			}
			out = append(out, entity.AuditDifference{
				Descripcion:         p.Descripcion,
				Marca:               p.Marca,
				CodigoBarras:        p.CodigoBarras,
				CantidadEncontrada:  d.CantidadEncontrada,
				CantidadTeorica:     d.CantidadTeorica,
				DiferenciaUnidades:  d.DiferenciaUnidades,
				CostoUnitario:       d.CostoUnitario,
				DiferenciaMonetaria: d.DiferenciaMonetaria,
			})
		}
		return nil
	})
	return out, err
}
