package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

var _ repository.BillingRepository = (*BillingRepo)(nil)

// BillingRepo periodos_cobro, cobros y cobro_items.
type BillingRepo struct {
	q Querier
}

// NewBillingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillingRepository(q Querier) *BillingRepo {
	return &BillingRepo{q: q}
}

// CreatePeriod inserta la cabecera del periodo.
func (r *BillingRepo) CreatePeriod(ctx context.Context, p *entity.BillingPeriod) error {
	if p.Estado == "" {
		p.Estado = entity.BillingStatusPendiente
	}
	var createdAt any
	if !p.CreatedAt.IsZero() {
		createdAt = p.CreatedAt
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO periodos_cobro (inicio, fin, total, estado, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		RETURNING id, created_at`,
		p.Inicio, p.Fin, p.Total, p.Estado, createdAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert billing period: %w", err)
	}
	return nil
}

// CreateCollection inserta el cobro de un usuario. Un segundo cobro para el mismo
// (periodo, usuario) -> ErrConflict.
func (r *BillingRepo) CreateCollection(ctx context.Context, c *entity.Collection) error {
	if c.Estado == "" {
		c.Estado = entity.BillingStatusPendiente
	}
	var createdAt any
	if !c.CreatedAt.IsZero() {
		createdAt = c.CreatedAt
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO cobros (periodo_id, user_id, total, estado, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		RETURNING id, created_at`,
		c.PeriodoID, c.UserID, c.Total, c.Estado, createdAt,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrConflict
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

// AddItems carga los ítems con COPY. venta_id es UNIQUE: si otro periodo ya tomó una
// venta el COPY entero falla con ErrConflict.
func (r *BillingRepo) AddItems(ctx context.Context, items []entity.CollectionItem) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"cobro_items"},
		[]string{"cobro_id", "venta_id", "monto"},
		pgx.CopyFromSlice(len(items), func(i int) ([]any, error) {
			return []any{items[i].CobroID, items[i].VentaID, items[i].Monto}, nil
		}),
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return 0, domain.ErrConflict
		case isForeignKeyViolation(err):
			// una venta desapareció (eliminada o liquidada) entre la lectura y el COPY
			return 0, fmt.Errorf("venta ya no existe: %w", domain.ErrConflict)
		}
		return 0, fmt.Errorf("copy collection items: %w", err)
	}
	return n, nil
}

// RecomputePeriodTotal fija el total del periodo como la suma de sus cobros.
func (r *BillingRepo) RecomputePeriodTotal(ctx context.Context, periodID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		UPDATE periodos_cobro p
		SET total = COALESCE((SELECT SUM(c.total) FROM cobros c WHERE c.periodo_id = p.id), 0)
		WHERE p.id = $1
		RETURNING p.total`, periodID,
	).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("recompute period total: %w", err)
	}
	return total, nil
}

// ItemsTotal suma de los montos de todos los ítems del periodo.
func (r *BillingRepo) ItemsTotal(ctx context.Context, periodID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(ci.monto), 0)
		FROM cobro_items ci
		JOIN cobros c ON c.id = ci.cobro_id
		WHERE c.periodo_id = $1`, periodID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("items total: %w", err)
	}
	return total, nil
}

// GetPeriod obtiene un periodo por id.
func (r *BillingRepo) GetPeriod(ctx context.Context, id int64) (*entity.BillingPeriod, error) {
	var p entity.BillingPeriod
	err := r.q.QueryRow(ctx, `
		SELECT id, inicio, fin, total, estado, created_at, descontado_at
		FROM periodos_cobro WHERE id = $1`, id,
	).Scan(&p.ID, &p.Inicio, &p.Fin, &p.Total, &p.Estado, &p.CreatedAt, &p.DescontadoAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get billing period: %w", err)
	}
	return &p, nil
}

// ListPeriods todos los periodos con conteo de asociados y cobros, el más reciente primero.
func (r *BillingRepo) ListPeriods(ctx context.Context) ([]entity.BillingPeriodListing, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.inicio, p.fin, p.total, p.estado, p.created_at, p.descontado_at,
		       COUNT(DISTINCT c.user_id), COUNT(c.id)
		FROM periodos_cobro p
		LEFT JOIN cobros c ON c.periodo_id = p.id
		GROUP BY p.id
		ORDER BY p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list billing periods: %w", err)
	}
	defer rows.Close()

	var out []entity.BillingPeriodListing
	for rows.Next() {
		var l entity.BillingPeriodListing
		if err := rows.Scan(&l.ID, &l.Inicio, &l.Fin, &l.Total, &l.Estado, &l.CreatedAt, &l.DescontadoAt,
			&l.Asociados, &l.Cobros); err != nil {
			return nil, fmt.Errorf("scan billing period: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// PeriodSummary un renglón por cobro con conteo de ventas e ítems.
func (r *BillingRepo) PeriodSummary(ctx context.Context, periodID int64) ([]entity.CollectionSummary, error) {
	rows, err := r.q.Query(ctx, `
		SELECT c.id, c.user_id, u.username, COUNT(ci.id), COALESCE(SUM(v.cantidad), 0), c.total, c.estado
		FROM cobros c
		JOIN users u ON u.id = c.user_id
		LEFT JOIN cobro_items ci ON ci.cobro_id = c.id
		LEFT JOIN ventas v ON v.id = ci.venta_id
		WHERE c.periodo_id = $1
		GROUP BY c.id, u.username
		ORDER BY c.total DESC, u.username`, periodID)
	if err != nil {
		return nil, fmt.Errorf("period summary: %w", err)
	}
	defer rows.Close()

	var out []entity.CollectionSummary
	for rows.Next() {
		var s entity.CollectionSummary
		if err := rows.Scan(&s.CobroID, &s.UserID, &s.Nombre, &s.Ventas, &s.Items, &s.Total, &s.Estado); err != nil {
			return nil, fmt.Errorf("scan period summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// PeriodDetail ventas reclamadas por el periodo, agrupadas por usuario.
func (r *BillingRepo) PeriodDetail(ctx context.Context, periodID int64) ([]entity.SaleLine, error) {
	rows, err := r.q.Query(ctx, saleLineSelect+`
		WHERE v.periodo_cobro_id = $1
		ORDER BY v.usuario, v.fecha, v.id`, periodID)
	if err != nil {
		return nil, fmt.Errorf("period detail: %w", err)
	}
	return collectLines(rows)
}

// MarkSettled pendiente -> descontado para el periodo y sus cobros. false si ya estaba descontado.
func (r *BillingRepo) MarkSettled(ctx context.Context, periodID int64, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE periodos_cobro SET estado = $2, descontado_at = $3
		WHERE id = $1 AND estado = $4`,
		periodID, entity.BillingStatusDescontado, at, entity.BillingStatusPendiente)
	if err != nil {
		return false, fmt.Errorf("settle billing period: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		p, err := r.GetPeriod(ctx, periodID)
		if err != nil {
			return false, err
		}
		if p == nil {
			return false, domain.ErrNotFound
		}
		return false, nil
	}
	if _, err := r.q.Exec(ctx, `
		UPDATE cobros SET estado = $2, descontado_at = $3
		WHERE periodo_id = $1 AND estado = $4`,
		periodID, entity.BillingStatusDescontado, at, entity.BillingStatusPendiente); err != nil {
		return false, fmt.Errorf("settle collections: %w", err)
	}
	return true, nil
}
