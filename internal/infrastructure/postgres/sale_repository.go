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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, usuario, producto_id, cantidad, precio_unitario, total, fecha, estado, periodo_cobro_id`

// saleLineSelect ventas unidas a usuario y producto; el WHERE lo pone cada consulta.
const saleLineSelect = `
	SELECT v.id, v.fecha, v.usuario, u.id, p.descripcion, v.cantidad, v.precio_unitario, v.total
	FROM ventas v
	JOIN users u    ON u.username = v.usuario
	JOIN products p ON p.id = v.producto_id`

// SaleRepo ventas vivas y su archivo ventas_hist.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.Usuario, &s.ProductoID, &s.Cantidad, &s.PrecioUnitario,
		&s.Total, &s.Fecha, &s.Estado, &s.PeriodoCobroID); err != nil {
		return nil, err
	}
	return &s, nil
}

func collectLines(rows pgx.Rows) ([]entity.SaleLine, error) {
	defer rows.Close()
	var out []entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.VentaID, &l.Fecha, &l.Usuario, &l.UserID, &l.Producto,
			&l.Cantidad, &l.PrecioUnitario, &l.Total); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Create inserta la venta. Usuario o producto inexistente -> ErrNotFound.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	if s.Estado == "" {
		s.Estado = entity.SaleStatusRegistrada
	}
	var fecha any
	if !s.Fecha.IsZero() {
		fecha = s.Fecha
	}
	query := `
		INSERT INTO ventas (usuario, producto_id, cantidad, precio_unitario, total, fecha, estado)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()), $7)
		RETURNING id, fecha`
	err := r.q.QueryRow(ctx, query,
		s.Usuario, s.ProductoID, s.Cantidad, s.PrecioUnitario, s.Total, fecha, s.Estado,
	).Scan(&s.ID, &s.Fecha)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta viva.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM ventas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListByUser ventas vivas del usuario, la más reciente primero.
func (r *SaleRepo) ListByUser(ctx context.Context, usuario string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+saleColumns+` FROM ventas WHERE usuario = $1 ORDER BY fecha DESC, id DESC`, usuario)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteUnclaimed borra la venta sólo si ningún periodo la reclamó.
func (r *SaleRepo) DeleteUnclaimed(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM ventas WHERE id = $1 AND periodo_cobro_id IS NULL`, id)
	if err != nil {
		return false, fmt.Errorf("delete sale: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListPending ventas registradas y libres con fecha en [from, until).
func (r *SaleRepo) ListPending(ctx context.Context, from, until time.Time) ([]entity.SaleLine, error) {
	rows, err := r.q.Query(ctx, saleLineSelect+`
		WHERE v.estado = $1 AND v.periodo_cobro_id IS NULL
		  AND v.fecha >= $2 AND v.fecha < $3
		ORDER BY v.fecha, v.id`,
		entity.SaleStatusRegistrada, from, until)
	if err != nil {
		return nil, fmt.Errorf("list pending sales: %w", err)
	}
	return collectLines(rows)
}

// ClaimForPeriod asigna el periodo a las ventas que sigan libres.
func (r *SaleRepo) ClaimForPeriod(ctx context.Context, periodID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE ventas SET periodo_cobro_id = $1 WHERE id = ANY($2) AND periodo_cobro_id IS NULL`,
		periodID, ids)
	if err != nil {
		return 0, fmt.Errorf("claim sales: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// PendingAccounts total libre por usuario, mayor primero.
func (r *SaleRepo) PendingAccounts(ctx context.Context) ([]entity.PendingAccount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT usuario, COUNT(*), SUM(total)
		FROM ventas
		WHERE periodo_cobro_id IS NULL
		GROUP BY usuario
		HAVING SUM(total) > 0
		ORDER BY SUM(total) DESC, usuario`)
	if err != nil {
		return nil, fmt.Errorf("pending accounts: %w", err)
	}
	defer rows.Close()

	var out []entity.PendingAccount
	for rows.Next() {
		var a entity.PendingAccount
		if err := rows.Scan(&a.Usuario, &a.Ventas, &a.TotalPendiente); err != nil {
			return nil, fmt.Errorf("scan pending account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListUnclaimedByUser ventas libres del usuario, la más reciente primero.
func (r *SaleRepo) ListUnclaimedByUser(ctx context.Context, usuario string) ([]entity.SaleLine, error) {
	rows, err := r.q.Query(ctx, saleLineSelect+`
		WHERE v.usuario = $1 AND v.periodo_cobro_id IS NULL
		ORDER BY v.fecha DESC, v.id DESC`, usuario)
	if err != nil {
		return nil, fmt.Errorf("list unclaimed sales: %w", err)
	}
	return collectLines(rows)
}

// SumUnclaimedByUser cantidad y total de ventas libres; bloquea esas filas hasta el fin de la tx.
func (r *SaleRepo) SumUnclaimedByUser(ctx context.Context, usuario string) (int, decimal.Decimal, error) {
	rows, err := r.q.Query(ctx,
		`SELECT total FROM ventas WHERE usuario = $1 AND periodo_cobro_id IS NULL FOR UPDATE`, usuario)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("sum unclaimed sales: %w", err)
	}
	defer rows.Close()

	n, total := 0, decimal.Zero
	for rows.Next() {
		var t decimal.Decimal
		if err := rows.Scan(&t); err != nil {
			return 0, decimal.Zero, fmt.Errorf("scan sale total: %w", err)
		}
		n++
		total = total.Add(t)
	}
	return n, total, rows.Err()
}

// MoveToHistory copia a ventas_hist y borra de ventas en una sola sentencia.
func (r *SaleRepo) MoveToHistory(ctx context.Context, usuario string, at time.Time) (int64, decimal.Decimal, error) {
	query := `
		WITH moved AS (
			DELETE FROM ventas
			WHERE usuario = $1 AND periodo_cobro_id IS NULL
			RETURNING id, usuario, producto_id, cantidad, precio_unitario, total, fecha
		), archived AS (
			INSERT INTO ventas_hist (id, usuario, producto_id, cantidad, precio_unitario, total, fecha, fecha_liquidacion)
			SELECT id, usuario, producto_id, cantidad, precio_unitario, total, fecha, $2 FROM moved
			RETURNING total
		)
		SELECT COUNT(*), COALESCE(SUM(total), 0) FROM archived`
	var n int64
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, usuario, at).Scan(&n, &total); err != nil {
		return 0, decimal.Zero, fmt.Errorf("move sales to history: %w", err)
	}
	return n, total, nil
}
