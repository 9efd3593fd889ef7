package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/audit"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo tomas físicas y su detalle.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create inserta la cabecera; los participantes se guardan separados por coma.
func (r *AuditRepo) Create(ctx context.Context, a *entity.InventoryAudit) error {
	var fecha any
	if !a.Fecha.IsZero() {
		fecha = a.Fecha
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO inventory_audits (fecha, usuarios) VALUES (COALESCE($1, NOW()), $2) RETURNING id, fecha`,
		fecha, audit.JoinParticipants(a.Usuarios),
	).Scan(&a.ID, &a.Fecha)
	if err != nil {
		return fmt.Errorf("insert inventory audit: %w", err)
	}
	return nil
}

// AddDetail inserta una línea ya calculada.
func (r *AuditRepo) AddDetail(ctx context.Context, d *entity.AuditDetail) error {
	query := `
		INSERT INTO inventory_audit_details (audit_id, producto_id, cantidad_encontrada, cantidad_teorica,
			diferencia_unidades, costo_unitario, diferencia_monetaria)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		d.AuditID, d.ProductoID, d.CantidadEncontrada, d.CantidadTeorica,
		d.DiferenciaUnidades, d.CostoUnitario, d.DiferenciaMonetaria,
	).Scan(&d.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert audit detail: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una toma física.
func (r *AuditRepo) GetByID(ctx context.Context, id int64) (*entity.InventoryAudit, error) {
	var a entity.InventoryAudit
	var usuarios string
	err := r.q.QueryRow(ctx, `SELECT id, fecha, usuarios FROM inventory_audits WHERE id = $1`, id).
		Scan(&a.ID, &a.Fecha, &usuarios)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory audit: %w", err)
	}
	a.Usuarios = audit.SplitParticipants(usuarios)
	return &a, nil
}

// Differences detalle de la toma unido a los datos del producto.
func (r *AuditRepo) Differences(ctx context.Context, auditID int64) ([]entity.AuditDifference, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.descripcion, p.marca, p.codigo_barras, d.cantidad_encontrada, d.cantidad_teorica,
		       d.diferencia_unidades, d.costo_unitario, d.diferencia_monetaria
		FROM inventory_audit_details d
		JOIN products p ON p.id = d.producto_id
		WHERE d.audit_id = $1
		ORDER BY d.id`, auditID)
	if err != nil {
		return nil, fmt.Errorf("audit differences: %w", err)
	}
	defer rows.Close()

	var out []entity.AuditDifference
	for rows.Next() {
		var x entity.AuditDifference
		if err := rows.Scan(&x.Descripcion, &x.Marca, &x.CodigoBarras, &x.CantidadEncontrada,
			&x.CantidadTeorica, &x.DiferenciaUnidades, &x.CostoUnitario, &x.DiferenciaMonetaria); err != nil {
			return nil, fmt.Errorf("scan audit difference: %w", err)
		}
		out = append(out, x)
	}
	return out, rows.Err()
}
