package postgres

import (
	"context"
	"fmt"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

var _ repository.InventoryEntryRepository = (*InventoryEntryRepo)(nil)

// InventoryEntryRepo entradas de mercadería (append-only).
type InventoryEntryRepo struct {
	q Querier
}

// NewInventoryEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryEntryRepository(q Querier) *InventoryEntryRepo {
	return &InventoryEntryRepo{q: q}
}

// Create inserta la entrada; si Fecha viene vacía usa NOW().
func (r *InventoryEntryRepo) Create(ctx context.Context, e *entity.InventoryEntry) error {
	query := `
		INSERT INTO inventory_entries (producto_id, cantidad, costo_unitario, fecha)
		VALUES ($1, $2, $3, COALESCE($4, NOW()))
		RETURNING id, fecha`
	var fecha any
	if !e.Fecha.IsZero() {
		fecha = e.Fecha
	}
	err := r.q.QueryRow(ctx, query, e.ProductoID, e.Cantidad, e.CostoUnitario, fecha).Scan(&e.ID, &e.Fecha)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert inventory entry: %w", err)
	}
	return nil
}

// List todas las entradas, la más reciente primero.
func (r *InventoryEntryRepo) List(ctx context.Context) ([]*entity.InventoryEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, producto_id, cantidad, costo_unitario, fecha
		FROM inventory_entries ORDER BY fecha DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list inventory entries: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryEntry
	for rows.Next() {
		var e entity.InventoryEntry
		if err := rows.Scan(&e.ID, &e.ProductoID, &e.Cantidad, &e.CostoUnitario, &e.Fecha); err != nil {
			return nil, fmt.Errorf("scan inventory entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
