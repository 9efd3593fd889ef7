package repository

import (
	"context"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
)

// InventoryEntryRepository puerto para las entradas de inventario (append-only).
type InventoryEntryRepository interface {
	Create(ctx context.Context, entry *entity.InventoryEntry) error
	// List devuelve todas las entradas, la más reciente primero.
	List(ctx context.Context) ([]*entity.InventoryEntry, error)
}
