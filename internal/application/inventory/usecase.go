package inventory

import (
	"context"
	"time"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/inventory"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

// EntryUseCase registra entradas de inventario de forma transaccional
// con bloqueo de fila del producto (SELECT FOR UPDATE) y Commit/Rollback.
type EntryUseCase struct {
	txRunner  ports.TxRunner
	entryRepo repository.InventoryEntryRepository
	now       func() time.Time
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(txRunner ports.TxRunner, entryRepo repository.InventoryEntryRepository) *EntryUseCase {
	return &EntryUseCase{txRunner: txRunner, entryRepo: entryRepo, now: time.Now}
}

// RegisterEntry inserta la entrada y actualiza el producto en una sola transacción:
// costo = costo_unitario, precio_venta = round(costo*(1+margen/100), 2), stock += cantidad.
func (uc *EntryUseCase) RegisterEntry(ctx context.Context, in dto.InventoryEntryRequest) (*dto.InventoryEntryResponse, error) {
	if in.ProductoID <= 0 || !inventory.ValidEntry(in.Cantidad, in.CostoUnitario) {
		return nil, domain.ErrInvalidInput
	}
	entry := &entity.InventoryEntry{
		ProductoID:    in.ProductoID,
		Cantidad:      in.Cantidad,
		CostoUnitario: in.CostoUnitario,
		Fecha:         uc.now().UTC(),
	}
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, in.ProductoID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := r.Entries.Create(ctx, entry); err != nil {
			return err
		}
		precio := inventory.SalePrice(in.CostoUnitario, product.MargenUtilidad)
		return r.Products.ApplyEntry(ctx, product.ID, in.CostoUnitario, precio, in.Cantidad)
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// ListEntries devuelve todas las entradas, la más reciente primero.
func (uc *EntryUseCase) ListEntries(ctx context.Context) ([]dto.InventoryEntryResponse, error) {
	list, err := uc.entryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEntryResponse(e))
	}
	return out, nil
}

func toEntryResponse(e *entity.InventoryEntry) *dto.InventoryEntryResponse {
	return &dto.InventoryEntryResponse{
		ID:            e.ID,
		ProductoID:    e.ProductoID,
		Cantidad:      e.Cantidad,
		CostoUnitario: e.CostoUnitario,
		Fecha:         e.Fecha,
	}
}
