package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/inventory"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/pkg/logger"
)

// SaleUseCase libro de ventas: alta con guard de stock, listado propio y reversa.
type SaleUseCase struct {
	txRunner ports.TxRunner
	sales    repository.SaleRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner ports.TxRunner, sales repository.SaleRepository, log *logger.Logger) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, sales: sales, log: log.Component("ventas"), now: time.Now}
}

// WithClock reemplaza el reloj (fecha de las ventas).
func (uc *SaleUseCase) WithClock(now func() time.Time) *SaleUseCase {
	uc.now = now
	return uc
}

// CreateSale registra una venta de un solo producto.
func (uc *SaleUseCase) CreateSale(ctx context.Context, username string, item dto.SaleItemRequest) (*dto.SaleResponse, error) {
	var sale *entity.Sale
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		var err error
		sale, err = uc.sell(ctx, r, username, item, uc.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// CreateSaleBatch registra varias líneas en una transacción: si una falla, no queda ninguna.
func (uc *SaleUseCase) CreateSaleBatch(ctx context.Context, username string, items []dto.SaleItemRequest) (*dto.CreateSaleResponse, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("debe incluir al menos un producto: %w", domain.ErrInvalidInput)
	}
	for _, it := range items {
		if it.Cantidad <= 0 || it.ProductoID <= 0 {
			return nil, fmt.Errorf("la cantidad debe ser mayor a cero: %w", domain.ErrInvalidInput)
		}
	}
	now := uc.now().UTC()
	ids := make([]int64, 0, len(items))
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		ids = ids[:0]
		for _, it := range items {
			sale, err := uc.sell(ctx, r, username, it, now)
			if err != nil {
				return err
			}
			ids = append(ids, sale.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("usuario", username).Ints64("venta_ids", ids).Msg("venta registrada")
	return &dto.CreateSaleResponse{Mensaje: "Venta registrada correctamente", VentaID: ids}, nil
}

// sell: lee precio, descuenta stock con guard (stock >= cantidad) e inserta la venta.
// Si el guard no se cumple la transacción completa se revierte.
func (uc *SaleUseCase) sell(ctx context.Context, r repository.Repos, username string, item dto.SaleItemRequest, now time.Time) (*entity.Sale, error) {
	if item.Cantidad <= 0 || item.ProductoID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := r.Products.GetByID(ctx, item.ProductoID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", item.ProductoID, domain.ErrNotFound)
	}
	ok, err := r.Products.DecrementStock(ctx, product.ID, item.Cantidad)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("producto %d: %w", product.ID, domain.ErrInsufficientStock)
	}
	sale := &entity.Sale{
		Usuario:        username,
		ProductoID:     product.ID,
		Cantidad:       item.Cantidad,
		PrecioUnitario: product.PrecioVenta,
		Total:          inventory.LineTotal(product.PrecioVenta, item.Cantidad),
		Fecha:          now,
		Estado:         entity.SaleStatusRegistrada,
	}
	if err := r.Sales.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// ListMySales ventas del usuario, la más reciente primero.
func (uc *SaleUseCase) ListMySales(ctx context.Context, username string) ([]dto.SaleResponse, error) {
	list, err := uc.sales.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *ToSaleResponse(s))
	}
	return out, nil
}

// DeleteSale borra una venta propia y devuelve el stock. Una venta ya reclamada
// por un periodo de cobro no se puede borrar.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, saleID int64, owner string) (*dto.MessageResponse, error) {
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		sale, err := r.Sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil || sale.Usuario != owner {
			return domain.ErrNotFound
		}
		if sale.Claimed() {
			return domain.ErrSaleLocked
		}
		deleted, err := r.Sales.DeleteUnclaimed(ctx, saleID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrSaleLocked
		}
		return r.Products.IncrementStock(ctx, sale.ProductoID, sale.Cantidad)
	})
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Mensaje: "Venta eliminada y stock restaurado"}, nil
}

// ToSaleResponse mapea la entidad al DTO.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:             s.ID,
		Usuario:        s.Usuario,
		ProductoID:     s.ProductoID,
		Cantidad:       s.Cantidad,
		PrecioUnitario: s.PrecioUnitario,
		Total:          s.Total,
		Fecha:          s.Fecha,
		Estado:         s.Estado,
		PeriodoCobroID: s.PeriodoCobroID,
	}
}
