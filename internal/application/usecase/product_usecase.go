package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/dto"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/application/ports"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/entity"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/inventory"
	"github.com/jmiguelugalde/ProyectoFinalProgramacionWebGrupo11/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo. El stock se maneja vía entradas y ventas.
type ProductUseCase struct {
	txRunner ports.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner ports.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un producto con stock 0. Sin precio_venta explícito se deriva de costo y margen.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Descripcion) == "" || in.Costo.IsNegative() || in.MargenUtilidad.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	precio := inventory.SalePrice(in.Costo, in.MargenUtilidad)
	if in.PrecioVenta != nil {
		if in.PrecioVenta.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		precio = *in.PrecioVenta
	}
	product := &entity.Product{
		Descripcion:    strings.TrimSpace(in.Descripcion),
		Marca:          in.Marca,
		Presentacion:   in.Presentacion,
		CodigoBarras:   in.CodigoBarras,
		Costo:          in.Costo,
		MargenUtilidad: in.MargenUtilidad,
		PrecioVenta:    precio,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List devuelve todo el catálogo.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ToProductResponse(p))
	}
	return out, nil
}

// Update aplica una actualización parcial. Si cambia costo o margen sin precio explícito,
// el precio de venta se recalcula.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	patch := entity.ProductPatch{
		Descripcion:    in.Descripcion,
		Marca:          in.Marca,
		Presentacion:   in.Presentacion,
		CodigoBarras:   in.CodigoBarras,
		Costo:          in.Costo,
		MargenUtilidad: in.MargenUtilidad,
		PrecioVenta:    in.PrecioVenta,
	}
	if patch.Empty() {
		return nil, domain.ErrInvalidInput
	}
	for _, v := range []*decimal.Decimal{in.Costo, in.MargenUtilidad, in.PrecioVenta} {
		if v != nil && v.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	// Misma fila bloqueada que RegisterEntry: una entrada concurrente no pierde su costo.
	var product *entity.Product
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		var err error
		product, err = r.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		patch.Apply(product)
		if in.PrecioVenta == nil && (in.Costo != nil || in.MargenUtilidad != nil) {
			product.PrecioVenta = inventory.SalePrice(product.Costo, product.MargenUtilidad)
		}
		return r.Products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// ToProductResponse mapea la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Descripcion:    p.Descripcion,
		Marca:          p.Marca,
		Presentacion:   p.Presentacion,
		CodigoBarras:   p.CodigoBarras,
		Costo:          p.Costo,
		MargenUtilidad: p.MargenUtilidad,
		PrecioVenta:    p.PrecioVenta,
		Stock:          p.Stock,
		UpdatedAt:      p.UpdatedAt,
	}
}
